package model

import (
	"encoding/json"
	"time"
)

type InvitationTemplate struct {
	ID          string           `db:"id" json:"id"`
	Slug        string           `db:"slug" json:"slug"`
	Name        string           `db:"name" json:"name"`
	Description string           `db:"description" json:"description"`
	Category    TemplateCategory `db:"category" json:"category"`
	PriceIDR    int64            `db:"price_idr" json:"priceIdr"`
	ImageURL    *string          `db:"image_url" json:"imageUrl,omitempty"`
	IsPublished bool             `db:"is_published" json:"isPublished"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updatedAt"`
}

type CreateTemplateParams struct {
	Slug        string
	Name        string
	Description string
	Category    TemplateCategory
	PriceIDR    int64
	ImageURL    *string
}

type UpdateTemplateParams struct {
	Name        *string
	Description *string
	Category    *TemplateCategory
	PriceIDR    *int64
	ImageURL    *string
	IsPublished *bool
}

type HantaranPackage struct {
	ID          string           `db:"id" json:"id"`
	Slug        string           `db:"slug" json:"slug"`
	Name        string           `db:"name" json:"name"`
	Description string           `db:"description" json:"description"`
	PriceIDR    int64            `db:"price_idr" json:"priceIdr"`
	Items       *json.RawMessage `db:"items" json:"items,omitempty"`
	ImageURL    *string          `db:"image_url" json:"imageUrl,omitempty"`
	IsPublished bool             `db:"is_published" json:"isPublished"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updatedAt"`
}

type CreateHantaranParams struct {
	Slug        string
	Name        string
	Description string
	PriceIDR    int64
	Items       *json.RawMessage
	ImageURL    *string
}

type UpdateHantaranParams struct {
	Name        *string
	Description *string
	PriceIDR    *int64
	Items       *json.RawMessage
	ImageURL    *string
	IsPublished *bool
}

// WeddingService is a bookable service offering (decoration, MUA, catering
// coordination). Named to avoid colliding with the service layer.
type WeddingService struct {
	ID           string    `db:"id" json:"id"`
	Slug         string    `db:"slug" json:"slug"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	PriceFromIDR int64     `db:"price_from_idr" json:"priceFromIdr"`
	ImageURL     *string   `db:"image_url" json:"imageUrl,omitempty"`
	IsPublished  bool      `db:"is_published" json:"isPublished"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

type CreateWeddingServiceParams struct {
	Slug         string
	Name         string
	Description  string
	PriceFromIDR int64
	ImageURL     *string
}

type UpdateWeddingServiceParams struct {
	Name         *string
	Description  *string
	PriceFromIDR *int64
	ImageURL     *string
	IsPublished  *bool
}

type BlogPost struct {
	ID            string     `db:"id" json:"id"`
	Slug          string     `db:"slug" json:"slug"`
	Title         string     `db:"title" json:"title"`
	Excerpt       string     `db:"excerpt" json:"excerpt"`
	Body          string     `db:"body" json:"body"`
	CoverImageURL *string    `db:"cover_image_url" json:"coverImageUrl,omitempty"`
	IsPublished   bool       `db:"is_published" json:"isPublished"`
	PublishedAt   *time.Time `db:"published_at" json:"publishedAt,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}

type CreateBlogPostParams struct {
	Slug          string
	Title         string
	Excerpt       string
	Body          string
	CoverImageURL *string
}

type UpdateBlogPostParams struct {
	Title         *string
	Excerpt       *string
	Body          *string
	CoverImageURL *string
	IsPublished   *bool
}

type Testimonial struct {
	ID          string     `db:"id" json:"id"`
	ClientName  string     `db:"client_name" json:"clientName"`
	EventDate   *time.Time `db:"event_date" json:"eventDate,omitempty"`
	Quote       string     `db:"quote" json:"quote"`
	Rating      int        `db:"rating" json:"rating"`
	PhotoURL    *string    `db:"photo_url" json:"photoUrl,omitempty"`
	IsPublished bool       `db:"is_published" json:"isPublished"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

type CreateTestimonialParams struct {
	ClientName string
	EventDate  *time.Time
	Quote      string
	Rating     int
	PhotoURL   *string
}

type UpdateTestimonialParams struct {
	ClientName  *string
	EventDate   *time.Time
	Quote       *string
	Rating      *int
	PhotoURL    *string
	IsPublished *bool
}
