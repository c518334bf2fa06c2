package model

type AdminRole string

const (
	AdminRoleOwner  AdminRole = "owner"
	AdminRoleEditor AdminRole = "editor"
)

type TemplateCategory string

const (
	TemplateCategoryClassic    TemplateCategory = "classic"
	TemplateCategoryModern     TemplateCategory = "modern"
	TemplateCategoryFloral     TemplateCategory = "floral"
	TemplateCategoryMinimalist TemplateCategory = "minimalist"
)
