package models

// APIPrefix is the fixed path prefix every resource lives under
const APIPrefix = "/api"

// Resource paths, relative to APIPrefix
const (
	PathCategories             = "categories"
	PathCategoryModels         = "category-models"
	PathCategoryVisibility     = "category-visibility"
	PathVisibilityTypes        = "visibility-types"
	PathPricingModels          = "pricing-models"
	PathSocialHandles          = "social-handles"
	PathDisplayTypes           = "display-types"
	PathBusinessFields         = "business-fields"
	PathBusinessFieldInstances = "business-field-instances"
)
