package models

// VisibilityStatus controls whether a category is shown to end users
type VisibilityStatus string

const (
	VisibilityVisible VisibilityStatus = "visible"
	VisibilityHidden  VisibilityStatus = "hidden"
	VisibilityPrivate VisibilityStatus = "private"
	VisibilityPublic  VisibilityStatus = "public"
)

// VisibilityStatuses lists every status in display order
var VisibilityStatuses = []VisibilityStatus{VisibilityVisible, VisibilityHidden, VisibilityPrivate, VisibilityPublic}

// Valid reports whether s is a known status
func (s VisibilityStatus) Valid() bool {
	for _, v := range VisibilityStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Shown reports whether end users see a category with this status
func (s VisibilityStatus) Shown() bool {
	return s == VisibilityVisible || s == VisibilityPublic
}

// Concealed reports whether a category with this status is kept from end users
func (s VisibilityStatus) Concealed() bool {
	return s == VisibilityHidden || s == VisibilityPrivate
}

// FieldType is the input type of a model field or business field
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeDate     FieldType = "date"
	FieldTypeEmail    FieldType = "email"
	FieldTypeURL      FieldType = "url"
	FieldTypeTextarea FieldType = "textarea"
)

// FieldTypes lists every field type in display order
var FieldTypes = []FieldType{
	FieldTypeText, FieldTypeNumber, FieldTypeBoolean, FieldTypeDate,
	FieldTypeEmail, FieldTypeURL, FieldTypeTextarea,
}

// Valid reports whether t is a known field type
func (t FieldType) Valid() bool {
	for _, v := range FieldTypes {
		if t == v {
			return true
		}
	}
	return false
}

// BusinessFieldCategory groups business fields. It is unrelated to Category.
type BusinessFieldCategory string

const (
	BusinessCategoryGeneral   BusinessFieldCategory = "general"
	BusinessCategoryBasic     BusinessFieldCategory = "basic_info"
	BusinessCategoryLegal     BusinessFieldCategory = "legal_info"
	BusinessCategoryFinancial BusinessFieldCategory = "financial_info"
	BusinessCategoryContact   BusinessFieldCategory = "contact_info"
)

// BusinessFieldCategories lists every business field category in display order
var BusinessFieldCategories = []BusinessFieldCategory{
	BusinessCategoryGeneral, BusinessCategoryBasic, BusinessCategoryLegal,
	BusinessCategoryFinancial, BusinessCategoryContact,
}

var businessCategoryLabels = map[BusinessFieldCategory]string{
	BusinessCategoryGeneral:   "General",
	BusinessCategoryBasic:     "Basic Information",
	BusinessCategoryLegal:     "Legal Information",
	BusinessCategoryFinancial: "Financial Information",
	BusinessCategoryContact:   "Contact Information",
}

// Valid reports whether c is a known business field category
func (c BusinessFieldCategory) Valid() bool {
	_, ok := businessCategoryLabels[c]
	return ok
}

// Label returns the display label, or the raw value for unknown categories
func (c BusinessFieldCategory) Label() string {
	if l, ok := businessCategoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Pricing types
const (
	PricingRecurring = "recurring"
	PricingOneTime   = "one_time"
)
