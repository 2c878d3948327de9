// Package models contains the taxonomy records served by the API and
// loaded by the resource panels
package models

import (
	"strings"
	"time"

	"github.com/aethra/taxonomy/internal/errors"
)

// Record is implemented by every persisted resource
type Record interface {
	GetID() string
	SetID(id string)
	// ApplyDefaults fills the values a create request may omit. It runs before
	// the request body is decoded so explicit values win.
	ApplyDefaults()
	Validate() error
}

// =============================================================================
// CATEGORY MODELS
// =============================================================================

// FieldDescriptor is one entry of a category model's field template
type FieldDescriptor struct {
	Name         string    `json:"name"`
	Type         FieldType `json:"type"`
	Required     bool      `json:"required"`
	DefaultValue *string   `json:"default_value"`
}

// CategoryModel is a structural template that categories can reference
type CategoryModel struct {
	ID          string            `json:"id" gorm:"primaryKey;size:36"`
	Name        string            `json:"name" gorm:"not null;size:255"`
	Description string            `json:"description"`
	Fields      []FieldDescriptor `json:"fields" gorm:"serializer:json;type:text"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// TableName returns the table name for CategoryModel
func (CategoryModel) TableName() string { return "category_models" }

func (m *CategoryModel) GetID() string   { return m.ID }
func (m *CategoryModel) SetID(id string) { m.ID = id }

func (m *CategoryModel) ApplyDefaults() {
	m.Fields = []FieldDescriptor{}
}

func (m *CategoryModel) Validate() error {
	if err := requireName(m.Name); err != nil {
		return err
	}
	if m.Fields == nil {
		m.Fields = []FieldDescriptor{}
	}
	for i := range m.Fields {
		f := &m.Fields[i]
		if strings.TrimSpace(f.Name) == "" {
			return errors.NewValidationError("fields", "every field needs a name")
		}
		if f.Type == "" {
			f.Type = FieldTypeText
		}
		if !f.Type.Valid() {
			return errors.NewValidationError("fields", "invalid field type: "+string(f.Type))
		}
	}
	return nil
}

// RequiredFieldCount returns how many of the model's fields are required
func (m CategoryModel) RequiredFieldCount() int {
	n := 0
	for _, f := range m.Fields {
		if f.Required {
			n++
		}
	}
	return n
}

// Category is a node of the taxonomy
type Category struct {
	ID               string           `json:"id" gorm:"primaryKey;size:36"`
	Name             string           `json:"name" gorm:"not null;size:255"`
	Description      string           `json:"description"`
	ModelID          *string          `json:"model_id" gorm:"size:36;index"`
	CustomData       JSONB            `json:"custom_data" gorm:"type:text"`
	VisibilityStatus VisibilityStatus `json:"visibility_status" gorm:"size:20;not null"`
	ParentID         *string          `json:"parent_id" gorm:"size:36;index"`
	SortOrder        int              `json:"sort_order"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// TableName returns the table name for Category
func (Category) TableName() string { return "categories" }

func (c *Category) GetID() string   { return c.ID }
func (c *Category) SetID(id string) { c.ID = id }

func (c *Category) ApplyDefaults() {
	c.VisibilityStatus = VisibilityVisible
	c.CustomData = JSONB{}
}

func (c *Category) Validate() error {
	if err := requireName(c.Name); err != nil {
		return err
	}
	if !c.VisibilityStatus.Valid() {
		return errors.NewValidationError("visibility_status", "invalid visibility status: "+string(c.VisibilityStatus))
	}
	c.ModelID = blankToNil(c.ModelID)
	c.ParentID = blankToNil(c.ParentID)
	return nil
}

// HasModel reports whether the category references a model
func (c Category) HasModel() bool {
	return c.ModelID != nil && *c.ModelID != ""
}

// VisibilitySetting schedules a visibility status for one category
type VisibilitySetting struct {
	ID               string           `json:"id" gorm:"primaryKey;size:36"`
	CategoryID       string           `json:"category_id" gorm:"size:36;not null;index"`
	VisibilityStatus VisibilityStatus `json:"visibility_status" gorm:"size:20;not null"`
	StartDate        *time.Time       `json:"start_date"`
	EndDate          *time.Time       `json:"end_date"`
	Rules            JSONB            `json:"rules" gorm:"type:text"`
	CreatedAt        time.Time        `json:"created_at"`
}

// TableName returns the table name for VisibilitySetting
func (VisibilitySetting) TableName() string { return "category_visibility" }

func (v *VisibilitySetting) GetID() string   { return v.ID }
func (v *VisibilitySetting) SetID(id string) { v.ID = id }

func (v *VisibilitySetting) ApplyDefaults() {
	v.VisibilityStatus = VisibilityVisible
	v.Rules = JSONB{}
}

// Validate does not compare StartDate and EndDate; an inverted window is stored as given.
func (v *VisibilitySetting) Validate() error {
	if strings.TrimSpace(v.CategoryID) == "" {
		return errors.NewValidationError("category_id", "category_id is required")
	}
	if !v.VisibilityStatus.Valid() {
		return errors.NewValidationError("visibility_status", "invalid visibility status: "+string(v.VisibilityStatus))
	}
	return nil
}

// Scheduled reports whether either end of the time window is set
func (v VisibilitySetting) Scheduled() bool {
	return v.StartDate != nil || v.EndDate != nil
}

// VisibilityType is a free-standing visibility taxonomy entry
type VisibilityType struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the table name for VisibilityType
func (VisibilityType) TableName() string { return "visibility_types" }

func (v *VisibilityType) GetID() string   { return v.ID }
func (v *VisibilityType) SetID(id string) { v.ID = id }
func (v *VisibilityType) ApplyDefaults()  { v.Active = true }
func (v *VisibilityType) Validate() error { return requireName(v.Name) }

// =============================================================================
// BUSINESS FIELDS
// =============================================================================

// BusinessField is a reusable field template
type BusinessField struct {
	ID         string                `json:"id" gorm:"primaryKey;size:36"`
	Name       string                `json:"name" gorm:"not null;size:255"`
	Type       FieldType             `json:"type" gorm:"size:20;not null"`
	Required   bool                  `json:"required"`
	Category   BusinessFieldCategory `json:"category" gorm:"size:30;not null"`
	Order      int                   `json:"order" gorm:"column:sort_order"`
	Validation JSONB                 `json:"validation" gorm:"type:text"`
	Options    StringArray           `json:"options" gorm:"type:text"`
	Active     bool                  `json:"active"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// TableName returns the table name for BusinessField
func (BusinessField) TableName() string { return "business_fields" }

func (b *BusinessField) GetID() string   { return b.ID }
func (b *BusinessField) SetID(id string) { b.ID = id }

func (b *BusinessField) ApplyDefaults() {
	b.Type = FieldTypeText
	b.Category = BusinessCategoryGeneral
	b.Validation = JSONB{}
	b.Options = StringArray{}
	b.Active = true
}

func (b *BusinessField) Validate() error {
	if err := requireName(b.Name); err != nil {
		return err
	}
	if !b.Type.Valid() {
		return errors.NewValidationError("type", "invalid field type: "+string(b.Type))
	}
	if !b.Category.Valid() {
		return errors.NewValidationError("category", "invalid field category: "+string(b.Category))
	}
	return nil
}

// BusinessFieldInstance is a concrete value for a business field template
type BusinessFieldInstance struct {
	ID               string      `json:"id" gorm:"primaryKey;size:36"`
	Name             string      `json:"name" gorm:"not null;size:255"`
	TemplateFieldID  string      `json:"template_field_id" gorm:"size:36;index"`
	Value            interface{} `json:"value" gorm:"serializer:json;type:text"`
	CustomProperties JSONB       `json:"custom_properties" gorm:"type:text"`
	Active           bool        `json:"active"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// TableName returns the table name for BusinessFieldInstance
func (BusinessFieldInstance) TableName() string { return "business_field_instances" }

func (b *BusinessFieldInstance) GetID() string   { return b.ID }
func (b *BusinessFieldInstance) SetID(id string) { b.ID = id }

func (b *BusinessFieldInstance) ApplyDefaults() {
	b.CustomProperties = JSONB{}
	b.Active = true
}

func (b *BusinessFieldInstance) Validate() error { return requireName(b.Name) }

// =============================================================================
// PRICING, SOCIAL, DISPLAY
// =============================================================================

// PricingModel is a pricing tier offered for categories
type PricingModel struct {
	ID          string      `json:"id" gorm:"primaryKey;size:36"`
	Name        string      `json:"name" gorm:"not null;size:255"`
	Description string      `json:"description"`
	Type        string      `json:"type" gorm:"size:30"`
	Price       float64     `json:"price"`
	Currency    string      `json:"currency" gorm:"size:3"`
	Interval    string      `json:"interval" gorm:"column:billing_interval;size:20"`
	Features    StringArray `json:"features" gorm:"type:text"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TableName returns the table name for PricingModel
func (PricingModel) TableName() string { return "pricing_models" }

func (p *PricingModel) GetID() string   { return p.ID }
func (p *PricingModel) SetID(id string) { p.ID = id }

func (p *PricingModel) ApplyDefaults() {
	p.Type = PricingRecurring
	p.Currency = "USD"
	p.Interval = "monthly"
	p.Features = StringArray{}
	p.Active = true
}

func (p *PricingModel) Validate() error {
	if err := requireName(p.Name); err != nil {
		return err
	}
	if p.Price < 0 {
		return errors.NewValidationError("price", "price cannot be negative")
	}
	return nil
}

// SocialHandle is a social media account shown for the platform
type SocialHandle struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	IconImage string    `json:"icon_image" gorm:"type:text"`
	URL       string    `json:"url"`
	Handle    string    `json:"handle" gorm:"size:255"`
	Followers int64     `json:"followers"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for SocialHandle
func (SocialHandle) TableName() string { return "social_handles" }

func (s *SocialHandle) GetID() string   { return s.ID }
func (s *SocialHandle) SetID(id string) { s.ID = id }
func (s *SocialHandle) ApplyDefaults()  { s.Active = true }

func (s *SocialHandle) Validate() error {
	if err := requireName(s.Name); err != nil {
		return err
	}
	if s.Followers < 0 {
		return errors.NewValidationError("followers", "followers cannot be negative")
	}
	return nil
}

// DisplayType is a layout used to render a category listing
type DisplayType struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Name         string    `json:"name" gorm:"not null;size:255"`
	Description  string    `json:"description"`
	TypeCategory string    `json:"type_category" gorm:"size:30"`
	Columns      int       `json:"columns"`
	Properties   JSONB     `json:"properties" gorm:"type:text"`
	Responsive   bool      `json:"responsive"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the table name for DisplayType
func (DisplayType) TableName() string { return "display_types" }

func (d *DisplayType) GetID() string   { return d.ID }
func (d *DisplayType) SetID(id string) { d.ID = id }

func (d *DisplayType) ApplyDefaults() {
	d.Columns = 1
	d.Properties = JSONB{}
	d.Responsive = true
	d.Active = true
}

func (d *DisplayType) Validate() error { return requireName(d.Name) }

// SignupLevel describes an access tier. It has no backend collection.
type SignupLevel struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Level                int       `json:"level"`
	Requirements         []string  `json:"requirements"`
	Permissions          []string  `json:"permissions"`
	VerificationRequired bool      `json:"verification_required"`
	AutoApprove          bool      `json:"auto_approve"`
	Active               bool      `json:"active"`
	CreatedAt            time.Time `json:"created_at"`
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewValidationError("name", "name is required")
	}
	return nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
