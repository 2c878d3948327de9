// Package summary derives the counters shown above each resource list.
// Every function is a single pass over an already loaded collection.
package summary

import "github.com/aethra/taxonomy/internal/models"

// Count returns how many items satisfy pred
func Count[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, it := range items {
		if pred(it) {
			n++
		}
	}
	return n
}

// Categories holds the category counters
type Categories struct {
	Total     int `json:"total"`
	Visible   int `json:"visible"`
	Hidden    int `json:"hidden"`
	WithModel int `json:"with_model"`
}

// ForCategories counts visible (visible or public), hidden (hidden or private)
// and model-backed categories
func ForCategories(cats []models.Category) Categories {
	s := Categories{Total: len(cats)}
	for _, c := range cats {
		switch {
		case c.VisibilityStatus.Shown():
			s.Visible++
		case c.VisibilityStatus.Concealed():
			s.Hidden++
		}
		if c.HasModel() {
			s.WithModel++
		}
	}
	return s
}

// CategoryModels holds the model counters
type CategoryModels struct {
	Total          int `json:"total"`
	WithFields     int `json:"with_fields"`
	TotalFields    int `json:"total_fields"`
	RequiredFields int `json:"required_fields"`
}

// ForCategoryModels counts models and the fields they define
func ForCategoryModels(ms []models.CategoryModel) CategoryModels {
	s := CategoryModels{Total: len(ms)}
	for _, m := range ms {
		if len(m.Fields) > 0 {
			s.WithFields++
		}
		s.TotalFields += len(m.Fields)
		s.RequiredFields += m.RequiredFieldCount()
	}
	return s
}

// Visibility holds the visibility screen counters. Category counts come from
// the category list, Scheduled from the settings.
type Visibility struct {
	Settings  int `json:"settings"`
	Visible   int `json:"visible"`
	Hidden    int `json:"hidden"`
	Scheduled int `json:"scheduled"`
}

// ForVisibility combines the settings and category lists
func ForVisibility(settings []models.VisibilitySetting, cats []models.Category) Visibility {
	c := ForCategories(cats)
	return Visibility{
		Settings:  len(settings),
		Visible:   c.Visible,
		Hidden:    c.Hidden,
		Scheduled: Count(settings, models.VisibilitySetting.Scheduled),
	}
}

// Toggles holds the counters of resources that only have an active flag
type Toggles struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// ForVisibilityTypes counts visibility types
func ForVisibilityTypes(ts []models.VisibilityType) Toggles {
	return Toggles{
		Total:  len(ts),
		Active: Count(ts, func(t models.VisibilityType) bool { return t.Active }),
	}
}

// ForInstances counts business field instances
func ForInstances(is []models.BusinessFieldInstance) Toggles {
	return Toggles{
		Total:  len(is),
		Active: Count(is, func(i models.BusinessFieldInstance) bool { return i.Active }),
	}
}

// BusinessFields holds the business field counters
type BusinessFields struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Required   int `json:"required"`
	Categories int `json:"categories"`
}

// ForBusinessFields counts fields and the distinct categories they use
func ForBusinessFields(fs []models.BusinessField) BusinessFields {
	s := BusinessFields{Total: len(fs)}
	seen := make(map[models.BusinessFieldCategory]struct{})
	for _, f := range fs {
		if f.Active {
			s.Active++
		}
		if f.Required {
			s.Required++
		}
		seen[f.Category] = struct{}{}
	}
	s.Categories = len(seen)
	return s
}

// FieldGroup is the fields of one business field category
type FieldGroup struct {
	Category models.BusinessFieldCategory
	Fields   []models.BusinessField
}

// GroupByCategory groups fields in the fixed category order. Empty groups are
// dropped and fields with an unknown category are not listed.
func GroupByCategory(fs []models.BusinessField) []FieldGroup {
	var groups []FieldGroup
	for _, cat := range models.BusinessFieldCategories {
		var in []models.BusinessField
		for _, f := range fs {
			if f.Category == cat {
				in = append(in, f)
			}
		}
		if len(in) > 0 {
			groups = append(groups, FieldGroup{Category: cat, Fields: in})
		}
	}
	return groups
}

// Pricing holds the pricing counters
type Pricing struct {
	Total     int `json:"total"`
	Recurring int `json:"recurring"`
	Active    int `json:"active"`
}

// ForPricing counts pricing models
func ForPricing(ps []models.PricingModel) Pricing {
	return Pricing{
		Total:     len(ps),
		Recurring: Count(ps, func(p models.PricingModel) bool { return p.Type == models.PricingRecurring }),
		Active:    Count(ps, func(p models.PricingModel) bool { return p.Active }),
	}
}

// Social holds the social handle counters
type Social struct {
	Total     int   `json:"total"`
	Active    int   `json:"active"`
	Followers int64 `json:"followers"`
	WithIcon  int   `json:"with_icon"`
}

// ForSocial counts handles and sums their followers
func ForSocial(hs []models.SocialHandle) Social {
	s := Social{Total: len(hs)}
	for _, h := range hs {
		if h.Active {
			s.Active++
		}
		s.Followers += h.Followers
		if h.IconImage != "" {
			s.WithIcon++
		}
	}
	return s
}

// Display holds the display type counters
type Display struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Responsive int `json:"responsive"`
}

// ForDisplay counts display types
func ForDisplay(ds []models.DisplayType) Display {
	return Display{
		Total:      len(ds),
		Active:     Count(ds, func(d models.DisplayType) bool { return d.Active }),
		Responsive: Count(ds, func(d models.DisplayType) bool { return d.Responsive }),
	}
}

// Signup holds the signup level counters
type Signup struct {
	Total                int `json:"total"`
	Active               int `json:"active"`
	AutoApprove          int `json:"auto_approve"`
	VerificationRequired int `json:"verification_required"`
}

// ForSignup counts signup levels
func ForSignup(ls []models.SignupLevel) Signup {
	return Signup{
		Total:                len(ls),
		Active:               Count(ls, func(l models.SignupLevel) bool { return l.Active }),
		AutoApprove:          Count(ls, func(l models.SignupLevel) bool { return l.AutoApprove }),
		VerificationRequired: Count(ls, func(l models.SignupLevel) bool { return l.VerificationRequired }),
	}
}
