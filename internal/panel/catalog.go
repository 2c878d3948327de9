package panel

import (
	"log/slog"

	"github.com/aethra/taxonomy/internal/client"
	"github.com/aethra/taxonomy/internal/models"
	"github.com/aethra/taxonomy/internal/summary"
)

// VisibilityTypes manages the visibility taxonomy entries
type VisibilityTypes struct {
	*Panel[models.VisibilityType, *models.VisibilityType]
}

// NewVisibilityTypes creates the visibility types panel
func NewVisibilityTypes(api *client.API, log *slog.Logger) *VisibilityTypes {
	return &VisibilityTypes{
		Panel: New[models.VisibilityType](models.PathVisibilityTypes, api.VisibilityTypes, log, Options[models.VisibilityType]{}),
	}
}

// Summary returns the visibility type counters
func (v *VisibilityTypes) Summary() summary.Toggles {
	return summary.ForVisibilityTypes(v.Items())
}

// Pricing manages pricing models
type Pricing struct {
	*Panel[models.PricingModel, *models.PricingModel]
}

// NewPricing creates the pricing models panel
func NewPricing(api *client.API, log *slog.Logger) *Pricing {
	return &Pricing{
		Panel: New[models.PricingModel](models.PathPricingModels, api.PricingModels, log, Options[models.PricingModel]{
			Fallback: models.SamplePricingModels,
		}),
	}
}

// Summary returns the pricing counters
func (p *Pricing) Summary() summary.Pricing {
	return summary.ForPricing(p.Items())
}

// Display manages display types
type Display struct {
	*Panel[models.DisplayType, *models.DisplayType]
}

// NewDisplay creates the display types panel
func NewDisplay(api *client.API, log *slog.Logger) *Display {
	return &Display{
		Panel: New[models.DisplayType](models.PathDisplayTypes, api.DisplayTypes, log, Options[models.DisplayType]{
			Fallback: models.SampleDisplayTypes,
		}),
	}
}

// Summary returns the display type counters
func (d *Display) Summary() summary.Display {
	return summary.ForDisplay(d.Items())
}

// Signup shows the access tiers. They have no backend collection.
type Signup struct {
	levels []models.SignupLevel
}

// NewSignup creates the signup levels panel
func NewSignup() *Signup {
	return &Signup{levels: models.SampleSignupLevels()}
}

// Name returns the panel name
func (s *Signup) Name() string {
	return "signup-levels"
}

// Items returns the signup levels
func (s *Signup) Items() []models.SignupLevel {
	out := make([]models.SignupLevel, len(s.levels))
	copy(out, s.levels)
	return out
}

// Summary returns the signup level counters
func (s *Signup) Summary() summary.Signup {
	return summary.ForSignup(s.levels)
}
