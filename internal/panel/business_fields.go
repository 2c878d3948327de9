package panel

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/aethra/taxonomy/internal/client"
	"github.com/aethra/taxonomy/internal/models"
	"github.com/aethra/taxonomy/internal/summary"
	"golang.org/x/sync/errgroup"
)

// BusinessFields manages business field templates and their instances
type BusinessFields struct {
	*Panel[models.BusinessField, *models.BusinessField]

	// Instances is the panel over business-field-instances
	Instances *Panel[models.BusinessFieldInstance, *models.BusinessFieldInstance]

	viewMu sync.RWMutex
	view   View
}

// NewBusinessFields creates the business fields panel
func NewBusinessFields(api *client.API, log *slog.Logger) *BusinessFields {
	return &BusinessFields{
		Panel: New[models.BusinessField](models.PathBusinessFields, api.BusinessFields, log, Options[models.BusinessField]{
			Fallback: models.SampleBusinessFields,
		}),
		Instances: New[models.BusinessFieldInstance](models.PathBusinessFieldInstances, api.BusinessFieldInstances, log, Options[models.BusinessFieldInstance]{}),
	}
}

// Load fetches templates and instances concurrently
func (b *BusinessFields) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return b.Panel.Load(ctx) })
	g.Go(func() error { return b.Instances.Load(ctx) })
	return g.Wait()
}

// View returns the active sub-view
func (b *BusinessFields) View() View {
	b.viewMu.RLock()
	defer b.viewMu.RUnlock()
	return b.view
}

// SetView switches the active sub-view
func (b *BusinessFields) SetView(v View) {
	b.viewMu.Lock()
	defer b.viewMu.Unlock()
	b.view = v
}

// SimpleAdd creates a new field named name that copies type, required flag,
// category, validation and options from the template with templateID. The new
// field goes last and keeps no link to its template.
func (b *BusinessFields) SimpleAdd(ctx context.Context, name, templateID string) error {
	tmpl, ok := b.Find(templateID)
	if templateID == "" || !ok {
		return ErrTemplateRequired
	}
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}

	validation := tmpl.Validation
	if validation == nil {
		validation = models.JSONB{}
	}
	options := tmpl.Options
	if options == nil {
		options = models.StringArray{}
	}

	return b.create(ctx, map[string]any{
		"name":       name,
		"type":       tmpl.Type,
		"required":   tmpl.Required,
		"category":   tmpl.Category,
		"order":      len(b.Items()) + 1,
		"validation": validation,
		"options":    options,
		"active":     true,
	})
}

// TemplateName resolves a template id to its field name
func (b *BusinessFields) TemplateName(id string) string {
	if f, ok := b.Find(id); ok {
		return f.Name
	}
	return UnknownTemplateLabel
}

// InstancesOf returns the loaded instances created from templateID
func (b *BusinessFields) InstancesOf(templateID string) []models.BusinessFieldInstance {
	var out []models.BusinessFieldInstance
	for _, inst := range b.Instances.Items() {
		if inst.TemplateFieldID == templateID {
			out = append(out, inst)
		}
	}
	return out
}

// Groups returns the fields grouped by category in display order
func (b *BusinessFields) Groups() []summary.FieldGroup {
	return summary.GroupByCategory(b.Items())
}

// Summary returns the business field counters
func (b *BusinessFields) Summary() summary.BusinessFields {
	return summary.ForBusinessFields(b.Items())
}

// InstanceSummary returns the instance counters
func (b *BusinessFields) InstanceSummary() summary.Toggles {
	return summary.ForInstances(b.Instances.Items())
}
