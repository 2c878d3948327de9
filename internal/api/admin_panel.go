// Package api - Read-only admin overview page
package api

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/aethra/taxonomy/internal/errors"
	"github.com/aethra/taxonomy/internal/models"
	"github.com/aethra/taxonomy/internal/store"
	"github.com/aethra/taxonomy/internal/summary"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// AdminPanelHandler serves the admin overview page
type AdminPanelHandler struct {
	store *store.Store
	log   *slog.Logger
}

// NewAdminPanelHandler creates a new admin panel handler
func NewAdminPanelHandler(s *store.Store, log *slog.Logger) *AdminPanelHandler {
	return &AdminPanelHandler{store: s, log: log}
}

// Overview holds every counter shown on the page
type Overview struct {
	Categories      summary.Categories
	CategoryModels  summary.CategoryModels
	Visibility      summary.Visibility
	VisibilityTypes summary.Toggles
	BusinessFields  summary.BusinessFields
	Instances       summary.Toggles
	FieldGroups     []summary.FieldGroup
	Pricing         summary.Pricing
	Social          summary.Social
	Display         summary.Display
}

// LoadOverview reads every collection concurrently and derives the counters
func (h *AdminPanelHandler) LoadOverview(ctx context.Context) (*Overview, error) {
	var (
		cats      []models.Category
		catModels []models.CategoryModel
		settings  []models.VisibilitySetting
		visTypes  []models.VisibilityType
		fields    []models.BusinessField
		instances []models.BusinessFieldInstance
		pricing   []models.PricingModel
		social    []models.SocialHandle
		display   []models.DisplayType
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { cats, err = h.store.Categories.List(ctx); return })
	g.Go(func() (err error) { catModels, err = h.store.CategoryModels.List(ctx); return })
	g.Go(func() (err error) { settings, err = h.store.CategoryVisibility.List(ctx); return })
	g.Go(func() (err error) { visTypes, err = h.store.VisibilityTypes.List(ctx); return })
	g.Go(func() (err error) { fields, err = h.store.BusinessFields.List(ctx); return })
	g.Go(func() (err error) { instances, err = h.store.BusinessFieldInstances.List(ctx); return })
	g.Go(func() (err error) { pricing, err = h.store.PricingModels.List(ctx); return })
	g.Go(func() (err error) { social, err = h.store.SocialHandles.List(ctx); return })
	g.Go(func() (err error) { display, err = h.store.DisplayTypes.List(ctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Overview{
		Categories:      summary.ForCategories(cats),
		CategoryModels:  summary.ForCategoryModels(catModels),
		Visibility:      summary.ForVisibility(settings, cats),
		VisibilityTypes: summary.ForVisibilityTypes(visTypes),
		BusinessFields:  summary.ForBusinessFields(fields),
		Instances:       summary.ForInstances(instances),
		FieldGroups:     summary.GroupByCategory(fields),
		Pricing:         summary.ForPricing(pricing),
		Social:          summary.ForSocial(social),
		Display:         summary.ForDisplay(display),
	}, nil
}

// AdminPanel renders the overview page
// GET /panel
func (h *AdminPanelHandler) AdminPanel(c *gin.Context) {
	overview, err := h.LoadOverview(c.Request.Context())
	if err != nil {
		respondError(c, h.log, errors.NewInternalError(err))
		return
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := panelTemplate.Execute(c.Writer, overview); err != nil {
		h.log.Error("render admin panel", "error", err)
	}
}

var panelTemplate = template.Must(template.New("panel").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Category Management</title>
    <style>
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: #0f0f1a;
            min-height: 100vh;
            color: #fff;
            padding: 30px;
        }
        .logo {
            font-size: 24px;
            font-weight: bold;
            background: linear-gradient(90deg, #00d4ff, #7b2cbf);
            -webkit-background-clip: text;
            -webkit-text-fill-color: transparent;
            margin-bottom: 24px;
        }
        h2 {
            font-size: 11px;
            text-transform: uppercase;
            color: rgba(255,255,255,0.4);
            letter-spacing: 1px;
            margin: 24px 0 10px;
        }
        .stats-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(180px, 1fr));
            gap: 16px;
        }
        .stat-card {
            background: rgba(255,255,255,0.03);
            border: 1px solid rgba(255,255,255,0.1);
            border-radius: 12px;
            padding: 18px;
        }
        .stat-value { font-size: 28px; font-weight: 600; color: #00d4ff; }
        .stat-label { font-size: 13px; color: rgba(255,255,255,0.6); margin-top: 4px; }
        ul { list-style: none; }
        li { padding: 6px 0; color: rgba(255,255,255,0.8); }
        .muted { color: rgba(255,255,255,0.4); }
    </style>
</head>
<body>
    <div class="logo">Category Management</div>

    <h2>Categories</h2>
    <div class="stats-grid">
        <div class="stat-card"><div class="stat-value">{{.Categories.Total}}</div><div class="stat-label">Total Categories</div></div>
        <div class="stat-card"><div class="stat-value">{{.Categories.Visible}}</div><div class="stat-label">Visible</div></div>
        <div class="stat-card"><div class="stat-value">{{.Categories.Hidden}}</div><div class="stat-label">Hidden</div></div>
        <div class="stat-card"><div class="stat-value">{{.Categories.WithModel}}</div><div class="stat-label">With Model</div></div>
    </div>

    <h2>Category Models</h2>
    <div class="stats-grid">
        <div class="stat-card"><div class="stat-value">{{.CategoryModels.Total}}</div><div class="stat-label">Total Models</div></div>
        <div class="stat-card"><div class="stat-value">{{.CategoryModels.WithFields}}</div><div class="stat-label">With Fields</div></div>
        <div class="stat-card"><div class="stat-value">{{.CategoryModels.TotalFields}}</div><div class="stat-label">Total Fields</div></div>
        <div class="stat-card"><div class="stat-value">{{.CategoryModels.RequiredFields}}</div><div class="stat-label">Required Fields</div></div>
    </div>

    <h2>Visibility</h2>
    <div class="stats-grid">
        <div class="stat-card"><div class="stat-value">{{.Visibility.Settings}}</div><div class="stat-label">Settings</div></div>
        <div class="stat-card"><div class="stat-value">{{.Visibility.Scheduled}}</div><div class="stat-label">Scheduled</div></div>
        <div class="stat-card"><div class="stat-value">{{.VisibilityTypes.Total}}</div><div class="stat-label">Visibility Types</div></div>
        <div class="stat-card"><div class="stat-value">{{.VisibilityTypes.Active}}</div><div class="stat-label">Active Types</div></div>
    </div>

    <h2>Business Fields</h2>
    <div class="stats-grid">
        <div class="stat-card"><div class="stat-value">{{.BusinessFields.Total}}</div><div class="stat-label">Templates</div></div>
        <div class="stat-card"><div class="stat-value">{{.BusinessFields.Active}}</div><div class="stat-label">Active</div></div>
        <div class="stat-card"><div class="stat-value">{{.BusinessFields.Required}}</div><div class="stat-label">Required</div></div>
        <div class="stat-card"><div class="stat-value">{{.Instances.Total}}</div><div class="stat-label">Instances</div></div>
    </div>
    <ul>
        {{range .FieldGroups}}<li>{{.Category.Label}} <span class="muted">({{len .Fields}})</span></li>{{else}}<li class="muted">No business fields</li>{{end}}
    </ul>

    <h2>Catalog</h2>
    <div class="stats-grid">
        <div class="stat-card"><div class="stat-value">{{.Pricing.Total}}</div><div class="stat-label">Pricing Models</div></div>
        <div class="stat-card"><div class="stat-value">{{.Social.Total}}</div><div class="stat-label">Social Handles</div></div>
        <div class="stat-card"><div class="stat-value">{{.Social.Followers}}</div><div class="stat-label">Total Followers</div></div>
        <div class="stat-card"><div class="stat-value">{{.Display.Total}}</div><div class="stat-label">Display Types</div></div>
    </div>
</body>
</html>
`))
