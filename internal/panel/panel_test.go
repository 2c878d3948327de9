package panel

import (
	"context"
	"net/http"
	"testing"

	"github.com/aethra/taxonomy/internal/client"
	"github.com/aethra/taxonomy/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitCreateRefetchesOnceAndClosesModal(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	p := NewVisibilityTypes(b.api, discard())
	require.NoError(t, p.Load(ctx))

	form := p.OpenCreate()
	assert.True(t, p.ModalOpen())
	assert.True(t, form.Active)
	form.Name = "Seasonal"

	b.reset()
	require.NoError(t, p.Submit(ctx, form))

	assert.Equal(t, 1, b.count("POST /api/visibility-types"))
	assert.Equal(t, 1, b.count("GET /api/visibility-types"))
	assert.Equal(t, 2, b.total())
	assert.False(t, p.ModalOpen())
	require.Len(t, p.Items(), 1)
	assert.Equal(t, "Seasonal", p.Items()[0].Name)
}

func TestSubmitEditSendsPut(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	require.NoError(t, b.store.DisplayTypes.Create(ctx, &models.DisplayType{Name: "Grid", Columns: 3, Active: true}))

	p := NewDisplay(b.api, discard())
	require.NoError(t, p.Load(ctx))
	id := p.Items()[0].ID

	form, err := p.OpenEdit(id)
	require.NoError(t, err)
	assert.Equal(t, id, p.EditingID())
	form.Columns = 4

	b.reset()
	require.NoError(t, p.Submit(ctx, form))
	assert.Equal(t, 1, b.count("PUT /api/display-types/"+id))
	assert.Equal(t, 1, b.count("GET /api/display-types"))
	assert.Equal(t, 4, p.Items()[0].Columns)
	assert.Empty(t, p.EditingID())
}

func TestSubmitFailureKeepsModalOpen(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	p := NewVisibilityTypes(b.api, discard())

	p.OpenCreate()
	b.fail("POST /api/visibility-types", http.StatusInternalServerError)
	err := p.Submit(ctx, models.VisibilityType{Name: "x"})

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "boom", apiErr.Detail)
	assert.True(t, p.ModalOpen())
	assert.Equal(t, 0, b.count("GET"))
}

func TestOpenEditUnknown(t *testing.T) {
	b := newBackend(t)
	p := NewVisibilityTypes(b.api, discard())
	_, err := p.OpenEdit("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, p.ModalOpen())
}

func TestDeleteAsksConfirmation(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	require.NoError(t, b.store.PricingModels.Create(ctx, &models.PricingModel{Name: "Basic", Price: 1}))

	p := NewPricing(b.api, discard())
	require.NoError(t, p.Load(ctx))
	id := p.Items()[0].ID

	b.reset()
	sent, err := p.Delete(ctx, id, no)
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Equal(t, 0, b.total())

	sent, err = p.Delete(ctx, id, yes)
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, 1, b.count("DELETE /api/pricing-models/"+id))
	assert.Equal(t, 1, b.count("GET /api/pricing-models"))
	assert.Empty(t, p.Items())
}

func TestLoadFailureUsesFallback(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()

	b.fail("GET /api/pricing-models", http.StatusInternalServerError)
	p := NewPricing(b.api, discard())
	err := p.Load(ctx)
	assert.Error(t, err)
	assert.True(t, p.UsingFallback())
	assert.Len(t, p.Items(), len(models.SamplePricingModels()))
	assert.False(t, p.Loading())

	b.fail("GET /api/pricing-models", 0)
	require.NoError(t, p.Load(ctx))
	assert.False(t, p.UsingFallback())
	assert.Empty(t, p.Items())
}

func TestLoadFailureWithoutFallbackKeepsItems(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	require.NoError(t, b.store.VisibilityTypes.Create(ctx, &models.VisibilityType{Name: "A"}))

	p := NewVisibilityTypes(b.api, discard())
	require.NoError(t, p.Load(ctx))

	b.fail("GET /api/visibility-types", http.StatusBadGateway)
	assert.Error(t, p.Load(ctx))
	assert.False(t, p.UsingFallback())
	assert.Len(t, p.Items(), 1)
}

func TestParseView(t *testing.T) {
	v, ok := ParseView("instances")
	assert.True(t, ok)
	assert.Equal(t, ViewInstances, v)

	v, ok = ParseView("bogus")
	assert.False(t, ok)
	assert.Equal(t, ViewOverview, v)
}
