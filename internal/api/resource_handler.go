// Package api - Generic CRUD handlers for the taxonomy collections
package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/aethra/taxonomy/internal/errors"
	"github.com/aethra/taxonomy/internal/models"
	"github.com/aethra/taxonomy/internal/store"
	"github.com/gin-gonic/gin"
)

// ResourceHandler serves list/get/create/update/delete for one collection
type ResourceHandler[T any, P interface {
	*T
	models.Record
}] struct {
	repo *store.Repository[T, P]
	log  *slog.Logger
	// check runs after validation and before every write
	check func(ctx context.Context, item P) error
}

// NewResourceHandler creates a handler backed by repo
func NewResourceHandler[T any, P interface {
	*T
	models.Record
}](repo *store.Repository[T, P], log *slog.Logger) *ResourceHandler[T, P] {
	return &ResourceHandler[T, P]{repo: repo, log: log}
}

// WithCheck installs a pre-write check
func (h *ResourceHandler[T, P]) WithCheck(check func(ctx context.Context, item P) error) *ResourceHandler[T, P] {
	h.check = check
	return h
}

// Register mounts the five routes on g
func (h *ResourceHandler[T, P]) Register(g *gin.RouterGroup) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List returns every record
// GET /api/<resource>
func (h *ResourceHandler[T, P]) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get returns a single record
// GET /api/<resource>/:id
func (h *ResourceHandler[T, P]) Get(c *gin.Context) {
	item, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create inserts a record built from the request body on top of the defaults
// POST /api/<resource>
func (h *ResourceHandler[T, P]) Create(c *gin.Context) {
	record := new(T)
	item := P(record)
	item.ApplyDefaults()

	body, err := readObject(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	delete(body, "id")
	delete(body, "created_at")
	delete(body, "updated_at")
	if err := overlay(record, body); err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.write(c.Request.Context(), item, h.repo.Create); err != nil {
		respondError(c, h.log, err)
		return
	}
	h.log.Debug("record created", "resource", h.repo.Resource(), "id", item.GetID())
	c.JSON(http.StatusOK, item)
}

// Update merges the keys present in the body onto the stored record
// PUT /api/<resource>/:id
func (h *ResourceHandler[T, P]) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	body, err := readObject(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	existing, err := h.repo.Get(ctx, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	item := P(existing)

	delete(body, "id")
	delete(body, "created_at")
	delete(body, "updated_at")
	if err := overlay(existing, body); err != nil {
		respondError(c, h.log, err)
		return
	}
	item.SetID(id)

	if err := h.write(ctx, item, h.repo.Update); err != nil {
		respondError(c, h.log, err)
		return
	}

	updated, err := h.repo.Get(ctx, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a record
// DELETE /api/<resource>/:id
func (h *ResourceHandler[T, P]) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": h.repo.Resource() + " deleted successfully"})
}

func (h *ResourceHandler[T, P]) write(ctx context.Context, item P, save func(context.Context, P) error) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if h.check != nil {
		if err := h.check(ctx, item); err != nil {
			return err
		}
	}
	return save(ctx, item)
}

// readObject decodes the request body as a JSON object
func readObject(c *gin.Context) (map[string]json.RawMessage, error) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, errors.NewBadRequestError("could not read request body")
	}
	body := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, errors.NewBadRequestError("request body must be a JSON object")
	}
	return body, nil
}

// overlay replaces the top-level fields of item named in body. Nested objects
// are replaced whole, not merged.
func overlay[T any](item *T, body map[string]json.RawMessage) error {
	current, err := json.Marshal(item)
	if err != nil {
		return errors.NewInternalError(err)
	}
	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(current, &merged); err != nil {
		return errors.NewInternalError(err)
	}
	for k, v := range body {
		merged[k] = v
	}
	raw, err := json.Marshal(merged)
	if err != nil {
		return errors.NewInternalError(err)
	}
	var fresh T
	if err := json.Unmarshal(raw, &fresh); err != nil {
		return errors.NewBadRequestError("invalid request body: " + err.Error())
	}
	*item = fresh
	return nil
}
