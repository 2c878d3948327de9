// Package panel holds the client-side state of the resource panels: the
// loaded collection, the edit modal and the derived counters. Every mutation
// goes through the REST client and is followed by exactly one re-fetch.
package panel

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/aethra/taxonomy/internal/models"
)

// Panel errors
var (
	ErrNotFound         = errors.New("record not found in panel")
	ErrNoSelection      = errors.New("please select at least one category")
	ErrTemplateRequired = errors.New("please select a field template")
	ErrNameRequired     = errors.New("name is required")
	ErrDuplicateName    = errors.New("a social handle with this name already exists")
)

// Lister fetches a whole collection
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// Backend is the part of client.Resource a panel writes through
type Backend[T any] interface {
	Lister[T]
	Create(ctx context.Context, body any) (*T, error)
	Update(ctx context.Context, id string, body any) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Confirmer asks the operator a yes/no question
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Options tune a Panel
type Options[T any] struct {
	// Fallback supplies sample data shown when the collection cannot be fetched
	Fallback func() []T
	// Validate runs before Submit sends anything. editingID is empty on create.
	Validate func(form T, editingID string, items []T) error
}

// Panel is the generic list/modal state of one collection
type Panel[T any, P interface {
	*T
	models.Record
}] struct {
	name    string
	backend Backend[T]
	log     *slog.Logger
	opts    Options[T]

	mu            sync.RWMutex
	items         []T
	loading       bool
	usingFallback bool
	modalOpen     bool
	editing       *T
}

// New creates a panel named name over backend
func New[T any, P interface {
	*T
	models.Record
}](name string, backend Backend[T], log *slog.Logger, opts Options[T]) *Panel[T, P] {
	return &Panel[T, P]{name: name, backend: backend, log: log, opts: opts, items: []T{}}
}

// Name returns the panel name
func (p *Panel[T, P]) Name() string {
	return p.name
}

// Load fetches the collection once. On failure the error is logged and
// returned; a panel with fallback data shows it instead.
func (p *Panel[T, P]) Load(ctx context.Context) error {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	items, err := p.backend.List(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		p.log.Error("failed to load collection", "panel", p.name, "error", err)
		if p.opts.Fallback != nil {
			p.items = p.opts.Fallback()
			p.usingFallback = true
		}
		return err
	}
	p.items = items
	p.usingFallback = false
	return nil
}

// Items returns a copy of the loaded collection
func (p *Panel[T, P]) Items() []T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

// Loading reports whether a fetch is in flight
func (p *Panel[T, P]) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// UsingFallback reports whether the items are sample data from a failed load
func (p *Panel[T, P]) UsingFallback() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.usingFallback
}

// Find returns the loaded record with id
func (p *Panel[T, P]) Find(id string) (T, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, it := range p.items {
		if P(&it).GetID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Count returns how many loaded records satisfy pred
func (p *Panel[T, P]) Count(pred func(T) bool) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	n := 0
	for _, it := range p.items {
		if pred(it) {
			n++
		}
	}
	return n
}

// NewForm returns an empty form carrying the create defaults
func (p *Panel[T, P]) NewForm() T {
	var form T
	P(&form).ApplyDefaults()
	return form
}

// OpenCreate opens the modal for a new record and returns the blank form
func (p *Panel[T, P]) OpenCreate() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modalOpen = true
	p.editing = nil
	return p.NewForm()
}

// OpenEdit opens the modal on the record with id and returns it as the form
func (p *Panel[T, P]) OpenEdit(id string) (T, error) {
	item, ok := p.Find(id)
	if !ok {
		return item, ErrNotFound
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	editing := item
	p.editing = &editing
	p.modalOpen = true
	return item, nil
}

// CloseModal closes the modal and forgets the edited record
func (p *Panel[T, P]) CloseModal() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modalOpen = false
	p.editing = nil
}

// ModalOpen reports whether the create/edit modal is open
func (p *Panel[T, P]) ModalOpen() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modalOpen
}

// EditingID returns the id of the record being edited, or "" in create mode
func (p *Panel[T, P]) EditingID() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.editing == nil {
		return ""
	}
	return P(p.editing).GetID()
}

// Submit sends form as a PUT when a record is being edited and as a POST
// otherwise. On success the modal closes and the collection is re-fetched once.
// On failure the modal stays open.
func (p *Panel[T, P]) Submit(ctx context.Context, form T) error {
	editingID := p.EditingID()

	if p.opts.Validate != nil {
		if err := p.opts.Validate(form, editingID, p.Items()); err != nil {
			return err
		}
	}

	var err error
	if editingID != "" {
		_, err = p.backend.Update(ctx, editingID, form)
	} else {
		_, err = p.backend.Create(ctx, form)
	}
	if err != nil {
		p.log.Error("failed to save record", "panel", p.name, "id", editingID, "error", err)
		return err
	}

	p.CloseModal()
	return p.Load(ctx)
}

// Delete removes the record with id once confirm agrees, then re-fetches.
// It reports whether a deletion was sent.
func (p *Panel[T, P]) Delete(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	if !confirm.Confirm("Are you sure you want to delete this " + p.name + " entry?") {
		return false, nil
	}
	if err := p.backend.Delete(ctx, id); err != nil {
		p.log.Error("failed to delete record", "panel", p.name, "id", id, "error", err)
		return true, err
	}
	return true, p.Load(ctx)
}

// create posts body outside the modal flow and re-fetches once
func (p *Panel[T, P]) create(ctx context.Context, body any) error {
	if _, err := p.backend.Create(ctx, body); err != nil {
		p.log.Error("failed to create record", "panel", p.name, "error", err)
		return err
	}
	return p.Load(ctx)
}

// View selects the sub-view of the richer panels
type View int

const (
	ViewOverview View = iota
	ViewManage
	ViewInstances
)

func (v View) String() string {
	switch v {
	case ViewManage:
		return "manage"
	case ViewInstances:
		return "instances"
	default:
		return "overview"
	}
}

// ParseView maps a view name to a View
func ParseView(s string) (View, bool) {
	for _, v := range []View{ViewOverview, ViewManage, ViewInstances} {
		if v.String() == s {
			return v, true
		}
	}
	return ViewOverview, false
}
