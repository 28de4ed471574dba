// Package template provides task template management for Conduit.
// Templates define reusable prompt skeletons with declared variables that
// render into concrete AI tasks.
package template

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/conduitworks/conduit/internal/domain"
	conduiterrors "github.com/conduitworks/conduit/internal/errors"
)

// Registry provides thread-safe access to task templates.
// Templates are stored by id and can be retrieved or listed.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*domain.TaskTemplate
}

// NewRegistry creates a new empty template registry.
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]*domain.TaskTemplate),
	}
}

// Get retrieves a template by id.
// Returns a clone of the template to prevent mutation of registry state.
// Returns ErrTemplateNotFound if the template doesn't exist.
func (r *Registry) Get(id string) (*domain.TaskTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.templates[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", conduiterrors.ErrTemplateNotFound, id)
	}
	return t.Clone(), nil
}

// List returns all registered templates sorted by id.
// The returned templates are clones, safe to modify without affecting the registry.
func (r *Registry) List() []*domain.TaskTemplate {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.TaskTemplate, 0, len(r.templates))
	for _, t := range r.templates {
		result = append(result, t.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Register adds a template to the registry.
// Returns error if template is nil, has empty id, or already exists.
func (r *Registry) Register(t *domain.TaskTemplate) error {
	if t == nil {
		return conduiterrors.ErrTemplateNil
	}
	if strings.TrimSpace(t.ID) == "" {
		return conduiterrors.ErrTemplateIDEmpty
	}
	if !t.Kind.Valid() {
		return fmt.Errorf("template %s: kind %q: %w", t.ID, t.Kind, conduiterrors.ErrUnknownTaskKind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templates[t.ID]; exists {
		return fmt.Errorf("%w: %s", conduiterrors.ErrTemplateDuplicate, t.ID)
	}
	r.templates[t.ID] = t.Clone()
	return nil
}

// Has reports whether a template is registered under id.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.templates[id]
	return ok
}

// IDs returns the registered template ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
