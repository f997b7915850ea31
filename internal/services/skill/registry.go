package skill

import (
	"strings"
	"sync"
)

// HandlerRegistry manages skill handlers keyed by handler id
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewHandlerRegistry creates a new handler registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[string]Handler),
	}
}

// Register binds a handler to an id, replacing any previous binding
func (r *HandlerRegistry) Register(id string, h Handler) {
	id = strings.TrimSpace(id)
	if id == "" || h == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[id] = h
}

// Unregister removes a binding. Unknown ids are a no-op.
func (r *HandlerRegistry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, strings.TrimSpace(id))
}

// Get retrieves a handler by id, nil for blank or unknown ids
func (r *HandlerRegistry) Get(id string) Handler {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[id]
}

// List returns all registered handler ids
func (r *HandlerRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.handlers))
	for id := range r.handlers {
		ids = append(ids, id)
	}
	return ids
}
