// Package orchestrator consumes user lifecycle events from Kafka and
// turns them into notifications through the relay service.
package orchestrator

import (
	"context"

	"github.com/davidrendon/identia-backend/internal/events"
)

// Handler reacts to one event type.
type Handler interface {
	Type() string
	Handle(ctx context.Context, evt events.Event) error
}

type Registry struct {
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

func (r *Registry) Register(h Handler) {
	r.handlers[h.Type()] = h
}

func (r *Registry) Get(eventType string) (Handler, bool) {
	h, ok := r.handlers[eventType]
	return h, ok
}
