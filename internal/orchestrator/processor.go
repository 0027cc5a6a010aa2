package orchestrator

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/davidrendon/identia-backend/internal/events"
)

type Processor struct {
	registry *Registry
	log      *zap.Logger
}

func NewProcessor(registry *Registry, log *zap.Logger) *Processor {
	return &Processor{registry: registry, log: log}
}

// Process decodes one message and dispatches it. Unknown event types
// are logged and skipped, not failed, so a newer producer does not wedge
// the consumer group.
func (p *Processor) Process(ctx context.Context, payload []byte) error {
	var evt events.Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		p.log.Error("malformed event payload", zap.Error(err))
		return err
	}

	handler, ok := p.registry.Get(evt.Type)
	if !ok {
		p.log.Warn("no handler for event type", zap.String("type", evt.Type))
		return nil
	}

	if err := handler.Handle(ctx, evt); err != nil {
		p.log.Error("event handling failed",
			zap.String("type", evt.Type),
			zap.String("email", evt.Email),
			zap.Error(err))
		return err
	}

	p.log.Info("event handled",
		zap.String("type", evt.Type),
		zap.String("email", evt.Email))
	return nil
}
