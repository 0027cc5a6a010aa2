package orchestrator

import (
	"context"
	"errors"
	"sync"

	kafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Consumer struct {
	reader    *kafka.Reader
	processor *Processor
	log       *zap.Logger
}

func NewConsumer(cfg kafka.ReaderConfig, processor *Processor, log *zap.Logger) *Consumer {
	return &Consumer{
		reader:    kafka.NewReader(cfg),
		processor: processor,
		log:       log,
	}
}

// Start reads messages until the context is cancelled, fanning them out
// to the given number of workers. Blocks until every worker has drained.
func (c *Consumer) Start(ctx context.Context, workers int) {
	if workers < 1 {
		workers = 1
	}

	messages := make(chan kafka.Message)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for msg := range messages {
				// Processing errors are logged inside Process; the
				// offset is already committed, no redelivery happens.
				_ = c.processor.Process(ctx, msg.Value)
			}
		}()
	}

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				c.log.Error("failed to read message", zap.Error(err))
			}
			break
		}
		messages <- msg
	}

	close(messages)
	wg.Wait()
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
