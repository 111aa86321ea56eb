package events

import (
	"context"
	"encoding/json"

	"github.com/gartstein/registrar/internal/importer/models"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Consumer delivers import jobs to the registered handler. Offsets are
// committed only after the handler returns, so a worker that dies
// mid-job leaves the delivery uncommitted and the broker re-delivers
// it to another consumer in the group — the stalled-job path. A job
// the handler finished, successfully or not, is terminal and is never
// re-delivered.
type Consumer struct {
	reader  *kafka.Reader
	logger  *zap.Logger
	handler func(context.Context, models.ImportJob) error
}

func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
			Dialer:  kafka.DefaultDialer,
		}),
		logger: logger.Named("job_consumer"),
	}
}

func (c *Consumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("Failed to fetch job", zap.Error(err))
				continue
			}

			var job models.ImportJob
			if err := json.Unmarshal(msg.Value, &job); err != nil {
				c.logger.Error("Failed to parse job payload",
					zap.Error(err),
					zap.ByteString("value", msg.Value),
				)
				// Malformed payloads can never succeed; drop them.
				c.commit(ctx, msg)
				continue
			}

			if err := c.handler(ctx, job); err != nil {
				c.logger.Error("Import job failed",
					zap.Error(err),
					zap.String("job_id", job.ID),
				)
			}

			c.commit(ctx, msg)
		}
	}()
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("Failed to commit job offset", zap.Error(err))
	}
}

func (c *Consumer) RegisterHandler(fn func(context.Context, models.ImportJob) error) {
	c.handler = fn
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Error("Failed to close Kafka reader", zap.Error(err))
	}
}
