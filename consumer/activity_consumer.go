package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"wellness-admin/models"
	"wellness-admin/utils"
)

type Config struct {
	Broker  string
	Topic   string
	GroupID string
	Index   string
}

// ActivityConsumer indexes admin activity events into Elasticsearch so the
// reports page can list them.
type ActivityConsumer struct {
	es       utils.ElasticsearchClient
	index    string
	reader   *kafka.Reader
	logger   *log.Logger
	shutdown chan struct{}
	done     chan struct{}
}

func NewActivityConsumer(cfg Config, es utils.ElasticsearchClient, logger *log.Logger) *ActivityConsumer {
	return &ActivityConsumer{
		es:     es,
		index:  cfg.Index,
		logger: logger,
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: []string{cfg.Broker},
			Topic:   cfg.Topic,
			GroupID: cfg.GroupID,
			MaxWait: 10 * time.Second,
		}),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (c *ActivityConsumer) Start(ctx context.Context) {
	c.logger.Println("Starting activity consumer...")

	go func() {
		defer close(c.done)
		for {
			select {
			case <-c.shutdown:
				return
			case <-ctx.Done():
				return
			default:
				c.processMessages(ctx)
			}
		}
	}()
}

// Stop closes the reader and waits for the read loop to exit.
func (c *ActivityConsumer) Stop() {
	close(c.shutdown)
	if err := c.reader.Close(); err != nil {
		c.logger.Printf("Error closing Kafka reader: %v", err)
	}
	<-c.done
}

func (c *ActivityConsumer) processMessages(ctx context.Context) {
	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
			return
		}
		c.logger.Printf("Kafka read error: %v (will retry)", err)
		select {
		case <-time.After(5 * time.Second):
		case <-c.shutdown:
		}
		return
	}

	if err := c.handle(ctx, msg); err != nil {
		c.logger.Printf("Activity event at %d/%d: %v", msg.Partition, msg.Offset, err)
	}
}

// handle indexes one message. The partition and offset form the document id
// so a redelivered message overwrites its earlier copy.
func (c *ActivityConsumer) handle(ctx context.Context, msg kafka.Message) error {
	var event models.ActivityEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if event.Event == "" {
		return errors.New("event without type")
	}
	if event.At.IsZero() {
		event.At = msg.Time
	}

	id := fmt.Sprintf("%d-%d", msg.Partition, msg.Offset)
	if err := c.es.IndexDocument(ctx, c.index, id, event); err != nil {
		return fmt.Errorf("index: %w", err)
	}

	c.logger.Printf("Indexed %s event from %s", event.Event, event.Actor)
	return nil
}
