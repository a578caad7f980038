package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Consumer reads login-success events from the auth-events topic and fans
// them out over the in-process bus.
type Consumer struct {
	bus    *Bus
	reader *kafka.Reader
}

func NewConsumer(bus *Bus, brokers ...string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    "auth-events",
		GroupID:  "shopstate-service",
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{bus, reader}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx)
	}
}

func (c *Consumer) Close() {
	err := c.reader.Close()
	if err != nil {
		fmt.Printf("error closing kafka reader: %v\n", err)
	}
}

func (c *Consumer) processMessage(ctx context.Context) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Printf("error reading message: %v\n", err)
		return
	}

	var event LoginEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		fmt.Printf("error parsing message: %v\n", err)
		return
	}

	if _, err := uuid.Parse(event.EventID); err != nil {
		fmt.Printf("invalid event_id %q: %v\n", event.EventID, err)
		return
	}

	if event.UserID == "" {
		fmt.Println("missing user_id in login event")
		return
	}

	c.bus.Publish(event)
}
