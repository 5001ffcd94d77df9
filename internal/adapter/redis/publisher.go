package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/household-backend/internal/domain"
)

// Publisher sends activity events to a Redis channel as JSON.
type Publisher struct {
	client  *goredis.Client
	channel string
}

// NewPublisher creates a Publisher for channel.
func NewPublisher(client *goredis.Client, channel string) *Publisher {
	return &Publisher{client: client, channel: channel}
}

// Message is the JSON payload published for each event.
type Message struct {
	ID          string         `json:"id"`
	Kind        string         `json:"kind"`
	ActorID     *string        `json:"actor_id,omitempty"`
	SubjectID   *string        `json:"subject_id,omitempty"`
	SubjectName *string        `json:"subject_name,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Consume publishes evt. It satisfies the dispatcher sink contract.
func (p *Publisher) Consume(ctx context.Context, evt domain.ActivityEvent) error {
	msg := Message{
		ID:          evt.ID.String(),
		Kind:        evt.Kind.String(),
		SubjectName: evt.SubjectName,
		Metadata:    evt.Metadata,
		CreatedAt:   evt.CreatedAt,
	}
	if evt.ActorID != nil {
		s := evt.ActorID.String()
		msg.ActorID = &s
	}
	if evt.SubjectID != nil {
		s := evt.SubjectID.String()
		msg.SubjectID = &s
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal activity %s: %w", evt.ID, err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish activity %s: %w", evt.ID, err)
	}
	return nil
}
