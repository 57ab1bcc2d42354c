package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"greencart/internal/domain"
)

// SimulationChannel is the Pub/Sub channel completed runs are announced on.
const SimulationChannel = "events:simulations"

// EventSimulationCompleted is the type of the event published after a run is stored.
const EventSimulationCompleted = "simulation.completed"

// SimulationEvent announces a completed simulation run.
type SimulationEvent struct {
	Type         string                  `json:"type"`
	SimulationID string                  `json:"simulation_id"`
	Inputs       domain.SimulationInputs `json:"inputs"`
	KPIs         domain.KPIResult        `json:"kpis"`
	CreatedAt    time.Time               `json:"created_at"`
}

// EventBus publishes and subscribes to simulation events over Redis Pub/Sub.
type EventBus struct {
	client *redis.Client
}

// NewEventBus creates a new EventBus.
func NewEventBus(client *redis.Client) *EventBus {
	return &EventBus{client: client}
}

// Publish sends an event to all current subscribers.
func (b *EventBus) Publish(ctx context.Context, evt SimulationEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, SimulationChannel, data).Err()
}

// Subscribe opens a subscription to simulation events.
// The caller must Close the subscription.
func (b *EventBus) Subscribe(ctx context.Context) (*Subscription, error) {
	ps := b.client.Subscribe(ctx, SimulationChannel)
	// Wait for the subscription confirmation so no event published after
	// Subscribe returns is missed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	events := make(chan SimulationEvent, 16)
	go func() {
		defer close(events)
		for msg := range ps.Channel() {
			var evt SimulationEvent
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				continue
			}
			// Drop events for consumers that fall behind.
			select {
			case events <- evt:
			default:
			}
		}
	}()

	return &Subscription{ps: ps, events: events}, nil
}

// Subscription is an open feed of simulation events.
type Subscription struct {
	ps     *redis.PubSub
	events chan SimulationEvent
}

// Events returns the event channel. It is closed after Close.
func (s *Subscription) Events() <-chan SimulationEvent {
	return s.events
}

// Close ends the subscription.
func (s *Subscription) Close() error {
	return s.ps.Close()
}
