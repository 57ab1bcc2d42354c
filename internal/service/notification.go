package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"greencart/internal/domain"
	"greencart/internal/redis"
)

// notifyTimeout bounds how long a publish may delay the request that triggered it.
const notifyTimeout = 2 * time.Second

// NotificationService announces completed simulations to live subscribers.
type NotificationService struct {
	publisher redis.EventPublisherInterface
	logger    *logrus.Logger
}

// NewNotificationService creates a new NotificationService. A nil publisher
// disables notifications.
func NewNotificationService(publisher redis.EventPublisherInterface, logger *logrus.Logger) *NotificationService {
	return &NotificationService{publisher: publisher, logger: logger}
}

// NotifySimulationCompleted publishes a simulation.completed event.
// Failures are logged and never returned.
func (s *NotificationService) NotifySimulationCompleted(ctx context.Context, sim *domain.Simulation) {
	if s == nil || s.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	evt := redis.SimulationEvent{
		Type:         redis.EventSimulationCompleted,
		SimulationID: sim.ID,
		Inputs:       sim.Inputs,
		KPIs:         sim.Results,
		CreatedAt:    sim.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.WithError(err).WithField("simulation_id", sim.ID).Warn("failed to publish simulation event")
	}
}
