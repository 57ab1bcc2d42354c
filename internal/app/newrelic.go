package app

import (
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sirupsen/logrus"

	"greencart/internal/config"
)

// NewNewRelic starts the New Relic agent. It returns nil when the agent is
// disabled or fails to start; callers treat nil as "no instrumentation".
func NewNewRelic(cfg config.NewRelicConfig, logger *logrus.Logger) *newrelic.Application {
	if !cfg.Enabled || cfg.LicenseKey == "" {
		return nil
	}

	nrApp, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
		newrelic.ConfigAppLogForwardingEnabled(true),
	)
	if err != nil {
		logger.WithError(err).Warn("failed to initialize New Relic")
		return nil
	}

	logger.WithField("app", cfg.AppName).Info("New Relic enabled")
	return nrApp
}
