// Package monitor periodically polls the upstream connector health summary
// and exports it as prometheus gauges.
package monitor

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/soc-toolbox/esmbridge/internal/metrics"
	"github.com/soc-toolbox/esmbridge/internal/store"
)

type Monitor struct {
	repository store.Repository
	interval   time.Duration
	logger     *logrus.Logger
}

func New(repository store.Repository, interval time.Duration, logger *logrus.Logger) *Monitor {
	return &Monitor{
		repository: repository,
		interval:   interval,
		logger:     logger,
	}
}

// Run polls until the context is canceled. The first scrape happens
// immediately so gauges are populated before the first tick.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.WithField("interval", m.interval.String()).Info("health monitor running")

	m.scrape(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("health monitor stopping")

			return nil
		case <-ticker.C:
			m.scrape(ctx)
		}
	}
}

func (m *Monitor) scrape(ctx context.Context) {
	start := time.Now()

	health, err := m.repository.ConnectorHealth(ctx)

	metrics.HealthScrapeRunTimeSummary.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.HealthScrapeErrorCount.Inc()
		m.logger.WithError(err).Warn("health scrape failed")

		return
	}

	metrics.ConnectorsLive.Set(float64(len(health.Live)))
	metrics.ConnectorsDead.Set(float64(len(health.Dead)))
	metrics.ConnectorsTotal.Set(float64(health.Total))

	m.logger.WithFields(logrus.Fields{
		"live":  len(health.Live),
		"dead":  len(health.Dead),
		"total": health.Total,
	}).Debug("health scrape complete")
}
