package monitor

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soc-toolbox/esmbridge/internal/metrics"
	"github.com/soc-toolbox/esmbridge/internal/model"
)

type fakeRepository struct {
	health *model.ConnectorHealth
	err    error
	calls  atomic.Int32
}

func (f *fakeRepository) AllCustomers(context.Context, string) ([]model.Customer, error) {
	return nil, nil
}

func (f *fakeRepository) CustomerByID(context.Context, string) (*model.Customer, error) {
	return nil, nil
}

func (f *fakeRepository) AllConnectors(context.Context) ([]model.Connector, error) {
	return nil, nil
}

func (f *fakeRepository) ConnectorsForCustomer(context.Context, string) ([]model.ConnectorWithDevices, error) {
	return nil, nil
}

func (f *fakeRepository) ConnectorDevices(context.Context) (model.ConnectorDeviceMap, error) {
	return nil, nil
}

func (f *fakeRepository) LinkConnectors(context.Context, string, []string) error {
	return nil
}

func (f *fakeRepository) UnlinkConnectors(context.Context, string, []string) error {
	return nil
}

func (f *fakeRepository) ConnectorHealth(context.Context) (*model.ConnectorHealth, error) {
	f.calls.Add(1)

	return f.health, f.err
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = io.Discard

	return logger
}

func TestScrapeSetsGauges(t *testing.T) {
	repository := &fakeRepository{
		health: &model.ConnectorHealth{
			Live:  []string{"conn-1", "conn-2"},
			Dead:  []string{"conn-3"},
			Total: 3,
		},
	}

	monitor := New(repository, time.Minute, testLogger())
	monitor.scrape(context.Background())

	require.Equal(t, int32(1), repository.calls.Load())
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.ConnectorsLive))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ConnectorsDead))
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.ConnectorsTotal))
}

func TestScrapeFailureLeavesGauges(t *testing.T) {
	metrics.ConnectorsLive.Set(7)

	repository := &fakeRepository{err: errors.New("upstream down")}

	monitor := New(repository, time.Minute, testLogger())

	errsBefore := testutil.ToFloat64(metrics.HealthScrapeErrorCount)

	monitor.scrape(context.Background())

	assert.Equal(t, errsBefore+1, testutil.ToFloat64(metrics.HealthScrapeErrorCount))

	// a failed scrape keeps the last known gauge values
	assert.Equal(t, float64(7), testutil.ToFloat64(metrics.ConnectorsLive))
}

func TestRunStopsOnContextCancel(t *testing.T) {
	repository := &fakeRepository{
		health: &model.ConnectorHealth{},
	}

	monitor := New(repository, time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		done <- monitor.Run(ctx)
	}()

	// the first scrape happens before the first tick
	require.Eventually(t, func() bool {
		return repository.calls.Load() >= 1
	}, time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop on context cancel")
	}
}
