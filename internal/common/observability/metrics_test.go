package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRecordJob(t *testing.T) {
	reader := metric.NewManualReader()
	obs := newWithReader("test", reader)
	t.Cleanup(func() { _ = obs.Shutdown(context.Background()) })

	obs.RecordJob(context.Background(), "resolve-style", StatusCompleted, 120*time.Millisecond)
	obs.RecordJob(context.Background(), "resolve-style", StatusDegraded, 80*time.Millisecond)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	names := map[string]bool{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		names[m.Name] = true
		if m.Name == "jobs.processed" {
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			assert.Len(t, sum.DataPoints, 2)
		}
	}
	assert.True(t, names["jobs.processed"])
	assert.True(t, names["jobs.duration"])
}

func TestNilObservabilityIsInert(t *testing.T) {
	var obs *Observability
	obs.RecordJob(context.Background(), "x", StatusFailed, time.Second)
	assert.NoError(t, obs.Shutdown(context.Background()))
}
