package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prerak-proof/holiday-calendar/metrics"
)

func TestWriteTextfile(t *testing.T) {
	t.Parallel()

	// --- given ---
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_queries_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Add(3)
	path := filepath.Join(t.TempDir(), "holidaycal.prom")

	// --- when ---
	err := metrics.WriteTextfile(path, reg)

	// --- then ---
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "test_queries_total 3")
}

func TestWriteTextfileNoPath(t *testing.T) {
	t.Parallel()

	assert.NoError(t, metrics.WriteTextfile("", prometheus.NewRegistry()))
}

func TestCollectors(t *testing.T) {
	t.Parallel()

	before := testutil.ToFloat64(metrics.QueriesTotal.WithLabelValues("unit_test", "trading"))
	metrics.QueriesTotal.WithLabelValues("unit_test", "trading").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.QueriesTotal.WithLabelValues("unit_test", "trading")))
}
