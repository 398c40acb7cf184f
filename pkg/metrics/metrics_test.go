package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Observe("people.get", nil, time.Millisecond)
	m.Observe("people.get", nil, time.Millisecond)
	m.Observe("people.get", errors.New("boom"), time.Millisecond)
	m.ObserveResolved(4)

	require.Equal(t, float64(2), testutil.ToFloat64(m.Operations.WithLabelValues("people.get", OutcomeOK)))
	require.Equal(t, float64(1), testutil.ToFloat64(m.Operations.WithLabelValues("people.get", OutcomeError)))
	require.Equal(t, 1, testutil.CollectAndCount(m.ResolvedPeople))
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.Observe("people.get", nil, time.Millisecond)
	m.ObserveResolved(1)
}

func TestMetricsSeparateRegistries(t *testing.T) {
	require.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
