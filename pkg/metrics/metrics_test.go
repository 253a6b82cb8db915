package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_DomainCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("test", reg)

	m.IncSlotConflict("optimistic", "active")
	m.IncSlotConflict("optimistic", "active")
	m.IncStateTransition("pending", "active")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.slotConflicts.WithLabelValues("optimistic", "active")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stateTransitions.WithLabelValues("pending", "active")))
}

func TestMetrics_HTTPAndDB(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("test", reg)

	m.ObserveHTTPRequest("GET", "/api/v1/slots", 200, 15*time.Millisecond)
	m.ObserveDBQuery("select", "ok", 2*time.Millisecond)
	m.SetDBConnections(5, 2, 3)

	count, err := testutil.GatherAndCount(reg, "smc_http_requests_total", "smc_db_query_duration_seconds", "smc_db_connections")
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncSlotConflict("authoritative", "pending")
		m.IncStateTransition("active", "atendido")
		m.IncAppointmentRequest("patient", "created")
		m.IncSlotLockContention()
		m.ObserveHTTPRequest("POST", "/", 500, time.Second)
		m.ObserveDBQuery("insert", "error", time.Millisecond)
		m.SetDBConnections(1, 1, 0)
	})
}
