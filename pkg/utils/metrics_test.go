package utils

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndIncCounter(t *testing.T) {
	m := NewMetricsCollector(false)

	require.NoError(t, m.RegisterCounter("widgets_total", "Widgets processed", "kind"))
	// re-registration is a no-op
	require.NoError(t, m.RegisterCounter("widgets_total", "Widgets processed", "kind"))

	m.IncCounter("widgets_total", 2, prometheus.Labels{"kind": "a"})
	m.IncCounter("unregistered_total", 1, prometheus.Labels{})

	families, err := m.GetRegistry().Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "widgets_total", families[0].GetName())
	assert.Equal(t, float64(2), families[0].GetMetric()[0].GetCounter().GetValue())
}

func TestStartServerWithContextShutsDownOnCancel(t *testing.T) {
	m := NewMetricsCollector(false)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- m.StartServerWithContext(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("metrics listener did not shut down after cancel")
	}
}
