package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPanelRendersCounter(t *testing.T) {
	before := testutil.ToFloat64(PanelRenders().WithLabelValues("conflicts", "ok"))
	PanelRenders().WithLabelValues("conflicts", "ok").Inc()
	require.Equal(t, before+1, testutil.ToFloat64(PanelRenders().WithLabelValues("conflicts", "ok")))
}

func TestRegisterMetricsIsIdempotent(t *testing.T) {
	require.NotPanics(t, func() {
		RegisterMetrics()
		RegisterMetrics()
	})
	require.NotNil(t, ClusterWarnings())
	require.NotNil(t, WebsocketSessions())
}
