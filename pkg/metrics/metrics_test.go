package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/reactree"
	"github.com/vango-dev/reactree/internal/logging"
	"github.com/vango-dev/reactree/pkg/vdom"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	require.NotNil(t, m.Counter)
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	require.NotNil(t, m.Gauge)
	return m.GetGauge().GetValue()
}

func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	require.True(t, ok, "observer %T does not implement prometheus.Metric", o)
	var m dto.Metric
	require.NoError(t, metric.Write(&m))
	require.NotNil(t, m.Histogram)
	return m.GetHistogram().GetSampleCount()
}

func TestHooksCountCascade(t *testing.T) {
	c := New(WithRegistry(prometheus.NewRegistry()))

	app, err := reactree.New(reactree.Options{
		Data: map[string]any{"count": 0},
		El:   "app",
		Render: func(a *reactree.App) *vdom.VNode {
			return vdom.CreateElement("span", nil, fmt.Sprint(a.Get("count")))
		},
		Logger:        logging.NewNop(),
		ReactiveHooks: c.ReactiveHooks(),
		RenderHooks:   c.RenderHooks(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, counterValue(t, c.realized.WithLabelValues("Element")))
	assert.Equal(t, 1.0, counterValue(t, c.realized.WithLabelValues("Text")))
	assert.Equal(t, 1.0, counterValue(t, c.replaced))

	require.NoError(t, app.Set("count", 1))

	assert.Equal(t, 1.0, counterValue(t, c.notifications))
	assert.Equal(t, uint64(1), histogramCount(t, c.subscribers))
	assert.Equal(t, 1.0, counterValue(t, c.recomputes.WithLabelValues("true")))
	assert.Equal(t, 2.0, counterValue(t, c.patched))
}

func TestRecordFunctions(t *testing.T) {
	c := New(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))

	c.RecordDispatch(10*time.Millisecond, nil)
	c.RecordDispatch(time.Millisecond, errors.New("boom"))
	c.ClientConnected()
	c.ClientConnected()
	c.ClientDisconnected()
	c.RecordSnapshot("dir", nil)
	c.RecordSnapshot("s3", errors.New("denied"))

	assert.Equal(t, 1.0, counterValue(t, c.dispatches.WithLabelValues("success")))
	assert.Equal(t, 1.0, counterValue(t, c.dispatches.WithLabelValues("error")))
	assert.Equal(t, uint64(2), histogramCount(t, c.dispatchDuration))
	assert.Equal(t, 1.0, gaugeValue(t, c.clients))
	assert.Equal(t, 1.0, counterValue(t, c.snapshots.WithLabelValues("dir", "success")))
	assert.Equal(t, 1.0, counterValue(t, c.snapshots.WithLabelValues("s3", "error")))
}

func TestNilCollector(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.RecordDispatch(time.Second, nil)
		c.ClientConnected()
		c.ClientDisconnected()
		c.RecordSnapshot("dir", nil)
	})
	assert.Nil(t, c.ReactiveHooks().OnNotify)
	assert.Nil(t, c.RenderHooks().OnPatch)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerServesRegistry(t *testing.T) {
	c := New(WithRegistry(prometheus.NewRegistry()), WithConstLabels(prometheus.Labels{"app": "demo"}))
	c.RecordSnapshot("dir", nil)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `reactree_snapshots_total{app="demo",sink="dir",status="success"} 1`)
}
