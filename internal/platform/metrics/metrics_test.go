package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordTransition("approve_pet", "ok")
	c.RecordTransition("approve_pet", "ok")
	c.RecordTransition("approve_pet", "forbidden")
	c.RecordNotification("adoption", "delivered")
	c.RecordHTTP(http.MethodGet, http.StatusOK)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.transitions.WithLabelValues("approve_pet", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.transitions.WithLabelValues("approve_pet", "forbidden")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.notifications.WithLabelValues("adoption", "delivered")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "200")))
}

func TestCollector_UnknownMethodsShareOneLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTP("FOO", http.StatusMethodNotAllowed)
	c.RecordHTTP("BAR", http.StatusMethodNotAllowed)
	c.RecordHTTP("get", http.StatusMethodNotAllowed)
	c.RecordHTTP(http.MethodPatch, http.StatusOK)

	assert.Equal(t, 3.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("OTHER", "405")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("PATCH", "200")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.httpRequests))
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.RecordTransition("x", "ok")
		c.RecordNotification("system", "skipped")
		c.RecordHTTP("GET", 200)
	})
}

func TestHandler_ServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordTransition("create_review", "ok")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "petrescue_transitions_total")
}
