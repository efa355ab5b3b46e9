package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TransitionRecorder lo consume el engine de lifecycle.
type TransitionRecorder interface {
	RecordTransition(operation, outcome string)
}

// NotificationRecorder lo consume el dispatcher de notificaciones.
type NotificationRecorder interface {
	RecordNotification(kind, outcome string)
}

// Collector implementa los recorders sobre Prometheus.
// Un *Collector nil es válido y no registra nada.
type Collector struct {
	transitions   *prometheus.CounterVec
	notifications *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "petrescue_transitions_total",
			Help: "Transiciones de lifecycle por operación y resultado",
		}, []string{"operation", "outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "petrescue_notifications_total",
			Help: "Notificaciones despachadas por tipo y resultado",
		}, []string{"type", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "petrescue_http_requests_total",
			Help: "Requests HTTP por método y status",
		}, []string{"method", "status"}),
	}

	reg.MustRegister(c.transitions, c.notifications, c.httpRequests)
	return c
}

func (c *Collector) RecordTransition(operation, outcome string) {
	if c == nil {
		return
	}
	c.transitions.WithLabelValues(operation, outcome).Inc()
}

func (c *Collector) RecordNotification(kind, outcome string) {
	if c == nil {
		return
	}
	c.notifications.WithLabelValues(kind, outcome).Inc()
}

func (c *Collector) RecordHTTP(method string, status int) {
	if c == nil {
		return
	}
	c.httpRequests.WithLabelValues(methodLabel(method), strconv.Itoa(status)).Inc()
}

// methodLabel acota la cardinalidad del label: métodos fuera de la lista van a OTHER.
func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodHead, http.MethodOptions:
		return method
	default:
		return "OTHER"
	}
}

// Handler expone el gatherer para scraping en /metrics.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
