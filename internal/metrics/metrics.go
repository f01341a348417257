package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ordersPlaced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fogon",
			Name:      "orders_placed_total",
			Help:      "Count of storefront orders placed, by outcome.",
		},
		[]string{"outcome"},
	)

	orderStatusChanged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fogon",
			Name:      "order_status_changed_total",
			Help:      "Count of order status transitions.",
		},
		[]string{"status"},
	)

	statusEvaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fogon",
			Name:      "status_evaluations_total",
			Help:      "Count of order-acceptance status evaluations, by resulting message.",
		},
		[]string{"result"},
	)

	websocketClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fogon",
			Name:      "websocket_clients",
			Help:      "Currently connected websocket clients.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(ordersPlaced, orderStatusChanged, statusEvaluations, websocketClients)
	})
}

func OrderPlaced(outcome string) {
	ordersPlaced.WithLabelValues(outcome).Inc()
}

func OrderStatusChanged(status string) {
	orderStatusChanged.WithLabelValues(status).Inc()
}

func StatusEvaluated(result string) {
	statusEvaluations.WithLabelValues(result).Inc()
}

func WebsocketClientConnected() {
	websocketClients.Inc()
}

func WebsocketClientDisconnected() {
	websocketClients.Dec()
}
