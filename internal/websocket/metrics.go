package websocket

import "github.com/prometheus/client_golang/prometheus"

var (
	wsConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "avatar_widget_ws_connections",
			Help: "Current number of active websocket connections.",
		},
	)
	wsSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "avatar_widget_ws_sessions",
			Help: "Current number of websocket session rooms.",
		},
	)
	wsMessagesDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "avatar_widget_ws_messages_delivered_total",
			Help: "Total websocket messages delivered to clients.",
		},
	)
)

func init() {
	prometheus.MustRegister(wsConnections, wsSessions, wsMessagesDelivered)
}

func incConnections() {
	wsConnections.Inc()
}

func decConnections() {
	wsConnections.Dec()
}

func setSessions(count int) {
	wsSessions.Set(float64(count))
}

func addDelivered(count int) {
	wsMessagesDelivered.Add(float64(count))
}
