package stream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// updatesTotal counts inbound updates by variant.
	updatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solwatch_stream_updates_total",
			Help: "Total number of updates received from the stream",
		},
		[]string{"type"},
	)

	// reconnectsTotal counts reconnect attempts.
	reconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "solwatch_stream_reconnects_total",
			Help: "Total number of reconnect attempts",
		},
	)

	// pingsAnswered counts keepalive acknowledgements sent.
	pingsAnswered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "solwatch_stream_pings_answered_total",
			Help: "Total number of keepalive pings answered",
		},
	)

	// handlerErrors counts transaction handler failures.
	handlerErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "solwatch_stream_handler_errors_total",
			Help: "Total number of transaction handler errors",
		},
	)

	// connectedGauge is 1 while the receive loop is consuming the stream.
	connectedGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "solwatch_stream_connected",
			Help: "Whether the subscription stream is currently connected",
		},
	)
)
