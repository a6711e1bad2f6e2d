package command

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_commands_dispatched_total",
		Help: "The total number of commands dispatched to a handler",
	}, []string{"kind"})

	decodeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_command_decode_failures_total",
		Help: "The total number of command payloads rejected at decode",
	}, []string{"reason"})
)
