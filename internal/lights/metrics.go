package lights

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	devicesControlled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumen_devices_controlled_total",
		Help: "The total number of devices controlled",
	}, []string{"device_type", "kind"})
)
