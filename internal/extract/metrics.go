package extract

import "github.com/prometheus/client_golang/prometheus"

var extractions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "matchbot_payload_extractions_total",
		Help: "Payload extractions by parse path (strict, heuristic, failed)",
	},
	[]string{"path"},
)

func init() {
	prometheus.MustRegister(extractions)
}
