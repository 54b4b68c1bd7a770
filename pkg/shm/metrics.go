package shm

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the prometheus collectors a Namespace reports to.
type Metrics struct {
	operations *prometheus.CounterVec
	owned      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg when reg
// is not nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shmopen",
			Name:      "operations_total",
			Help:      "Shared memory namespace operations by op and result.",
		}, []string{"op", "result"}),
		owned: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "shmopen",
			Name:      "owned_names",
			Help:      "Names created by this process and not yet unlinked.",
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.operations, m.owned} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) observe(op, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, result).Inc()
}

func (m *Metrics) setOwned(n int) {
	if m == nil {
		return
	}
	m.owned.Set(float64(n))
}
