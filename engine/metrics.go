package engine

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/wippyai/bridge-runtime/bridge"
)

type metrics struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bridge",
			Name:      "host_calls_total",
			Help:      "Guest calls into the bridge host function.",
		}, []string{"variant"}),
	}
	m.registry.MustRegister(m.calls)
	return m
}

func (m *metrics) observe(v bridge.Variant) {
	m.calls.WithLabelValues(v.String()).Inc()
}

func (m *metrics) write(w io.Writer) error {
	mfs, err := m.registry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
