package status

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exposes a Registry to prometheus
// The metric set grows at runtime, so Describe sends nothing and the collector is unchecked
type Collector struct {
	reg       *Registry
	namespace string
}

// NewCollector wraps reg; metric names are namespace_<key with dots as underscores>
func NewCollector(reg *Registry, namespace string) *Collector {
	return &Collector{reg: reg, namespace: namespace}
}

func (c *Collector) Describe(chan<- *prometheus.Desc) {}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, s := range c.reg.Snapshot() {
		name := c.metricName(s.Key)
		if s.IsText {
			desc := prometheus.NewDesc(name+"_info", "status string "+s.Key, []string{"value"}, nil)
			ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, 1, s.Text)
			continue
		}
		desc := prometheus.NewDesc(name, "status value "+s.Key, nil, nil)
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, s.Value)
	}
}

func (c *Collector) metricName(key string) string {
	key = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, key)
	if c.namespace == "" {
		return key
	}
	return c.namespace + "_" + key
}

// Handler serves the registry in the prometheus exposition format
func Handler(reg *Registry, namespace string) http.Handler {
	pr := prometheus.NewRegistry()
	pr.MustRegister(NewCollector(reg, namespace))
	return promhttp.HandlerFor(pr, promhttp.HandlerOpts{})
}
