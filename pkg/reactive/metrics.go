package reactive

import "github.com/prometheus/client_golang/prometheus"

// Collector exports a Context's Stats as Prometheus metrics.
type Collector struct {
	ctx *Context

	created   *prometheus.Desc
	cacheHits *prometheus.Desc
	rejected  *prometheus.Desc
	live      *prometheus.Desc
	targets   *prometheus.Desc
}

// NewCollector creates a collector for c. Metric names use the context's
// namespace ("reactivity" unless configured).
func NewCollector(c *Context) *Collector {
	ns := c.namespace
	return &Collector{
		ctx: c,
		created: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "", "wrappers_created_total"),
			"Wrappers created, by mode.",
			[]string{"mode"}, nil,
		),
		cacheHits: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "", "cache_hits_total"),
			"Wrap requests answered with an existing wrapper.",
			nil, nil,
		),
		rejected: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "", "rejected_total"),
			"Wrap requests returned unchanged, by reason.",
			[]string{"reason"}, nil,
		),
		live: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "", "live_wrappers"),
			"Wrappers not yet reclaimed, by mode.",
			[]string{"mode"}, nil,
		),
		targets: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "", "dependency_targets"),
			"Targets with a dependency map slot.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (col *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- col.created
	ch <- col.cacheHits
	ch <- col.rejected
	ch <- col.live
	ch <- col.targets
}

// Collect implements prometheus.Collector.
func (col *Collector) Collect(ch chan<- prometheus.Metric) {
	s := col.ctx.Stats()
	ch <- prometheus.MustNewConstMetric(col.created, prometheus.CounterValue, float64(s.ReactiveCreated), modeReactive.String())
	ch <- prometheus.MustNewConstMetric(col.created, prometheus.CounterValue, float64(s.ReadonlyCreated), modeReadonly.String())
	ch <- prometheus.MustNewConstMetric(col.cacheHits, prometheus.CounterValue, float64(s.CacheHits))
	ch <- prometheus.MustNewConstMetric(col.rejected, prometheus.CounterValue, float64(s.Rejected), "ineligible")
	ch <- prometheus.MustNewConstMetric(col.rejected, prometheus.CounterValue, float64(s.Invalid), "invalid")
	ch <- prometheus.MustNewConstMetric(col.live, prometheus.GaugeValue, float64(s.LiveReactive), modeReactive.String())
	ch <- prometheus.MustNewConstMetric(col.live, prometheus.GaugeValue, float64(s.LiveReadonly), modeReadonly.String())
	ch <- prometheus.MustNewConstMetric(col.targets, prometheus.GaugeValue, float64(s.Targets))
}
