// Package metrics exposes a goShardCache instance as a Prometheus collector.
// It is entirely optional — the cache itself never imports Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	goshardcache "github.com/Keksclan/goShardCache"
)

// Source is the read-only view of a cache the collector scrapes. Every
// instantiation of goshardcache.Cache satisfies it.
type Source interface {
	Stats() goshardcache.Stats
	Len() int
	Capacity() int
}

// Collector implements [prometheus.Collector] over a cache's counters. All
// metrics carry a "cache" label so several instances can share a registry.
type Collector struct {
	src Source

	hits        *prometheus.Desc
	misses      *prometheus.Desc
	evictions   *prometheus.Desc
	expirations *prometheus.Desc
	entries     *prometheus.Desc
	capacity    *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for src. The name becomes the value of
// the "cache" label on every metric.
func NewCollector(src Source, name string) *Collector {
	labels := prometheus.Labels{"cache": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName("goshardcache", "", metric),
			help, nil, labels,
		)
	}
	return &Collector{
		src:         src,
		hits:        desc("hits_total", "Total number of cache hits."),
		misses:      desc("misses_total", "Total number of cache misses."),
		evictions:   desc("evictions_total", "Total number of entries evicted by capacity pressure."),
		expirations: desc("expirations_total", "Total number of entries reaped after TTL expiry."),
		entries:     desc("entries", "Current number of live entries."),
		capacity:    desc("capacity", "Configured maximum number of entries."),
	}
}

// Describe implements [prometheus.Collector].
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
	ch <- c.expirations
	ch <- c.entries
	ch <- c.capacity
}

// Collect implements [prometheus.Collector].
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(st.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(st.Misses))
	ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(st.Evictions))
	ch <- prometheus.MustNewConstMetric(c.expirations, prometheus.CounterValue, float64(st.Expirations))
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(c.src.Len()))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(c.src.Capacity()))
}
