package pricebook

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are registered once at package init. They are labeled per Book
// (by its label, typically a symbol or its uuid) so a process hosting a
// Registry of many books still gets one set of series per instrument
// rather than a single process-wide aggregate.
var (
	sizeGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pricebook",
		Name:      "size",
		Help:      "Number of occupied (side, key) cells across all tiers.",
	}, []string{"book"})

	constructionsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pricebook",
		Name:      "constructions_total",
		Help:      "Number of Book instances constructed.",
	}, []string{"book"})

	rehashCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pricebook",
		Name:      "rehashes_total",
		Help:      "Number of completed Rehash calls.",
	}, []string{"book"})

	rehashDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pricebook",
		Name:      "rehash_duration_seconds",
		Help:      "Wall-clock duration of a Rehash call.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"book"})

	massiveMidMoveCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pricebook",
		Name:      "massive_mid_move_total",
		Help:      "Number of fatal massive-mid-move aborts.",
	}, []string{"book"})

	overflowListLength = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pricebook",
		Name:      "overflow_list_length",
		Help:      "Observed overflow-list length at the moment of a sample.",
		Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
	}, []string{"book"})

	// Gauges, not counters: RecordPoolStats reports each pool's running
	// totals as of the call, so a Set reflects the latest snapshot
	// without double-counting across repeated calls.
	poolGets = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pricebook",
		Name:      "pool_gets",
		Help:      "Cumulative number of pool Get calls, as of the last report.",
	}, []string{"book", "pool"})

	poolMisses = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pricebook",
		Name:      "pool_misses",
		Help:      "Cumulative number of pool Get calls that allocated instead of reusing, as of the last report.",
	}, []string{"book", "pool"})
)

func init() {
	prometheus.MustRegister(
		sizeGauge,
		constructionsCounter,
		rehashCounter,
		rehashDuration,
		massiveMidMoveCounter,
		overflowListLength,
		poolGets,
		poolMisses,
	)
}

func recordConstruction(label string) {
	constructionsCounter.WithLabelValues(label).Inc()
}

func recordSize(label string, size int) {
	sizeGauge.WithLabelValues(label).Set(float64(size))
}

func recordRehash(label string, d time.Duration) {
	rehashCounter.WithLabelValues(label).Inc()
	rehashDuration.WithLabelValues(label).Observe(d.Seconds())
}

func recordMassiveMidMove(label string) {
	massiveMidMoveCounter.WithLabelValues(label).Inc()
}

// RecordPoolStats publishes this Book's overflow-node and rehash-array
// pool hit/miss counters to the metrics surface. It is not called on any
// hot path; a caller wires it into a periodic reporter the way the
// teacher periodically snapshots OrderBookPoolMetrics.
func (b *Book[V]) RecordPoolStats() {
	gets, _, _, misses := b.overflowPool.stats()
	poolGets.WithLabelValues(b.label, "overflow_node").Set(float64(gets))
	poolMisses.WithLabelValues(b.label, "overflow_node").Set(float64(misses))

	gets, _, _, misses = b.bucketPool.stats()
	poolGets.WithLabelValues(b.label, "bucket_array").Set(float64(gets))
	poolMisses.WithLabelValues(b.label, "bucket_array").Set(float64(misses))
}

// OverflowListLengths samples the current overflow-list length at every
// primary bucket and records each into the histogram. Intended for
// periodic reporting, not the hot path.
func (b *Book[V]) OverflowListLengths() {
	for i := range b.buckets {
		length := 0
		for n := b.buckets[i].overflow; n != nil; n = n.next {
			length++
		}
		overflowListLength.WithLabelValues(b.label).Observe(float64(length))
	}
}
