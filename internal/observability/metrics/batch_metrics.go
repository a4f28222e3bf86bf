// Package metrics exposes prometheus instruments for payment processing.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// BatchMetrics counts batch payment outcomes.
type BatchMetrics struct {
	batchesTotal  *prometheus.CounterVec
	invoicesTotal *prometheus.CounterVec
	amountApplied prometheus.Counter
}

var (
	batchMetricsOnce sync.Once
	batchMetrics     *BatchMetrics
)

// Batch returns the process-wide batch metrics, registering them on first use.
func Batch() *BatchMetrics {
	batchMetricsOnce.Do(func() {
		batchMetrics = newBatchMetrics(prometheus.DefaultRegisterer)
	})
	return batchMetrics
}

// ResetBatchMetricsForTest clears the singleton so tests can re-register.
func ResetBatchMetricsForTest() {
	batchMetricsOnce = sync.Once{}
	batchMetrics = nil
}

func newBatchMetrics(registerer prometheus.Registerer) *BatchMetrics {
	m := &BatchMetrics{
		batchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crm",
			Subsystem: "payments",
			Name:      "batches_total",
			Help:      "Batch payment runs by outcome.",
		}, []string{"outcome"}),
		invoicesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crm",
			Subsystem: "payments",
			Name:      "batch_invoices_total",
			Help:      "Invoices touched by batch payments, by result.",
		}, []string{"result"}),
		amountApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crm",
			Subsystem: "payments",
			Name:      "batch_amount_applied_minor_units",
			Help:      "Total payment amount applied by batches, in minor currency units.",
		}),
	}

	for _, collector := range []prometheus.Collector{m.batchesTotal, m.invoicesTotal, m.amountApplied} {
		if err := registerer.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}
	return m
}

// ObserveBatch records the outcome of one batch run.
func (m *BatchMetrics) ObserveBatch(outcome string, applied, skipped, failed int, amount int64) {
	if m == nil {
		return
	}
	m.batchesTotal.WithLabelValues(outcome).Inc()
	m.invoicesTotal.WithLabelValues("applied").Add(float64(applied))
	m.invoicesTotal.WithLabelValues("skipped").Add(float64(skipped))
	m.invoicesTotal.WithLabelValues("failed").Add(float64(failed))
	if amount > 0 {
		m.amountApplied.Add(float64(amount))
	}
}
