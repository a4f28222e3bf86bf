package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveBatch(t *testing.T) {
	m := newBatchMetrics(prometheus.NewRegistry())

	m.ObserveBatch("success", 3, 1, 0, 12000)
	m.ObserveBatch("partial_failure", 1, 0, 2, 500)

	if got := testutil.ToFloat64(m.batchesTotal.WithLabelValues("success")); got != 1 {
		t.Fatalf("expected 1 success batch, got %v", got)
	}
	if got := testutil.ToFloat64(m.batchesTotal.WithLabelValues("partial_failure")); got != 1 {
		t.Fatalf("expected 1 partial_failure batch, got %v", got)
	}
	if got := testutil.ToFloat64(m.invoicesTotal.WithLabelValues("applied")); got != 4 {
		t.Fatalf("expected 4 applied invoices, got %v", got)
	}
	if got := testutil.ToFloat64(m.invoicesTotal.WithLabelValues("failed")); got != 2 {
		t.Fatalf("expected 2 failed invoices, got %v", got)
	}
	if got := testutil.ToFloat64(m.amountApplied); got != 12500 {
		t.Fatalf("expected amount 12500, got %v", got)
	}
}

func TestObserveBatchIgnoresNonPositiveAmount(t *testing.T) {
	m := newBatchMetrics(prometheus.NewRegistry())

	m.ObserveBatch("validation_failed", 0, 0, 0, 0)
	if got := testutil.ToFloat64(m.amountApplied); got != 0 {
		t.Fatalf("expected amount 0, got %v", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *BatchMetrics
	m.ObserveBatch("success", 1, 0, 0, 100)
}

func TestBatchSingleton(t *testing.T) {
	ResetBatchMetricsForTest()
	first := Batch()
	second := Batch()
	if first != second {
		t.Fatalf("expected one shared instance")
	}
}
