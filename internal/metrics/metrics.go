package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the inventory counters exported on /metrics
type Metrics struct {
	StockMovements   *prometheus.CounterVec
	StockUnits       *prometheus.CounterVec
	AlertsRaised     prometheus.Counter
	AlertsResolved   prometheus.Counter
	DocumentsCreated *prometheus.CounterVec
	DocumentStatus   *prometheus.CounterVec
	ForceDeletes     *prometheus.CounterVec
	LedgerMismatches prometheus.Counter
}

// New creates the counters and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StockMovements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_stock_movements_total",
				Help: "Number of committed stock mutations",
			},
			[]string{"transaction_type", "reference_type"},
		),
		StockUnits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_stock_units_total",
				Help: "Units moved by committed stock mutations",
			},
			[]string{"direction"},
		),
		AlertsRaised: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "inventory_low_stock_alerts_raised_total",
				Help: "Number of new low-stock alerts",
			},
		),
		AlertsResolved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "inventory_low_stock_alerts_resolved_total",
				Help: "Number of resolved low-stock alerts",
			},
		),
		DocumentsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_documents_created_total",
				Help: "Number of documents created by kind",
			},
			[]string{"kind"},
		),
		DocumentStatus: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_document_transitions_total",
				Help: "Number of document status transitions",
			},
			[]string{"kind", "status"},
		),
		ForceDeletes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_force_deletes_total",
				Help: "Number of forced cascade deletes by entity",
			},
			[]string{"entity"},
		),
		LedgerMismatches: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "inventory_ledger_mismatches_total",
				Help: "Number of parts whose ledger replay disagreed with stock",
			},
		),
	}

	reg.MustRegister(
		m.StockMovements,
		m.StockUnits,
		m.AlertsRaised,
		m.AlertsResolved,
		m.DocumentsCreated,
		m.DocumentStatus,
		m.ForceDeletes,
		m.LedgerMismatches,
	)
	return m
}

// NewNop returns metrics registered on a private registry, for tests and tools
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
