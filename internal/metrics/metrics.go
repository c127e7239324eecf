package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransfersTotal counts finished transfers by kind and terminal status
	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settle_transfers_total",
			Help: "Total number of finished transfers",
		},
		[]string{"kind", "status"},
	)

	// TransferDuration tracks end-to-end transfer time
	TransferDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "settle_transfer_duration_seconds",
			Help:    "Transfer duration from creation to terminal status in seconds",
			Buckets: []float64{5, 15, 30, 60, 120, 300, 600, 1200, 1800, 3600},
		},
		[]string{"kind"},
	)

	// StepDuration tracks how long each protocol step takes
	StepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "settle_step_duration_seconds",
			Help:    "Duration of individual transfer steps in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"step"},
	)

	// TransferAmount tracks transferred amounts in whole token units
	TransferAmount = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "settle_transfer_amount",
			Help:    "Amount of tokens transferred",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		},
		[]string{"source_chain", "destination_chain"},
	)

	// TransactionsSent counts contract calls broadcast per chain
	TransactionsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settle_transactions_sent_total",
			Help: "Total number of transactions sent",
		},
		[]string{"chain", "method", "status"},
	)

	// GasUsed tracks gas used by mined transactions
	GasUsed = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "settle_gas_used",
			Help:    "Gas used by mined transactions",
			Buckets: []float64{21000, 50000, 100000, 200000, 300000, 500000},
		},
		[]string{"method"},
	)

	// AttestationPolls counts attestation service requests by outcome
	AttestationPolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settle_attestation_polls_total",
			Help: "Total number of attestation service requests",
		},
		[]string{"outcome"},
	)

	// MintRetries counts mint attempts retried after a transient failure
	MintRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "settle_mint_retries_total",
			Help: "Total number of retried mint attempts",
		},
	)

	// InFlightTransfers tracks transfers currently being executed
	InFlightTransfers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "settle_in_flight_transfers",
			Help: "Number of transfers currently executing",
		},
	)

	// ErrorsTotal counts errors by component and kind
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settle_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "kind"},
	)
)
