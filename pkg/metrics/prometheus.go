package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	TransactionsApplied *prometheus.CounterVec
	TransactionsFailed  *prometheus.CounterVec
	ApplyTime           prometheus.Histogram
	FlightsResolved     prometheus.Counter
	PoliciesSettled     prometheus.Counter
	EscrowCredited      prometheus.Counter
	WithdrawalsPaid     prometheus.Counter
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		TransactionsApplied: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_applied_total",
			Help:      "The total number of transactions applied to the ledger",
		}, []string{"operation"}),
		TransactionsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_failed_total",
			Help:      "The total number of transactions rejected by the engine",
		}, []string{"operation"}),
		ApplyTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transaction_apply_time_seconds",
			Help:      "Time taken to apply one transaction",
			Buckets:   prometheus.DefBuckets,
		}),
		FlightsResolved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_resolved_total",
			Help:      "The total number of flights resolved by oracle consensus",
		}),
		PoliciesSettled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "policies_settled_total",
			Help:      "The total number of policies credited at settlement",
		}),
		EscrowCredited: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "escrow_credited_micros_total",
			Help:      "Total micros credited into passenger escrow balances",
		}),
		WithdrawalsPaid: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "withdrawals_paid_micros_total",
			Help:      "Total micros paid out through the payout gateway",
		}),
	}
}
