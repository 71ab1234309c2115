package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "shootbook"

var (
	once sync.Once

	gatewayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_requests_total",
			Help:      "Payment gateway requests by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	gatewayDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_request_duration_seconds",
			Help:      "Payment gateway request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	paymentSteps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_steps_total",
			Help:      "Payment orchestration steps by outcome.",
		},
		[]string{"step", "outcome"},
	)

	refundedCents = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refunded_cents_total",
			Help:      "Cents returned to clients.",
		},
	)

	outboxPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_published_total",
			Help:      "Outbox events handed to the broker by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(gatewayRequests, gatewayDuration, paymentSteps, refundedCents, outboxPublished)
	})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func ObserveGateway(operation string, started time.Time, err error) {
	gatewayRequests.WithLabelValues(operation, outcome(err)).Inc()
	gatewayDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func ObserveOutbox(err error) {
	outboxPublished.WithLabelValues(outcome(err)).Inc()
}

// PaymentObserver feeds orchestrator results into the step and refund counters.
type PaymentObserver struct{}

func NewPaymentObserver() PaymentObserver {
	Register()
	return PaymentObserver{}
}

func (PaymentObserver) ObserveStep(step string, err error) {
	paymentSteps.WithLabelValues(step, outcome(err)).Inc()
}

func (PaymentObserver) ObserveRefund(cents int64) {
	if cents > 0 {
		refundedCents.Add(float64(cents))
	}
}
