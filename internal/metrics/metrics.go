package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Payout sonuç etiketleri
const (
	OutcomePaid     = "paid"
	OutcomeNoop     = "noop"
	OutcomeNotFound = "not_found"
	OutcomeTimeout  = "timeout"
	OutcomeFailed   = "failed"
)

// Metrics uygulamanın Prometheus collector'ları. Global registry yerine
// kendi registry'sini kullanır, testlerde birden fazla instance açılabilir.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	PayoutsProcessed *prometheus.CounterVec
	PayoutAmount     prometheus.Counter
}

// New collector'ları oluşturur ve kaydeder
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP istek sayısı",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP istek süresi",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "İşlenmekte olan istek sayısı",
		}),
		PayoutsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "guild_payouts_processed_total",
			Help: "Payout işlem sayısı, sonuca göre",
		}, []string{"outcome"}),
		PayoutAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "guild_payout_amount_total",
			Help: "Ödenen toplam payout miktarı",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.HTTPInFlight,
		m.PayoutsProcessed,
		m.PayoutAmount,
	)

	return m
}

// Handler /metrics endpoint'i
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// ObservePayout payout sonucunu kaydeder. nil receiver ile çağrılabilir.
func (m *Metrics) ObservePayout(outcome string, amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.PayoutsProcessed.WithLabelValues(outcome).Inc()
	if outcome == OutcomePaid {
		f, _ := amount.Float64()
		m.PayoutAmount.Add(f)
	}
}
