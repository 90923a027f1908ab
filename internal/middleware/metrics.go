package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/guild-payout-api/internal/metrics"
)

// SlowRequestThreshold bu süreyi aşan istekler uyarı olarak loglanır
const SlowRequestThreshold = 2 * time.Second

// MetricsMiddleware istek sayısı ve sürelerini Prometheus'a yazar.
// Route etiketi mux route template'idir ("/member/{username}"), bu yüzden
// router.Use ile eklenmelidir.
func MetricsMiddleware(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := routeTemplate(r)
			start := time.Now()
			wrapped := newResponseWriter(w)

			m.HTTPInFlight.Inc()
			defer m.HTTPInFlight.Dec()

			next.ServeHTTP(wrapped, r)

			elapsed := time.Since(start)
			m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).Inc()
			m.HTTPDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

			if elapsed > SlowRequestThreshold {
				log.Warn().
					Str("method", r.Method).
					Str("route", route).
					Dur("duration", elapsed).
					Msg("Slow request detected")
			}
		})
	}
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
