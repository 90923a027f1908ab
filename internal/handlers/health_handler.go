package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger storage bağlantısını kontrol eder (*sql.DB bunu sağlar)
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler GET /health. pinger nil ise (memory driver) sadece süreç durumu döner.
func HealthHandler(pinger Pinger, driver string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{
			"status":  "ok",
			"storage": driver,
			"time":    time.Now().UTC().Format(time.RFC3339),
		}

		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := pinger.PingContext(ctx); err != nil {
				status["status"] = "unavailable"
				status["error"] = "veritabanına ulaşılamıyor"
				writeJSON(w, http.StatusServiceUnavailable, status)
				return
			}
		}

		writeJSON(w, http.StatusOK, status)
	}
}
