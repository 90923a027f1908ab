package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/guild-payout-api/internal/middleware/errors"
	"github.com/onerilhan/guild-payout-api/internal/utils"
)

// RecoveryMiddleware handler'larda oluşan panic'leri yakalar ve JSON error döner
func RecoveryMiddleware(config *errors.ErrorConfig) func(http.Handler) http.Handler {
	if config == nil {
		config = errors.DefaultErrorConfig()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				// Bağlantı bilerek kesildiyse net/http'ye bırak
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				statusCode := http.StatusInternalServerError
				message := getErrorMessage(statusCode, config)
				if apiErr, ok := recovered.(errors.APIError); ok {
					statusCode = apiErr.Status()
					message = apiErr.Error()
				}

				info := &errors.PanicInfo{
					Value:     recovered,
					Stack:     string(debug.Stack()),
					RequestID: w.Header().Get("X-Request-ID"),
					Method:    r.Method,
					Path:      r.URL.Path,
					UserAgent: r.Header.Get("User-Agent"),
					ClientIP:  utils.GetClientIP(r),
					Timestamp: time.Now(),
				}
				logPanic(info, config)

				response := errors.NewErrorResponse(w, r, statusCode, truncateString(message, config.MaxErrorLength))
				if config.ShowStackTrace {
					response.Stack = info.Stack
					response.Details["panic"] = fmt.Sprintf("%v", recovered)
				}

				if err := response.Write(w); err != nil {
					log.Error().Err(err).Str("request_id", info.RequestID).Msg("Panic response yazılamadı")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
