package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/guild-payout-api/internal/middleware/errors"
	"github.com/onerilhan/guild-payout-api/internal/utils"
)

// logPanic panic durumunu detaylı şekilde loglar
func logPanic(panicInfo *errors.PanicInfo, config *errors.ErrorConfig) {
	logEvent := log.Error().
		Str("type", "panic").
		Str("request_id", panicInfo.RequestID).
		Str("method", panicInfo.Method).
		Str("path", panicInfo.Path).
		Str("client_ip", panicInfo.ClientIP).
		Str("user_agent", panicInfo.UserAgent).
		Time("timestamp", panicInfo.Timestamp).
		Interface("panic_value", panicInfo.Value)

	if config.EnablePanicLogs {
		logEvent.Str("stack_trace", panicInfo.Stack)
	}

	logEvent.Msg("🔥 Server panic yakalandı")
}

// LogRequestError handler'ların döndüğü error response'ları status'a göre loglar
func LogRequestError(r *http.Request, statusCode int, err error, requestID string) {
	logEvent := log.With().
		Str("request_id", requestID).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("client_ip", utils.GetClientIP(r)).
		Int("status_code", statusCode).
		Err(err).
		Logger()

	switch {
	case statusCode >= 500:
		logEvent.Error().Msg("❌ İstek sunucu hatasıyla sonuçlandı")
	case statusCode >= 400:
		logEvent.Warn().Msg("İstek reddedildi")
	default:
		logEvent.Info().Msg("İstek hata ile tamamlandı")
	}
}
