package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/guild-payout-api/internal/middleware/errors"
	"github.com/onerilhan/guild-payout-api/internal/utils"
)

// NotFoundJSONHandler JSON formatında 404 Not Found döner
func NotFoundJSONHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := errors.NewErrorResponse(w, r, http.StatusNotFound, "Endpoint bulunamadı")
		if err := response.Write(w); err != nil {
			log.Error().Err(err).Msg("NotFound JSON encoding failed")
			return
		}

		log.Warn().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("client_ip", utils.GetClientIP(r)).
			Msg("404 Not Found")
	}
}

// MethodNotAllowedJSONHandler JSON formatında 405 Method Not Allowed döner
func MethodNotAllowedJSONHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := errors.NewErrorResponse(w, r, http.StatusMethodNotAllowed, "HTTP metodu bu endpoint için desteklenmiyor")
		if err := response.Write(w); err != nil {
			log.Error().Err(err).Msg("MethodNotAllowed JSON encoding failed")
			return
		}

		log.Warn().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("client_ip", utils.GetClientIP(r)).
			Msg("405 Method Not Allowed")
	}
}
