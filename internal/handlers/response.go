package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/guild-payout-api/internal/middleware"
	apierrors "github.com/onerilhan/guild-payout-api/internal/middleware/errors"
	"github.com/onerilhan/guild-payout-api/internal/models"
)

// DefaultMaxUploadBytes MAX_UPLOAD_MB verilmediğinde CSV upload sınırı
const DefaultMaxUploadBytes = 10 << 20

// writeJSON v'yi verilen status ile yazar
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("JSON response yazılamadı")
	}
}

// statusFor domain hatasını HTTP status koduna çevirir
func statusFor(err error) int {
	var apiErr apierrors.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Status()
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeError hatayı standart ErrorResponse olarak yazar.
// 5xx hatalarda storage detayı response'a konmaz, sadece loglanır.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	message := err.Error()
	switch status {
	case http.StatusInternalServerError:
		message = "İşlem tamamlanamadı, değişiklikler geri alındı"
	case http.StatusGatewayTimeout:
		message = models.ErrTimeout.Error()
	}

	response := apierrors.NewErrorResponse(w, r, status, message)
	middleware.LogRequestError(r, status, err, response.RequestID)

	if writeErr := response.Write(w); writeErr != nil {
		log.Error().Err(writeErr).Str("request_id", response.RequestID).Msg("Error response yazılamadı")
	}
}

// decodeJSON request body'sini v'ye okur
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			return err
		}
		return apierrors.BadRequest("body", "Geçersiz JSON formatı", err)
	}
	return nil
}

// openUpload CSV içeriğini açar. Frontend multipart "file" alanı gönderir;
// text/csv body de kabul edilir.
func openUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (io.ReadCloser, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "text/csv" {
		return r.Body, nil
	}

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, apierrors.BadRequest("file", "Multipart form okunamadı", err)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, apierrors.BadRequest("file", "\"file\" alanında CSV dosyası bekleniyor", err)
	}
	return file, nil
}
