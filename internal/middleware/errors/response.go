package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorResponse standardized error response formatı
type ErrorResponse struct {
	Success   bool                   `json:"success"`
	Error     string                 `json:"error"`
	Code      int                    `json:"code"`
	Timestamp string                 `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Stack     string                 `json:"stack,omitempty"` // Sadece development'ta
}

// PanicInfo panic durumu hakkında bilgi
type PanicInfo struct {
	Value     interface{}
	Stack     string
	RequestID string
	Method    string
	Path      string
	UserAgent string
	ClientIP  string
	Timestamp time.Time
}

// NewErrorResponse request bilgileriyle response oluşturur.
// Request ID logging middleware'in set ettiği header'dan okunur.
func NewErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     message,
		Code:      statusCode,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: w.Header().Get("X-Request-ID"),
		Details: map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		},
	}
}

// Write response'u JSON olarak yazar
func (e *ErrorResponse) Write(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Code)
	return json.NewEncoder(w).Encode(e)
}
