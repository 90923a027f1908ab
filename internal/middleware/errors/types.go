package errors

import "net/http"

// APIError kendi HTTP status kodunu taşıyan hatalar
type APIError interface {
	error
	Status() int
}

// RequestError istek okunamadığında dönen hata (bozuk JSON, geçersiz path, eksik dosya)
type RequestError struct {
	Message    string
	StatusCode int
	Field      string
	Err        error
}

// BadRequest 400 dönen RequestError oluşturur
func BadRequest(field, message string, err error) *RequestError {
	return &RequestError{Message: message, StatusCode: http.StatusBadRequest, Field: field, Err: err}
}

// Error error interface implementation'ı
func (e *RequestError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Status APIError interface implementation'ı
func (e *RequestError) Status() int {
	return e.StatusCode
}

// Unwrap alttaki hatayı döner
func (e *RequestError) Unwrap() error {
	return e.Err
}
