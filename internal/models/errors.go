package models

import (
	"errors"
	"fmt"
)

// Domain hataları. Handler katmanı bunları HTTP status koduna çevirir.
var (
	ErrNotFound     = errors.New("kayıt bulunamadı")
	ErrConflict     = errors.New("kayıt zaten mevcut")
	ErrTimeout      = errors.New("işlem zaman aşımına uğradı")
	ErrInvalidInput = errors.New("geçersiz girdi")
)

// TransactionError database transaction'ı sırasında oluşan storage hatası
type TransactionError struct {
	Op  string
	Err error
}

// Error error interface implementation'ı
func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction hatası (%s): %v", e.Op, e.Err)
}

// Unwrap errors.Is / errors.As zinciri için
func (e *TransactionError) Unwrap() error {
	return e.Err
}
