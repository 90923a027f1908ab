package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/guild-payout-api/internal/models"
)

// TransactionFunc database transaction içinde çalışacak fonksiyon tipi
type TransactionFunc func(tx *sql.Tx) error

// WithTransaction database transaction'ı yönetir.
// Hata durumunda otomatik rollback, başarı durumunda commit yapar.
// Context deadline aşılırsa models.ErrTimeout döner.
func WithTransaction(ctx context.Context, db *sql.DB, fn TransactionFunc) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ClassifyError(ctx, "begin", err)
	}

	// Panic durumunda rollback, panic'i yeniden fırlat
	defer func() {
		if r := recover(); r != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("Rollback hatası (panic)")
			}
			log.Error().Interface("panic", r).Msg("Transaction panic ile rollback yapıldı")
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			log.Error().Err(rollbackErr).Msg("Rollback hatası")
		}
		log.Warn().Err(err).Msg("Transaction rollback yapıldı")
		return ClassifyError(ctx, "exec", err)
	}

	if err := tx.Commit(); err != nil {
		log.Error().Err(err).Msg("Commit hatası")
		return ClassifyError(ctx, "commit", err)
	}

	log.Debug().Msg("Transaction başarıyla commit edildi")
	return nil
}

// ClassifyError storage hatasını domain hatasına çevirir.
// Bellek içi driver da aynı sınıflandırmayı kullanır.
// Domain hataları (NotFound, Conflict, InvalidInput) olduğu gibi geçer.
func ClassifyError(ctx context.Context, op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s aşamasında: %v", models.ErrTimeout, op, err)
	}

	if errors.Is(err, models.ErrNotFound) ||
		errors.Is(err, models.ErrConflict) ||
		errors.Is(err, models.ErrInvalidInput) {
		return err
	}

	var txErr *models.TransactionError
	if errors.As(err, &txErr) {
		return err
	}

	return &models.TransactionError{Op: op, Err: err}
}
