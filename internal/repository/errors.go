package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/onerilhan/guild-payout-api/internal/models"
)

// PostgreSQL unique_violation hata kodu
const pqUniqueViolation = "23505"

// mapPQError unique constraint ihlallerini models.ErrConflict'e çevirir
func mapPQError(err error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return fmt.Errorf("%w: %s (%s)", models.ErrConflict, msg, pqErr.Constraint)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
