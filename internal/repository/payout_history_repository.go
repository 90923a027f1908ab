package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/onerilhan/guild-payout-api/internal/db"
	"github.com/onerilhan/guild-payout-api/internal/interfaces"
	"github.com/onerilhan/guild-payout-api/internal/models"
)

// PayoutHistoryRepository payout geçmişi okuma işlemleri
type PayoutHistoryRepository struct {
	db *sql.DB
}

// NewPayoutHistoryRepository yeni repository oluşturur
func NewPayoutHistoryRepository(db *sql.DB) *PayoutHistoryRepository {
	return &PayoutHistoryRepository{db: db}
}

var _ interfaces.PayoutHistoryRepositoryInterface = (*PayoutHistoryRepository)(nil)

// GetByUsername üyenin payout geçmişini en yeniden eskiye döner
func (r *PayoutHistoryRepository) GetByUsername(ctx context.Context, username string) ([]*models.PayoutHistory, error) {
	query := `
		SELECT id, username, amount, payout_date
		FROM payout_history
		WHERE username = $1
		ORDER BY payout_date DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, db.ClassifyError(ctx, "query", fmt.Errorf("payout geçmişi okunamadı: %w", err))
	}
	defer rows.Close()

	history := make([]*models.PayoutHistory, 0)
	for rows.Next() {
		var h models.PayoutHistory
		if err := rows.Scan(&h.ID, &h.Username, &h.Amount, &h.PayoutDate); err != nil {
			return nil, db.ClassifyError(ctx, "query", fmt.Errorf("payout geçmişi satırı okunamadı: %w", err))
		}
		history = append(history, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, db.ClassifyError(ctx, "query", fmt.Errorf("payout geçmişi okunurken hata: %w", err))
	}

	return history, nil
}
