package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutHistory tek bir payout işleminin değiştirilemez kaydı
type PayoutHistory struct {
	ID         int64           `json:"id" db:"id"`
	Username   string          `json:"username" db:"username"`
	Amount     decimal.Decimal `json:"amount" db:"amount"`
	PayoutDate time.Time       `json:"payoutDate" db:"payout_date"`
}
