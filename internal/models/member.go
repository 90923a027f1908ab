package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutScale payout ve amount kolonlarının ondalık hanesi (NUMERIC(14, 2))
const PayoutScale int32 = 2

// RoundPayout değeri veritabanının saklayacağı hassasiyete yuvarlar
func RoundPayout(d decimal.Decimal) decimal.Decimal {
	return d.Round(PayoutScale)
}

func init() {
	// Frontend payout değerlerini sayı olarak bekliyor ("50" değil 50)
	decimal.MarshalJSONWithoutQuotes = true
}

// Member lonca üyesini temsil eder
type Member struct {
	ID            int64           `json:"id" db:"id"`
	Username      string          `json:"username" db:"username"`
	Payout        decimal.Decimal `json:"payout" db:"payout"`
	LastPayoutDue time.Time       `json:"lastPayoutDue" db:"last_payout_due"`
	DateJoined    time.Time       `json:"dateJoined" db:"date_joined"`
}

// HasPayout üyenin ödenecek birikmiş bakiyesi var mı
func (m *Member) HasPayout() bool {
	return m.Payout.IsPositive()
}

// CreateMemberRequest üye oluşturma isteği
type CreateMemberRequest struct {
	Username string `json:"username"`
}

// MemberPatch kısmi üye güncellemesi. nil alan "değiştirme" anlamına gelir.
type MemberPatch struct {
	Payout         *decimal.Decimal `json:"payout,omitempty"`
	PayoutAddition *decimal.Decimal `json:"payoutAddition,omitempty"`
	LastPayoutDue  *FlexTime        `json:"lastPayoutDue,omitempty"`
}

// Apply patch'i üyeye uygular. Değerler PayoutScale'e yuvarlanır; yuvarlanınca
// 0 olan açık payout yok sayılır: bakiyeyi sıfırlamak sadece payout işleminin yetkisinde.
func (p *MemberPatch) Apply(m *Member, now time.Time) {
	switch {
	case p.Payout != nil && !RoundPayout(*p.Payout).IsZero():
		m.Payout = RoundPayout(*p.Payout)
	case p.PayoutAddition != nil:
		m.Payout = RoundPayout(m.Payout.Add(RoundPayout(*p.PayoutAddition)))
	}

	if p.LastPayoutDue != nil && !p.LastPayoutDue.IsZero() {
		m.LastPayoutDue = p.LastPayoutDue.Time
	} else {
		m.LastPayoutDue = now
	}
}
