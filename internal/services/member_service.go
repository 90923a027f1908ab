package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/onerilhan/guild-payout-api/internal/interfaces"
	"github.com/onerilhan/guild-payout-api/internal/metrics"
	"github.com/onerilhan/guild-payout-api/internal/models"
)

// DefaultTxTimeout TX_TIMEOUT_SECONDS verilmediğinde kullanılır
const DefaultTxTimeout = 5 * time.Second

// MemberService üye business logic'i
type MemberService struct {
	memberRepo  interfaces.MemberRepositoryInterface
	historyRepo interfaces.PayoutHistoryRepositoryInterface
	uow         interfaces.MemberUnitOfWork
	metrics     *metrics.Metrics
	txTimeout   time.Duration
	now         func() time.Time
}

// NewMemberService yeni service oluşturur. m nil olabilir.
func NewMemberService(
	memberRepo interfaces.MemberRepositoryInterface,
	historyRepo interfaces.PayoutHistoryRepositoryInterface,
	uow interfaces.MemberUnitOfWork,
	m *metrics.Metrics,
	txTimeout time.Duration,
) *MemberService {
	if txTimeout <= 0 {
		txTimeout = DefaultTxTimeout
	}
	return &MemberService{
		memberRepo:  memberRepo,
		historyRepo: historyRepo,
		uow:         uow,
		metrics:     m,
		txTimeout:   txTimeout,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

var _ interfaces.MemberServiceInterface = (*MemberService)(nil)

// Create yeni üye oluşturur; payout 0, tarihler oluşturma anı
func (s *MemberService) Create(ctx context.Context, req *models.CreateMemberRequest) (*models.Member, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username boş olamaz", models.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	now := s.now()
	member, err := s.memberRepo.Create(ctx, &models.Member{
		Username:      username,
		Payout:        decimal.Zero,
		LastPayoutDue: now,
		DateJoined:    now,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("username", member.Username).Int64("member_id", member.ID).Msg("Yeni üye oluşturuldu")
	return member, nil
}

// BulkCreate CSV import'tan gelen yeni üyeleri tek seferde kaydeder.
// Boş tarih alanları import anı ile doldurulur. Var olan üyeler atlanır,
// bakiyeleri sadece update ve payout ile değişir.
func (s *MemberService) BulkCreate(ctx context.Context, members []*models.Member) (int, error) {
	if len(members) == 0 {
		return 0, nil
	}

	now := s.now()
	for _, m := range members {
		m.Payout = models.RoundPayout(m.Payout)
		if m.LastPayoutDue.IsZero() {
			m.LastPayoutDue = now
		}
		if m.DateJoined.IsZero() {
			m.DateJoined = now
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	n, err := s.memberRepo.BulkInsert(ctx, members)
	if err != nil {
		log.Error().Err(err).Int("rows", len(members)).Msg("Üye import başarısız")
		return 0, err
	}

	log.Info().Int("imported", n).Int("skipped", len(members)-n).Msg("Üyeler import edildi")
	return n, nil
}

// GetAll tüm üyeleri listeler
func (s *MemberService) GetAll(ctx context.Context) ([]*models.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	return s.memberRepo.GetAll(ctx)
}

// GetByUsername tek üyeyi getirir
func (s *MemberService) GetByUsername(ctx context.Context, username string) (*models.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	return s.memberRepo.GetByUsername(ctx, username)
}

// Update üyeye patch uygular. Hatalar çağırana döner.
func (s *MemberService) Update(ctx context.Context, username string, patch *models.MemberPatch) (*models.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	var updated *models.Member
	err := s.uow.WithinTransaction(ctx, func(tx interfaces.MemberTx) error {
		member, err := tx.GetForUpdate(ctx, username)
		if err != nil {
			return err
		}

		patch.Apply(member, s.now())

		if err := tx.Update(ctx, member); err != nil {
			return err
		}
		updated = member
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("Üye güncellenemedi")
		return nil, err
	}

	log.Info().
		Str("username", username).
		Str("payout", updated.Payout.String()).
		Msg("Üye güncellendi")

	return updated, nil
}

// Delete üyeyi siler. Üye yoksa models.ErrNotFound döner.
func (s *MemberService) Delete(ctx context.Context, username string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	affected, err := s.memberRepo.Delete(ctx, username)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, fmt.Errorf("üye %q: %w", username, models.ErrNotFound)
	}

	log.Info().Str("username", username).Msg("Üye silindi")
	return affected, nil
}

// ProcessPayout üyenin birikmiş payout'unu öder.
//
// Tek transaction içinde üye satırı kilitlenerek okunur. Payout pozitifse
// geçmişe ödenen miktarla bir kayıt eklenir, payout 0 ve lastPayoutDue
// şimdi olarak yazılır. Payout 0 veya negatifse hiçbir şey değişmez ve
// üye olduğu gibi döner. Herhangi bir hata tüm değişiklikleri geri alır.
func (s *MemberService) ProcessPayout(ctx context.Context, username string) (*models.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	var (
		result *models.Member
		paid   decimal.Decimal
	)

	err := s.uow.WithinTransaction(ctx, func(tx interfaces.MemberTx) error {
		member, err := tx.GetForUpdate(ctx, username)
		if err != nil {
			return err
		}

		if !member.HasPayout() {
			result = member
			return nil
		}

		now := s.now()
		entry := &models.PayoutHistory{
			Username:   member.Username,
			Amount:     member.Payout,
			PayoutDate: now,
		}
		if err := tx.AppendHistory(ctx, entry); err != nil {
			return err
		}

		paid = member.Payout
		member.Payout = decimal.Zero
		member.LastPayoutDue = now

		if err := tx.Update(ctx, member); err != nil {
			return err
		}

		result = member
		return nil
	})

	if err != nil {
		s.metrics.ObservePayout(payoutOutcome(err), decimal.Zero)
		log.Error().Err(err).Str("username", username).Msg("❌ Payout işlemi başarısız")
		return nil, err
	}

	if paid.IsZero() {
		s.metrics.ObservePayout(metrics.OutcomeNoop, decimal.Zero)
		log.Info().Str("username", username).Msg("Ödenecek payout yok, değişiklik yapılmadı")
		return result, nil
	}

	s.metrics.ObservePayout(metrics.OutcomePaid, paid)
	log.Info().
		Str("username", username).
		Str("amount", paid.String()).
		Msg("💸 Payout işlendi")

	return result, nil
}

// GetPayoutHistory üyenin payout geçmişini en yeniden eskiye döner.
// Silinmiş üyelerin geçmişi de döner; hiç kaydı olmayan bilinmeyen
// username için models.ErrNotFound.
func (s *MemberService) GetPayoutHistory(ctx context.Context, username string) ([]*models.PayoutHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	history, err := s.historyRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(history) > 0 {
		return history, nil
	}

	if _, err := s.memberRepo.GetByUsername(ctx, username); err != nil {
		return nil, err
	}
	return history, nil
}

func payoutOutcome(err error) string {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, models.ErrTimeout):
		return metrics.OutcomeTimeout
	default:
		return metrics.OutcomeFailed
	}
}
