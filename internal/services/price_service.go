package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/guild-payout-api/internal/interfaces"
	"github.com/onerilhan/guild-payout-api/internal/models"
)

// PriceService fiyat kayıtları business logic'i
type PriceService struct {
	priceRepo interfaces.PriceRepositoryInterface
	timeout   time.Duration
}

// NewPriceService yeni service oluşturur
func NewPriceService(priceRepo interfaces.PriceRepositoryInterface, timeout time.Duration) *PriceService {
	if timeout <= 0 {
		timeout = DefaultTxTimeout
	}
	return &PriceService{priceRepo: priceRepo, timeout: timeout}
}

var _ interfaces.PriceServiceInterface = (*PriceService)(nil)

// Create yeni fiyat kaydı oluşturur
func (s *PriceService) Create(ctx context.Context, price *models.Price) (*models.Price, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	created, err := s.priceRepo.Create(ctx, price)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("price_id", created.ID).Str("item", created.ItemName).Msg("Fiyat kaydı oluşturuldu")
	return created, nil
}

// BulkCreate CSV import'tan gelen fiyatları kaydeder
func (s *PriceService) BulkCreate(ctx context.Context, prices []*models.Price) (int, error) {
	if len(prices) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.priceRepo.BulkCreate(ctx, prices)
	if err != nil {
		log.Error().Err(err).Int("rows", len(prices)).Msg("Fiyat import başarısız")
		return 0, err
	}

	log.Info().Int("imported", n).Msg("Fiyatlar import edildi")
	return n, nil
}

// GetAll tüm fiyatları listeler
func (s *PriceService) GetAll(ctx context.Context) ([]*models.Price, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.priceRepo.GetAll(ctx)
}

// GetByID tek fiyat kaydını getirir
func (s *PriceService) GetByID(ctx context.Context, id int64) (*models.Price, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.priceRepo.GetByID(ctx, id)
}

// Update patch'teki dolu alanları kayda yazar
func (s *PriceService) Update(ctx context.Context, id int64, patch *models.PricePatch) (*models.Price, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	price, err := s.priceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(price)

	if err := s.priceRepo.Update(ctx, price); err != nil {
		log.Warn().Err(err).Int64("price_id", id).Msg("Fiyat güncellenemedi")
		return nil, err
	}

	log.Info().Int64("price_id", id).Msg("Fiyat kaydı güncellendi")
	return price, nil
}

// Delete fiyat kaydını siler. Kayıt yoksa models.ErrNotFound döner.
func (s *PriceService) Delete(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	affected, err := s.priceRepo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, fmt.Errorf("fiyat %d: %w", id, models.ErrNotFound)
	}

	log.Info().Int64("price_id", id).Msg("Fiyat kaydı silindi")
	return affected, nil
}
