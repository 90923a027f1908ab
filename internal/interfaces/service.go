// internal/interfaces/service.go
package interfaces

import (
	"context"

	"github.com/onerilhan/guild-payout-api/internal/models"
)

// MemberServiceInterface üye business logic için interface
type MemberServiceInterface interface {
	// Create yeni üye oluşturur (payout 0, tarihler şimdi)
	Create(ctx context.Context, req *models.CreateMemberRequest) (*models.Member, error)

	// BulkCreate CSV import'tan gelen üyeleri kaydeder
	BulkCreate(ctx context.Context, members []*models.Member) (int, error)

	// GetAll tüm üyeleri listeler
	GetAll(ctx context.Context) ([]*models.Member, error)

	// GetByUsername tek üyeyi getirir
	GetByUsername(ctx context.Context, username string) (*models.Member, error)

	// Update üyeye patch uygular
	Update(ctx context.Context, username string, patch *models.MemberPatch) (*models.Member, error)

	// Delete üyeyi siler
	Delete(ctx context.Context, username string) (int64, error)

	// ProcessPayout birikmiş payout'u sıfırlar ve geçmişe kaydeder
	ProcessPayout(ctx context.Context, username string) (*models.Member, error)

	// GetPayoutHistory üyenin payout geçmişini getirir
	GetPayoutHistory(ctx context.Context, username string) ([]*models.PayoutHistory, error)
}

// PriceServiceInterface fiyat business logic için interface
type PriceServiceInterface interface {
	Create(ctx context.Context, price *models.Price) (*models.Price, error)
	BulkCreate(ctx context.Context, prices []*models.Price) (int, error)
	GetAll(ctx context.Context) ([]*models.Price, error)
	GetByID(ctx context.Context, id int64) (*models.Price, error)
	Update(ctx context.Context, id int64, patch *models.PricePatch) (*models.Price, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
