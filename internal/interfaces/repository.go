// internal/interfaces/repository.go
package interfaces

import (
	"context"

	"github.com/onerilhan/guild-payout-api/internal/models"
)

// MemberRepositoryInterface üye database işlemleri için interface
type MemberRepositoryInterface interface {
	// Create yeni üye oluşturur, username çakışmasında models.ErrConflict döner
	Create(ctx context.Context, member *models.Member) (*models.Member, error)

	// BulkInsert üyeleri tek transaction içinde ekler. Var olan username'ler
	// atlanır ve dokunulmaz; eklenen satır sayısı döner.
	BulkInsert(ctx context.Context, members []*models.Member) (int, error)

	// GetAll tüm üyeleri listeler
	GetAll(ctx context.Context) ([]*models.Member, error)

	// GetByUsername username ile üye bulur
	GetByUsername(ctx context.Context, username string) (*models.Member, error)

	// Delete üyeyi siler, etkilenen satır sayısını döner
	Delete(ctx context.Context, username string) (int64, error)
}

// PayoutHistoryRepositoryInterface payout geçmişi okuma işlemleri.
// Yazma sadece MemberTx üzerinden, payout transaction'ı içinde yapılır.
type PayoutHistoryRepositoryInterface interface {
	GetByUsername(ctx context.Context, username string) ([]*models.PayoutHistory, error)
}

// PriceRepositoryInterface fiyat database işlemleri için interface
type PriceRepositoryInterface interface {
	Create(ctx context.Context, price *models.Price) (*models.Price, error)
	BulkCreate(ctx context.Context, prices []*models.Price) (int, error)
	GetAll(ctx context.Context) ([]*models.Price, error)
	GetByID(ctx context.Context, id int64) (*models.Price, error)
	Update(ctx context.Context, price *models.Price) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// MemberTx tek bir transaction içindeki üye işlemleri
type MemberTx interface {
	// GetForUpdate üye satırını okur ve transaction sonuna kadar kilitler
	GetForUpdate(ctx context.Context, username string) (*models.Member, error)

	// Update üyenin payout ve lastPayoutDue alanlarını yazar
	Update(ctx context.Context, member *models.Member) error

	// AppendHistory yeni payout geçmişi kaydı ekler, ID'yi doldurur
	AppendHistory(ctx context.Context, entry *models.PayoutHistory) error
}

// MemberUnitOfWork üye işlemlerini atomik olarak çalıştırır.
// fn hata dönerse tüm değişiklikler geri alınır.
type MemberUnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(tx MemberTx) error) error
}
