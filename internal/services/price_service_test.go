package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/onerilhan/guild-payout-api/internal/models"
)

// TestPriceService_UpdateAppliesPatch sadece verilen alanlar değişmeli
func TestPriceService_UpdateAppliesPatch(t *testing.T) {
	// Arrange
	repo := new(MockPriceRepository)
	svc := NewPriceService(repo, time.Second)

	repo.On("GetByID", mock.Anything, int64(3)).
		Return(&models.Price{ID: 3, ItemName: "Bag", T7: 10, T8: 20}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Price) bool {
		return p.ItemName == "Bag" && p.T7 == 15 && p.T8 == 20
	})).Return(nil)

	t7 := 15.0

	// Act
	updated, err := svc.Update(context.Background(), 3, &models.PricePatch{T7: &t7})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 15.0, updated.T7)
	repo.AssertExpectations(t)
}

// TestPriceService_UpdateNotFound olmayan kayıt NotFound dönmeli
func TestPriceService_UpdateNotFound(t *testing.T) {
	// Arrange
	repo := new(MockPriceRepository)
	svc := NewPriceService(repo, time.Second)
	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, models.ErrNotFound)

	// Act
	_, err := svc.Update(context.Background(), 9, &models.PricePatch{})

	// Assert
	assert.ErrorIs(t, err, models.ErrNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// TestPriceService_DeleteNotFound etkilenen satır yoksa NotFound dönmeli
func TestPriceService_DeleteNotFound(t *testing.T) {
	// Arrange
	repo := new(MockPriceRepository)
	svc := NewPriceService(repo, time.Second)
	repo.On("Delete", mock.Anything, int64(9)).Return(int64(0), nil)

	// Act
	_, err := svc.Delete(context.Background(), 9)

	// Assert
	assert.ErrorIs(t, err, models.ErrNotFound)
}

// TestPriceService_Create repository sonucunu dönmeli
func TestPriceService_Create(t *testing.T) {
	// Arrange
	repo := new(MockPriceRepository)
	svc := NewPriceService(repo, time.Second)
	in := &models.Price{ItemName: "Cape"}
	repo.On("Create", mock.Anything, in).Return(&models.Price{ID: 1, ItemName: "Cape"}, nil)

	// Act
	out, err := svc.Create(context.Background(), in)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
}
