package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onerilhan/guild-payout-api/internal/interfaces"
	"github.com/onerilhan/guild-payout-api/internal/models"
)

// TestUnitOfWork_RollbackDiscardsWrites fn hata dönerse bekleyen yazmalar uygulanmamalı
func TestUnitOfWork_RollbackDiscardsWrites(t *testing.T) {
	// Arrange
	store := NewMemoryStore()
	ctx := context.Background()
	_, err := store.Members().Create(ctx, &models.Member{Username: "alice", Payout: decimal.NewFromInt(50)})
	require.NoError(t, err)
	boom := errors.New("boom")

	// Act
	err = store.UnitOfWork().WithinTransaction(ctx, func(tx interfaces.MemberTx) error {
		m, err := tx.GetForUpdate(ctx, "alice")
		if err != nil {
			return err
		}
		if err := tx.AppendHistory(ctx, &models.PayoutHistory{Username: "alice", Amount: m.Payout}); err != nil {
			return err
		}
		m.Payout = decimal.Zero
		if err := tx.Update(ctx, m); err != nil {
			return err
		}
		return boom
	})

	// Assert
	assert.ErrorIs(t, err, boom)
	var txErr *models.TransactionError
	assert.True(t, errors.As(err, &txErr))

	m, err := store.Members().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, m.Payout.Equal(decimal.NewFromInt(50)))
	history, err := store.PayoutHistory().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, history)
}

// TestUnitOfWork_CommitAssignsHistoryIDs commit sonrası geçmiş ID almalı ve en yeni önce dönmeli
func TestUnitOfWork_CommitAssignsHistoryIDs(t *testing.T) {
	// Arrange
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	// Act
	for _, amount := range []int64{10, 20} {
		err := store.UnitOfWork().WithinTransaction(ctx, func(tx interfaces.MemberTx) error {
			return tx.AppendHistory(ctx, &models.PayoutHistory{Username: "alice", Amount: decimal.NewFromInt(amount), PayoutDate: now})
		})
		require.NoError(t, err)
	}

	// Assert
	history, err := store.PayoutHistory().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, int64(2), history[0].ID)
	assert.True(t, history[0].Amount.Equal(decimal.NewFromInt(20)))
}

// TestMemberRepository_BulkInsertSkipsExisting import var olan üyenin bakiyesini ve tarihlerini değiştirmemeli
func TestMemberRepository_BulkInsertSkipsExisting(t *testing.T) {
	// Arrange
	store := NewMemoryStore()
	ctx := context.Background()
	joined := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := store.Members().Create(ctx, &models.Member{
		Username: "alice", Payout: decimal.NewFromInt(50), LastPayoutDue: joined, DateJoined: joined,
	})
	require.NoError(t, err)

	batch := []*models.Member{
		{Username: "alice", Payout: decimal.Zero, DateJoined: time.Now()},
		{Username: "bob", Payout: decimal.NewFromInt(3)},
		{Username: "bob", Payout: decimal.NewFromInt(9)},
	}

	// Act
	n, err := store.Members().BulkInsert(ctx, batch)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Zero(t, batch[0].ID)
	assert.Zero(t, batch[2].ID)

	alice, err := store.Members().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, alice.Payout.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, joined, alice.DateJoined)
	assert.Equal(t, joined, alice.LastPayoutDue)

	bob, err := store.Members().GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, bob.Payout.Equal(decimal.NewFromInt(3)))
}

// TestPriceRepository_CRUD fiyat ekleme, güncelleme ve silme
func TestPriceRepository_CRUD(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	prices := store.Prices()

	created, err := prices.Create(ctx, &models.Price{ItemName: "Bag"})
	require.NoError(t, err)
	created.T7 = 9
	require.NoError(t, prices.Update(ctx, created))

	got, err := prices.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 9.0, got.T7)

	n, err := prices.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = prices.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, prices.Update(ctx, created), models.ErrNotFound)
}
