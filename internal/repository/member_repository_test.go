package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onerilhan/guild-payout-api/internal/interfaces"
	"github.com/onerilhan/guild-payout-api/internal/models"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var memberRowColumns = []string{"id", "username", "payout", "last_payout_due", "date_joined"}

// TestMemberRepository_Create yeni üye RETURNING ile dönmeli
func TestMemberRepository_Create(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := NewMemberRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO members")).
		WithArgs("alice", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(memberRowColumns).AddRow(1, "alice", "0", now, now))

	// Act
	m, err := repo.Create(context.Background(), &models.Member{Username: "alice", LastPayoutDue: now, DateJoined: now})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ID)
	assert.Equal(t, "alice", m.Username)
	assert.True(t, m.Payout.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestMemberRepository_Create_Conflict unique ihlali ErrConflict olmalı
func TestMemberRepository_Create_Conflict(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := NewMemberRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO members")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "members_username_key"})

	// Act
	_, err := repo.Create(context.Background(), &models.Member{Username: "alice"})

	// Assert
	assert.ErrorIs(t, err, models.ErrConflict)
}

// TestMemberRepository_GetByUsername_NotFound satır yoksa ErrNotFound dönmeli
func TestMemberRepository_GetByUsername_NotFound(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := NewMemberRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM members WHERE username = $1")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	// Act
	m, err := repo.GetByUsername(context.Background(), "ghost")

	// Assert
	assert.Nil(t, m)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

// TestMemberRepository_GetAll satırlar sırayla dönmeli
func TestMemberRepository_GetAll(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := NewMemberRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM members ORDER BY id")).
		WillReturnRows(sqlmock.NewRows(memberRowColumns).
			AddRow(1, "alice", "50.5", now, now).
			AddRow(2, "bob", "0", now, now))

	// Act
	members, err := repo.GetAll(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.True(t, members[0].Payout.Equal(decimal.RequireFromString("50.5")))
	assert.Equal(t, "bob", members[1].Username)
}

// TestMemberRepository_Delete etkilenen satır sayısını dönmeli
func TestMemberRepository_Delete(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := NewMemberRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM members WHERE username = $1")).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Act
	affected, err := repo.Delete(context.Background(), "alice")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

// TestMemberRepository_BulkInsert tüm satırlar tek transaction'da yazılmalı
func TestMemberRepository_BulkInsert(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := NewMemberRepository(db)
	now := time.Now().UTC()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta("ON CONFLICT (username) DO NOTHING"))
	prep.ExpectQuery().WithArgs("alice", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	prep.ExpectQuery().WithArgs("bob", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	members := []*models.Member{
		{Username: "alice", LastPayoutDue: now, DateJoined: now},
		{Username: "bob", LastPayoutDue: now, DateJoined: now},
	}

	// Act
	n, err := repo.BulkInsert(context.Background(), members)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, int64(2), members[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestMemberRepository_BulkInsert_SkipsExisting çakışan username sayılmamalı ve güncellenmemeli
func TestMemberRepository_BulkInsert_SkipsExisting(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := NewMemberRepository(db)
	now := time.Now().UTC()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta("ON CONFLICT (username) DO NOTHING"))
	prep.ExpectQuery().WithArgs("alice", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	prep.ExpectQuery().WithArgs("bob", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	members := []*models.Member{
		{Username: "alice", LastPayoutDue: now, DateJoined: now},
		{Username: "bob", LastPayoutDue: now, DateJoined: now},
	}

	// Act
	n, err := repo.BulkInsert(context.Background(), members)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Zero(t, members[0].ID)
	assert.Equal(t, int64(7), members[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestMemberRepository_Timeout deadline aşımı ErrTimeout olmalı
func TestMemberRepository_Timeout(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := NewMemberRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM members ORDER BY id")).
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectQuery(regexp.QuoteMeta("FROM members WHERE username = $1")).
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM members")).
		WillReturnError(context.DeadlineExceeded)

	// Act
	_, errAll := repo.GetAll(context.Background())
	_, errOne := repo.GetByUsername(context.Background(), "alice")
	_, errDelete := repo.Delete(context.Background(), "alice")

	// Assert
	assert.ErrorIs(t, errAll, models.ErrTimeout)
	assert.ErrorIs(t, errOne, models.ErrTimeout)
	assert.ErrorIs(t, errDelete, models.ErrTimeout)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestMemberRepository_BulkInsert_Rollback bir satır hata verirse hiçbiri kalmamalı
func TestMemberRepository_BulkInsert_Rollback(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	repo := NewMemberRepository(db)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta("ON CONFLICT (username) DO NOTHING"))
	prep.ExpectQuery().WithArgs("alice", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	// Act
	n, err := repo.BulkInsert(context.Background(), []*models.Member{{Username: "alice"}})

	// Assert
	assert.Equal(t, 0, n)
	var txErr *models.TransactionError
	assert.True(t, errors.As(err, &txErr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestMemberUnitOfWork_PayoutSequence kilitli okuma, geçmiş ekleme ve güncelleme aynı transaction'da olmalı
func TestMemberUnitOfWork_PayoutSequence(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	uow := NewMemberUnitOfWork(db)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM members WHERE username = $1 FOR UPDATE")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(memberRowColumns).AddRow(7, "alice", "100", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payout_history")).
		WithArgs("alice", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE members SET payout = $1, last_payout_due = $2 WHERE id = $3")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var entry models.PayoutHistory

	// Act
	err := uow.WithinTransaction(context.Background(), func(tx interfaces.MemberTx) error {
		m, err := tx.GetForUpdate(context.Background(), "alice")
		if err != nil {
			return err
		}
		entry = models.PayoutHistory{Username: m.Username, Amount: m.Payout, PayoutDate: now}
		if err := tx.AppendHistory(context.Background(), &entry); err != nil {
			return err
		}
		m.Payout = decimal.Zero
		return tx.Update(context.Background(), m)
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(3), entry.ID)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(100)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestMemberUnitOfWork_NotFound kilitli okuma satır bulamazsa rollback yapılmalı
func TestMemberUnitOfWork_NotFound(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	uow := NewMemberUnitOfWork(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	// Act
	err := uow.WithinTransaction(context.Background(), func(tx interfaces.MemberTx) error {
		_, err := tx.GetForUpdate(context.Background(), "ghost")
		return err
	})

	// Assert
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
