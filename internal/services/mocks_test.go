package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/onerilhan/guild-payout-api/internal/interfaces"
	"github.com/onerilhan/guild-payout-api/internal/models"
)

// MockMemberRepository, MemberRepositoryInterface için sahte (mock) bir yapıdır.
type MockMemberRepository struct {
	mock.Mock
}

var _ interfaces.MemberRepositoryInterface = (*MockMemberRepository)(nil)

func (m *MockMemberRepository) Create(ctx context.Context, member *models.Member) (*models.Member, error) {
	args := m.Called(ctx, member)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) BulkInsert(ctx context.Context, members []*models.Member) (int, error) {
	args := m.Called(ctx, members)
	return args.Int(0), args.Error(1)
}

func (m *MockMemberRepository) GetAll(ctx context.Context) ([]*models.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Member), args.Error(1)
}

func (m *MockMemberRepository) GetByUsername(ctx context.Context, username string) (*models.Member, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) Delete(ctx context.Context, username string) (int64, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(int64), args.Error(1)
}

// MockPayoutHistoryRepository, PayoutHistoryRepositoryInterface için mock
type MockPayoutHistoryRepository struct {
	mock.Mock
}

var _ interfaces.PayoutHistoryRepositoryInterface = (*MockPayoutHistoryRepository)(nil)

func (m *MockPayoutHistoryRepository) GetByUsername(ctx context.Context, username string) ([]*models.PayoutHistory, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PayoutHistory), args.Error(1)
}

// MockMemberTx, MemberTx için mock
type MockMemberTx struct {
	mock.Mock
}

var _ interfaces.MemberTx = (*MockMemberTx)(nil)

func (m *MockMemberTx) GetForUpdate(ctx context.Context, username string) (*models.Member, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberTx) Update(ctx context.Context, member *models.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberTx) AppendHistory(ctx context.Context, entry *models.PayoutHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// fakeUnitOfWork fn'i verilen MemberTx ile doğrudan çalıştırır
type fakeUnitOfWork struct {
	tx    interfaces.MemberTx
	calls int
}

var _ interfaces.MemberUnitOfWork = (*fakeUnitOfWork)(nil)

func (f *fakeUnitOfWork) WithinTransaction(ctx context.Context, fn func(tx interfaces.MemberTx) error) error {
	f.calls++
	return fn(f.tx)
}

// MockPriceRepository, PriceRepositoryInterface için mock
type MockPriceRepository struct {
	mock.Mock
}

var _ interfaces.PriceRepositoryInterface = (*MockPriceRepository)(nil)

func (m *MockPriceRepository) Create(ctx context.Context, price *models.Price) (*models.Price, error) {
	args := m.Called(ctx, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Price), args.Error(1)
}

func (m *MockPriceRepository) BulkCreate(ctx context.Context, prices []*models.Price) (int, error) {
	args := m.Called(ctx, prices)
	return args.Int(0), args.Error(1)
}

func (m *MockPriceRepository) GetAll(ctx context.Context) ([]*models.Price, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Price), args.Error(1)
}

func (m *MockPriceRepository) GetByID(ctx context.Context, id int64) (*models.Price, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Price), args.Error(1)
}

func (m *MockPriceRepository) Update(ctx context.Context, price *models.Price) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockPriceRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
