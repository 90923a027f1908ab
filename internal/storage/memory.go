package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/onerilhan/guild-payout-api/internal/db"
	"github.com/onerilhan/guild-payout-api/internal/interfaces"
	"github.com/onerilhan/guild-payout-api/internal/models"
)

// MemoryStore thread-safe bellek içi storage. STORAGE_DRIVER=memory ile
// PostgreSQL yerine kullanılır. Tek bir kilit tüm okuma, yazma ve
// transaction'ları sıraya koyar; transaction süresince kilit tutulur.
type MemoryStore struct {
	lock chan struct{}

	members  map[string]*models.Member
	history  []*models.PayoutHistory
	prices   map[int64]*models.Price
	memberID int64
	entryID  int64
	priceID  int64
}

// NewMemoryStore boş bir store oluşturur
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lock:    make(chan struct{}, 1),
		members: make(map[string]*models.Member),
		prices:  make(map[int64]*models.Price),
	}
}

// Members üye repository'si
func (s *MemoryStore) Members() *MemberRepository { return &MemberRepository{store: s} }

// PayoutHistory payout geçmişi repository'si
func (s *MemoryStore) PayoutHistory() *PayoutHistoryRepository {
	return &PayoutHistoryRepository{store: s}
}

// Prices fiyat repository'si
func (s *MemoryStore) Prices() *PriceRepository { return &PriceRepository{store: s} }

// UnitOfWork üye transaction'ları
func (s *MemoryStore) UnitOfWork() *UnitOfWork { return &UnitOfWork{store: s} }

// acquire context iptal olana kadar kilidi bekler
func (s *MemoryStore) acquire(ctx context.Context) error {
	select {
	case s.lock <- struct{}{}:
		return nil
	case <-ctx.Done():
		return db.ClassifyError(ctx, "lock", ctx.Err())
	}
}

func (s *MemoryStore) release() {
	<-s.lock
}

func copyMember(m *models.Member) *models.Member {
	c := *m
	return &c
}

func copyPrice(p *models.Price) *models.Price {
	c := *p
	return &c
}

// MemberRepository bellek içi üye işlemleri
type MemberRepository struct {
	store *MemoryStore
}

var _ interfaces.MemberRepositoryInterface = (*MemberRepository)(nil)

// Create yeni üye ekler
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) (*models.Member, error) {
	if err := r.store.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.store.release()

	if _, exists := r.store.members[member.Username]; exists {
		return nil, fmt.Errorf("%w: üye %q", models.ErrConflict, member.Username)
	}

	r.store.memberID++
	created := copyMember(member)
	created.ID = r.store.memberID
	r.store.members[created.Username] = created

	return copyMember(created), nil
}

// BulkInsert yeni üyeleri ekler; var olan username'ler atlanır
func (r *MemberRepository) BulkInsert(ctx context.Context, members []*models.Member) (int, error) {
	if err := r.store.acquire(ctx); err != nil {
		return 0, err
	}
	defer r.store.release()

	inserted := 0
	for _, m := range members {
		if _, exists := r.store.members[m.Username]; exists {
			m.ID = 0
			continue
		}
		r.store.memberID++
		m.ID = r.store.memberID
		r.store.members[m.Username] = copyMember(m)
		inserted++
	}

	return inserted, nil
}

// GetAll tüm üyeleri ID sırasıyla döner
func (r *MemberRepository) GetAll(ctx context.Context) ([]*models.Member, error) {
	if err := r.store.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.store.release()

	members := make([]*models.Member, 0, len(r.store.members))
	for _, m := range r.store.members {
		members = append(members, copyMember(m))
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })

	return members, nil
}

// GetByUsername username ile üye bulur
func (r *MemberRepository) GetByUsername(ctx context.Context, username string) (*models.Member, error) {
	if err := r.store.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.store.release()

	m, ok := r.store.members[username]
	if !ok {
		return nil, fmt.Errorf("üye %q: %w", username, models.ErrNotFound)
	}
	return copyMember(m), nil
}

// Delete üyeyi siler, geçmiş korunur
func (r *MemberRepository) Delete(ctx context.Context, username string) (int64, error) {
	if err := r.store.acquire(ctx); err != nil {
		return 0, err
	}
	defer r.store.release()

	if _, ok := r.store.members[username]; !ok {
		return 0, nil
	}
	delete(r.store.members, username)
	return 1, nil
}

// PayoutHistoryRepository bellek içi payout geçmişi
type PayoutHistoryRepository struct {
	store *MemoryStore
}

var _ interfaces.PayoutHistoryRepositoryInterface = (*PayoutHistoryRepository)(nil)

// GetByUsername üyenin geçmişini en yeniden eskiye döner
func (r *PayoutHistoryRepository) GetByUsername(ctx context.Context, username string) ([]*models.PayoutHistory, error) {
	if err := r.store.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.store.release()

	history := make([]*models.PayoutHistory, 0)
	for i := len(r.store.history) - 1; i >= 0; i-- {
		if h := r.store.history[i]; h.Username == username {
			c := *h
			history = append(history, &c)
		}
	}
	return history, nil
}

// UnitOfWork bellek içi transaction. Yazmalar fn başarılı olursa uygulanır.
type UnitOfWork struct {
	store *MemoryStore
}

var _ interfaces.MemberUnitOfWork = (*UnitOfWork)(nil)

// WithinTransaction fn'i store kilidi altında çalıştırır
func (u *UnitOfWork) WithinTransaction(ctx context.Context, fn func(tx interfaces.MemberTx) error) error {
	if err := u.store.acquire(ctx); err != nil {
		return err
	}
	defer u.store.release()

	tx := &memberTx{
		store:   u.store,
		members: make(map[string]*models.Member),
	}

	if err := fn(tx); err != nil {
		return db.ClassifyError(ctx, "exec", err)
	}

	// Deadline fn sırasında dolduysa commit edilmez
	if err := ctx.Err(); err != nil {
		return db.ClassifyError(ctx, "commit", err)
	}

	tx.commit()
	return nil
}

// memberTx commit'e kadar değişiklikleri bekleten transaction
type memberTx struct {
	store   *MemoryStore
	members map[string]*models.Member
	history []*models.PayoutHistory
}

// GetForUpdate üyeyi okur; kilit zaten transaction boyunca tutuluyor
func (t *memberTx) GetForUpdate(ctx context.Context, username string) (*models.Member, error) {
	if m, ok := t.members[username]; ok {
		return copyMember(m), nil
	}
	m, ok := t.store.members[username]
	if !ok {
		return nil, fmt.Errorf("üye %q: %w", username, models.ErrNotFound)
	}
	return copyMember(m), nil
}

// Update değişikliği commit için bekletir
func (t *memberTx) Update(ctx context.Context, member *models.Member) error {
	if _, ok := t.store.members[member.Username]; !ok {
		return fmt.Errorf("üye %q: %w", member.Username, models.ErrNotFound)
	}
	t.members[member.Username] = copyMember(member)
	return nil
}

// AppendHistory geçmiş kaydını commit için bekletir
func (t *memberTx) AppendHistory(ctx context.Context, entry *models.PayoutHistory) error {
	c := *entry
	t.history = append(t.history, &c)
	return nil
}

// commit bekleyen yazmaları uygular, kilit çağıranda
func (t *memberTx) commit() {
	for username, m := range t.members {
		stored := t.store.members[username]
		stored.Payout = m.Payout
		stored.LastPayoutDue = m.LastPayoutDue
	}
	for _, h := range t.history {
		t.store.entryID++
		h.ID = t.store.entryID
		t.store.history = append(t.store.history, h)
	}
}

// PriceRepository bellek içi fiyat işlemleri
type PriceRepository struct {
	store *MemoryStore
}

var _ interfaces.PriceRepositoryInterface = (*PriceRepository)(nil)

// Create yeni fiyat ekler
func (r *PriceRepository) Create(ctx context.Context, price *models.Price) (*models.Price, error) {
	if err := r.store.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.store.release()

	r.store.priceID++
	created := copyPrice(price)
	created.ID = r.store.priceID
	r.store.prices[created.ID] = created
	return copyPrice(created), nil
}

// BulkCreate fiyatları ekler
func (r *PriceRepository) BulkCreate(ctx context.Context, prices []*models.Price) (int, error) {
	if err := r.store.acquire(ctx); err != nil {
		return 0, err
	}
	defer r.store.release()

	for _, p := range prices {
		r.store.priceID++
		p.ID = r.store.priceID
		r.store.prices[p.ID] = copyPrice(p)
	}
	return len(prices), nil
}

// GetAll tüm fiyatları ID sırasıyla döner
func (r *PriceRepository) GetAll(ctx context.Context) ([]*models.Price, error) {
	if err := r.store.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.store.release()

	prices := make([]*models.Price, 0, len(r.store.prices))
	for _, p := range r.store.prices {
		prices = append(prices, copyPrice(p))
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i].ID < prices[j].ID })
	return prices, nil
}

// GetByID ID ile fiyat bulur
func (r *PriceRepository) GetByID(ctx context.Context, id int64) (*models.Price, error) {
	if err := r.store.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.store.release()

	p, ok := r.store.prices[id]
	if !ok {
		return nil, fmt.Errorf("fiyat %d: %w", id, models.ErrNotFound)
	}
	return copyPrice(p), nil
}

// Update fiyat kaydını değiştirir
func (r *PriceRepository) Update(ctx context.Context, price *models.Price) error {
	if err := r.store.acquire(ctx); err != nil {
		return err
	}
	defer r.store.release()

	if _, ok := r.store.prices[price.ID]; !ok {
		return fmt.Errorf("fiyat %d: %w", price.ID, models.ErrNotFound)
	}
	r.store.prices[price.ID] = copyPrice(price)
	return nil
}

// Delete fiyat kaydını siler
func (r *PriceRepository) Delete(ctx context.Context, id int64) (int64, error) {
	if err := r.store.acquire(ctx); err != nil {
		return 0, err
	}
	defer r.store.release()

	if _, ok := r.store.prices[id]; !ok {
		return 0, nil
	}
	delete(r.store.prices, id)
	return 1, nil
}
