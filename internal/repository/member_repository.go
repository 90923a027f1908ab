package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/onerilhan/guild-payout-api/internal/db"
	"github.com/onerilhan/guild-payout-api/internal/interfaces"
	"github.com/onerilhan/guild-payout-api/internal/models"
)

const memberColumns = `id, username, payout, last_payout_due, date_joined`

// rowScanner *sql.Row ve *sql.Rows için ortak Scan
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMember(row rowScanner) (*models.Member, error) {
	var m models.Member
	if err := row.Scan(&m.ID, &m.Username, &m.Payout, &m.LastPayoutDue, &m.DateJoined); err != nil {
		return nil, err
	}
	return &m, nil
}

// MemberRepository üye database işlemleri
type MemberRepository struct {
	db *sql.DB
}

// NewMemberRepository yeni repository oluşturur
func NewMemberRepository(db *sql.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

var _ interfaces.MemberRepositoryInterface = (*MemberRepository)(nil)

// Create yeni üye oluşturur
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) (*models.Member, error) {
	query := `
		INSERT INTO members (username, payout, last_payout_due, date_joined)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + memberColumns

	result, err := scanMember(r.db.QueryRowContext(ctx, query,
		member.Username, member.Payout, member.LastPayoutDue, member.DateJoined))
	if err != nil {
		return nil, db.ClassifyError(ctx, "insert", mapPQError(err, "üye oluşturulamadı"))
	}

	return result, nil
}

// BulkInsert üyeleri tek transaction içinde ekler ve eklenen satır sayısını döner.
// Var olan username'ler atlanır; mevcut üyenin payout'u import ile değişmez.
func (r *MemberRepository) BulkInsert(ctx context.Context, members []*models.Member) (int, error) {
	query := `
		INSERT INTO members (username, payout, last_payout_due, date_joined)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO NOTHING
		RETURNING id
	`

	count := 0
	err := db.WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("upsert sorgusu hazırlanamadı: %w", err)
		}
		defer stmt.Close()

		for _, m := range members {
			err := stmt.QueryRowContext(ctx, m.Username, m.Payout, m.LastPayoutDue, m.DateJoined).Scan(&m.ID)
			if errors.Is(err, sql.ErrNoRows) {
				// Çakışma: satır eklenmedi
				m.ID = 0
				continue
			}
			if err != nil {
				return fmt.Errorf("üye kaydedilemedi (%s): %w", m.Username, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// GetAll tüm üyeleri ID sırasıyla döner
func (r *MemberRepository) GetAll(ctx context.Context) ([]*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, db.ClassifyError(ctx, "query", fmt.Errorf("üyeler listelenemedi: %w", err))
	}
	defer rows.Close()

	members := make([]*models.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, db.ClassifyError(ctx, "query", fmt.Errorf("üye satırı okunamadı: %w", err))
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, db.ClassifyError(ctx, "query", fmt.Errorf("üye satırları okunurken hata: %w", err))
	}

	return members, nil
}

// GetByUsername username ile üye bulur
func (r *MemberRepository) GetByUsername(ctx context.Context, username string) (*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE username = $1`

	m, err := scanMember(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("üye %q: %w", username, models.ErrNotFound)
		}
		return nil, db.ClassifyError(ctx, "query", fmt.Errorf("üye arama hatası: %w", err))
	}

	return m, nil
}

// Delete üyeyi siler. payout_history satırlarına dokunulmaz.
func (r *MemberRepository) Delete(ctx context.Context, username string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE username = $1`, username)
	if err != nil {
		return 0, db.ClassifyError(ctx, "delete", fmt.Errorf("üye silinemedi: %w", err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("etkilenen satır sayısı alınamadı: %w", err)
	}

	return affected, nil
}

// MemberUnitOfWork üye işlemlerini PostgreSQL transaction'ı içinde çalıştırır
type MemberUnitOfWork struct {
	db *sql.DB
}

// NewMemberUnitOfWork yeni unit of work oluşturur
func NewMemberUnitOfWork(db *sql.DB) *MemberUnitOfWork {
	return &MemberUnitOfWork{db: db}
}

var _ interfaces.MemberUnitOfWork = (*MemberUnitOfWork)(nil)

// WithinTransaction fn'i tek transaction içinde çalıştırır
func (u *MemberUnitOfWork) WithinTransaction(ctx context.Context, fn func(tx interfaces.MemberTx) error) error {
	return db.WithTransaction(ctx, u.db, func(tx *sql.Tx) error {
		return fn(&memberTx{tx: tx})
	})
}

// memberTx transaction'a bağlı üye işlemleri
type memberTx struct {
	tx *sql.Tx
}

// GetForUpdate satırı FOR UPDATE ile kilitleyerek okur
func (t *memberTx) GetForUpdate(ctx context.Context, username string) (*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE username = $1 FOR UPDATE`

	m, err := scanMember(t.tx.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("üye %q: %w", username, models.ErrNotFound)
		}
		return nil, fmt.Errorf("üye kilitlenemedi: %w", err)
	}

	return m, nil
}

// Update payout ve last_payout_due alanlarını yazar
func (t *memberTx) Update(ctx context.Context, member *models.Member) error {
	query := `UPDATE members SET payout = $1, last_payout_due = $2 WHERE id = $3`

	res, err := t.tx.ExecContext(ctx, query, member.Payout, member.LastPayoutDue, member.ID)
	if err != nil {
		return fmt.Errorf("üye güncellenemedi: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("etkilenen satır sayısı alınamadı: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("üye %q: %w", member.Username, models.ErrNotFound)
	}

	return nil
}

// AppendHistory payout geçmişine kayıt ekler
func (t *memberTx) AppendHistory(ctx context.Context, entry *models.PayoutHistory) error {
	query := `
		INSERT INTO payout_history (username, amount, payout_date)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := t.tx.QueryRowContext(ctx, query, entry.Username, entry.Amount, entry.PayoutDate).Scan(&entry.ID); err != nil {
		return fmt.Errorf("payout geçmişi yazılamadı: %w", err)
	}

	return nil
}
