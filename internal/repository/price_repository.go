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

const priceColumns = `id, item_name, timing, t7, t8,
	bw_4_3, bw_5_2, bw_5_3, bw_6_1, bw_6_2, bw_last_checked,
	fs_4_3, fs_5_2, fs_5_3, fs_6_1, fs_6_2, fs_last_checked,
	alternative_tier`

const insertPriceQuery = `
	INSERT INTO prices (item_name, timing, t7, t8,
		bw_4_3, bw_5_2, bw_5_3, bw_6_1, bw_6_2, bw_last_checked,
		fs_4_3, fs_5_2, fs_5_3, fs_6_1, fs_6_2, fs_last_checked,
		alternative_tier)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	RETURNING id
`

func scanPrice(row rowScanner) (*models.Price, error) {
	var p models.Price
	err := row.Scan(
		&p.ID, &p.ItemName, &p.Timing, &p.T7, &p.T8,
		&p.BW43, &p.BW52, &p.BW53, &p.BW61, &p.BW62, &p.BWLastChecked,
		&p.FS43, &p.FS52, &p.FS53, &p.FS61, &p.FS62, &p.FSLastChecked,
		&p.AlternativeTier,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// priceArgs id hariç kolon değerlerini insert/update sırasıyla döner
func priceArgs(p *models.Price) []interface{} {
	return []interface{}{
		p.ItemName, p.Timing, p.T7, p.T8,
		p.BW43, p.BW52, p.BW53, p.BW61, p.BW62, p.BWLastChecked,
		p.FS43, p.FS52, p.FS53, p.FS61, p.FS62, p.FSLastChecked,
		p.AlternativeTier,
	}
}

// PriceRepository fiyat database işlemleri
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository yeni repository oluşturur
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

var _ interfaces.PriceRepositoryInterface = (*PriceRepository)(nil)

// Create yeni fiyat kaydı oluşturur
func (r *PriceRepository) Create(ctx context.Context, price *models.Price) (*models.Price, error) {
	result := *price
	if err := r.db.QueryRowContext(ctx, insertPriceQuery, priceArgs(price)...).Scan(&result.ID); err != nil {
		return nil, db.ClassifyError(ctx, "insert", mapPQError(err, "fiyat oluşturulamadı"))
	}
	return &result, nil
}

// BulkCreate fiyatları tek transaction içinde ekler
func (r *PriceRepository) BulkCreate(ctx context.Context, prices []*models.Price) (int, error) {
	count := 0
	err := db.WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, insertPriceQuery)
		if err != nil {
			return fmt.Errorf("insert sorgusu hazırlanamadı: %w", err)
		}
		defer stmt.Close()

		for _, p := range prices {
			if err := stmt.QueryRowContext(ctx, priceArgs(p)...).Scan(&p.ID); err != nil {
				return fmt.Errorf("fiyat kaydedilemedi (%s): %w", p.ItemName, err)
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

// GetAll tüm fiyatları ID sırasıyla döner
func (r *PriceRepository) GetAll(ctx context.Context) ([]*models.Price, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+priceColumns+` FROM prices ORDER BY id`)
	if err != nil {
		return nil, db.ClassifyError(ctx, "query", fmt.Errorf("fiyatlar listelenemedi: %w", err))
	}
	defer rows.Close()

	prices := make([]*models.Price, 0)
	for rows.Next() {
		p, err := scanPrice(rows)
		if err != nil {
			return nil, db.ClassifyError(ctx, "query", fmt.Errorf("fiyat satırı okunamadı: %w", err))
		}
		prices = append(prices, p)
	}

	if err := rows.Err(); err != nil {
		return nil, db.ClassifyError(ctx, "query", fmt.Errorf("fiyat satırları okunurken hata: %w", err))
	}

	return prices, nil
}

// GetByID ID ile fiyat bulur
func (r *PriceRepository) GetByID(ctx context.Context, id int64) (*models.Price, error) {
	p, err := scanPrice(r.db.QueryRowContext(ctx, `SELECT `+priceColumns+` FROM prices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("fiyat %d: %w", id, models.ErrNotFound)
		}
		return nil, db.ClassifyError(ctx, "query", fmt.Errorf("fiyat arama hatası: %w", err))
	}
	return p, nil
}

// Update fiyat kaydının tüm alanlarını yazar
func (r *PriceRepository) Update(ctx context.Context, price *models.Price) error {
	query := `
		UPDATE prices SET item_name = $1, timing = $2, t7 = $3, t8 = $4,
			bw_4_3 = $5, bw_5_2 = $6, bw_5_3 = $7, bw_6_1 = $8, bw_6_2 = $9, bw_last_checked = $10,
			fs_4_3 = $11, fs_5_2 = $12, fs_5_3 = $13, fs_6_1 = $14, fs_6_2 = $15, fs_last_checked = $16,
			alternative_tier = $17
		WHERE id = $18
	`

	args := append(priceArgs(price), price.ID)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return db.ClassifyError(ctx, "update", fmt.Errorf("fiyat güncellenemedi: %w", err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("etkilenen satır sayısı alınamadı: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("fiyat %d: %w", price.ID, models.ErrNotFound)
	}

	return nil
}

// Delete fiyat kaydını siler, etkilenen satır sayısını döner
func (r *PriceRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM prices WHERE id = $1`, id)
	if err != nil {
		return 0, db.ClassifyError(ctx, "delete", fmt.Errorf("fiyat silinemedi: %w", err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("etkilenen satır sayısı alınamadı: %w", err)
	}

	return affected, nil
}
