// internal/migration/runner_db.go
package migration

import (
	"context"
	"fmt"
)

// loadApplied tracking tablosundaki kayıtları version'a göre döner
func (r *Runner) loadApplied(ctx context.Context) (map[int64]AppliedMigration, error) {
	query := fmt.Sprintf(`SELECT version, name, up_checksum, applied_at FROM %s ORDER BY version`, r.config.TableName)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("uygulanmış migration'lar okunamadı: %w", err)
	}
	defer rows.Close()

	applied := make(map[int64]AppliedMigration)
	for rows.Next() {
		var a AppliedMigration
		if err := rows.Scan(&a.Version, &a.Name, &a.UpChecksum, &a.AppliedAt); err != nil {
			return nil, fmt.Errorf("migration kaydı okunamadı: %w", err)
		}
		applied[a.Version] = a
	}

	return applied, rows.Err()
}

// GetStatus diskteki dosyalarla tracking tablosunu karşılaştırır
func (r *Runner) GetStatus(ctx context.Context) (*Status, error) {
	migrations, err := r.LoadMigrationsFromDisk()
	if err != nil {
		return nil, err
	}

	applied, err := r.loadApplied(ctx)
	if err != nil {
		return nil, err
	}

	status := &Status{Health: StatusHealthy}
	for i := range migrations {
		m := &migrations[i]
		a, ok := applied[m.Version]
		if !ok {
			status.PendingCount++
			continue
		}

		appliedAt := a.AppliedAt
		m.Applied = true
		m.AppliedAt = &appliedAt
		m.ChecksumDiff = a.UpChecksum != m.UpChecksum
		status.AppliedCount++

		if m.Version > status.CurrentVersion {
			status.CurrentVersion = m.Version
		}
		if m.ChecksumDiff {
			status.Health = StatusError
		}
	}

	if status.Health == StatusHealthy && status.PendingCount > 0 {
		status.Health = StatusWarning
	}
	status.Migrations = migrations

	return status, nil
}
