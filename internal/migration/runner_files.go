// internal/migration/runner_files.go
package migration

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Dosya adı formatı: <version>_<name>.<up|down>.sql
//   - 6 haneli: sıra numarası (000001)
//   - 14 haneli: timestamp (YYYYMMDDHHMMSS)
var migrationFilePattern = regexp.MustCompile(`^(\d{6}|\d{14})_([a-zA-Z0-9_]+)\.(up|down)\.sql$`)

// LoadMigrationsFromDisk klasördeki migration dosyalarını version sırasıyla okur
func (r *Runner) LoadMigrationsFromDisk() ([]Migration, error) {
	upFiles, err := filepath.Glob(filepath.Join(r.config.MigrationsPath, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("migration dosyaları bulunamadı: %w", err)
	}

	migrations := make([]Migration, 0, len(upFiles))
	seen := make(map[int64]string, len(upFiles))

	for _, upFile := range upFiles {
		m, err := parseMigrationFile(upFile)
		if err != nil {
			return nil, err
		}
		if other, dup := seen[m.Version]; dup {
			return nil, fmt.Errorf("aynı version iki dosyada: %d (%s, %s)", m.Version, other, filepath.Base(upFile))
		}
		seen[m.Version] = filepath.Base(upFile)
		migrations = append(migrations, m)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// parseMigrationFile .up.sql dosyasını ve varsa eşi olan .down.sql'i okur
func parseMigrationFile(upFilePath string) (Migration, error) {
	filename := filepath.Base(upFilePath)
	matches := migrationFilePattern.FindStringSubmatch(filename)
	if len(matches) != 4 || matches[3] != "up" {
		return Migration{}, fmt.Errorf("geçersiz migration dosya formatı: %s", filename)
	}

	version, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return Migration{}, fmt.Errorf("geçersiz version formatı %s: %w", matches[1], err)
	}

	upContent, err := os.ReadFile(upFilePath)
	if err != nil {
		return Migration{}, fmt.Errorf("UP dosyası okunamadı %s: %w", upFilePath, err)
	}

	m := Migration{
		Version:    version,
		Name:       matches[2],
		UpSQL:      string(upContent),
		UpChecksum: checksum(upContent),
	}

	downFilePath := strings.TrimSuffix(upFilePath, ".up.sql") + ".down.sql"
	if downContent, err := os.ReadFile(downFilePath); err == nil {
		m.DownSQL = string(downContent)
		m.HasDownFile = true
	}

	return m, nil
}

// checksum dosya içeriğinin SHA-256 özeti
func checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// CreateMigrationFiles boş up/down dosya çifti oluşturur, oluşan dosya yollarını döner
func CreateMigrationFiles(dir, name string, now time.Time) (string, string, error) {
	cleanName := cleanMigrationName(name)
	if cleanName == "" {
		return "", "", fmt.Errorf("geçersiz migration adı: %q", name)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("migration klasörü oluşturulamadı: %w", err)
	}

	version := now.Format("20060102150405")
	upPath := filepath.Join(dir, fmt.Sprintf("%s_%s.up.sql", version, cleanName))
	downPath := filepath.Join(dir, fmt.Sprintf("%s_%s.down.sql", version, cleanName))

	upContent := fmt.Sprintf("-- Migration: %s\n-- Created: %s\n\n", name, now.Format(time.RFC3339))
	downContent := fmt.Sprintf("-- Rollback: %s\n-- Created: %s\n\n", name, now.Format(time.RFC3339))

	if err := os.WriteFile(upPath, []byte(upContent), 0644); err != nil {
		return "", "", fmt.Errorf("UP dosyası oluşturulamadı: %w", err)
	}
	if err := os.WriteFile(downPath, []byte(downContent), 0644); err != nil {
		return "", "", fmt.Errorf("DOWN dosyası oluşturulamadı: %w", err)
	}

	return upPath, downPath, nil
}

// cleanMigrationName adı dosya adına uygun snake_case'e çevirir
func cleanMigrationName(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
