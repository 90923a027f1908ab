// internal/migration/runner_execution.go
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/guild-payout-api/internal/db"
)

// RunUp bekleyen migration'ları sırayla uygular, target > 0 ise o version'da durur
func (r *Runner) RunUp(ctx context.Context, target int64) ([]Result, error) {
	if err := r.Initialize(ctx); err != nil {
		return nil, err
	}

	status, err := r.GetStatus(ctx)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, m := range status.Migrations {
		if m.Applied {
			if m.ChecksumDiff && r.config.ValidateChecksums {
				return results, fmt.Errorf("migration %d_%s uygulandıktan sonra değiştirilmiş", m.Version, m.Name)
			}
			continue
		}
		if target > 0 && m.Version > target {
			break
		}

		result := r.execute(ctx, m, DirectionUp)
		results = append(results, result)
		if !result.Success {
			return results, fmt.Errorf("migration %d başarısız: %s", m.Version, result.Error)
		}
	}

	return results, nil
}

// RunDown target'tan büyük uygulanmış migration'ları tersten geri alır
func (r *Runner) RunDown(ctx context.Context, target int64) ([]Result, error) {
	status, err := r.GetStatus(ctx)
	if err != nil {
		return nil, err
	}

	var results []Result
	for i := len(status.Migrations) - 1; i >= 0; i-- {
		m := status.Migrations[i]
		if !m.Applied || m.Version <= target {
			continue
		}
		if !m.HasDownFile {
			return results, fmt.Errorf("migration %d_%s için down dosyası yok", m.Version, m.Name)
		}

		result := r.execute(ctx, m, DirectionDown)
		results = append(results, result)
		if !result.Success {
			return results, fmt.Errorf("rollback %d başarısız: %s", m.Version, result.Error)
		}
	}

	return results, nil
}

// execute migration'ı tek transaction içinde çalıştırır ve tracking tablosunu günceller
func (r *Runner) execute(ctx context.Context, m Migration, direction Direction) Result {
	start := time.Now()
	result := Result{Version: m.Version, Name: m.Name, Direction: direction}

	script := m.UpSQL
	if direction == DirectionDown {
		script = m.DownSQL
	}
	statements := splitSQLStatements(script)

	err := db.WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		for i, stmt := range statements {
			if r.config.Verbose {
				log.Info().Int64("version", m.Version).Int("statement", i+1).Msg("SQL çalıştırılıyor")
			}
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("statement %d: %w", i+1, err)
			}
		}
		return r.record(ctx, tx, m, direction, time.Since(start))
	})

	result.ExecutionTime = time.Since(start)
	result.Statements = len(statements)
	if err != nil {
		result.Error = err.Error()
		log.Error().
			Err(err).
			Int64("version", m.Version).
			Str("direction", string(direction)).
			Msg("❌ Migration başarısız")
		return result
	}

	result.Success = true
	log.Info().
		Int64("version", m.Version).
		Str("name", m.Name).
		Str("direction", string(direction)).
		Dur("duration", result.ExecutionTime).
		Msg("✅ Migration uygulandı")

	return result
}

// record tracking tablosuna kayıt ekler ya da siler
func (r *Runner) record(ctx context.Context, tx *sql.Tx, m Migration, direction Direction, elapsed time.Duration) error {
	if direction == DirectionDown {
		query := fmt.Sprintf(`DELETE FROM %s WHERE version = $1`, r.config.TableName)
		_, err := tx.ExecContext(ctx, query, m.Version)
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (version, name, up_checksum, execution_time_ms) VALUES ($1, $2, $3, $4)`, r.config.TableName)
	_, err := tx.ExecContext(ctx, query, m.Version, m.Name, m.UpChecksum, elapsed.Milliseconds())
	return err
}

// splitSQLStatements script'i ';' ile böler; string, $$ blokları ve yorumlar içindeki ';' sayılmaz
func splitSQLStatements(script string) []string {
	var (
		statements []string
		current    strings.Builder
		quote      byte   // ' veya " içindeyken
		dollarTag  string // $tag$ bloğu içindeyken
	)

	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	for i := 0; i < len(script); i++ {
		c := script[i]

		switch {
		case dollarTag != "":
			if strings.HasPrefix(script[i:], dollarTag) {
				current.WriteString(dollarTag)
				i += len(dollarTag) - 1
				dollarTag = ""
				continue
			}
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '$':
			if tag := dollarQuoteTag(script[i:]); tag != "" {
				dollarTag = tag
				current.WriteString(tag)
				i += len(tag) - 1
				continue
			}
		case c == '-' && strings.HasPrefix(script[i:], "--"):
			end := strings.IndexByte(script[i:], '\n')
			if end < 0 {
				i = len(script)
			} else {
				i += end
				current.WriteByte('\n')
			}
			continue
		case c == '/' && strings.HasPrefix(script[i:], "/*"):
			end := strings.Index(script[i+2:], "*/")
			if end < 0 {
				i = len(script)
			} else {
				i += end + 3
			}
			continue
		case c == ';':
			flush()
			continue
		}

		current.WriteByte(c)
	}
	flush()

	return statements
}

// dollarQuoteTag s '$tag$' ile başlıyorsa etiketi döner
func dollarQuoteTag(s string) string {
	for j := 1; j < len(s); j++ {
		c := s[j]
		if c == '$' {
			return s[:j+1]
		}
		if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (j > 1 && c >= '0' && c <= '9')) {
			return ""
		}
	}
	return ""
}
