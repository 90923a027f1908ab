// internal/migration/types.go
package migration

import "time"

// Direction migration yönünü belirtir
type Direction string

const (
	DirectionUp   Direction = "up"   // İleri migration (CREATE, ALTER)
	DirectionDown Direction = "down" // Geri migration (DROP)
)

// HealthStatus migration sisteminin genel sağlık durumu
type HealthStatus string

const (
	StatusHealthy HealthStatus = "healthy" // Tüm migration'lar uygulanmış
	StatusWarning HealthStatus = "warning" // Pending migration var
	StatusError   HealthStatus = "error"   // Checksum uyuşmazlığı
)

// Migration tek bir veritabanı migration'ı
type Migration struct {
	Version      int64      `json:"version"`
	Name         string     `json:"name"`
	UpSQL        string     `json:"-"`
	DownSQL      string     `json:"-"`
	UpChecksum   string     `json:"upChecksum"`
	HasDownFile  bool       `json:"hasDownFile"`
	Applied      bool       `json:"applied"`
	AppliedAt    *time.Time `json:"appliedAt,omitempty"`
	ChecksumDiff bool       `json:"checksumDiff,omitempty"` // Dosya uygulandıktan sonra değişmiş
}

// AppliedMigration tracking tablosundaki kayıt
type AppliedMigration struct {
	Version    int64
	Name       string
	UpChecksum string
	AppliedAt  time.Time
}

// Status migration sisteminin genel durumu
type Status struct {
	CurrentVersion int64        `json:"currentVersion"`
	Migrations     []Migration  `json:"migrations"`
	AppliedCount   int          `json:"appliedCount"`
	PendingCount   int          `json:"pendingCount"`
	Health         HealthStatus `json:"health"`
}

// Result tek migration çalıştırmasının sonucu
type Result struct {
	Version       int64         `json:"version"`
	Name          string        `json:"name"`
	Direction     Direction     `json:"direction"`
	Success       bool          `json:"success"`
	Statements    int           `json:"statements"`
	ExecutionTime time.Duration `json:"executionTime"`
	Error         string        `json:"error,omitempty"`
}

// Config migration ayarları
type Config struct {
	MigrationsPath    string // Migration dosyalarının klasörü
	TableName         string // Takip tablosu adı
	ValidateChecksums bool   // Uygulanmış dosya değiştiyse up'ı durdur
	Verbose           bool   // Detaylı log
}

// DefaultConfig varsayılan ayarları döner
func DefaultConfig(path string) *Config {
	if path == "" {
		path = "migrations"
	}
	return &Config{
		MigrationsPath:    path,
		TableName:         "schema_migrations",
		ValidateChecksums: true,
	}
}
