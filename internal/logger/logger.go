package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init global zerolog logger'ını ortama göre ayarlar.
// Development'ta okunabilir console çıktısı, diğer ortamlarda JSON.
func Init(env, level string) {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", "guild-payout-api").Logger()
	}

	if err != nil {
		log.Warn().Str("level", level).Msg("Geçersiz LOG_LEVEL, info kullanılıyor")
	}
}
