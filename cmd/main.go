package main

import (
	"context"
	"database/sql"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/guild-payout-api/internal/config"
	"github.com/onerilhan/guild-payout-api/internal/db"
	"github.com/onerilhan/guild-payout-api/internal/handlers"
	"github.com/onerilhan/guild-payout-api/internal/interfaces"
	"github.com/onerilhan/guild-payout-api/internal/logger"
	"github.com/onerilhan/guild-payout-api/internal/metrics"
	"github.com/onerilhan/guild-payout-api/internal/middleware"
	apierrors "github.com/onerilhan/guild-payout-api/internal/middleware/errors"
	"github.com/onerilhan/guild-payout-api/internal/migration"
	"github.com/onerilhan/guild-payout-api/internal/repository"
	"github.com/onerilhan/guild-payout-api/internal/services"
	"github.com/onerilhan/guild-payout-api/internal/storage"
)

// repositories seçilen storage driver'ın ürettiği katman
type repositories struct {
	members interfaces.MemberRepositoryInterface
	history interfaces.PayoutHistoryRepositoryInterface
	uow     interfaces.MemberUnitOfWork
	prices  interfaces.PriceRepositoryInterface
	pinger  handlers.Pinger
}

func main() {
	// .env dosyasını yükle
	if err := godotenv.Load(); err != nil {
		stdlog.Println(".env dosyası bulunamadı, ortam değişkenlerinden okunacak.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		stdlog.Fatalf("config yüklenemedi: %v", err)
	}

	logger.Init(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("environment", cfg.AppEnv).
		Str("port", cfg.Port).
		Str("storage", cfg.StorageDriver).
		Msg("🚀 Guild Payout API başlatıldı")

	repos, database := setupStorage(cfg)
	if database != nil {
		defer database.Close()
	}

	m := metrics.New()

	memberService := services.NewMemberService(repos.members, repos.history, repos.uow, m, cfg.TxTimeout)
	priceService := services.NewPriceService(repos.prices, cfg.TxTimeout)

	memberHandler := handlers.NewMemberHandler(memberService, cfg.MaxUploadBytes)
	priceHandler := handlers.NewPriceHandler(priceService, cfg.MaxUploadBytes)

	router := setupRouter(memberHandler, priceHandler, m, repos.pinger, cfg.StorageDriver)

	// Rate limiter cleanup goroutine'i shutdown'da durur
	limiterCtx, stopLimiter := context.WithCancel(context.Background())
	defer stopLimiter()

	rateLimitConfig := middleware.DefaultRateLimitConfig()
	rateLimitConfig.RequestsPerMinute = cfg.RateLimitRPM
	rateLimiter := middleware.NewRateLimiter(limiterCtx, rateLimitConfig)

	securityConfig := middleware.DefaultSecurityConfig()
	if !cfg.IsDevelopment() {
		securityConfig = middleware.ProductionSecurityConfig()
	}

	// Dıştan içe: CORS -> logging -> recovery -> security -> rate limit -> router
	var handler http.Handler = router
	handler = rateLimiter.Handler(handler)
	handler = middleware.SecurityHeadersMiddleware(securityConfig)(handler)
	handler = middleware.RecoveryMiddleware(apierrors.ForEnv(cfg.AppEnv))(handler)
	handler = middleware.RequestLoggingMiddleware(middleware.DefaultLoggingConfig())(handler)
	handler = middleware.CORSMiddleware(middleware.DefaultCORSConfig(cfg.CORSOrigins))(handler)

	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().
			Str("addr", serverAddr).
			Int("read_timeout", 15).
			Int("write_timeout", 15).
			Int("idle_timeout", 60).
			Msg("🌐 HTTP Server (Gorilla Mux) başlatıldı")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("❌ Server başlatma hatası")
		}
	}()

	<-shutdown
	log.Info().Msg("🛑 Shutdown signal alındı, server kapatılıyor...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("❌ HTTP Server kapatma hatası")
	} else {
		log.Info().Msg("✅ HTTP Server başarıyla kapatıldı")
	}

	stopLimiter()
	log.Info().Msg("👋 Guild Payout API başarıyla kapatıldı")
}

// setupStorage STORAGE_DRIVER'a göre repository'leri kurar. Postgres için
// açılan bağlantı da döner, memory driver'da nil'dir.
func setupStorage(cfg *config.Config) (repositories, *sql.DB) {
	if cfg.StorageDriver == config.DriverMemory {
		store := storage.NewMemoryStore()
		log.Warn().Msg("⚠️  Bellek içi storage kullanılıyor, veriler kalıcı değil")
		return repositories{
			members: store.Members(),
			history: store.PayoutHistory(),
			uow:     store.UnitOfWork(),
			prices:  store.Prices(),
		}, nil
	}

	database, err := db.Connect(cfg.GetDSN(), cfg.DBMaxOpenConns)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Veritabanı bağlantısı başarısız")
	}

	if cfg.AutoMigrate {
		runMigrations(database, cfg.MigrationsPath)
	}

	return repositories{
		members: repository.NewMemberRepository(database),
		history: repository.NewPayoutHistoryRepository(database),
		uow:     repository.NewMemberUnitOfWork(database),
		prices:  repository.NewPriceRepository(database),
		pinger:  database,
	}, database
}

// runMigrations bekleyen migration'ları başlangıçta uygular
func runMigrations(database *sql.DB, path string) {
	runner, err := migration.NewRunner(database, migration.DefaultConfig(path))
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Migration runner oluşturulamadı")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	results, err := runner.RunUp(ctx, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Migration başarısız")
	}

	log.Info().Int("applied", len(results)).Msg("🗂️  Migration'lar güncel")
}

// setupRouter Gorilla Mux router'ını ayarlar
func setupRouter(memberHandler *handlers.MemberHandler, priceHandler *handlers.PriceHandler, m *metrics.Metrics, pinger handlers.Pinger, driver string) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = middleware.NotFoundJSONHandler()
	router.MethodNotAllowedHandler = middleware.MethodNotAllowedJSONHandler()

	// Route template'i okuyabilmek için router seviyesinde
	router.Use(middleware.MetricsMiddleware(m))

	router.HandleFunc("/health", handlers.HealthHandler(pinger, driver)).Methods("GET")
	router.Handle("/metrics", m.Handler()).Methods("GET")

	memberHandler.RegisterRoutes(router)
	priceHandler.RegisterRoutes(router)

	router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err == nil {
			methods, _ := route.GetMethods()
			log.Debug().
				Str("path", pathTemplate).
				Strs("methods", methods).
				Msg("📍 Route registered")
		}
		return nil
	})

	return router
}
