package main

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	"wellness-admin/config"
	"wellness-admin/consumer"
	"wellness-admin/gateway"
	"wellness-admin/handlers"
	"wellness-admin/middleware"
	"wellness-admin/models"
	"wellness-admin/monitoring"
	"wellness-admin/router"
	"wellness-admin/session"
	"wellness-admin/utils"
	"wellness-admin/web"
)

func main() {
	logger := log.New(os.Stdout, "WELLNESS: ", log.LstdFlags|log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		logger.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	models.DefaultLocation = cfg.Timezone
	monitoring.Init()

	if cfg.SentryDSN != "" {
		if err := utils.InitSentry(cfg.SentryDSN, cfg.AppEnv, cfg.AppVersion); err != nil {
			logger.Printf("Sentry disabled: %v", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore := openSessionStore(ctx, cfg, logger)
	defer closeStore()
	sessions := session.NewService(store, cfg.SessionTTL)

	var events utils.KafkaProducer
	if cfg.KafkaBroker != "" {
		events, err = utils.NewKafkaProducer(cfg.KafkaBroker)
		if err != nil {
			logger.Printf("Activity events disabled: %v", err)
		} else {
			defer events.Close()
		}
	}

	var search utils.ElasticsearchClient
	if cfg.ElasticsearchURL != "" {
		search, err = utils.NewElasticsearchClient(cfg.ElasticsearchURL)
		if err != nil {
			logger.Printf("Activity reports disabled: %v", err)
		} else {
			defer search.Close()
		}
	}

	if events != nil && search != nil {
		activity := consumer.NewActivityConsumer(consumer.Config{
			Broker:  cfg.KafkaBroker,
			Topic:   cfg.EventsTopic,
			GroupID: cfg.ConsumerGroup,
			Index:   cfg.ActivityIndex,
		}, search, logger)
		activity.Start(ctx)
		defer activity.Stop()
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Fatalf("Failed to load templates: %v", err)
	}

	h := handlers.New(handlers.Deps{
		Gateway:  gateway.New(cfg.BackendURL),
		Sessions: sessions,
		Events:   events,
		Search:   search,
		Logger:   logger,
	}, handlers.Options{
		LoginMode:       cfg.LoginMode,
		InitialPassword: cfg.InitialPassword,
		Location:        cfg.Timezone,
		CookieSecure:    cfg.CookieSecure,
		EventsTopic:     cfg.EventsTopic,
		ActivityIndex:   cfg.ActivityIndex,
	})

	csrfKey := cfg.CSRFKey
	if len(csrfKey) == 0 {
		csrfKey = make([]byte, 32)
		if _, err := rand.Read(csrfKey); err != nil {
			logger.Fatalf("Failed to generate CSRF key: %v", err)
		}
		logger.Println("CSRF_KEY not set; forms opened before a restart will be rejected")
	}

	engine := router.New(h, sessions, renderer, router.Options{
		Guard:        cfg.RouteGuard,
		LoginLimiter: middleware.NewRateLimiter(cfg.LoginRatePerMinute, cfg.LoginBurst),
		CSRFKey:      csrfKey,
		CookieSecure: cfg.CookieSecure,
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Printf("Server is running on port %s (backend %s, login mode %s)", cfg.Port, cfg.BackendURL, cfg.LoginMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("Shutdown error: %v", err)
	}
}

// openSessionStore connects the configured session backend and returns its
// close function.
func openSessionStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (session.Store, func()) {
	switch cfg.SessionStore {
	case config.SessionStoreMemory:
		logger.Println("Sessions are kept in memory")
		return session.NewMemoryStore(), func() {}

	case config.SessionStorePostgres:
		repo, err := models.NewPostgresRepository(cfg.DatabaseDSN)
		if err != nil {
			logger.Fatalf("Failed to open session database: %v", err)
		}
		go purgeSessions(ctx, repo, logger)
		return session.NewRepositoryStore(repo), func() {
			if err := repo.Close(); err != nil {
				logger.Printf("Error closing database connection: %v", err)
			}
		}
	}

	// Пытаемся подключиться к Redis с ретраями
	var redisClient utils.RedisClient
	var err error
	maxRetries := 5
	retryDelay := 3 * time.Second

	for i := 0; i < maxRetries; i++ {
		redisClient, err = utils.NewRedisClient(cfg.RedisHost, cfg.RedisPassword)
		if err == nil {
			break
		}
		logger.Printf("Attempt %d: Failed to connect to Redis: %v", i+1, err)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	if err != nil {
		logger.Fatalf("Failed to initialize Redis after %d attempts: %v", maxRetries, err)
	}
	return session.NewRedisStore(redisClient), func() {
		if err := redisClient.Close(); err != nil {
			logger.Printf("Error closing Redis connection: %v", err)
		}
	}
}

func purgeSessions(ctx context.Context, repo *models.PostgresRepository, logger *log.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.PurgeExpired(ctx)
			if err != nil {
				logger.Printf("Session purge failed: %v", err)
				continue
			}
			if n > 0 {
				logger.Printf("Purged %d expired sessions", n)
			}
		}
	}
}
