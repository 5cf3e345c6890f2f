package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/accessguide/accessguide-backend/config"
	httpapi "github.com/accessguide/accessguide-backend/internal/api/http"
	"github.com/accessguide/accessguide-backend/internal/api/http/middleware"
	"github.com/accessguide/accessguide-backend/internal/auth"
	authmw "github.com/accessguide/accessguide-backend/internal/auth/middleware"
	"github.com/accessguide/accessguide-backend/internal/bootstrap"
	cronjob "github.com/accessguide/accessguide-backend/internal/contact/cron"
	"github.com/accessguide/accessguide-backend/internal/contact/forwarder"
	contactrepo "github.com/accessguide/accessguide-backend/internal/contact/repository"
	contactservice "github.com/accessguide/accessguide-backend/internal/contact/service"
	"github.com/accessguide/accessguide-backend/internal/logging"
	"github.com/accessguide/accessguide-backend/internal/quiz/bank"
	quizrepo "github.com/accessguide/accessguide-backend/internal/quiz/repository"
	quizservice "github.com/accessguide/accessguide-backend/internal/quiz/service"
	"github.com/accessguide/accessguide-backend/internal/sitemap/publisher"
	sitemaprepo "github.com/accessguide/accessguide-backend/internal/sitemap/repository"
	sitemapservice "github.com/accessguide/accessguide-backend/internal/sitemap/service"
	"github.com/accessguide/accessguide-backend/internal/storage/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logging.SetBase(logger)
	for _, w := range cfg.Warnings {
		logger.Warn("config", zap.String("warning", w))
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]httpapi.Pinger{"postgres": nil, "redis": nil}
	deps := bootstrap.RouterDeps{
		ServiceName: cfg.App.ServiceName,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,

		TrustedProxies: cfg.Server.TrustedProxies,
	}

	var (
		pool      *pgxpool.Pool
		sqlDB     *sql.DB
		rdb       *redis.Client
		scheduler *cronjob.Scheduler
	)
	defer func() {
		if pool != nil {
			pool.Close()
		}
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		if rdb != nil {
			_ = rdb.Close()
		}
	}()

	var pub publisher.Publisher
	if cfg.Sitemap.S3Bucket != "" {
		s3pub, err := publisher.NewS3Publisher(ctx, publisher.Config{
			Bucket:        cfg.Sitemap.S3Bucket,
			Region:        cfg.Sitemap.S3Region,
			Prefix:        cfg.Sitemap.S3Prefix,
			PublicBaseURL: cfg.Sitemap.PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("sitemap publisher: %w", err)
		}
		pub = s3pub
		logger.Info("sitemap publishing enabled", zap.String("bucket", cfg.Sitemap.S3Bucket))
	}

	deps.AdminAuth, err = buildAdminAuth(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.Database.Enabled() {
		pool, err = bootstrap.OpenPostgres(ctx, &cfg.Database)
		if err != nil {
			return err
		}
		checks["postgres"] = pool

		sqlDB, err = postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			return err
		}

		sitemaps := sitemaprepo.NewSitemapRepository(pool)
		contacts := contactrepo.NewSubmissionRepository(sqlDB)
		if cfg.Database.Migrate {
			if err := sitemaps.Migrate(ctx); err != nil {
				return err
			}
			if err := contacts.Migrate(ctx); err != nil {
				return err
			}
		}
		deps.Sitemaps = sitemapservice.NewSitemapService(sitemaps, pub)

		fwd := forwarder.New(forwarder.Config{
			URL:          cfg.Contact.ForwardURL,
			Timeout:      cfg.Contact.ForwardTimeout,
			TokenURL:     cfg.Contact.TokenURL,
			ClientID:     cfg.Contact.ClientID,
			ClientSecret: cfg.Contact.ClientSecret,
			Scopes:       cfg.Contact.Scopes,
			RatePerSec:   cfg.Contact.OutboundPerSec,
		}, nil)
		if cfg.Contact.ForwardURL == "" {
			logger.Warn("CONTACT_FORWARD_URL is not set; contact submissions will be stored as failed")
		}
		deps.Contact = contactservice.NewContactService(contacts, fwd)
		deps.ContactLimiter = middleware.NewClientRateLimiter(cfg.Contact.InboundPerMinute, cfg.Contact.InboundBurst, 10*time.Minute)

		scheduler = cronjob.NewScheduler(deps.Contact, cfg.Contact.RetentionPeriod(), cfg.Contact.CronSpec)
		if err := scheduler.Start(); err != nil {
			return err
		}
	} else {
		logger.Warn("database not configured; sitemap archive and contact form are disabled")
		deps.Sitemaps = sitemapservice.NewSitemapService(nil, pub)
	}

	if cfg.Redis.Addr != "" {
		rdb, err = bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		checks["redis"] = httpapi.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })

		quiz, err := bank.Default()
		if err != nil {
			return fmt.Errorf("load quiz: %w", err)
		}
		deps.Quiz = quizservice.NewQuizService(quiz, quizrepo.NewSessionRepository(rdb, cfg.Redis.SessionTTL))
	} else {
		logger.Warn("REDIS_ADDR not set; quiz sessions are disabled")
	}

	deps.HealthChecks = checks
	router := bootstrap.BuildRouter(deps)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	if scheduler != nil {
		if err := scheduler.Stop(shutdownCtx); err != nil {
			logger.Error("cron shutdown", zap.Error(err))
		}
	}
	return nil
}

func buildAdminAuth(ctx context.Context, cfg *config.Config) (gin.HandlerFunc, error) {
	client, err := auth.NewAdminTokenVerifier(ctx, &cfg.Firebase)
	if errors.Is(err, auth.ErrFirebaseDisabled) {
		return authmw.AdminAuth(nil, "", cfg.Contact.AdminAPIKey), nil
	}
	if err != nil {
		return nil, err
	}
	return authmw.AdminAuth(client, cfg.Firebase.AdminClaim, cfg.Contact.AdminAPIKey), nil
}
