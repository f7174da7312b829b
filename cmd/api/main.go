package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"mergingtonactivities/config"
	_ "mergingtonactivities/docs"
	"mergingtonactivities/internal/adapters/email"
	delivery "mergingtonactivities/internal/delivery/http"
	"mergingtonactivities/internal/delivery/http/controllers"
	"mergingtonactivities/internal/delivery/http/middleware"
	"mergingtonactivities/internal/domain"
	"mergingtonactivities/internal/metrics"
	"mergingtonactivities/internal/repository/memory"
	"mergingtonactivities/internal/repository/postgres"
	"mergingtonactivities/internal/services"
)

const shutdownTimeout = 10 * time.Second

// @title Mergington High School Activities API
// @version 1.0
// @description View extracurricular activities and sign students up or remove them.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	catalog, err := loadCatalog(cfg.ActivitiesFile)
	if err != nil {
		return err
	}
	logger.Info("activity catalog loaded", "activities", len(catalog), "file", cfg.ActivitiesFile)

	var opts []services.ActivityServiceOption

	if cfg.DBUrl != "" {
		db, err := openDB(ctx, cfg.DBUrl)
		if err != nil {
			return err
		}
		defer db.Close()
		opts = append(opts, services.WithAuditLog(postgres.NewRosterEventRepository(db)))
		logger.Info("roster audit log enabled")
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}
	emails := services.NewAsyncEmailService(
		services.NewEmailService(mailer, email.NewTemplateRenderer(), logger),
		logger, cfg.Email.MaxInFlight, cfg.Email.SendTimeout,
	)
	opts = append(opts, services.WithEmails(emails))

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
		opts = append(opts, services.WithRecorder(m))
	}

	activityService := services.NewActivityService(memory.NewActivityRepository(catalog), logger, opts...)

	router := delivery.NewRouter(delivery.RouterConfig{
		Logger:         logger,
		Activities:     controllers.NewActivityController(logger, activityService),
		Metrics:        m,
		Limiter:        middleware.NewClientLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := emails.Close(shutdownCtx); err != nil {
		return fmt.Errorf("drain emails: %w", err)
	}
	return nil
}

func loadCatalog(path string) (map[string]*domain.Activity, error) {
	if path == "" {
		return memory.BuiltinCatalog(), nil
	}
	return memory.LoadCatalogFile(path)
}

func openDB(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
