package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/csg33k/approval-form/internal/adapters/httpclient"
	"github.com/csg33k/approval-form/internal/adapters/pdf"
	"github.com/csg33k/approval-form/internal/adapters/smtp"
	sqliteadapter "github.com/csg33k/approval-form/internal/adapters/sqlite"
	"github.com/csg33k/approval-form/internal/adapters/static"
	"github.com/csg33k/approval-form/internal/adapters/xlsx"
	"github.com/csg33k/approval-form/internal/config"
	"github.com/csg33k/approval-form/internal/handlers"
	"github.com/csg33k/approval-form/internal/ports"
	"github.com/csg33k/approval-form/internal/submission"
	"github.com/csg33k/approval-form/internal/webform"
)

func main() {
	configFile := flag.String("config", "", "path to a config file (default: ./config.yaml if present)")
	flag.Parse()

	envErr := godotenv.Load()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Dev())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	if envErr != nil {
		logger.Warn("error loading .env file", zap.Error(envErr))
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}
	loc, _ := cfg.Location()

	dir, closeDir, err := openDirectory(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open supervisor directory", zap.Error(err))
	}
	defer closeDir()

	mailer, err := smtp.New(smtp.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.EmailUser,
		Password: cfg.EmailPassword,
		FromName: cfg.FromName,
		Timeout:  cfg.SMTPTimeout,
	})
	if err != nil {
		logger.Fatal("failed to configure mail relay", zap.Error(err))
	}

	opts := []submission.Option{
		submission.WithLocation(loc),
		submission.WithLogger(logger.Named("submission")),
	}
	if cfg.PDFFontPath != "" {
		receipts, err := pdf.New(cfg.PDFFontPath)
		if err != nil {
			logger.Fatal("failed to load receipt font", zap.Error(err))
		}
		opts = append(opts, submission.WithReceipts(receipts))
	}
	svc := submission.NewService(mailer, xlsx.New(), cfg.AdminEmail, opts...)

	endpoint := cfg.EndpointURL
	if endpoint == "" {
		endpoint = "http://localhost:" + cfg.Port + handlers.EndpointPath
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	calendar := webform.NewCalendar(loc, time.Hour, nil)
	go calendar.Run(ctx)

	h := handlers.New(handlers.Deps{
		Directory:          dir,
		Submitter:          svc,
		Client:             httpclient.New(endpoint, nil),
		Calendar:           calendar,
		Log:                logger,
		ExposeErrorDetails: cfg.ExposeErrorDetails,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.Routes(cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("approval form running",
			zap.String("addr", "http://localhost:"+cfg.Port),
			zap.String("endpoint", endpoint),
			zap.String("month", calendar.Current().MonthYear()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// openDirectory picks the SQLite directory when configured, then a list from
// the config file, then the built-in table.
func openDirectory(cfg *config.Config, logger *zap.Logger) (ports.SupervisorDirectory, func(), error) {
	switch {
	case cfg.DirectoryDB != "":
		repo, err := sqliteadapter.New(cfg.DirectoryDB)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("supervisor directory", zap.String("source", "sqlite"), zap.String("db", cfg.DirectoryDB))
		return repo, func() { _ = repo.Close() }, nil
	case len(cfg.Supervisors) > 0:
		logger.Info("supervisor directory", zap.String("source", "config"), zap.Int("count", len(cfg.Supervisors)))
		return static.New(cfg.Supervisors), func() {}, nil
	default:
		logger.Info("supervisor directory", zap.String("source", "built-in"))
		return static.Default(), func() {}, nil
	}
}
