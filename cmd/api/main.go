package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/database"
	"github.com/justsurfingit/job-board/internal/handlers"
	"github.com/justsurfingit/job-board/internal/mailer"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/justsurfingit/job-board/internal/storage"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "job-board",
		Short:        "Job board API: accounts, companies, jobs and applications",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "optional YAML config file; environment variables take precedence")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, configPath)
		},
	}
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(*cobra.Command, []string) error {
			_, logger, db, err := bootstrap(configPath)
			if err != nil {
				return err
			}
			defer closeDB(db, logger)
			logger.Info("migrations applied")
			return nil
		},
	}

	root.AddCommand(serveCmd, migrateCmd)
	// Running the binary bare serves the API
	root.RunE = serveCmd.RunE
	return root
}

// bootstrap loads config, sets up logging and opens a migrated database.
func bootstrap(configPath string) (*config.Config, *slog.Logger, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		return nil, nil, nil, err
	}
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("database unavailable", "error", err)
		return nil, nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("migration failed", "error", err)
		closeDB(db, logger)
		return nil, nil, nil, err
	}
	return cfg, logger, db, nil
}

func serve(ctx context.Context, configPath string) error {
	cfg, logger, db, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer closeDB(db, logger)

	// 1. Resume storage
	var (
		files     storage.Gateway
		uploadDir string
	)
	switch cfg.Storage.Driver {
	case "cloudinary":
		files, err = storage.NewCloudinary(cfg.Storage.CloudinaryURL)
	default:
		files, err = storage.NewLocal(cfg.Storage.UploadDir, cfg.Storage.PublicBaseURL)
		uploadDir = cfg.Storage.UploadDir
	}
	if err != nil {
		logger.Error("storage unavailable", "driver", cfg.Storage.Driver, "error", err)
		return err
	}

	// 2. Outgoing mail
	var mail mailer.Mailer = mailer.Log{Logger: logger}
	if cfg.SMTP.Enabled() {
		mail = mailer.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	} else {
		logger.Warn("SMTP_HOST not set, emails will only be logged")
	}

	// 3. Services
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	cascade := services.NewCascader(db, files, logger)
	email := services.NewEmailService(mail, logger)

	// 4. Router
	gin.SetMode(gin.ReleaseMode)
	router := handlers.NewRouter(handlers.Deps{
		DB:           db,
		Tokens:       tokens,
		Users:        services.NewUserService(db, tokens, email, cascade, cfg.OTPTTL, logger),
		Companies:    services.NewCompanyService(db, cascade, logger),
		Jobs:         services.NewJobService(db, cascade, logger),
		Applications: services.NewApplicationService(db, files, cfg.Storage.ResumeFolder, logger),
		Exports:      services.NewExportService(db),
		Logger:       logger,
		CORSOrigins:  cfg.CORSOrigins,
		UploadDir:    uploadDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return err
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func closeDB(db *gorm.DB, logger *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("failed to close database", "error", err)
	}
}
