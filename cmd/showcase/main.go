package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	diskadapter "github.com/chayanin/showcase/internal/adapter/driven/disk"
	sqliteadapter "github.com/chayanin/showcase/internal/adapter/driven/sqlite"
	httphandler "github.com/chayanin/showcase/internal/adapter/driving/http"
	webhandler "github.com/chayanin/showcase/internal/adapter/driving/web"
	"github.com/chayanin/showcase/internal/application"
	"github.com/chayanin/showcase/internal/config"
	"github.com/chayanin/showcase/pkg/logging"
)

func main() {
	logging.Setup()

	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"public_dir", cfg.PublicDir,
		"upload_dir", cfg.UploadDir,
	)
	if !cfg.HasAdminCredentials() {
		slog.Warn("no admin credentials configured, admin login will always reject")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	projectStore := sqliteadapter.NewProjectRepo(db)
	itemStore := sqliteadapter.NewItemRepo(db)
	orderStore := sqliteadapter.NewOrderRepo(db)

	uploadStore, err := diskadapter.NewUploadStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	authSvc := application.NewAuthService(application.AuthConfig{
		AdminEmail:        cfg.AdminEmail,
		AdminPasswordHash: cfg.AdminPasswordHash,
		AdminPassword:     cfg.AdminPassword,
		LegacyToken:       cfg.AdminToken,
		SigningSecret:     cfg.JWTSecret,
		TokenLifetime:     cfg.TokenLifetime,
	})
	orderSvc := application.NewOrderService(itemStore, orderStore)

	apiHandler := httphandler.NewHandler(
		projectStore,
		itemStore,
		orderStore,
		uploadStore,
		orderSvc,
		authSvc,
		slog.Default(),
	)

	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, apiHandler)
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(cfg.PublicDir, cfg.UploadDir))
	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
