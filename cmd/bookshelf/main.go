package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/justyntemme/bookshelf/internal/api"
	"github.com/justyntemme/bookshelf/internal/auth"
	"github.com/justyntemme/bookshelf/internal/catalog"
	"github.com/justyntemme/bookshelf/internal/config"
	"github.com/justyntemme/bookshelf/internal/logger"
	"github.com/justyntemme/bookshelf/internal/storage"
	"github.com/justyntemme/bookshelf/internal/web"
)

func main() {
	// Command-line flags
	configFlag := flag.String("config", "", "Path to config file (default: ./config.yaml or ~/.config/bookshelf/config.yaml)")
	urlFlag := flag.String("url", "", "Server bind address (e.g., :8080 or 0.0.0.0:8080)")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if *urlFlag != "" {
		cfg.Server.Addr = *urlFlag
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if cfg.UsesDefaultSecret() {
		logrus.Warn("Using the built-in auth secret; set BOOKSHELF_AUTH_SECRET in production")
	}
	if logrus.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := storage.Open(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		logrus.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	provider := catalog.NewGutendexProvider(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	books := catalog.NewService(provider, cfg.Catalog.RequestsPerSecond)

	signer, err := auth.NewSigner(cfg.Auth.Secret)
	if err != nil {
		logrus.Fatalf("Failed to create signer: %v", err)
	}

	tmpl, err := web.Templates()
	if err != nil {
		logrus.Fatalf("Failed to parse templates: %v", err)
	}

	router := api.NewRouter(api.NewHandler(books, store), signer, tmpl)
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":    cfg.Server.Addr,
			"catalog": cfg.Catalog.BaseURL,
			"store":   cfg.Store.Driver,
		}).Info("Bookshelf server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logrus.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Graceful shutdown failed")
	}
}
