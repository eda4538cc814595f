package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meetup-backend/internal/auth"
	"meetup-backend/internal/certs"
	"meetup-backend/internal/config"
	"meetup-backend/internal/database"
	"meetup-backend/internal/logging"
	"meetup-backend/internal/server"
	"meetup-backend/internal/session"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// Logging isn't configured yet; write straight to stderr.
		os.Stderr.WriteString("meetup-backend: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, closeLog, err := logging.Setup(cfg.Logging)
	if err != nil {
		os.Stderr.WriteString("meetup-backend: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closeLog()

	log.Info("initializing database", "path", cfg.Database.Path)
	if err := database.Open(database.Config{Path: cfg.Database.Path}); err != nil {
		log.Error("failed to initialize database", "err", err)
		os.Exit(1)
	}
	defer database.Close()

	var tlsCfg *tls.Config
	if cfg.TLS != nil {
		if cfg.TLS.SelfSigned {
			if err := certs.Ensure(cfg.TLS.CertFile, cfg.TLS.KeyFile); err != nil {
				log.Error("failed to prepare self-signed certificates", "err", err)
				os.Exit(1)
			}
		}
		tlsCfg, err = certs.Load(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			log.Error("failed to load TLS material", "err", err)
			os.Exit(1)
		}
	}

	sessions := session.NewRegistry(time.Duration(cfg.Server.SessionLength) * time.Second)
	store := auth.NewCredentialStore(database.NewUserRepo(), log)
	srv := server.New(server.NewHandlers(store, sessions, log), log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting websocket server", "addr", cfg.Addr(), "tls", tlsCfg != nil)
		errCh <- srv.Start(cfg.Addr(), tlsCfg)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down websocket server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown did not complete cleanly", "err", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}
}
