package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authsb "pura-pata/internal/adapters/auth/supabase"
	"pura-pata/internal/adapters/backend/restapi"
	storagesb "pura-pata/internal/adapters/storage/supabase"
	"pura-pata/internal/platform/config"
	"pura-pata/internal/platform/logger"
	"pura-pata/internal/platform/metrics"
	"pura-pata/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	if z, ok := lg.(*logger.ZapLogger); ok {
		defer func() { _ = z.Sync() }()
	}

	opts := router.Options{
		Log:                lg,
		Metrics:            metrics.New(),
		PublicBaseURL:      cfg.PublicBaseURL,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		CookieSecure:       cfg.CookieSecure,
	}

	if cfg.APIURL != "" {
		api, err := restapi.NewClient(restapi.Config{APIURL: cfg.APIURL, Timeout: cfg.HTTPTimeout})
		if err != nil {
			lg.Error("invalid API_URL", map[string]any{"err": err})
			os.Exit(1)
		}
		opts.Dogs = restapi.NewDogsRepo(api)
		opts.Users = restapi.NewUsersRepo(api)
	}

	if cfg.Supabase.Enabled() {
		authClient, err := authsb.NewClient(authsb.Config{
			URL:     cfg.Supabase.URL,
			AnonKey: cfg.Supabase.AnonKey,
			Timeout: cfg.HTTPTimeout,
		})
		if err != nil {
			lg.Error("invalid supabase auth config", map[string]any{"err": err})
			os.Exit(1)
		}
		photoStore, err := storagesb.NewPhotoStore(storagesb.Config{
			URL:     cfg.Supabase.URL,
			AnonKey: cfg.Supabase.AnonKey,
			Bucket:  cfg.Supabase.Bucket,
			Timeout: cfg.HTTPTimeout,
		})
		if err != nil {
			lg.Error("invalid supabase storage config", map[string]any{"err": err})
			os.Exit(1)
		}
		opts.AuthProvider = authClient
		opts.AuthVerifier = authsb.NewVerifier(cfg.Supabase.JWTSecret)
		opts.Photos = photoStore
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.NewRouter(opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second, // multipart con hasta 5 fotos
		WriteTimeout:      60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		lg.Info("starting server", map[string]any{
			"addr":          srv.Addr,
			"backend":       cfg.APIURL != "",
			"supabase":      cfg.Supabase.Enabled(),
			"publicBaseURL": cfg.PublicBaseURL,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("server error", map[string]any{"err": err})
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", map[string]any{"err": err})
	}
}
