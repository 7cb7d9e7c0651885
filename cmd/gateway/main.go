package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/OgheneDev/technest-frontend-sub001/internal/backend"
	"github.com/OgheneDev/technest-frontend-sub001/internal/cache"
	"github.com/OgheneDev/technest-frontend-sub001/internal/config"
	h "github.com/OgheneDev/technest-frontend-sub001/internal/http"
	"github.com/OgheneDev/technest-frontend-sub001/internal/service"
	"github.com/OgheneDev/technest-frontend-sub001/internal/session"
)

func main() {
	cfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session store")
	}
	defer store.Close()

	sessions := session.NewManager(store, cfg.SessionTTL, cfg.Env == "production")
	client := backend.New(cfg.BackendBaseURL, cfg.BackendTimeout)
	counts := cache.NewCountCache(cfg.CountCacheTTL)
	defer counts.Stop()

	carts := service.NewCartService(client, counts)
	wishlists := service.NewWishlistService(client)
	flow := service.NewCheckoutFlow(client, sessions, counts)

	router := h.NewRouter(
		h.RouterConfig{
			RequestTimeout:     cfg.RequestTimeout,
			RateLimitRPS:       cfg.RateLimitRPS,
			RateLimitBurst:     cfg.RateLimitBurst,
			MaxRequestBodySize: cfg.MaxRequestBodySize,
		},
		sessions,
		h.NewAuthHandler(client, sessions, cfg.RequestTimeout),
		h.NewCartHandler(carts, cfg.RequestTimeout),
		h.NewWishlistHandler(wishlists, cfg.RequestTimeout),
		h.NewProductHandler(client, cfg.RequestTimeout),
		h.NewCheckoutHandler(flow, client, sessions, cfg.RequestTimeout),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "gateway"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * cfg.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Str("backend", cfg.BackendBaseURL).Msg("storefront gateway starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func newSessionStore(cfg *config.Config) (session.Store, error) {
	switch cfg.SessionStore {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, err
		}
		return session.NewRedisStore(client), nil
	default:
		return session.NewBoltStore(cfg.SessionDBPath, time.Hour)
	}
}
