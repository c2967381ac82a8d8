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

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"

	"github.com/hannesgao/docgate/adapters/docstore"
	"github.com/hannesgao/docgate/adapters/events"
	"github.com/hannesgao/docgate/adapters/store"
	"github.com/hannesgao/docgate/adapters/tokenizer"
	"github.com/hannesgao/docgate/allowlist"
	"github.com/hannesgao/docgate/config"
	"github.com/hannesgao/docgate/ports"
	"github.com/hannesgao/docgate/service"
	transport "github.com/hannesgao/docgate/transport/http"
	"github.com/hannesgao/docgate/vault"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	allow, err := allowlist.LoadFile(cfg.AllowListPath)
	if err != nil {
		logger.Error("failed to load allow-list", "path", cfg.AllowListPath, "error", err)
		os.Exit(1)
	}
	logger.Info("allow-list loaded", "path", cfg.AllowListPath, "addresses", allow.Len())

	cipher, err := vault.New(cfg.ContentKey)
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}
	tok, err := tokenizer.NewJWT(cfg.SessionKey)
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}
	docs, err := docstore.NewFSStore(cfg.ContentDir)
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	opts := []service.Option{
		service.WithTTLs(cfg.ChallengeTTL, cfg.SessionTTL),
		service.WithLogger(logger),
	}

	var challenges ports.ChallengeStore = store.NewMemoryStore()
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("failed to parse redis URL", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(redisOpts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		challenges = store.NewRedisStore(redisClient)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: redisClient},
			watermill.NewSlogLogger(logger),
		)
		if err != nil {
			logger.Error("failed to create event publisher", "error", err)
			os.Exit(1)
		}
		opts = append(opts, service.WithEventPublisher(events.NewWatermillPublisher(publisher)))
	}

	gate := service.NewAccessGate(allow, challenges, tok, docs, cipher, opts...)
	router := transport.SetupRouter(gate, logger)

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("docgate starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// SIGHUP swaps in a fresh allow-list without a restart.
	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	go func() {
		for range reload {
			if err := allow.ReloadFile(cfg.AllowListPath); err != nil {
				logger.Error("allow-list reload failed, keeping previous set", "error", err)
				continue
			}
			logger.Info("allow-list reloaded", "addresses", allow.Len())
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("shutdown complete")
	}
}
