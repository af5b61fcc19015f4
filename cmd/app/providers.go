package main

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/pairhealth/internal/domain/ai"
	"github.com/yanqian/pairhealth/internal/domain/user"
	"github.com/yanqian/pairhealth/internal/infra/config"
	"github.com/yanqian/pairhealth/internal/infra/request"
	"github.com/yanqian/pairhealth/internal/infra/session"
	"github.com/yanqian/pairhealth/internal/infra/ui"
)

func provideRequestConfig(cfg *config.Config) request.Config {
	return request.Config{
		BaseURL:       cfg.Backend.BaseURL,
		Development:   cfg.Backend.Development(),
		Timeout:       cfg.Backend.Timeout,
		LoginRoute:    cfg.Backend.LoginRoute,
		RedirectDelay: cfg.Backend.RedirectDelay,
	}
}

// The per-call deadline comes from the request context, so the client itself
// carries no timeout.
func provideHTTPTransport() *request.HTTPTransport {
	return request.NewHTTPTransport(&http.Client{})
}

func provideAIConfig(cfg *config.Config) ai.Config {
	return ai.Config{
		MaxAttempts: cfg.Consult.MaxAttempts,
		Backoff:     cfg.Consult.Backoff,
	}
}

func provideUserConfig(cfg *config.Config) user.Config {
	return user.Config{LoginRoute: cfg.Backend.LoginRoute}
}

func provideFeed(cfg *config.Config, logger *slog.Logger) *ui.Feed {
	return ui.NewFeed(cfg.UI.FeedCapacity, logger)
}

func provideSessionStore(cfg *config.Config, logger *slog.Logger) (session.Store, func(), error) {
	store, cleanup := openSessionStore(cfg, logger)
	if cfg.Session.Secret == "" {
		return store, cleanup, nil
	}
	sealer, err := session.NewSealer(cfg.Session.Secret, cfg.Session.Prefix)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	logger.Info("session values are sealed")
	return session.NewSealedStore(store, sealer), cleanup, nil
}

func openSessionStore(cfg *config.Config, logger *slog.Logger) (session.Store, func()) {
	noop := func() {}
	switch cfg.Session.Driver {
	case config.DriverMemory:
		logger.Info("session memory store enabled")
		return session.NewMemoryStore(), noop
	case config.DriverValkey:
		client, err := valkey.NewClient(buildValkeyOptions(cfg.Session.ValkeyAddr))
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return session.NewMemoryStore(), noop
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
			return session.NewMemoryStore(), noop
		}
		logger.Info("session valkey store enabled", "addr", cfg.Session.ValkeyAddr)
		return session.NewValkeyStore(client, cfg.Session.Prefix), client.Close
	default:
		store, err := session.OpenBadgerStore(cfg.Session.Path, cfg.Session.Prefix)
		if err != nil {
			logger.Error("failed to open badger store, falling back to memory store", "path", cfg.Session.Path, "error", err)
			return session.NewMemoryStore(), noop
		}
		logger.Info("session badger store enabled", "path", cfg.Session.Path)
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("close badger store", "error", err)
			}
		}
	}
}

func buildValkeyOptions(addr string) valkey.ClientOption {
	if strings.Contains(addr, "://") {
		if opt, err := valkey.ParseURL(addr); err == nil {
			return opt
		}
	}
	return valkey.ClientOption{InitAddress: []string{addr}}
}
