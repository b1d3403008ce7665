package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/eduhub/eduhub-go/config"
	boltstore "github.com/eduhub/eduhub-go/internal/adapters/bolt"
	"github.com/eduhub/eduhub-go/internal/adapters/eduapi"
	memstore "github.com/eduhub/eduhub-go/internal/adapters/memory"
	redisstore "github.com/eduhub/eduhub-go/internal/adapters/redis"
	"github.com/eduhub/eduhub-go/internal/ports"
	"github.com/eduhub/eduhub-go/internal/service"
	"github.com/eduhub/eduhub-go/internal/transport"
)

// App bundles the wired client stack.
type App struct {
	Config   config.AppConfig
	Logger   *slog.Logger
	Store    ports.SessionStore
	API      *eduapi.Client
	Sessions *service.SessionManager

	closers []func() error
}

// Close releases store connections.
func (a *App) Close() error {
	var err error
	for _, fn := range a.closers {
		if cerr := fn(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// BuildApp wires the session store, the API clients, and the session manager
// from configuration.
//
// Two API clients exist on purpose: the refresh path uses a bare client so an
// expired token can never recurse into another refresh, while everything else
// goes through the auth transport.
func BuildApp(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*App, error) {
	app := &App{Config: cfg, Logger: logger}

	store, err := buildStore(ctx, cfg.Storage, app)
	if err != nil {
		return nil, err
	}
	app.Store = store

	bare, err := eduapi.New(eduapi.Options{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.API.Timeout},
		UserAgent:  cfg.API.UserAgent,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build refresh client: %w", err)
	}

	// The manager does not exist yet when the transport is built; the hook
	// resolves it at call time.
	var sessions *service.SessionManager
	tr, err := transport.New(transport.Options{
		Store:   store,
		Refresh: bare.RefreshAccessToken,
		OnSessionExpired: func() {
			if sessions != nil {
				sessions.HandleSessionExpired()
			}
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build auth transport: %w", err)
	}

	api, err := eduapi.New(eduapi.Options{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: &http.Client{Transport: tr, Timeout: cfg.API.Timeout},
		UserAgent:  cfg.API.UserAgent,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build api client: %w", err)
	}
	app.API = api

	sessions = service.NewSessionManager(service.SessionManagerOptions{
		Store:   store,
		Gateway: api,
		Logger:  logger,
	})
	app.Sessions = sessions
	return app, nil
}

func buildStore(ctx context.Context, cfg config.StorageConfig, app *App) (ports.SessionStore, error) {
	switch cfg.Backend {
	case config.StorageBolt:
		store, db, err := boltstore.Open(cfg.BoltPath)
		if err != nil {
			return nil, fmt.Errorf("open session database: %w", err)
		}
		app.closers = append(app.closers, db.Close)
		return store, nil

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			closeErr := client.Close()
			if closeErr != nil {
				return nil, fmt.Errorf("ping redis: %w (close: %v)", err, closeErr)
			}
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		app.closers = append(app.closers, client.Close)
		return redisstore.NewSessionStoreWithKey(client, cfg.Redis.Key), nil

	case config.StorageMemory:
		return memstore.NewSessionStore(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}
