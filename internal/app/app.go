// Package app wires the storage backend, repositories, services and HTTP
// server together from config.
package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "agriecom/internal/app/http"
	"agriecom/internal/config"
	"agriecom/internal/lib/netdelay"
	"agriecom/internal/repository"
	"agriecom/internal/seed"
	cartsvc "agriecom/internal/services/cart_service"
	productsvc "agriecom/internal/services/product_service"
	sessionsvc "agriecom/internal/services/session_service"
	usersvc "agriecom/internal/services/user_service"
	"agriecom/internal/storage"
	filestorage "agriecom/internal/storage/file"
	memorystorage "agriecom/internal/storage/memory"
	redisstorage "agriecom/internal/storage/redis"
	httprouters "agriecom/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
}

func New(log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	store, err := newStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// first-run bootstrap: demo accounts and catalog for empty storage
	if err := seed.NewSeeder(log, store).Bootstrap(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	repos := repository.New(log, store)
	delay := netdelay.NewFixed(cfg.SimLatency)

	sessions := sessionsvc.NewSessionService(log, repos.Session)
	users := usersvc.NewUserService(log, repos.User, sessions, delay)
	products := productsvc.NewProductService(log, repos.Product, delay)
	cart := cartsvc.NewCartService(log, repos.Cart, repos.Product)

	routers := httprouters.NewRouter(log, users, products, sessions, cart)

	server := httpapp.New(log, cfg.HTTP.Host, cfg.HTTP.Port, routers)
	server.BuildRouters()

	return &App{HTTPServer: server}, nil
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Backend {
	case "memory", "":
		return memorystorage.New(), nil
	case "file":
		return filestorage.New(cfg.Storage.Dir)
	case "redis":
		return redisstorage.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}
}
