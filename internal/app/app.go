package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"example.com/userapi/internal/config"
	"example.com/userapi/internal/domain"
	httphandlers "example.com/userapi/internal/handler/http"
	"example.com/userapi/internal/mcp"
	"example.com/userapi/internal/repository"
	"example.com/userapi/internal/storage/memory"
	sqlstore "example.com/userapi/internal/storage/sql"
	"example.com/userapi/internal/usecase"
)

type App struct {
	Config config.Config
	Router http.Handler
	MCP    *mcp.Server
	Store  repository.UserRepository
	Users  *usecase.UserService

	closers []func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{Config: cfg}
	switch cfg.Storage {
	case "sql":
		store, err := sqlstore.Open(ctx, cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("sql storage: %w", err)
		}
		a.Store = store
		a.closers = append(a.closers, store.Close)
	default:
		a.Store = memory.New(domain.SeedUsers()...)
	}
	log.Debug().Str("storage", cfg.Storage).Msg("storage ready")

	a.Users = usecase.NewUserService(a.Store)
	info := usecase.NewInfoService(cfg.API.Name, cfg.API.Version, cfg.API.Description)
	a.Router = httphandlers.New(a.Users, info, cfg.CORSOrigins)
	a.MCP = mcp.NewServer(a.Users, info, cfg.API.Version)
	return a, nil
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
