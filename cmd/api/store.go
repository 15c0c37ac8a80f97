package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitrahub/auth-api/internal/api/handler"
	"github.com/mitrahub/auth-api/internal/core/ports"
	"github.com/mitrahub/auth-api/internal/infrastructure/config"
	"github.com/mitrahub/auth-api/internal/infrastructure/db/memory"
	mongodb "github.com/mitrahub/auth-api/internal/infrastructure/db/mongo"
	"github.com/mitrahub/auth-api/internal/infrastructure/db/postgres"
)

const connectTimeout = 10 * time.Second

// store bundles the repositories of the selected driver.
type store struct {
	users    ports.UserRepository
	partners ports.PartnerRepository
	tx       ports.Transactor
	ping     handler.Probe
	close    func() error
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.DB.URL, Timeout: connectTimeout}, log)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = postgres.Close(db)
			return nil, err
		}
		return &store{
			users:    postgres.NewUserRepository(db),
			partners: postgres.NewPartnerRepository(db),
			tx:       postgres.NewTransactor(db),
			ping:     postgres.Ping(db),
			close:    func() error { return postgres.Close(db) },
		}, nil

	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, Timeout: connectTimeout})
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &store{
			users:    mongodb.NewUserRepository(db),
			partners: mongodb.NewPartnerRepository(db),
			tx:       mongodb.NewTransactor(client),
			ping:     mongodb.Ping(db),
			close: func() error {
				ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
				defer cancel()
				return client.Disconnect(ctx)
			},
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		s := memory.NewStore()
		return &store{
			users:    s.Users(),
			partners: s.Partners(),
			tx:       s,
			ping:     s.Ping,
			close:    func() error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
}
