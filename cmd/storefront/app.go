package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/pkg/config"
	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type publisher interface {
	service.Publisher
	Close() error
}

// app holds the process-wide dependencies shared by serve and seed.
type app struct {
	cfg        config.Config
	log        *slog.Logger
	store      service.Store
	closeStore func() error
	events     publisher
	index      service.ProductIndex
}

func loadConfig(envFile string) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := config.Require(map[string]string{
		"JWT_SECRET":   cfg.JWTSecret,
		"DATABASE_URL": cfg.DatabaseURL,
	}); err != nil {
		return config.Config{}, nil, err
	}

	log := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(log)
	return cfg, log, nil
}

func newApp(ctx context.Context, cfg config.Config, log *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log, events: events.Noop{}}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch kind := pkgdb.KindOf(cfg.DatabaseURL); kind {
	case pkgdb.KindMongo:
		mdb, err := pkgdb.ConnectMongo(connectCtx, cfg.DatabaseURL, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		a.store = repo.NewMongoRepo(mdb)
		a.closeStore = func() error { return mdb.Client().Disconnect(context.Background()) }
	default:
		gdb, err := pkgdb.Open(connectCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.store = repo.NewGormRepo(gdb)
		a.closeStore = func() error { return pkgdb.Close(gdb) }
	}
	log.Info("store_connected", "kind", pkgdb.KindOf(cfg.DatabaseURL))

	if err := a.store.Migrate(connectCtx); err != nil {
		_ = a.closeStore()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if len(cfg.KafkaBrokers) > 0 {
		a.events = events.NewKafkaPublisher(cfg.KafkaBrokers)
		log.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	if cfg.ElasticURL != "" {
		idx, err := openIndex(connectCtx, cfg)
		if err != nil {
			log.Warn("search_index_unavailable", "error", err)
		} else {
			a.index = idx
			n, err := a.catalog().Reindex(ctx)
			if err != nil {
				log.Warn("search_reindex_error", "error", err)
			}
			log.Info("search_index_enabled", "index", cfg.ElasticIndex, "products", n)
		}
	}

	return a, nil
}

func openIndex(ctx context.Context, cfg config.Config) (*search.ProductIndex, error) {
	client, err := search.NewClient(ctx, cfg.ElasticURL, cfg.ElasticUser, cfg.ElasticPassword)
	if err != nil {
		return nil, err
	}
	idx := search.NewProductIndex(client, cfg.ElasticIndex)
	if err := idx.EnsureIndex(ctx); err != nil {
		return nil, err
	}
	return idx, nil
}

func (a *app) catalog() *service.CatalogService {
	return &service.CatalogService{
		Products: a.store,
		Orders:   a.store,
		Users:    a.store,
		Index:    a.index,
		Events:   a.events,
	}
}

func (a *app) Close() error {
	return errors.Join(a.events.Close(), a.closeStore())
}
