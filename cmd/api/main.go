package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	_ "github.com/teran1416/InventarioApp/docs"
	"github.com/teran1416/InventarioApp/internal/alerts"
	"github.com/teran1416/InventarioApp/internal/auth"
	"github.com/teran1416/InventarioApp/internal/config"
	"github.com/teran1416/InventarioApp/internal/db"
	httpapi "github.com/teran1416/InventarioApp/internal/http"
	"github.com/teran1416/InventarioApp/internal/http/handlers"
	"github.com/teran1416/InventarioApp/internal/logger"
	"github.com/teran1416/InventarioApp/internal/redissvc"
	"github.com/teran1416/InventarioApp/internal/repo"
	"github.com/teran1416/InventarioApp/internal/service"
)

const devJWTSecret = "inventario-dev-secret"

type storage struct {
	products repo.ProductRepository
	users    repo.UserRepository
	close    func(context.Context)
}

// @title Inventario API
// @version 1.0
// @description REST API for managing a user's product inventory and stock levels.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg, err := config.Load(pflag.NewFlagSet(os.Args[0], pflag.ExitOnError), os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}

	log := logger.New(cfg.AppName, cfg.Env, cfg.LogLevel)
	if cfg.JWT.Secret == "" {
		log.Warn("jwt.secret is empty, using the development secret")
		cfg.JWT.Secret = devJWTSecret
	}

	store, err := openStorage(sigCtx, cfg)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.Storage.Driver).Fatal("could not open storage")
	}

	notifier, closeAlerts := openAlerts(sigCtx, cfg, log)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	server := handlers.NewServer(
		service.NewProductService(store.products, notifier, log),
		auth.NewService(store.users, tokens),
		log,
	)
	httpServer := httpapi.NewHTTPServer(cfg.HTTP.Addr, httpapi.NewRouter(server, tokens, log), log)

	log.WithField("driver", cfg.Storage.Driver).Info("application is running")
	go httpServer.Run(stop)

	<-sigCtx.Done()
	log.Info("application is closing...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	httpServer.Close(shutdownCtx)
	closeAlerts()
	store.close(shutdownCtx)

	log.Info("application is closed")
}

func openStorage(ctx context.Context, cfg config.Config) (storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		client, err := db.ConnectMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			return storage{}, err
		}
		database := client.Database(cfg.Mongo.Database)

		products := repo.NewMongoProductRepository(database)
		users := repo.NewMongoUserRepository(database)
		if err := products.EnsureIndexes(ctx); err != nil {
			return storage{}, err
		}
		if err := users.EnsureIndexes(ctx); err != nil {
			return storage{}, err
		}
		return storage{
			products: products,
			users:    users,
			close:    func(ctx context.Context) { _ = client.Disconnect(ctx) },
		}, nil

	case config.DriverPostgres:
		database, err := db.ConnectPostgres(ctx, cfg.Postgres.URL)
		if err != nil {
			return storage{}, err
		}
		return storage{
			products: repo.NewPostgresProductRepository(database),
			users:    repo.NewPostgresUserRepository(database),
			close:    func(context.Context) { _ = database.Close() },
		}, nil

	default:
		return storage{
			products: repo.NewInMemoryProductRepository(),
			users:    repo.NewInMemoryUserRepository(),
			close:    func(context.Context) {},
		}, nil
	}
}

// openAlerts wires the Redis notifier and its digest loop when Redis is enabled.
// A Redis outage at startup degrades to no alerts rather than failing the API.
func openAlerts(ctx context.Context, cfg config.Config, log *logrus.Logger) (alerts.Notifier, func()) {
	if !cfg.Redis.Enabled {
		return alerts.NopNotifier{}, func() {}
	}

	rs, err := redissvc.NewRedisService(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.WithError(err).Warn("could not connect to Redis, low-stock alerts disabled")
		return alerts.NopNotifier{}, func() {}
	}

	notifier := alerts.NewRedisNotifier(rs.Rdb(), log)
	go notifier.StartDailySummary(ctx, cfg.Alerts.SummaryInterval)

	return notifier, func() {
		if err := rs.Close(); err != nil {
			log.WithError(err).Warn("failed to close Redis client")
		}
	}
}
