package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/teran1416/InventarioApp/internal/config"
	"github.com/teran1416/InventarioApp/internal/logger"
	"github.com/teran1416/InventarioApp/migrations"
)

const downFlag = "down"

type migrationLogger struct {
	log     *logrus.Logger
	verbose bool
}

func (ml *migrationLogger) Printf(format string, v ...any) {
	ml.log.Info(fmt.Sprintf(format, v...))
}

func (ml *migrationLogger) Verbose() bool {
	return ml.verbose
}

func main() {
	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	down := flags.Bool(downFlag, false, "roll back every migration instead of applying them")
	cfg, err := config.Load(flags, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}

	log := logger.New(cfg.AppName+"-migrator", cfg.Env, cfg.LogLevel)
	if cfg.Postgres.URL == "" {
		log.Error("postgres.url is required to run migrations")
		os.Exit(2)
	}

	if err := run(cfg.Postgres.URL, *down, log); err != nil {
		log.WithError(err).Error("failed to migrate")
		os.Exit(2)
	}
}

func run(postgresURL string, down bool, log *logrus.Logger) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, pgx5URL(postgresURL))
	if err != nil {
		return err
	}
	defer m.Close()

	m.Log = &migrationLogger{log: log, verbose: true}

	if down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		m.Log.Printf("no migrations to apply")
		return nil
	}
	if err != nil {
		return err
	}
	m.Log.Printf("migrations applied")
	return nil
}

// pgx5URL swaps the postgres scheme for the one the pgx/v5 migrate driver registers.
func pgx5URL(postgresURL string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(postgresURL, prefix) {
			return "pgx5://" + strings.TrimPrefix(postgresURL, prefix)
		}
	}
	return postgresURL
}
