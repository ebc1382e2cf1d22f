package helper

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"roombook/config"
	"roombook/infras/database"
	"roombook/migrations"
	"roombook/shared/constant"
	"slices"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	upSuffix = ".up.sql"
)

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	connectionString := database.PostgresDSN(
		config.DB.Postgres.Write.Username,
		config.DB.Postgres.Write.Password,
		config.DB.Postgres.Write.Host,
		config.DB.Postgres.Write.Port,
		getDBName(config, config.DB.Postgres.Write.Name),
		config.DB.Postgres.Write.SSLMode,
	)

	if config.DB.Postgres.MigrationTable != "" {
		connectionString += "&x-migrations-table=" + config.DB.Postgres.MigrationTable
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("error reading embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, connectionString)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(config *config.Config, action string) error {
	if config.DB.Driver == constant.DBDriverSQLite {
		return runSQLite(config, action)
	}

	mig, err := getConnection(config)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	switch action {
	case "up":
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")

		return nil
	case "down":
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	case "step-up":
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")

		return nil
	case "drop":
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	}

	return fmt.Errorf("unknown migration action %q", action)
}

// runSQLite only knows how to apply the schema; it is idempotent.
func runSQLite(config *config.Config, action string) error {
	if action != "up" && action != "step-up" {
		return fmt.Errorf("migration action %q is not supported for sqlite", action)
	}

	conn, err := database.NewSQLite(config.DB.SQLite.Path)
	if err != nil {
		return err //nolint:wrapcheck
	}
	defer conn.Close()

	return ApplySchema(context.Background(), conn.Write)
}

// ApplySchema executes every embedded up migration in order.
func ApplySchema(ctx context.Context, db *sqlx.DB) error {
	names, err := fs.Glob(migrations.FS, "*"+upSuffix)
	if err != nil {
		return fmt.Errorf("error listing migrations: %w", err)
	}

	slices.Sort(names)

	for _, name := range names {
		script, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return fmt.Errorf("error reading migration %s: %w", name, err)
		}

		if _, err := db.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("error applying migration %s: %w", name, err)
		}

		log.Info().Str("migration", strings.TrimSuffix(name, upSuffix)).Msg("Applied migration")
	}

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, "up")
}

func StepUp(config *config.Config) error {
	return Runner(config, "step-up")
}

func Down(config *config.Config) error {
	return Runner(config, "down")
}

func Drop(config *config.Config) error {
	return Runner(config, "drop")
}
