package db

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies the embedded schema migrations to the database at connStr.
func Migrate(connStr string, logger *zap.Logger) error {
	migrateURL, err := pgx5URL(connStr)
	if err != nil {
		return err
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL)
	if err != nil {
		return fmt.Errorf("failed to initialise migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Sugar().Infof("✓ Database schema is up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, _, _ := m.Version()
	logger.Sugar().Infof("✓ Database schema migrated to version %d", version)
	return nil
}

// pgx5URL rewrites a postgres:// URL into the pgx5:// scheme the migrate
// driver registers.
func pgx5URL(connStr string) (string, error) {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(connStr, prefix) {
			return "pgx5://" + strings.TrimPrefix(connStr, prefix), nil
		}
	}
	if strings.HasPrefix(connStr, "pgx5://") {
		return connStr, nil
	}
	return "", fmt.Errorf("migrations require a postgres:// URL, got a key/value DSN")
}
