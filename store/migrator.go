package store

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// The schema lives in store/migration/{driver}/LATEST.sql. A fresh database
// gets the full schema in one shot; an initialized database is left alone.

//go:embed migration
var migrationFS embed.FS

const latestSchemaFileName = "LATEST.sql"

// Migrate initializes the database schema on first run.
func (s *Store) Migrate(ctx context.Context) error {
	initialized, err := s.driver.IsInitialized(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check if database is initialized")
	}
	if initialized {
		return nil
	}

	filePath := path.Join("migration", s.profile.Driver, latestSchemaFileName)
	buf, err := fs.ReadFile(migrationFS, filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema file %q", filePath)
	}

	db := s.driver.GetDB()
	for _, stmt := range strings.Split(string(buf), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "failed to execute schema statement %q", stmt)
		}
	}

	slog.Info("database schema initialized", slog.String("driver", s.profile.Driver))
	return nil
}
