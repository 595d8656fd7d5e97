package migration

import (
	"database/sql"
	"os"
	"path/filepath"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"
)

const migrationTable = "medtour_migrations"

// Run applies every pending migration found in dir, relative to the working
// directory when not absolute, and returns how many were applied.
func Run(db *sql.DB, dir string, logger *zap.Logger) (int, error) {
	if !filepath.IsAbs(dir) {
		wd, err := os.Getwd()
		if err != nil {
			return 0, err
		}
		dir = filepath.Join(wd, dir)
	}

	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}

	migrationSet := migrate.MigrationSet{TableName: migrationTable}
	n, err := migrationSet.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		logger.Error("migration.Run error executing migrations",
			zap.String("dir", dir),
			zap.Error(err),
		)
		return 0, err
	}

	logger.Info("migration.Run applied migrations",
		zap.String("dir", dir),
		zap.Int("applied", n),
	)
	return n, nil
}
