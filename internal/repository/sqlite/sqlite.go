package sqlite

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/garnizeh/quickgig/internal/db"
	"github.com/garnizeh/quickgig/pkg/repository"
	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.UserRepo = (*SQLiteRepo)(nil)
var _ repository.JobRepo = (*SQLiteRepo)(nil)
var _ repository.ApplicationRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// classify maps SQLite constraint failures onto repository errors. onUnique
// is returned for UNIQUE violations so each caller can name its own duplicate.
func classify(err error, onUnique error) error {
	if err == nil {
		return nil
	}

	var se *sqlitedrv.Error
	if !errors.As(err, &se) {
		return err
	}

	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		if onUnique != nil {
			return fmt.Errorf("%w: %v", onUnique, err)
		}
		return fmt.Errorf("%w: %v", repository.ErrConstraintViolation, err)
	}
	if se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return fmt.Errorf("%w: %v", repository.ErrConstraintViolation, err)
	}

	return err
}
