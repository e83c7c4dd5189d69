package db

import (
	"context"
	"fmt"
	"log/slog"
)

// AdminAccount holds the credentials used for the bootstrap admin.
type AdminAccount struct {
	Email    string
	Password string
	Name     string
}

// SeedAdmin inserts the bootstrap admin account unless a user with role
// admin already exists. It reports whether a row was inserted.
func SeedAdmin(ctx context.Context, d *DB, admin AdminAccount) (bool, error) {
	res, err := d.Exec(ctx, `INSERT INTO users (email, password, name, role)
		SELECT ?, ?, ?, 'admin'
		WHERE NOT EXISTS (SELECT 1 FROM users WHERE role = 'admin')`,
		admin.Email, admin.Password, admin.Name)
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("seed admin rows affected: %w", err)
	}
	if n > 0 {
		d.logger.Info("admin account seeded", slog.String("email", admin.Email))
	}

	return n > 0, nil
}
