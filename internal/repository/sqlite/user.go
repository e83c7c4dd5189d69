package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/garnizeh/quickgig/pkg/models"
	"github.com/garnizeh/quickgig/pkg/repository"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO users (email, password, name, role) VALUES (?, ?, ?, ?)`, u.Email, u.Password, u.Name, u.Role)
	if err != nil {
		return 0, classify(err, repository.ErrDuplicateEmail)
	}

	return res.LastInsertId()
}

// Login matches email and password exactly. The comparison is plaintext and
// case-sensitive.
func (r *SQLiteRepo) Login(ctx context.Context, email, password string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, password, name, role, created_at FROM users WHERE email = ? AND password = ?`, email, password)
	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrInvalidCredentials
		}

		return nil, err
	}

	return &u, nil
}

// ListUsers returns every user without the password field.
func (r *SQLiteRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, email, name, role, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}

	return out, rows.Err()
}

// DeleteUser removes the user row only. Jobs and applications referencing it
// are left in place.
func (r *SQLiteRepo) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return classify(err, nil)
	}

	if n, err := res.RowsAffected(); err == nil {
		r.logger.Debug("user deleted", slog.Int64("id", id), slog.Int64("rows", n))
	}

	return nil
}
