package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/garnizeh/quickgig/pkg/models"
)

const jobColumns = `jobs.id, jobs.employer_id, jobs.title, jobs.description, jobs.location, jobs.date, jobs.duration, jobs.payment, jobs.status, jobs.created_at`

func scanJob(s scanner, withEmployer bool) (models.Job, error) {
	var j models.Job
	dest := []any{&j.ID, &j.EmployerID, &j.Title, &j.Description, &j.Location, &j.Date, &j.Duration, &j.Payment, &j.Status, &j.CreatedAt}
	if withEmployer {
		dest = append(dest, &j.EmployerName)
	}
	err := s.Scan(dest...)
	return j, err
}

func (r *SQLiteRepo) queryJobs(ctx context.Context, withEmployer bool, query string, args ...any) ([]models.Job, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Job{}
	for rows.Next() {
		j, err := scanJob(rows, withEmployer)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}

	return out, rows.Err()
}

// CreateJob inserts an open job. The employer id is not checked beyond the
// foreign key, which is only enforced when the connection enables it.
func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if j == nil {
		return 0, fmt.Errorf("job is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO jobs (employer_id, title, description, location, date, duration, payment) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		j.EmployerID, j.Title, j.Description, j.Location, j.Date, j.Duration, j.Payment)
	if err != nil {
		return 0, classify(err, nil)
	}

	return res.LastInsertId()
}

// ListOpenJobs returns open jobs with their employer name. Location matches
// as a case-insensitive substring, date matches exactly.
func (r *SQLiteRepo) ListOpenJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + jobColumns + `, users.name FROM jobs JOIN users ON jobs.employer_id = users.id WHERE jobs.status = ?`)
	args := []any{models.JobStatusOpen}

	if f.Location != "" {
		b.WriteString(` AND jobs.location LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(f.Location)+"%")
	}
	if f.Date != "" {
		b.WriteString(` AND jobs.date = ?`)
		args = append(args, f.Date)
	}
	b.WriteString(` ORDER BY jobs.id`)

	return r.queryJobs(ctx, true, b.String(), args...)
}

func (r *SQLiteRepo) ListJobsByEmployer(ctx context.Context, employerID int64) ([]models.Job, error) {
	return r.queryJobs(ctx, false, `SELECT `+jobColumns+` FROM jobs WHERE jobs.employer_id = ? ORDER BY jobs.id`, employerID)
}

// ListAllJobs returns jobs of any status with their employer name.
func (r *SQLiteRepo) ListAllJobs(ctx context.Context) ([]models.Job, error) {
	return r.queryJobs(ctx, true, `SELECT `+jobColumns+`, users.name FROM jobs JOIN users ON jobs.employer_id = users.id ORDER BY jobs.id`)
}

// CompleteJob marks the job completed and moves its accepted applications to
// completed. Both updates run in one transaction, job first.
func (r *SQLiteRepo) CompleteJob(ctx context.Context, id int64) error {
	var jobs, apps int64
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE jobs SET status = ? WHERE id = ?`, models.JobStatusCompleted, id)
		if err != nil {
			return fmt.Errorf("complete job: %w", err)
		}
		jobs, _ = res.RowsAffected()

		res, err = tx.ExecContext(ctx, `UPDATE applications SET status = ? WHERE job_id = ? AND status = ?`,
			models.ApplicationStatusCompleted, id, models.ApplicationStatusAccepted)
		if err != nil {
			return fmt.Errorf("complete accepted applications: %w", err)
		}
		apps, _ = res.RowsAffected()

		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("job completed", slog.Int64("id", id), slog.Int64("jobs", jobs), slog.Int64("applications", apps))
	return nil
}

// DeleteJob removes the job row only; its applications are left in place.
func (r *SQLiteRepo) DeleteJob(ctx context.Context, id int64) error {
	if _, err := r.conn.Exec(ctx, `DELETE FROM jobs WHERE id = ?`, id); err != nil {
		return classify(err, nil)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
