package sqlite

import (
	"context"
	"database/sql"

	"github.com/garnizeh/quickgig/pkg/models"
	"github.com/garnizeh/quickgig/pkg/repository"
)

func (r *SQLiteRepo) Apply(ctx context.Context, jobID, workerID int64) (int64, error) {
	res, err := r.conn.Exec(ctx, `INSERT INTO applications (job_id, worker_id) VALUES (?, ?)`, jobID, workerID)
	if err != nil {
		return 0, classify(err, repository.ErrDuplicateApplication)
	}

	return res.LastInsertId()
}

// ListApplicationsByWorker joins each application with its job and the
// job's employer.
func (r *SQLiteRepo) ListApplicationsByWorker(ctx context.Context, workerID int64) ([]models.Application, error) {
	rows, err := r.conn.QueryRows(ctx, `
		SELECT applications.id, applications.job_id, applications.worker_id, applications.status, applications.created_at,
			jobs.title, jobs.location, jobs.date, jobs.payment, users.name
		FROM applications
		JOIN jobs ON applications.job_id = jobs.id
		JOIN users ON jobs.employer_id = users.id
		WHERE applications.worker_id = ?
		ORDER BY applications.id`, workerID)
	if err != nil {
		return nil, err
	}

	return collectApplications(rows, func(a *models.Application) []any {
		a.Payment = new(float64)
		return []any{&a.Title, &a.Location, &a.Date, a.Payment, &a.EmployerName}
	})
}

// ListApplicationsByJob joins each application with the applying worker.
func (r *SQLiteRepo) ListApplicationsByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	rows, err := r.conn.QueryRows(ctx, `
		SELECT applications.id, applications.job_id, applications.worker_id, applications.status, applications.created_at,
			users.name, users.email
		FROM applications
		JOIN users ON applications.worker_id = users.id
		WHERE applications.job_id = ?
		ORDER BY applications.id`, jobID)
	if err != nil {
		return nil, err
	}

	return collectApplications(rows, func(a *models.Application) []any {
		return []any{&a.WorkerName, &a.WorkerEmail}
	})
}

// SetApplicationStatus overwrites the status. Transitions are not checked.
func (r *SQLiteRepo) SetApplicationStatus(ctx context.Context, id int64, status string) error {
	_, err := r.conn.Exec(ctx, `UPDATE applications SET status = ? WHERE id = ?`, status, id)
	return err
}

func collectApplications(rows *sql.Rows, extra func(a *models.Application) []any) ([]models.Application, error) {
	defer rows.Close()

	out := []models.Application{}
	for rows.Next() {
		var a models.Application
		dest := append([]any{&a.ID, &a.JobID, &a.WorkerID, &a.Status, &a.CreatedAt}, extra(&a)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}
