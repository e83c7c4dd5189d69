package repository

import (
	"context"

	"github.com/garnizeh/quickgig/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	// CreateUser returns ErrDuplicateEmail when the email is taken.
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	// Login returns the full record, password included, or ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) (int64, error)
	ListOpenJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error)
	ListJobsByEmployer(ctx context.Context, employerID int64) ([]models.Job, error)
	ListAllJobs(ctx context.Context) ([]models.Job, error)
	CompleteJob(ctx context.Context, id int64) error
	DeleteJob(ctx context.Context, id int64) error
}

type ApplicationRepo interface {
	// Apply returns ErrDuplicateApplication when the worker already applied.
	Apply(ctx context.Context, jobID, workerID int64) (int64, error)
	ListApplicationsByWorker(ctx context.Context, workerID int64) ([]models.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID int64) ([]models.Application, error)
	SetApplicationStatus(ctx context.Context, id int64, status string) error
}
