package mock

import (
	"context"

	"github.com/garnizeh/quickgig/pkg/models"
	"github.com/garnizeh/quickgig/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	UserRepo *mockUserRepo
	JobRepo  *mockJobRepo
	AppRepo  *mockApplicationRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		UserRepo: &mockUserRepo{},
		JobRepo:  &mockJobRepo{},
		AppRepo:  &mockApplicationRepo{},
	}
}

var _ repository.UserRepo = (*mockUserRepo)(nil)
var _ repository.JobRepo = (*mockJobRepo)(nil)
var _ repository.ApplicationRepo = (*mockApplicationRepo)(nil)

type mockUserRepo struct {
	Stored    *models.User
	Users     []models.User
	Deleted   []int64
	CreateErr error
	ListErr   error
	DeleteErr error
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.Stored = &models.User{ID: 1, Email: u.Email, Password: u.Password, Name: u.Name, Role: u.Role}
	return 1, nil
}

func (m *mockUserRepo) Login(ctx context.Context, email, password string) (*models.User, error) {
	if m.Stored != nil && m.Stored.Email == email && m.Stored.Password == password {
		return m.Stored, nil
	}
	return nil, repository.ErrInvalidCredentials
}

func (m *mockUserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]models.User, 0, len(m.Users))
	return append(out, m.Users...), nil
}

func (m *mockUserRepo) DeleteUser(ctx context.Context, id int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Deleted = append(m.Deleted, id)
	return nil
}

type mockJobRepo struct {
	Jobs       []models.Job
	Created    *models.Job
	LastFilter models.JobFilter
	LastID     int64
	Completed  []int64
	Deleted    []int64
	Err        error
}

func (m *mockJobRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.Created = j
	return 7, nil
}

func (m *mockJobRepo) ListOpenJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error) {
	m.LastFilter = f
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Job{}
	for _, j := range m.Jobs {
		if j.Status == models.JobStatusOpen {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m *mockJobRepo) ListJobsByEmployer(ctx context.Context, employerID int64) ([]models.Job, error) {
	m.LastID = employerID
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Job{}
	for _, j := range m.Jobs {
		if j.EmployerID == employerID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m *mockJobRepo) ListAllJobs(ctx context.Context) ([]models.Job, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.Job, 0, len(m.Jobs))
	return append(out, m.Jobs...), nil
}

func (m *mockJobRepo) CompleteJob(ctx context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	m.Completed = append(m.Completed, id)
	return nil
}

func (m *mockJobRepo) DeleteJob(ctx context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	m.Deleted = append(m.Deleted, id)
	return nil
}

type mockApplicationRepo struct {
	Apps       []models.Application
	ApplyErr   error
	Err        error
	LastID     int64
	LastStatus string
}

func (m *mockApplicationRepo) Apply(ctx context.Context, jobID, workerID int64) (int64, error) {
	if m.ApplyErr != nil {
		return 0, m.ApplyErr
	}
	m.Apps = append(m.Apps, models.Application{ID: int64(len(m.Apps) + 1), JobID: jobID, WorkerID: workerID, Status: models.ApplicationStatusPending})
	return int64(len(m.Apps)), nil
}

func (m *mockApplicationRepo) ListApplicationsByWorker(ctx context.Context, workerID int64) ([]models.Application, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Application{}
	for _, a := range m.Apps {
		if a.WorkerID == workerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) ListApplicationsByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Application{}
	for _, a := range m.Apps {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) SetApplicationStatus(ctx context.Context, id int64, status string) error {
	if m.Err != nil {
		return m.Err
	}
	m.LastID = id
	m.LastStatus = status
	return nil
}
