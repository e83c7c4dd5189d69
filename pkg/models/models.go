package models

// Domain models matching the database schema in db/migrations/0001_init.sql

const (
	RoleEmployer = "employer"
	RoleWorker   = "worker"
	RoleAdmin    = "admin"
)

const (
	JobStatusOpen      = "open"
	JobStatusCompleted = "completed"
)

const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusAccepted  = "accepted"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusCompleted = "completed"
)

// User is an account. Password is plaintext and only populated by login.
type User struct {
	ID        int64  `json:"id" db:"id"`
	Email     string `json:"email" db:"email"`
	Password  string `json:"password,omitempty" db:"password"`
	Name      string `json:"name" db:"name"`
	Role      string `json:"role" db:"role"`
	CreatedAt string `json:"created_at" db:"created_at"`
}

type Job struct {
	ID           int64   `json:"id" db:"id"`
	EmployerID   int64   `json:"employer_id" db:"employer_id"`
	EmployerName string  `json:"employer_name,omitempty" db:"employer_name"`
	Title        string  `json:"title" db:"title"`
	Description  string  `json:"description" db:"description"`
	Location     string  `json:"location" db:"location"`
	Date         string  `json:"date" db:"date"`
	Duration     string  `json:"duration" db:"duration"`
	Payment      float64 `json:"payment" db:"payment"`
	Status       string  `json:"status" db:"status"`
	CreatedAt    string  `json:"created_at" db:"created_at"`
}

// JobFilter narrows the open jobs listing. Empty fields are ignored.
type JobFilter struct {
	Location string
	Date     string
}

// Application is a worker's claim on a job. The optional fields are filled
// by the listing that joins them in: worker listings carry job and employer
// details, job listings carry worker details.
type Application struct {
	ID        int64  `json:"id" db:"id"`
	JobID     int64  `json:"job_id" db:"job_id"`
	WorkerID  int64  `json:"worker_id" db:"worker_id"`
	Status    string `json:"status" db:"status"`
	CreatedAt string `json:"created_at" db:"created_at"`

	WorkerName  string `json:"worker_name,omitempty" db:"worker_name"`
	WorkerEmail string `json:"worker_email,omitempty" db:"worker_email"`

	Title        string   `json:"title,omitempty" db:"title"`
	Location     string   `json:"location,omitempty" db:"location"`
	Date         string   `json:"date,omitempty" db:"date"`
	Payment      *float64 `json:"payment,omitempty" db:"payment"`
	EmployerName string   `json:"employer_name,omitempty" db:"employer_name"`
}
