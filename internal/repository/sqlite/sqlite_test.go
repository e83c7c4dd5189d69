package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	dbfs "github.com/garnizeh/quickgig/db"
	dbpkg "github.com/garnizeh/quickgig/internal/db"
	sqlite "github.com/garnizeh/quickgig/internal/repository/sqlite"
	"github.com/garnizeh/quickgig/pkg/models"
	"github.com/garnizeh/quickgig/pkg/repository"
)

func setupRepoDSN(t *testing.T, query string) (*sqlite.SQLiteRepo, *dbpkg.DB) {
	t.Helper()
	ctx := context.Background()
	d, err := dbpkg.New(ctx, filepath.Join(t.TempDir(), "quickgig.db")+query, nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return sqlite.New(d, nil), d
}

func setupRepo(t *testing.T) (*sqlite.SQLiteRepo, *dbpkg.DB) {
	t.Helper()
	return setupRepoDSN(t, "")
}

func mustUser(t *testing.T, repo *sqlite.SQLiteRepo, email, role string) int64 {
	t.Helper()
	id, err := repo.CreateUser(context.Background(), &models.User{Email: email, Password: "pw", Name: email, Role: role})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return id
}

func mustJob(t *testing.T, repo *sqlite.SQLiteRepo, employerID int64, title, location, date string) int64 {
	t.Helper()
	id, err := repo.CreateJob(context.Background(), &models.Job{
		EmployerID: employerID, Title: title, Description: "d", Location: location, Date: date, Duration: "2h", Payment: 50,
	})
	if err != nil {
		t.Fatalf("CreateJob(%s): %v", title, err)
	}
	return id
}

func countRows(t *testing.T, d *dbpkg.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := d.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatalf("count query %q: %v", query, err)
	}
	return n
}

func TestUser_SignupAndDuplicateEmail(t *testing.T) {
	repo, d := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil user")
	}

	a := mustUser(t, repo, "a@x.com", models.RoleWorker)
	b := mustUser(t, repo, "b@x.com", models.RoleEmployer)
	if a == 0 || b == 0 || a == b {
		t.Fatalf("expected distinct non-zero ids, got %d and %d", a, b)
	}

	_, err := repo.CreateUser(ctx, &models.User{Email: "a@x.com", Password: "other", Name: "Again", Role: models.RoleWorker})
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if n := countRows(t, d, `SELECT COUNT(*) FROM users WHERE email = ?`, "a@x.com"); n != 1 {
		t.Fatalf("expected one row for duplicate email, got %d", n)
	}
}

func TestUser_Login(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	id, err := repo.CreateUser(ctx, &models.User{Email: "bob@example.com", Password: "Hunter2", Name: "Bob", Role: models.RoleEmployer})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	u, err := repo.Login(ctx, "bob@example.com", "Hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.ID != id || u.Password != "Hunter2" || u.Role != models.RoleEmployer || u.CreatedAt == "" {
		t.Fatalf("unexpected login record: %#v", u)
	}

	cases := []struct{ email, password string }{
		{"bob@example.com", "hunter2"},
		{"BOB@example.com", "Hunter2"},
		{"bob@example.com", ""},
		{"nobody@example.com", "Hunter2"},
	}
	for _, c := range cases {
		if _, err := repo.Login(ctx, c.email, c.password); !errors.Is(err, repository.ErrInvalidCredentials) {
			t.Fatalf("Login(%q, %q): expected ErrInvalidCredentials, got %v", c.email, c.password, err)
		}
	}
}

func TestUser_ListAndDelete(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	id := mustUser(t, repo, "a@x.com", models.RoleWorker)
	mustUser(t, repo, "b@x.com", models.RoleEmployer)

	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		if u.Password != "" {
			t.Fatalf("ListUsers leaked password for %s", u.Email)
		}
	}

	if err := repo.DeleteUser(ctx, id); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	// missing ids are silent no-ops
	if err := repo.DeleteUser(ctx, 9999); err != nil {
		t.Fatalf("DeleteUser missing id: %v", err)
	}

	users, err = repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 || users[0].Email != "b@x.com" {
		t.Fatalf("unexpected users after delete: %#v", users)
	}
}

func TestJob_ListOpenJobs_Filters(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	emp := mustUser(t, repo, "emp@x.com", models.RoleEmployer)
	j1 := mustJob(t, repo, emp, "Movers", "Downtown Boston", "2025-01-10")
	j2 := mustJob(t, repo, emp, "Painter", "boston suburbs", "2025-01-11")
	j3 := mustJob(t, repo, emp, "Cook", "New York", "2025-01-10")
	j4 := mustJob(t, repo, emp, "Odd", "100% go_to", "2025-01-12")

	if err := repo.CompleteJob(ctx, j3); err != nil {
		t.Fatalf("CompleteJob: %v", err)
	}

	tests := []struct {
		name   string
		filter models.JobFilter
		want   []int64
	}{
		{name: "NoFilter", filter: models.JobFilter{}, want: []int64{j1, j2, j4}},
		{name: "LocationCaseInsensitive", filter: models.JobFilter{Location: "BOSTON"}, want: []int64{j1, j2}},
		{name: "Date", filter: models.JobFilter{Date: "2025-01-10"}, want: []int64{j1}},
		{name: "LocationAndDate", filter: models.JobFilter{Location: "boston", Date: "2025-01-11"}, want: []int64{j2}},
		{name: "PercentIsLiteral", filter: models.JobFilter{Location: "%"}, want: []int64{j4}},
		{name: "UnderscoreIsLiteral", filter: models.JobFilter{Location: "o_t"}, want: []int64{j4}},
		{name: "NoMatch", filter: models.JobFilter{Location: "Paris"}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := repo.ListOpenJobs(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListOpenJobs: %v", err)
			}
			if len(jobs) != len(tt.want) {
				t.Fatalf("expected %d jobs, got %d: %#v", len(tt.want), len(jobs), jobs)
			}
			for i, j := range jobs {
				if j.ID != tt.want[i] {
					t.Fatalf("job[%d]: expected id %d, got %d", i, tt.want[i], j.ID)
				}
				if j.Status != models.JobStatusOpen {
					t.Fatalf("listing returned non-open job %#v", j)
				}
				if j.EmployerName != "emp@x.com" {
					t.Fatalf("expected employer name joined, got %q", j.EmployerName)
				}
			}
		})
	}
}

func TestJob_ListByEmployerAndAll(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	e1 := mustUser(t, repo, "e1@x.com", models.RoleEmployer)
	e2 := mustUser(t, repo, "e2@x.com", models.RoleEmployer)
	a := mustJob(t, repo, e1, "A", "L", "D")
	mustJob(t, repo, e2, "B", "L", "D")
	if err := repo.CompleteJob(ctx, a); err != nil {
		t.Fatalf("CompleteJob: %v", err)
	}

	mine, err := repo.ListJobsByEmployer(ctx, e1)
	if err != nil {
		t.Fatalf("ListJobsByEmployer: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != a || mine[0].Status != models.JobStatusCompleted {
		t.Fatalf("unexpected employer jobs: %#v", mine)
	}
	if mine[0].Payment != 50 || mine[0].Duration != "2h" {
		t.Fatalf("job fields not round-tripped: %#v", mine[0])
	}

	none, err := repo.ListJobsByEmployer(ctx, 9999)
	if err != nil {
		t.Fatalf("ListJobsByEmployer: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", none)
	}

	all, err := repo.ListAllJobs(ctx)
	if err != nil {
		t.Fatalf("ListAllJobs: %v", err)
	}
	if len(all) != 2 || all[0].EmployerName != "e1@x.com" || all[1].EmployerName != "e2@x.com" {
		t.Fatalf("unexpected all jobs: %#v", all)
	}

	if err := repo.DeleteJob(ctx, a); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	if err := repo.DeleteJob(ctx, 9999); err != nil {
		t.Fatalf("DeleteJob missing id: %v", err)
	}
	all, err = repo.ListAllJobs(ctx)
	if err != nil {
		t.Fatalf("ListAllJobs: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 job after delete, got %d", len(all))
	}
}

func TestApplication_ApplyTwice(t *testing.T) {
	repo, d := setupRepo(t)
	ctx := context.Background()

	emp := mustUser(t, repo, "emp@x.com", models.RoleEmployer)
	w := mustUser(t, repo, "w@x.com", models.RoleWorker)
	job := mustJob(t, repo, emp, "Movers", "Boston", "2025-01-10")

	if _, err := repo.Apply(ctx, job, w); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	_, err := repo.Apply(ctx, job, w)
	if !errors.Is(err, repository.ErrDuplicateApplication) {
		t.Fatalf("expected ErrDuplicateApplication, got %v", err)
	}
	if n := countRows(t, d, `SELECT COUNT(*) FROM applications WHERE job_id = ? AND worker_id = ?`, job, w); n != 1 {
		t.Fatalf("expected exactly one application row, got %d", n)
	}
}

func TestApplication_Listings(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	emp := mustUser(t, repo, "emp@x.com", models.RoleEmployer)
	w := mustUser(t, repo, "w@x.com", models.RoleWorker)
	job := mustJob(t, repo, emp, "Movers", "Boston", "2025-01-10")
	if _, err := repo.Apply(ctx, job, w); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	byWorker, err := repo.ListApplicationsByWorker(ctx, w)
	if err != nil {
		t.Fatalf("ListApplicationsByWorker: %v", err)
	}
	if len(byWorker) != 1 {
		t.Fatalf("expected 1 application, got %d", len(byWorker))
	}
	a := byWorker[0]
	if a.JobID != job || a.Status != models.ApplicationStatusPending || a.Title != "Movers" ||
		a.Location != "Boston" || a.Date != "2025-01-10" || a.Payment == nil || *a.Payment != 50 ||
		a.EmployerName != "emp@x.com" {
		t.Fatalf("unexpected worker application: %#v", a)
	}
	if a.WorkerName != "" || a.WorkerEmail != "" {
		t.Fatalf("worker listing should not carry worker fields: %#v", a)
	}

	byJob, err := repo.ListApplicationsByJob(ctx, job)
	if err != nil {
		t.Fatalf("ListApplicationsByJob: %v", err)
	}
	if len(byJob) != 1 || byJob[0].WorkerName != "w@x.com" || byJob[0].WorkerEmail != "w@x.com" || byJob[0].Payment != nil {
		t.Fatalf("unexpected job applications: %#v", byJob)
	}
}

func TestApplication_SetStatusIsUnconditional(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	emp := mustUser(t, repo, "emp@x.com", models.RoleEmployer)
	w := mustUser(t, repo, "w@x.com", models.RoleWorker)
	job := mustJob(t, repo, emp, "Movers", "Boston", "2025-01-10")
	id, err := repo.Apply(ctx, job, w)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	for _, status := range []string{models.ApplicationStatusCompleted, models.ApplicationStatusPending} {
		if err := repo.SetApplicationStatus(ctx, id, status); err != nil {
			t.Fatalf("SetApplicationStatus(%s): %v", status, err)
		}
		apps, err := repo.ListApplicationsByJob(ctx, job)
		if err != nil {
			t.Fatalf("ListApplicationsByJob: %v", err)
		}
		if apps[0].Status != status {
			t.Fatalf("expected status %s, got %s", status, apps[0].Status)
		}
	}

	if err := repo.SetApplicationStatus(ctx, 9999, models.ApplicationStatusAccepted); err != nil {
		t.Fatalf("SetApplicationStatus missing id: %v", err)
	}
}

func TestCompleteJob_CascadesAcceptedOnly(t *testing.T) {
	repo, d := setupRepo(t)
	ctx := context.Background()

	emp := mustUser(t, repo, "emp@x.com", models.RoleEmployer)
	job := mustJob(t, repo, emp, "Movers", "Boston", "2025-01-10")
	other := mustJob(t, repo, emp, "Cook", "Boston", "2025-01-10")

	statuses := map[string]string{
		"acc@x.com": models.ApplicationStatusAccepted,
		"pen@x.com": models.ApplicationStatusPending,
		"rej@x.com": models.ApplicationStatusRejected,
	}
	for email, status := range statuses {
		w := mustUser(t, repo, email, models.RoleWorker)
		id, err := repo.Apply(ctx, job, w)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if err := repo.SetApplicationStatus(ctx, id, status); err != nil {
			t.Fatalf("SetApplicationStatus: %v", err)
		}
		otherID, err := repo.Apply(ctx, other, w)
		if err != nil {
			t.Fatalf("Apply other: %v", err)
		}
		if err := repo.SetApplicationStatus(ctx, otherID, models.ApplicationStatusAccepted); err != nil {
			t.Fatalf("SetApplicationStatus other: %v", err)
		}
	}

	for i := 0; i < 2; i++ {
		if err := repo.CompleteJob(ctx, job); err != nil {
			t.Fatalf("CompleteJob call %d: %v", i+1, err)
		}
	}

	var status string
	if err := d.QueryRow(ctx, `SELECT status FROM jobs WHERE id = ?`, job).Scan(&status); err != nil {
		t.Fatalf("read job status: %v", err)
	}
	if status != models.JobStatusCompleted {
		t.Fatalf("expected job completed, got %s", status)
	}

	apps, err := repo.ListApplicationsByJob(ctx, job)
	if err != nil {
		t.Fatalf("ListApplicationsByJob: %v", err)
	}
	want := map[string]string{
		"acc@x.com": models.ApplicationStatusCompleted,
		"pen@x.com": models.ApplicationStatusPending,
		"rej@x.com": models.ApplicationStatusRejected,
	}
	for _, a := range apps {
		if a.Status != want[a.WorkerEmail] {
			t.Fatalf("%s: expected %s, got %s", a.WorkerEmail, want[a.WorkerEmail], a.Status)
		}
	}

	if n := countRows(t, d, `SELECT COUNT(*) FROM applications WHERE job_id = ? AND status = ?`, other, models.ApplicationStatusAccepted); n != 3 {
		t.Fatalf("other job applications changed: %d still accepted", n)
	}

	// missing job id is a no-op
	if err := repo.CompleteJob(ctx, 9999); err != nil {
		t.Fatalf("CompleteJob missing id: %v", err)
	}
}

func TestExampleFlow(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	employer := mustUser(t, repo, "boss@x.com", models.RoleEmployer)
	worker, err := repo.CreateUser(ctx, &models.User{Email: "a@x.com", Password: "pw", Name: "Alice", Role: models.RoleWorker})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	job, err := repo.CreateJob(ctx, &models.Job{EmployerID: employer, Title: "Gig", Payment: 50})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if _, err := repo.Apply(ctx, job, worker); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	apps, err := repo.ListApplicationsByWorker(ctx, worker)
	if err != nil {
		t.Fatalf("ListApplicationsByWorker: %v", err)
	}
	if len(apps) != 1 || apps[0].JobID != job || apps[0].Status != models.ApplicationStatusPending {
		t.Fatalf("unexpected applications: %#v", apps)
	}
}

func TestLooseReferences_DefaultConnection(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	// without foreign key enforcement a job may reference a missing employer
	if _, err := repo.CreateJob(ctx, &models.Job{EmployerID: 42, Title: "Orphan"}); err != nil {
		t.Fatalf("CreateJob with missing employer: %v", err)
	}

	emp := mustUser(t, repo, "emp@x.com", models.RoleEmployer)
	mustJob(t, repo, emp, "Movers", "Boston", "2025-01-10")
	if err := repo.DeleteUser(ctx, emp); err != nil {
		t.Fatalf("DeleteUser with jobs: %v", err)
	}

	// the job survives but drops out of joined listings
	mine, err := repo.ListJobsByEmployer(ctx, emp)
	if err != nil {
		t.Fatalf("ListJobsByEmployer: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected dangling job to remain, got %d", len(mine))
	}
	open, err := repo.ListOpenJobs(ctx, models.JobFilter{})
	if err != nil {
		t.Fatalf("ListOpenJobs: %v", err)
	}
	if len(open) != 0 {
		t.Fatalf("expected jobs without employer to be excluded from joined listing, got %d", len(open))
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	repo, _ := setupRepoDSN(t, "?_pragma=foreign_keys(1)")
	ctx := context.Background()

	_, err := repo.CreateJob(ctx, &models.Job{EmployerID: 42, Title: "Orphan"})
	if !errors.Is(err, repository.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation for missing employer, got %v", err)
	}

	emp := mustUser(t, repo, "emp@x.com", models.RoleEmployer)
	mustJob(t, repo, emp, "Movers", "Boston", "2025-01-10")
	if err := repo.DeleteUser(ctx, emp); !errors.Is(err, repository.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation deleting referenced user, got %v", err)
	}

	_, err = repo.Apply(ctx, 777, emp)
	if !errors.Is(err, repository.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation applying to missing job, got %v", err)
	}
}
