package api

import (
	"net/http"

	"github.com/garnizeh/quickgig/internal/config"
	"github.com/garnizeh/quickgig/internal/db"
	"github.com/garnizeh/quickgig/internal/repository/sqlite"
	"github.com/gorilla/mux"
)

// SetupRoutes wires the handlers onto a router backed by the given store.
func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB) http.Handler {
	repo := sqlite.New(db, logger)
	schemas := MustLoadSchemas()

	r := mux.NewRouter()

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	if cfg != nil && cfg.StaticDir != "" {
		r.NotFoundHandler = NewSPAHandler(cfg.StaticDir)
	}
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	systemHandler := NewSystemHandler(db)
	authHandler := NewAuthHandler(repo, schemas)
	jobsHandler := NewJobsHandler(repo, schemas)
	appsHandler := NewApplicationsHandler(repo, schemas)
	adminHandler := NewAdminHandler(repo, repo)

	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods(http.MethodGet)
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods(http.MethodGet)

	apiR := r.PathPrefix("/api").Subrouter()

	apiR.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	apiR.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	apiR.HandleFunc("/jobs", jobsHandler.ListOpenJobs).Methods(http.MethodGet)
	apiR.HandleFunc("/jobs", jobsHandler.CreateJob).Methods(http.MethodPost)
	apiR.HandleFunc("/jobs/employer/{id:[0-9]+}", jobsHandler.ListEmployerJobs).Methods(http.MethodGet)
	apiR.HandleFunc("/jobs/{id:[0-9]+}/complete", jobsHandler.CompleteJob).Methods(http.MethodPatch)

	apiR.HandleFunc("/applications", appsHandler.Apply).Methods(http.MethodPost)
	apiR.HandleFunc("/applications/worker/{id:[0-9]+}", appsHandler.ListWorkerApplications).Methods(http.MethodGet)
	apiR.HandleFunc("/applications/job/{id:[0-9]+}", appsHandler.ListJobApplications).Methods(http.MethodGet)
	apiR.HandleFunc("/applications/{id:[0-9]+}", appsHandler.UpdateStatus).Methods(http.MethodPatch)

	apiR.HandleFunc("/admin/users", adminHandler.ListUsers).Methods(http.MethodGet)
	apiR.HandleFunc("/admin/jobs", adminHandler.ListJobs).Methods(http.MethodGet)
	apiR.HandleFunc("/admin/users/{id:[0-9]+}", adminHandler.DeleteUser).Methods(http.MethodDelete)
	apiR.HandleFunc("/admin/jobs/{id:[0-9]+}", adminHandler.DeleteJob).Methods(http.MethodDelete)

	// The chain wraps the router itself so unmatched requests are logged and
	// tagged too; mux only applies r.Use middleware to matched routes.
	return CORSMiddleware(RequestIDMiddleware(LoggingMiddleware(RecoveryMiddleware(r))))
}
