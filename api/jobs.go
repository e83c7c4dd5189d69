package api

import (
	"net/http"
	"strings"

	"github.com/garnizeh/quickgig/pkg/models"
	"github.com/garnizeh/quickgig/pkg/repository"
)

type JobsHandler struct {
	jobRepo repository.JobRepo
	schemas *SchemaSet
}

func NewJobsHandler(jr repository.JobRepo, schemas *SchemaSet) *JobsHandler {
	return &JobsHandler{jobRepo: jr, schemas: schemas}
}

type createJobRequest struct {
	EmployerID  int64   `json:"employer_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Date        string  `json:"date"`
	Duration    string  `json:"duration"`
	Payment     float64 `json:"payment"`
}

// ListOpenJobs serves GET /api/jobs with optional location and date filters.
func (h *JobsHandler) ListOpenJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.JobFilter{
		Location: strings.TrimSpace(q.Get("location")),
		Date:     strings.TrimSpace(q.Get("date")),
	}

	jobs, err := h.jobRepo.ListOpenJobs(r.Context(), filter)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}

	writeJSON(w, jobs, http.StatusOK)
}

func (h *JobsHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if !h.schemas.decodeBody(w, r, schemaCreateJob, &req) {
		return
	}

	j := &models.Job{
		EmployerID:  req.EmployerID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		Duration:    req.Duration,
		Payment:     req.Payment,
	}
	id, err := h.jobRepo.CreateJob(r.Context(), j)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}

	writeJSON(w, idResponse{ID: id}, http.StatusOK)
}

func (h *JobsHandler) ListEmployerJobs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	jobs, err := h.jobRepo.ListJobsByEmployer(r.Context(), id)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}

	writeJSON(w, jobs, http.StatusOK)
}

func (h *JobsHandler) CompleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.jobRepo.CompleteJob(r.Context(), id); err != nil {
		writeRepoError(w, r, err)
		return
	}

	writeSuccess(w)
}
