package api

import (
	"net/http"

	"github.com/garnizeh/quickgig/pkg/repository"
)

type ApplicationsHandler struct {
	appRepo repository.ApplicationRepo
	schemas *SchemaSet
}

func NewApplicationsHandler(ar repository.ApplicationRepo, schemas *SchemaSet) *ApplicationsHandler {
	return &ApplicationsHandler{appRepo: ar, schemas: schemas}
}

type applyRequest struct {
	JobID    int64 `json:"job_id"`
	WorkerID int64 `json:"worker_id"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *ApplicationsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if !h.schemas.decodeBody(w, r, schemaApply, &req) {
		return
	}

	if _, err := h.appRepo.Apply(r.Context(), req.JobID, req.WorkerID); err != nil {
		writeRepoError(w, r, err)
		return
	}

	writeSuccess(w)
}

func (h *ApplicationsHandler) ListWorkerApplications(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	apps, err := h.appRepo.ListApplicationsByWorker(r.Context(), id)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}

	writeJSON(w, apps, http.StatusOK)
}

func (h *ApplicationsHandler) ListJobApplications(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	apps, err := h.appRepo.ListApplicationsByJob(r.Context(), id)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}

	writeJSON(w, apps, http.StatusOK)
}

// UpdateStatus overwrites an application's status. The schema limits the
// value to known statuses; transitions between them are not restricted.
func (h *ApplicationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if !h.schemas.decodeBody(w, r, schemaApplicationStatus, &req) {
		return
	}

	if err := h.appRepo.SetApplicationStatus(r.Context(), id, req.Status); err != nil {
		writeRepoError(w, r, err)
		return
	}

	writeSuccess(w)
}
