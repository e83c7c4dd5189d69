package api

import (
	"net/http"

	"github.com/garnizeh/quickgig/pkg/repository"
)

type AdminHandler struct {
	userRepo repository.UserRepo
	jobRepo  repository.JobRepo
}

func NewAdminHandler(ur repository.UserRepo, jr repository.JobRepo) *AdminHandler {
	return &AdminHandler{userRepo: ur, jobRepo: jr}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.ListUsers(r.Context())
	if err != nil {
		writeRepoError(w, r, err)
		return
	}

	writeJSON(w, users, http.StatusOK)
}

func (h *AdminHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobRepo.ListAllJobs(r.Context())
	if err != nil {
		writeRepoError(w, r, err)
		return
	}

	writeJSON(w, jobs, http.StatusOK)
}

// DeleteUser removes the user without touching its jobs or applications.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.userRepo.DeleteUser(r.Context(), id); err != nil {
		writeRepoError(w, r, err)
		return
	}

	writeSuccess(w)
}

func (h *AdminHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.jobRepo.DeleteJob(r.Context(), id); err != nil {
		writeRepoError(w, r, err)
		return
	}

	writeSuccess(w)
}
