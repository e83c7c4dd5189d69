package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/garnizeh/quickgig/pkg/repository"
	"github.com/gorilla/mux"
)

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, errorResponse{Error: msg}, status)
}

func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, successResponse{Success: true}, http.StatusOK)
}

// writeRepoError maps repository errors onto client responses. Anything it
// does not recognise is logged and reported as a 500.
func writeRepoError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "Email already exists")
	case errors.Is(err, repository.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, repository.ErrDuplicateApplication):
		writeError(w, http.StatusBadRequest, "Already applied")
	case errors.Is(err, repository.ErrConstraintViolation):
		writeError(w, http.StatusBadRequest, "Constraint violation")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	default:
		loggerFromContext(r.Context()).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// pathID reads the numeric {id} route variable. Ids that match no row are
// passed through; only values that do not parse as int64 get a 400.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
