package api

import (
	"net/http"

	"github.com/garnizeh/quickgig/pkg/models"
	"github.com/garnizeh/quickgig/pkg/repository"
)

type AuthHandler struct {
	userRepo repository.UserRepo
	schemas  *SchemaSet
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, schemas *SchemaSet) *AuthHandler {
	return &AuthHandler{userRepo: ur, schemas: schemas}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type signupResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !h.schemas.decodeBody(w, r, schemaSignup, &req) {
		return
	}

	u := models.User{Email: req.Email, Password: req.Password, Name: req.Name, Role: req.Role}
	id, err := h.userRepo.CreateUser(r.Context(), &u)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}

	writeJSON(w, signupResponse{ID: id, Email: req.Email, Name: req.Name, Role: req.Role}, http.StatusOK)
}

// Login responds with the full user record, password included.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.schemas.decodeBody(w, r, schemaLogin, &req) {
		return
	}

	u, err := h.userRepo.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}

	writeJSON(w, u, http.StatusOK)
}
