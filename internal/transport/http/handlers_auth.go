package http

import (
	"net/http"
	"time"

	"quizhub/internal/app"
	"quizhub/internal/domain"
)

// AuthHandler serves registration, login, profile and logout.
type AuthHandler struct {
	service *app.AuthService
}

func NewAuthHandler(service *app.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,max=128"`
	DOB      string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeValid(w, r, &req) {
		return
	}

	in := app.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	}
	if req.DOB != "" {
		dob, _ := time.Parse("2006-01-02", req.DOB)
		in.DOB = &dob
	}

	user, err := h.service.Register(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeValid(w, r, &req) {
		return
	}

	token, user, err := h.service.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.CurrentUser(r.Context(), callerFrom(r.Context()).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=64"`
	FullName *string `json:"full_name" validate:"omitempty,max=128"`
	DOB      *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
}

func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !decodeValid(w, r, &req) {
		return
	}

	in := app.UpdateProfileInput{Username: req.Username, FullName: req.FullName}
	if req.DOB != nil {
		dob, _ := time.Parse("2006-01-02", *req.DOB)
		in.DOB = &dob
	}

	user, err := h.service.UpdateProfile(r.Context(), callerFrom(r.Context()).ID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), claimsFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
