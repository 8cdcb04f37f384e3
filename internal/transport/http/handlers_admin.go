package http

import (
	"net/http"
	"strconv"

	"quizhub/internal/app"
)

// AdminHandler serves user management for administrators.
type AdminHandler struct {
	admin  *app.AdminService
	search *app.SearchService
}

func NewAdminHandler(admin *app.AdminService, search *app.SearchService) *AdminHandler {
	return &AdminHandler{admin: admin, search: search}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxSearchLimit {
			writeMessage(w, http.StatusBadRequest, "limit must be an integer between 1 and 100")
			return
		}
		limit = parsed
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeMessage(w, http.StatusBadRequest, "offset must be a non-negative integer")
			return
		}
		offset = parsed
	}

	users, total, err := h.admin.ListUsers(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchPage{Items: users, Total: total, Limit: limit, Offset: offset})
}

func (h *AdminHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query, limit, offset, err := searchParams(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	users, total := h.search.Users(r.Context(), query, limit, offset)
	writeJSON(w, http.StatusOK, searchPage{Items: users, Total: total, Limit: limit, Offset: offset})
}

func (h *AdminHandler) User(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.admin.User(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type adminUserUpdateRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=64"`
	FullName *string `json:"full_name" validate:"omitempty,max=128"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var req adminUserUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	user, err := h.admin.UpdateUser(r.Context(), id, app.UpdateUserInput{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.admin.DeleteUser(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
