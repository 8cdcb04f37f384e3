package http

import (
	"net/http"

	"quizhub/internal/app"
)

// CatalogHandler serves subjects and chapters, including their search
// endpoints.
type CatalogHandler struct {
	catalog *app.CatalogService
	search  *app.SearchService
}

func NewCatalogHandler(catalog *app.CatalogService, search *app.SearchService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, search: search}
}

type subjectRequest struct {
	Name        string `json:"name" validate:"required,max=128"`
	Description string `json:"description" validate:"max=2048"`
}

func (h *CatalogHandler) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var req subjectRequest
	if !decodeValid(w, r, &req) {
		return
	}
	subject, err := h.catalog.CreateSubject(r.Context(), app.SubjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, subject)
}

func (h *CatalogHandler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.catalog.Subjects(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subjects)
}

func (h *CatalogHandler) Subject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	subject, err := h.catalog.Subject(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subject)
}

type subjectUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=128"`
	Description *string `json:"description" validate:"omitempty,max=2048"`
}

func (h *CatalogHandler) UpdateSubject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var req subjectUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	subject, err := h.catalog.UpdateSubject(r.Context(), id, app.SubjectUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subject)
}

func (h *CatalogHandler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.catalog.DeleteSubject(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *CatalogHandler) SearchSubjects(w http.ResponseWriter, r *http.Request) {
	query, limit, offset, err := searchParams(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	subjects, total := h.search.Subjects(r.Context(), query, limit, offset)
	writeJSON(w, http.StatusOK, searchPage{Items: subjects, Total: total, Limit: limit, Offset: offset})
}

type chapterRequest struct {
	Name        string `json:"name" validate:"required,max=128"`
	Description string `json:"description" validate:"max=2048"`
}

func (h *CatalogHandler) CreateChapter(w http.ResponseWriter, r *http.Request) {
	subjectID, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var req chapterRequest
	if !decodeValid(w, r, &req) {
		return
	}
	chapter, err := h.catalog.CreateChapter(r.Context(), subjectID, app.ChapterInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, chapter)
}

func (h *CatalogHandler) SubjectChapters(w http.ResponseWriter, r *http.Request) {
	subjectID, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	chapters, err := h.catalog.SubjectChapters(r.Context(), subjectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chapters)
}

func (h *CatalogHandler) SearchChapters(w http.ResponseWriter, r *http.Request) {
	subjectID, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.catalog.Subject(r.Context(), subjectID); err != nil {
		writeError(w, err)
		return
	}
	query, limit, offset, err := searchParams(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	chapters, total := h.search.Chapters(r.Context(), subjectID, query, limit, offset)
	writeJSON(w, http.StatusOK, searchPage{Items: chapters, Total: total, Limit: limit, Offset: offset})
}

func (h *CatalogHandler) Chapter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	chapter, err := h.catalog.Chapter(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chapter)
}

func (h *CatalogHandler) UpdateChapter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var req subjectUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	chapter, err := h.catalog.UpdateChapter(r.Context(), id, app.ChapterUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chapter)
}

func (h *CatalogHandler) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.catalog.DeleteChapter(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
