package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"quizhub/internal/auth"
	"quizhub/internal/domain"
)

type errorPayload struct {
	Message string `json:"message"`
}

type fieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type validationPayload struct {
	Message string       `json:"message"`
	Details []fieldError `json:"details"`
}

// searchPage is the envelope every search endpoint responds with.
type searchPage struct {
	Items  interface{} `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorPayload{Message: message})
}

// writeError maps domain sentinel errors onto HTTP statuses. It is the only
// place that mapping lives; handlers pass service errors through untouched.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrSubjectNotFound),
		errors.Is(err, domain.ErrChapterNotFound),
		errors.Is(err, domain.ErrQuizNotFound),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrScoreNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrNotSignedUp),
		errors.Is(err, domain.ErrQuizNotActive):
		writeMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrAlreadySignedUp):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrSignupClosed),
		errors.Is(err, domain.ErrQuizHasNoQuestions),
		errors.Is(err, domain.ErrQuizStillActive):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrTokenMalformed):
		writeMessage(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, auth.ErrTokenInvalid):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	default:
		log.Printf("request failed: %v", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

var validate = validator.New()

// decodeValid decodes the JSON body into dst and runs struct validation.
// Validation failures are written as 400 with per-field details; the caller
// only continues when decodeValid returns true.
func decodeValid(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var invalid validator.ValidationErrors
		if !errors.As(err, &invalid) {
			writeMessage(w, http.StatusBadRequest, "invalid request body")
			return false
		}
		details := make([]fieldError, 0, len(invalid))
		for _, fe := range invalid {
			details = append(details, fieldError{Field: fe.Field(), Msg: fe.Tag()})
		}
		writeJSON(w, http.StatusBadRequest, validationPayload{Message: "validation failed", Details: details})
		return false
	}
	return true
}
