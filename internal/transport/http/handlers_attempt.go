package http

import (
	"net/http"

	"quizhub/internal/app"
)

// AttemptHandler serves the signup/attempt/results lifecycle.
type AttemptHandler struct {
	attempts *app.AttemptService
}

func NewAttemptHandler(attempts *app.AttemptService) *AttemptHandler {
	return &AttemptHandler{attempts: attempts}
}

func (h *AttemptHandler) Signup(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r, "quiz_id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.attempts.Signup(r.Context(), callerFrom(r.Context()), quizID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "signed up"})
}

func (h *AttemptHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r, "quiz_id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.attempts.Cancel(r.Context(), callerFrom(r.Context()), quizID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "signup cancelled"})
}

func (h *AttemptHandler) Signups(w http.ResponseWriter, r *http.Request) {
	signups, err := h.attempts.Signups(r.Context(), callerFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, signups)
}

func (h *AttemptHandler) Start(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r, "quiz_id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	sheet, err := h.attempts.Start(r.Context(), callerFrom(r.Context()), quizID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

type submitRequest struct {
	Answers []answerRequest `json:"answers" validate:"required,dive"`
}

type answerRequest struct {
	QuestionID     int64 `json:"question_id" validate:"required,min=1"`
	SelectedOption *int  `json:"selected_option" validate:"omitempty,min=1,max=4"`
}

func (h *AttemptHandler) Submit(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r, "quiz_id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var req submitRequest
	if !decodeValid(w, r, &req) {
		return
	}
	answers := make([]app.AnswerSubmission, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, app.AnswerSubmission{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
		})
	}
	score, err := h.attempts.Submit(r.Context(), callerFrom(r.Context()), quizID, answers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, score)
}

func (h *AttemptHandler) Results(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r, "quiz_id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	breakdown, err := h.attempts.Results(r.Context(), callerFrom(r.Context()), quizID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

func (h *AttemptHandler) Score(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r, "quiz_id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	score, err := h.attempts.LatestScore(r.Context(), callerFrom(r.Context()), quizID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

func (h *AttemptHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.attempts.History(r.Context(), callerFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
