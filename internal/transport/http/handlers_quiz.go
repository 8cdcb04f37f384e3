package http

import (
	"net/http"
	"time"

	"quizhub/internal/app"
)

// QuizHandler serves quizzes and their questions, including quiz search.
type QuizHandler struct {
	quizzes *app.QuizService
	catalog *app.CatalogService
	search  *app.SearchService
}

func NewQuizHandler(quizzes *app.QuizService, catalog *app.CatalogService, search *app.SearchService) *QuizHandler {
	return &QuizHandler{quizzes: quizzes, catalog: catalog, search: search}
}

type quizRequest struct {
	Name         string  `json:"name" validate:"required,max=128"`
	DateOfQuiz   string  `json:"date_of_quiz" validate:"required"`
	TimeDuration string  `json:"time_duration" validate:"required"`
	Remarks      *string `json:"remarks" validate:"omitempty,max=2048"`
}

func (h *QuizHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	chapterID, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var req quizRequest
	if !decodeValid(w, r, &req) {
		return
	}
	startsAt, err := time.Parse(time.RFC3339, req.DateOfQuiz)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "date_of_quiz must be an RFC 3339 timestamp")
		return
	}
	quiz, err := h.quizzes.CreateQuiz(r.Context(), chapterID, app.QuizInput{
		Name:         req.Name,
		DateOfQuiz:   startsAt,
		TimeDuration: req.TimeDuration,
		Remarks:      req.Remarks,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, quiz)
}

func (h *QuizHandler) ChapterQuizzes(w http.ResponseWriter, r *http.Request) {
	chapterID, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	quizzes, err := h.quizzes.ChapterQuizzes(r.Context(), chapterID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (h *QuizHandler) SearchQuizzes(w http.ResponseWriter, r *http.Request) {
	chapterID, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.catalog.Chapter(r.Context(), chapterID); err != nil {
		writeError(w, err)
		return
	}
	query, limit, offset, err := searchParams(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	quizzes, total := h.search.Quizzes(r.Context(), chapterID, query, limit, offset)
	writeJSON(w, http.StatusOK, searchPage{Items: quizzes, Total: total, Limit: limit, Offset: offset})
}

func (h *QuizHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	quiz, err := h.quizzes.Quiz(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *QuizHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizzes.UpcomingQuizzes(r.Context(), callerFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

type quizUpdateRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=128"`
	DateOfQuiz   *string `json:"date_of_quiz"`
	TimeDuration *string `json:"time_duration"`
	Remarks      *string `json:"remarks" validate:"omitempty,max=2048"`
}

func (h *QuizHandler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var req quizUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	in := app.QuizUpdate{
		Name:         req.Name,
		TimeDuration: req.TimeDuration,
		Remarks:      req.Remarks,
	}
	if req.DateOfQuiz != nil {
		startsAt, err := time.Parse(time.RFC3339, *req.DateOfQuiz)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "date_of_quiz must be an RFC 3339 timestamp")
			return
		}
		in.DateOfQuiz = &startsAt
	}
	quiz, err := h.quizzes.UpdateQuiz(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *QuizHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.quizzes.DeleteQuiz(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type questionRequest struct {
	Statement     string `json:"question_statement" validate:"required"`
	Option1       string `json:"option1" validate:"required"`
	Option2       string `json:"option2" validate:"required"`
	Option3       string `json:"option3" validate:"required"`
	Option4       string `json:"option4" validate:"required"`
	CorrectOption int    `json:"correct_option" validate:"required,min=1,max=4"`
	Points        int    `json:"points" validate:"omitempty,min=1"`
}

func (h *QuizHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var req questionRequest
	if !decodeValid(w, r, &req) {
		return
	}
	question, err := h.quizzes.CreateQuestion(r.Context(), quizID, app.QuestionInput{
		Statement:     req.Statement,
		Option1:       req.Option1,
		Option2:       req.Option2,
		Option3:       req.Option3,
		Option4:       req.Option4,
		CorrectOption: req.CorrectOption,
		Points:        req.Points,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, question)
}

func (h *QuizHandler) QuizQuestions(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	questions, err := h.quizzes.QuizQuestions(r.Context(), quizID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *QuizHandler) Question(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	question, err := h.quizzes.Question(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

type questionUpdateRequest struct {
	Statement     *string `json:"question_statement"`
	Option1       *string `json:"option1"`
	Option2       *string `json:"option2"`
	Option3       *string `json:"option3"`
	Option4       *string `json:"option4"`
	CorrectOption *int    `json:"correct_option" validate:"omitempty,min=1,max=4"`
	Points        *int    `json:"points" validate:"omitempty,min=1"`
}

func (h *QuizHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var req questionUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	question, err := h.quizzes.UpdateQuestion(r.Context(), id, app.QuestionUpdate{
		Statement:     req.Statement,
		Option1:       req.Option1,
		Option2:       req.Option2,
		Option3:       req.Option3,
		Option4:       req.Option4,
		CorrectOption: req.CorrectOption,
		Points:        req.Points,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

func (h *QuizHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.quizzes.DeleteQuestion(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
