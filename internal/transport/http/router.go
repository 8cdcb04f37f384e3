package http

import "net/http"

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Catalog  *CatalogHandler
	Quiz     *QuizHandler
	Attempt  *AttemptHandler
	Admin    *AdminHandler
	AuthGate *Authenticator
}

// NewRouter wires the full route table. Mutating catalog routes are
// admin-only; the attempt lifecycle and read paths require any
// authenticated user.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()
	authed := h.AuthGate.Require
	admin := h.AuthGate.RequireAdmin

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /auth/register", h.Auth.Register)
	mux.HandleFunc("POST /auth/login", h.Auth.Login)
	mux.HandleFunc("GET /auth/me", authed(h.Auth.Me))
	mux.HandleFunc("PATCH /auth/me", authed(h.Auth.UpdateMe))
	mux.HandleFunc("GET /auth/logout", authed(h.Auth.Logout))

	mux.HandleFunc("GET /subjects", authed(h.Catalog.ListSubjects))
	mux.HandleFunc("POST /subjects", admin(h.Catalog.CreateSubject))
	mux.HandleFunc("GET /subjects/search", authed(h.Catalog.SearchSubjects))
	mux.HandleFunc("GET /subjects/{id}", authed(h.Catalog.Subject))
	mux.HandleFunc("PATCH /subjects/{id}", admin(h.Catalog.UpdateSubject))
	mux.HandleFunc("DELETE /subjects/{id}", admin(h.Catalog.DeleteSubject))
	mux.HandleFunc("GET /subjects/{id}/chapters", authed(h.Catalog.SubjectChapters))
	mux.HandleFunc("POST /subjects/{id}/chapters", admin(h.Catalog.CreateChapter))
	mux.HandleFunc("GET /subjects/{id}/chapters/search", authed(h.Catalog.SearchChapters))

	mux.HandleFunc("GET /chapters/{id}", authed(h.Catalog.Chapter))
	mux.HandleFunc("PATCH /chapters/{id}", admin(h.Catalog.UpdateChapter))
	mux.HandleFunc("DELETE /chapters/{id}", admin(h.Catalog.DeleteChapter))
	mux.HandleFunc("GET /chapters/{id}/quizzes", authed(h.Quiz.ChapterQuizzes))
	mux.HandleFunc("POST /chapters/{id}/quizzes", admin(h.Quiz.CreateQuiz))
	mux.HandleFunc("GET /chapters/{id}/quizzes/search", authed(h.Quiz.SearchQuizzes))

	mux.HandleFunc("GET /quizzes/upcoming", authed(h.Quiz.Upcoming))
	mux.HandleFunc("GET /quizzes/{id}", authed(h.Quiz.Quiz))
	mux.HandleFunc("PATCH /quizzes/{id}", admin(h.Quiz.UpdateQuiz))
	mux.HandleFunc("DELETE /quizzes/{id}", admin(h.Quiz.DeleteQuiz))
	mux.HandleFunc("GET /quizzes/{id}/questions", authed(h.Quiz.QuizQuestions))
	mux.HandleFunc("POST /quizzes/{id}/questions", admin(h.Quiz.CreateQuestion))

	mux.HandleFunc("GET /questions/{id}", authed(h.Quiz.Question))
	mux.HandleFunc("PATCH /questions/{id}", admin(h.Quiz.UpdateQuestion))
	mux.HandleFunc("DELETE /questions/{id}", admin(h.Quiz.DeleteQuestion))

	mux.HandleFunc("POST /quiz-registration/{quiz_id}/signup", authed(h.Attempt.Signup))
	mux.HandleFunc("DELETE /quiz-registration/{quiz_id}/cancel", authed(h.Attempt.Cancel))
	mux.HandleFunc("GET /users/quizzes/signups", authed(h.Attempt.Signups))
	mux.HandleFunc("GET /quiz/attempts/history", authed(h.Attempt.History))
	mux.HandleFunc("GET /quiz/{quiz_id}/attempt", authed(h.Attempt.Start))
	mux.HandleFunc("POST /quiz/{quiz_id}/submit", authed(h.Attempt.Submit))
	mux.HandleFunc("GET /quiz/{quiz_id}/results", authed(h.Attempt.Results))
	mux.HandleFunc("GET /quiz/{quiz_id}/score", authed(h.Attempt.Score))

	mux.HandleFunc("GET /admin/users", admin(h.Admin.ListUsers))
	mux.HandleFunc("GET /admin/users/search", admin(h.Admin.SearchUsers))
	mux.HandleFunc("GET /admin/users/{id}", admin(h.Admin.User))
	mux.HandleFunc("PATCH /admin/users/{id}", admin(h.Admin.UpdateUser))
	mux.HandleFunc("DELETE /admin/users/{id}", admin(h.Admin.DeleteUser))

	return mux
}
