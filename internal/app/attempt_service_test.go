package app_test

import (
	"context"
	"testing"
	"time"

	"quizhub/internal/app"
	"quizhub/internal/domain"
)

type attemptFixture struct {
	service   *app.AttemptService
	quizzes   *fakeQuizRepo
	questions *fakeQuestionRepo
	signups   *fakeSignupRepo
	scores    *fakeScoreRepo
	clock     *time.Time
}

// newAttemptFixture builds a service around a quiz starting at start with a
// one hour window and two questions (correct options 1 and 3, 2 points each).
func newAttemptFixture(t *testing.T, start time.Time) *attemptFixture {
	t.Helper()
	ctx := context.Background()

	quizzes := newFakeQuizRepo()
	questions := newFakeQuestionRepo()
	signups := newFakeSignupRepo()
	scores := newFakeScoreRepo(questions)

	quiz := &domain.Quiz{ChapterID: 1, Name: "Midterm", DateOfQuiz: start, TimeDuration: "01:00"}
	if err := quizzes.Create(ctx, quiz); err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	for _, q := range []*domain.Question{
		{QuizID: quiz.ID, Statement: "Q1", Option1: "a", Option2: "b", Option3: "c", Option4: "d", CorrectOption: 1, Points: 2},
		{QuizID: quiz.ID, Statement: "Q2", Option1: "a", Option2: "b", Option3: "c", Option4: "d", CorrectOption: 3, Points: 2},
	} {
		if err := questions.Create(ctx, q); err != nil {
			t.Fatalf("seed question: %v", err)
		}
	}

	now := start.Add(-time.Hour)
	fx := &attemptFixture{quizzes: quizzes, questions: questions, signups: signups, scores: scores, clock: &now}
	content := &staticContent{quizzes: quizzes, questions: questions}
	fx.service = app.NewAttemptService(quizzes, questions, signups, scores, content).
		WithClock(func() time.Time { return *fx.clock })
	return fx
}

func (fx *attemptFixture) setNow(at time.Time) { *fx.clock = at }

var (
	taker = app.Caller{ID: 7, Role: domain.RoleUser}
	admin = app.Caller{ID: 1, Role: domain.RoleAdmin}
)

func TestSignupWhileUpcoming(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	fx := newAttemptFixture(t, start)

	if err := fx.service.Signup(ctx, taker, 1); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if _, err := fx.signups.Get(ctx, taker.ID, 1); err != nil {
		t.Fatalf("signup not recorded: %v", err)
	}
}

func TestSignupRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	fx := newAttemptFixture(t, start)

	if err := fx.service.Signup(ctx, taker, 1); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if err := fx.service.Signup(ctx, taker, 1); err != domain.ErrAlreadySignedUp {
		t.Fatalf("expected ErrAlreadySignedUp, got %v", err)
	}
}

func TestSignupEligibility(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("admin forbidden", func(t *testing.T) {
		fx := newAttemptFixture(t, start)
		if err := fx.service.Signup(ctx, admin, 1); err != domain.ErrForbidden {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("unknown quiz", func(t *testing.T) {
		fx := newAttemptFixture(t, start)
		if err := fx.service.Signup(ctx, taker, 99); err != domain.ErrQuizNotFound {
			t.Fatalf("expected ErrQuizNotFound, got %v", err)
		}
	})

	t.Run("closed once active", func(t *testing.T) {
		fx := newAttemptFixture(t, start)
		fx.setNow(start.Add(time.Minute))
		if err := fx.service.Signup(ctx, taker, 1); err != domain.ErrSignupClosed {
			t.Fatalf("expected ErrSignupClosed, got %v", err)
		}
	})

	t.Run("empty quiz", func(t *testing.T) {
		fx := newAttemptFixture(t, start)
		empty := &domain.Quiz{ChapterID: 1, Name: "Empty", DateOfQuiz: start, TimeDuration: "01:00"}
		if err := fx.quizzes.Create(ctx, empty); err != nil {
			t.Fatalf("seed quiz: %v", err)
		}
		if err := fx.service.Signup(ctx, taker, empty.ID); err != domain.ErrQuizHasNoQuestions {
			t.Fatalf("expected ErrQuizHasNoQuestions, got %v", err)
		}
	})
}

func TestCancelOnlyWhileUpcoming(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	fx := newAttemptFixture(t, start)

	if err := fx.service.Cancel(ctx, taker, 1); err != domain.ErrNotSignedUp {
		t.Fatalf("expected ErrNotSignedUp, got %v", err)
	}

	if err := fx.service.Signup(ctx, taker, 1); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	fx.setNow(start.Add(time.Minute))
	if err := fx.service.Cancel(ctx, taker, 1); err != domain.ErrSignupClosed {
		t.Fatalf("expected ErrSignupClosed once active, got %v", err)
	}

	fx.setNow(start.Add(-time.Minute))
	if err := fx.service.Cancel(ctx, taker, 1); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, err := fx.signups.Get(ctx, taker.ID, 1); err != domain.ErrNotSignedUp {
		t.Fatal("signup still present after cancel")
	}
}

func TestStartRequiresSignupAndActiveWindow(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	fx := newAttemptFixture(t, start)

	if _, err := fx.service.Start(ctx, taker, 1); err != domain.ErrNotSignedUp {
		t.Fatalf("expected ErrNotSignedUp, got %v", err)
	}

	if err := fx.service.Signup(ctx, taker, 1); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if _, err := fx.service.Start(ctx, taker, 1); err != domain.ErrQuizNotActive {
		t.Fatalf("expected ErrQuizNotActive before start, got %v", err)
	}

	fx.setNow(start.Add(time.Minute))
	sheet, err := fx.service.Start(ctx, taker, 1)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if sheet.TotalQuestions != 2 || sheet.TotalQuizScore != 4 {
		t.Fatalf("unexpected sheet totals: %+v", sheet)
	}
	for _, q := range sheet.Questions {
		if q.Statement == "" || q.Option1 == "" {
			t.Fatalf("question delivered incomplete: %+v", q)
		}
	}
}

func TestSubmitScoresAnswers(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	fx := newAttemptFixture(t, start)

	if err := fx.service.Signup(ctx, taker, 1); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	fx.setNow(start.Add(time.Minute))

	one, two := 1, 2
	score, err := fx.service.Submit(ctx, taker, 1, []app.AnswerSubmission{
		{QuestionID: 1, SelectedOption: &one}, // correct, 2 points
		{QuestionID: 2, SelectedOption: &two}, // wrong
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if score.TotalScore != 2 || score.CorrectAnswers != 1 {
		t.Fatalf("expected score 2 / correct 1, got %d / %d", score.TotalScore, score.CorrectAnswers)
	}

	persisted := fx.scores.attempts[score.ID]
	if len(persisted) != 2 {
		t.Fatalf("expected 2 persisted attempts, got %d", len(persisted))
	}
	if !persisted[0].IsCorrect || persisted[1].IsCorrect {
		t.Fatalf("expected correctness [true false], got [%v %v]", persisted[0].IsCorrect, persisted[1].IsCorrect)
	}
}

func TestSubmitDropsUnknownAndUnanswered(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	fx := newAttemptFixture(t, start)

	if err := fx.service.Signup(ctx, taker, 1); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	fx.setNow(start.Add(time.Minute))

	three := 3
	score, err := fx.service.Submit(ctx, taker, 1, []app.AnswerSubmission{
		{QuestionID: 1, SelectedOption: nil},     // unanswered, never correct
		{QuestionID: 2, SelectedOption: &three},  // correct, 2 points
		{QuestionID: 999, SelectedOption: &three}, // unknown question id, dropped
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if score.TotalScore != 2 || score.CorrectAnswers != 1 {
		t.Fatalf("expected score 2 / correct 1, got %d / %d", score.TotalScore, score.CorrectAnswers)
	}

	persisted := fx.scores.attempts[score.ID]
	if len(persisted) != 2 {
		t.Fatalf("unknown question id should not be persisted, got %d attempts", len(persisted))
	}
	if persisted[0].SelectedOption != domain.UnansweredOption {
		t.Fatalf("expected unanswered sentinel, got %d", persisted[0].SelectedOption)
	}
}

func TestResubmissionKeepsLatest(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	fx := newAttemptFixture(t, start)

	if err := fx.service.Signup(ctx, taker, 1); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	fx.setNow(start.Add(time.Minute))
	two := 2
	if _, err := fx.service.Submit(ctx, taker, 1, []app.AnswerSubmission{{QuestionID: 1, SelectedOption: &two}}); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	fx.setNow(start.Add(2 * time.Minute))
	one, three := 1, 3
	if _, err := fx.service.Submit(ctx, taker, 1, []app.AnswerSubmission{
		{QuestionID: 1, SelectedOption: &one},
		{QuestionID: 2, SelectedOption: &three},
	}); err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	latest, err := fx.scores.Latest(ctx, taker.ID, 1)
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if latest.TotalScore != 4 || latest.CorrectAnswers != 2 {
		t.Fatalf("latest should be the second attempt, got %+v", latest)
	}
	if len(fx.scores.scores) != 2 {
		t.Fatalf("both attempts should be kept, got %d", len(fx.scores.scores))
	}
}

func TestResultsHiddenWhileActive(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	fx := newAttemptFixture(t, start)

	if err := fx.service.Signup(ctx, taker, 1); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	fx.setNow(start.Add(time.Minute))
	one, two := 1, 2
	if _, err := fx.service.Submit(ctx, taker, 1, []app.AnswerSubmission{
		{QuestionID: 1, SelectedOption: &one},
		{QuestionID: 2, SelectedOption: &two},
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := fx.service.Results(ctx, taker, 1); err != domain.ErrQuizStillActive {
		t.Fatalf("expected ErrQuizStillActive, got %v", err)
	}

	fx.setNow(start.Add(2 * time.Hour))
	breakdown, err := fx.service.Results(ctx, taker, 1)
	if err != nil {
		t.Fatalf("results failed: %v", err)
	}
	if breakdown.TotalScore != 2 || breakdown.CorrectAnswers != 1 {
		t.Fatalf("unexpected totals: %+v", breakdown)
	}
	if len(breakdown.Questions) != 2 {
		t.Fatalf("expected 2 result rows, got %d", len(breakdown.Questions))
	}
	if !breakdown.Questions[0].IsCorrect || breakdown.Questions[1].IsCorrect {
		t.Fatalf("expected is_correct [true false], got %+v", breakdown.Questions)
	}
	if breakdown.Questions[0].CorrectOption != 1 || breakdown.Questions[1].CorrectOption != 3 {
		t.Fatalf("answer key missing from results: %+v", breakdown.Questions)
	}
}

func TestResultsRequireScore(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	fx := newAttemptFixture(t, start)

	if err := fx.service.Signup(ctx, taker, 1); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	fx.setNow(start.Add(2 * time.Hour))
	if _, err := fx.service.Results(ctx, taker, 1); err != domain.ErrScoreNotFound {
		t.Fatalf("expected ErrScoreNotFound, got %v", err)
	}
}

func TestHistoryListsAllAttempts(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	fx := newAttemptFixture(t, start)

	if err := fx.service.Signup(ctx, taker, 1); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	fx.setNow(start.Add(time.Minute))
	one := 1
	for i := 0; i < 3; i++ {
		if _, err := fx.service.Submit(ctx, taker, 1, []app.AnswerSubmission{{QuestionID: 1, SelectedOption: &one}}); err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
	}

	entries, err := fx.service.History(ctx, taker)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(entries))
	}
}
