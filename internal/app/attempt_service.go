package app

import (
	"context"
	"time"

	"quizhub/internal/domain"
)

// AttemptService implements the quiz-attempt lifecycle: signup, attempt
// start, answer submission and scoring, and result retrieval.
type AttemptService struct {
	quizzes   QuizRepository
	questions QuestionRepository
	signups   SignupRepository
	scores    ScoreRepository
	content   QuizContentRepository
	now       func() time.Time
}

func NewAttemptService(
	quizzes QuizRepository,
	questions QuestionRepository,
	signups SignupRepository,
	scores ScoreRepository,
	content QuizContentRepository,
) *AttemptService {
	return &AttemptService{
		quizzes:   quizzes,
		questions: questions,
		signups:   signups,
		scores:    scores,
		content:   content,
		now:       time.Now,
	}
}

// WithClock is test-only for deterministic state derivation.
func (s *AttemptService) WithClock(now func() time.Time) *AttemptService {
	s.now = now
	return s
}

// Signup registers the caller for an upcoming quiz. Admins cannot attempt
// quizzes, a quiz can be joined at most once and only while it is still
// upcoming and has at least one question.
func (s *AttemptService) Signup(ctx context.Context, caller Caller, quizID int64) error {
	if caller.IsAdmin() {
		return domain.ErrForbidden
	}

	quiz, err := s.quizzes.ByID(ctx, quizID)
	if err != nil {
		return err
	}
	if quiz.StateAt(s.now()) != domain.StateUpcoming {
		return domain.ErrSignupClosed
	}

	if _, err := s.signups.Get(ctx, caller.ID, quizID); err == nil {
		return domain.ErrAlreadySignedUp
	} else if err != domain.ErrNotSignedUp {
		return err
	}

	count, err := s.questions.CountByQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrQuizHasNoQuestions
	}

	return s.signups.Create(ctx, &domain.QuizSignup{
		UserID:    caller.ID,
		QuizID:    quizID,
		CreatedAt: s.now().UTC(),
	})
}

// Cancel withdraws a signup. Cancellation is only possible while the quiz is
// still upcoming.
func (s *AttemptService) Cancel(ctx context.Context, caller Caller, quizID int64) error {
	quiz, err := s.quizzes.ByID(ctx, quizID)
	if err != nil {
		return err
	}
	if _, err := s.signups.Get(ctx, caller.ID, quizID); err != nil {
		return err
	}
	if quiz.StateAt(s.now()) != domain.StateUpcoming {
		return domain.ErrSignupClosed
	}
	return s.signups.Delete(ctx, caller.ID, quizID)
}

// SignupSummary is one row of the caller's signup overview.
type SignupSummary struct {
	QuizID         int64            `json:"quiz_id"`
	QuizName       string           `json:"quiz_name"`
	ChapterName    string           `json:"chapter_name"`
	SubjectName    string           `json:"subject_name"`
	DateOfQuiz     time.Time        `json:"date_of_quiz"`
	TimeDuration   string           `json:"time_duration"`
	Status         domain.QuizState `json:"status"`
	TotalQuestions int              `json:"total_questions"`
	TotalQuizScore int              `json:"total_quiz_score"`
	UserScore      *int             `json:"user_score"`
	CorrectAnswers *int             `json:"correct_answers"`
}

// Signups returns all of the caller's quiz signups with quiz metadata and the
// latest score where one exists.
func (s *AttemptService) Signups(ctx context.Context, caller Caller) ([]SignupSummary, error) {
	signups, err := s.signups.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	summaries := make([]SignupSummary, 0, len(signups))
	for _, signup := range signups {
		quiz := signup.Quiz
		if quiz == nil {
			continue
		}
		summary := SignupSummary{
			QuizID:         quiz.ID,
			QuizName:       quiz.Name,
			DateOfQuiz:     quiz.DateOfQuiz,
			TimeDuration:   quiz.TimeDuration,
			Status:         quiz.StateAt(now),
			TotalQuestions: len(quiz.Questions),
			TotalQuizScore: quiz.TotalScore(),
		}
		if quiz.Chapter != nil {
			summary.ChapterName = quiz.Chapter.Name
			if quiz.Chapter.Subject != nil {
				summary.SubjectName = quiz.Chapter.Subject.Name
			}
		}
		if score, err := s.scores.Latest(ctx, caller.ID, quiz.ID); err == nil {
			summary.UserScore = &score.TotalScore
			summary.CorrectAnswers = &score.CorrectAnswers
		} else if err != domain.ErrScoreNotFound {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// AttemptQuestion is a question as delivered to a taker: no answer key.
type AttemptQuestion struct {
	ID        int64  `json:"id"`
	Statement string `json:"question_statement"`
	Option1   string `json:"option1"`
	Option2   string `json:"option2"`
	Option3   string `json:"option3"`
	Option4   string `json:"option4"`
	Points    int    `json:"points"`
}

// AttemptSheet is the payload served when a signed-up user starts an attempt.
type AttemptSheet struct {
	QuizID         int64             `json:"quiz_id"`
	QuizName       string            `json:"quiz_name"`
	DateOfQuiz     time.Time         `json:"date_of_quiz"`
	TimeDuration   string            `json:"time_duration"`
	TotalQuestions int               `json:"total_questions"`
	TotalQuizScore int               `json:"total_quiz_score"`
	Questions      []AttemptQuestion `json:"questions"`
}

// Start serves the question sheet for an active quiz the caller signed up for.
// It is read-only; nothing is recorded until submission.
func (s *AttemptService) Start(ctx context.Context, caller Caller, quizID int64) (*AttemptSheet, error) {
	quiz, err := s.content.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if _, err := s.signups.Get(ctx, caller.ID, quizID); err != nil {
		return nil, err
	}
	if quiz.StateAt(s.now()) != domain.StateActive {
		return nil, domain.ErrQuizNotActive
	}

	sheet := &AttemptSheet{
		QuizID:         quiz.ID,
		QuizName:       quiz.Name,
		DateOfQuiz:     quiz.DateOfQuiz,
		TimeDuration:   quiz.TimeDuration,
		TotalQuestions: len(quiz.Questions),
		TotalQuizScore: quiz.TotalScore(),
		Questions:      make([]AttemptQuestion, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		sheet.Questions = append(sheet.Questions, AttemptQuestion{
			ID:        q.ID,
			Statement: q.Statement,
			Option1:   q.Option1,
			Option2:   q.Option2,
			Option3:   q.Option3,
			Option4:   q.Option4,
			Points:    q.Points,
		})
	}
	return sheet, nil
}

// AnswerSubmission is one submitted answer. A nil SelectedOption means the
// question was intentionally left unanswered.
type AnswerSubmission struct {
	QuestionID     int64
	SelectedOption *int
}

// Submit scores the answers and persists the Score with its question attempts
// atomically. Answers referencing questions outside the quiz are dropped, not
// rejected. Resubmission creates an additional Score row; readers resolve the
// latest attempt by submission time.
func (s *AttemptService) Submit(ctx context.Context, caller Caller, quizID int64, answers []AnswerSubmission) (*domain.Score, error) {
	if caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	quiz, err := s.content.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if _, err := s.signups.Get(ctx, caller.ID, quizID); err != nil {
		return nil, err
	}
	if quiz.StateAt(s.now()) != domain.StateActive {
		return nil, domain.ErrQuizNotActive
	}

	byID := make(map[int64]*domain.Question, len(quiz.Questions))
	for _, q := range quiz.Questions {
		byID[q.ID] = q
	}

	score := &domain.Score{
		QuizID:    quizID,
		UserID:    caller.ID,
		CreatedAt: s.now().UTC(),
	}
	attempts := make([]*domain.QuestionAttempt, 0, len(answers))
	for _, answer := range answers {
		question, ok := byID[answer.QuestionID]
		if !ok {
			continue // lenient submission: unknown question ids are dropped
		}
		selected := domain.UnansweredOption
		if answer.SelectedOption != nil {
			selected = *answer.SelectedOption
		}
		correct := selected != domain.UnansweredOption && selected == question.CorrectOption
		if correct {
			score.TotalScore += question.Points
			score.CorrectAnswers++
		}
		attempts = append(attempts, &domain.QuestionAttempt{
			QuestionID:     question.ID,
			SelectedOption: selected,
			IsCorrect:      correct,
		})
	}

	if err := s.scores.CreateWithAttempts(ctx, score, attempts); err != nil {
		return nil, err
	}
	return score, nil
}

// ResultQuestion is one scored question in the detailed breakdown.
type ResultQuestion struct {
	QuestionID     int64  `json:"question_id"`
	Statement      string `json:"question_statement"`
	Option1        string `json:"option1"`
	Option2        string `json:"option2"`
	Option3        string `json:"option3"`
	Option4        string `json:"option4"`
	CorrectOption  int    `json:"correct_option"`
	SelectedOption *int   `json:"selected_option"`
	IsCorrect      bool   `json:"is_correct"`
	Points         int    `json:"points"`
}

// ResultBreakdown is the latest attempt with its per-question outcomes.
type ResultBreakdown struct {
	QuizID         int64            `json:"quiz_id"`
	QuizName       string           `json:"quiz_name"`
	TotalScore     int              `json:"total_score"`
	CorrectAnswers int              `json:"correct_answers"`
	TotalQuizScore int              `json:"total_quiz_score"`
	SubmittedAt    time.Time        `json:"submitted_at"`
	Questions      []ResultQuestion `json:"questions"`
}

// Results returns the caller's latest attempt with the answer key exposed.
// To keep answers from leaking mid-quiz, results stay hidden while the quiz
// is active.
func (s *AttemptService) Results(ctx context.Context, caller Caller, quizID int64) (*ResultBreakdown, error) {
	quiz, err := s.quizzes.ByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if _, err := s.signups.Get(ctx, caller.ID, quizID); err != nil {
		return nil, err
	}
	if quiz.StateAt(s.now()) == domain.StateActive {
		return nil, domain.ErrQuizStillActive
	}

	score, err := s.scores.LatestWithAttempts(ctx, caller.ID, quizID)
	if err != nil {
		return nil, err
	}

	breakdown := &ResultBreakdown{
		QuizID:         quiz.ID,
		QuizName:       quiz.Name,
		TotalScore:     score.TotalScore,
		CorrectAnswers: score.CorrectAnswers,
		SubmittedAt:    score.CreatedAt,
		Questions:      make([]ResultQuestion, 0, len(score.Attempts)),
	}
	for _, attempt := range score.Attempts {
		question := attempt.Question
		if question == nil {
			continue
		}
		row := ResultQuestion{
			QuestionID:    question.ID,
			Statement:     question.Statement,
			Option1:       question.Option1,
			Option2:       question.Option2,
			Option3:       question.Option3,
			Option4:       question.Option4,
			CorrectOption: question.CorrectOption,
			IsCorrect:     attempt.IsCorrect,
			Points:        question.Points,
		}
		if attempt.SelectedOption != domain.UnansweredOption {
			selected := attempt.SelectedOption
			row.SelectedOption = &selected
		}
		breakdown.TotalQuizScore += question.Points
		breakdown.Questions = append(breakdown.Questions, row)
	}
	return breakdown, nil
}

// LatestScore returns the caller's most recent score for the quiz without the
// per-question breakdown.
func (s *AttemptService) LatestScore(ctx context.Context, caller Caller, quizID int64) (*domain.Score, error) {
	if _, err := s.quizzes.ByID(ctx, quizID); err != nil {
		return nil, err
	}
	return s.scores.Latest(ctx, caller.ID, quizID)
}

// HistoryEntry is one attempt in the caller's attempt history.
type HistoryEntry struct {
	ScoreID        int64     `json:"score_id"`
	QuizID         int64     `json:"quiz_id"`
	QuizName       string    `json:"quiz_name"`
	DateOfQuiz     time.Time `json:"date_of_quiz"`
	TimeDuration   string    `json:"time_duration"`
	TotalScore     int       `json:"total_score"`
	CorrectAnswers int       `json:"correct_answers"`
	TotalQuizScore int       `json:"total_quiz_score"`
	TotalQuestions int       `json:"total_questions"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// History returns every attempt the caller has made. No ordering is promised.
func (s *AttemptService) History(ctx context.Context, caller Caller) ([]HistoryEntry, error) {
	scores, err := s.scores.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(scores))
	for _, score := range scores {
		entry := HistoryEntry{
			ScoreID:        score.ID,
			QuizID:         score.QuizID,
			TotalScore:     score.TotalScore,
			CorrectAnswers: score.CorrectAnswers,
			SubmittedAt:    score.CreatedAt,
		}
		if score.Quiz != nil {
			entry.QuizName = score.Quiz.Name
			entry.DateOfQuiz = score.Quiz.DateOfQuiz
			entry.TimeDuration = score.Quiz.TimeDuration
			entry.TotalQuizScore = score.Quiz.TotalScore()
			entry.TotalQuestions = len(score.Quiz.Questions)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
