package app_test

import (
	"context"
	"time"

	"quizhub/internal/app"
	"quizhub/internal/domain"
)

// In-memory fakes for the repository interfaces. They keep the service tests
// independent of Postgres; the integration package covers the real stores.

type fakeQuizRepo struct {
	quizzes map[int64]*domain.Quiz
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: make(map[int64]*domain.Quiz)}
}

func (r *fakeQuizRepo) Create(_ context.Context, quiz *domain.Quiz) error {
	quiz.ID = int64(len(r.quizzes) + 1)
	r.quizzes[quiz.ID] = quiz
	return nil
}

func (r *fakeQuizRepo) ByID(_ context.Context, id int64) (*domain.Quiz, error) {
	if quiz, ok := r.quizzes[id]; ok {
		return quiz, nil
	}
	return nil, domain.ErrQuizNotFound
}

func (r *fakeQuizRepo) ListByChapter(_ context.Context, chapterID int64) ([]*domain.Quiz, error) {
	var out []*domain.Quiz
	for _, quiz := range r.quizzes {
		if quiz.ChapterID == chapterID {
			out = append(out, quiz)
		}
	}
	return out, nil
}

func (r *fakeQuizRepo) ListUpcoming(_ context.Context, now time.Time) ([]*domain.Quiz, error) {
	var out []*domain.Quiz
	for _, quiz := range r.quizzes {
		if quiz.StateAt(now) == domain.StateUpcoming {
			out = append(out, quiz)
		}
	}
	return out, nil
}

func (r *fakeQuizRepo) Update(_ context.Context, quiz *domain.Quiz) error {
	r.quizzes[quiz.ID] = quiz
	return nil
}

func (r *fakeQuizRepo) Delete(_ context.Context, id int64) error {
	delete(r.quizzes, id)
	return nil
}

type fakeQuestionRepo struct {
	questions map[int64]*domain.Question
	nextID    int64
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[int64]*domain.Question)}
}

func (r *fakeQuestionRepo) Create(_ context.Context, q *domain.Question) error {
	r.nextID++
	q.ID = r.nextID
	r.questions[q.ID] = q
	return nil
}

func (r *fakeQuestionRepo) ByID(_ context.Context, id int64) (*domain.Question, error) {
	if q, ok := r.questions[id]; ok {
		return q, nil
	}
	return nil, domain.ErrQuestionNotFound
}

func (r *fakeQuestionRepo) ListByQuiz(_ context.Context, quizID int64) ([]*domain.Question, error) {
	var out []*domain.Question
	for _, q := range r.questions {
		if q.QuizID == quizID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) CountByQuiz(ctx context.Context, quizID int64) (int, error) {
	list, _ := r.ListByQuiz(ctx, quizID)
	return len(list), nil
}

func (r *fakeQuestionRepo) Update(_ context.Context, q *domain.Question) error {
	r.questions[q.ID] = q
	return nil
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id int64) error {
	delete(r.questions, id)
	return nil
}

type signupKey struct{ userID, quizID int64 }

type fakeSignupRepo struct {
	signups map[signupKey]*domain.QuizSignup
}

func newFakeSignupRepo() *fakeSignupRepo {
	return &fakeSignupRepo{signups: make(map[signupKey]*domain.QuizSignup)}
}

func (r *fakeSignupRepo) Create(_ context.Context, signup *domain.QuizSignup) error {
	r.signups[signupKey{signup.UserID, signup.QuizID}] = signup
	return nil
}

func (r *fakeSignupRepo) Get(_ context.Context, userID, quizID int64) (*domain.QuizSignup, error) {
	if signup, ok := r.signups[signupKey{userID, quizID}]; ok {
		return signup, nil
	}
	return nil, domain.ErrNotSignedUp
}

func (r *fakeSignupRepo) Delete(_ context.Context, userID, quizID int64) error {
	delete(r.signups, signupKey{userID, quizID})
	return nil
}

func (r *fakeSignupRepo) ListByUser(_ context.Context, userID int64) ([]*domain.QuizSignup, error) {
	var out []*domain.QuizSignup
	for _, signup := range r.signups {
		if signup.UserID == userID {
			out = append(out, signup)
		}
	}
	return out, nil
}

type fakeScoreRepo struct {
	scores    []*domain.Score
	attempts  map[int64][]*domain.QuestionAttempt
	questions *fakeQuestionRepo
	nextID    int64
}

func newFakeScoreRepo(questions *fakeQuestionRepo) *fakeScoreRepo {
	return &fakeScoreRepo{attempts: make(map[int64][]*domain.QuestionAttempt), questions: questions}
}

func (r *fakeScoreRepo) CreateWithAttempts(_ context.Context, score *domain.Score, attempts []*domain.QuestionAttempt) error {
	r.nextID++
	score.ID = r.nextID
	for _, attempt := range attempts {
		attempt.ScoreID = score.ID
	}
	r.scores = append(r.scores, score)
	r.attempts[score.ID] = attempts
	return nil
}

func (r *fakeScoreRepo) Latest(_ context.Context, userID, quizID int64) (*domain.Score, error) {
	var latest *domain.Score
	for _, score := range r.scores {
		if score.UserID != userID || score.QuizID != quizID {
			continue
		}
		if latest == nil || score.CreatedAt.After(latest.CreatedAt) {
			latest = score
		}
	}
	if latest == nil {
		return nil, domain.ErrScoreNotFound
	}
	return latest, nil
}

func (r *fakeScoreRepo) LatestWithAttempts(ctx context.Context, userID, quizID int64) (*domain.Score, error) {
	latest, err := r.Latest(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}
	latest.Attempts = r.attempts[latest.ID]
	for _, attempt := range latest.Attempts {
		attempt.Question = r.questions.questions[attempt.QuestionID]
	}
	return latest, nil
}

func (r *fakeScoreRepo) ListByUser(_ context.Context, userID int64) ([]*domain.Score, error) {
	var out []*domain.Score
	for _, score := range r.scores {
		if score.UserID == userID {
			out = append(out, score)
		}
	}
	return out, nil
}

// staticContent serves quizzes straight from the quiz repo with questions
// attached, standing in for the cached content path.
type staticContent struct {
	quizzes   *fakeQuizRepo
	questions *fakeQuestionRepo
}

func (c *staticContent) GetQuiz(ctx context.Context, quizID int64) (*domain.Quiz, error) {
	quiz, err := c.quizzes.ByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	quiz.Questions, _ = c.questions.ListByQuiz(ctx, quizID)
	return quiz, nil
}

// recordingInvalidator records which quiz ids had their cached content dropped.
type recordingInvalidator struct {
	invalidated []int64
}

func (i *recordingInvalidator) Invalidate(_ context.Context, quizID int64) {
	i.invalidated = append(i.invalidated, quizID)
}

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) ByID(_ context.Context, id int64) (*domain.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) ByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == identifier || user.Username == identifier {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int) ([]*domain.User, int, error) {
	var all []*domain.User
	for _, user := range r.users {
		all = append(all, user)
	}
	total := len(all)
	if offset >= len(all) {
		return []*domain.User{}, total, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

// interface conformance
var (
	_ app.QuizRepository         = (*fakeQuizRepo)(nil)
	_ app.QuestionRepository     = (*fakeQuestionRepo)(nil)
	_ app.SignupRepository       = (*fakeSignupRepo)(nil)
	_ app.ScoreRepository        = (*fakeScoreRepo)(nil)
	_ app.QuizContentRepository  = (*staticContent)(nil)
	_ app.QuizContentInvalidator = (*recordingInvalidator)(nil)
	_ app.UserRepository         = (*fakeUserRepo)(nil)
)
