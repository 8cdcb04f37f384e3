package app

import (
	"context"
	"time"

	"quizhub/internal/domain"
)

// Caller identifies the authenticated principal behind a request.
type Caller struct {
	ID   int64
	Role string
}

func (c Caller) IsAdmin() bool { return c.Role == domain.RoleAdmin }

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	ByID(ctx context.Context, id int64) (*domain.User, error)
	ByIdentifier(ctx context.Context, emailOrUsername string) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*domain.User, int, error)
}

type SubjectRepository interface {
	Create(ctx context.Context, subject *domain.Subject) error
	ByID(ctx context.Context, id int64) (*domain.Subject, error)
	List(ctx context.Context) ([]*domain.Subject, error)
	Update(ctx context.Context, subject *domain.Subject) error
	Delete(ctx context.Context, id int64) error
}

type ChapterRepository interface {
	Create(ctx context.Context, chapter *domain.Chapter) error
	ByID(ctx context.Context, id int64) (*domain.Chapter, error)
	ListBySubject(ctx context.Context, subjectID int64) ([]*domain.Chapter, error)
	Update(ctx context.Context, chapter *domain.Chapter) error
	Delete(ctx context.Context, id int64) error
}

type QuizRepository interface {
	Create(ctx context.Context, quiz *domain.Quiz) error
	ByID(ctx context.Context, id int64) (*domain.Quiz, error)
	ListByChapter(ctx context.Context, chapterID int64) ([]*domain.Quiz, error)
	// ListUpcoming returns quizzes scheduled at or after now, questions loaded.
	ListUpcoming(ctx context.Context, now time.Time) ([]*domain.Quiz, error)
	Update(ctx context.Context, quiz *domain.Quiz) error
	Delete(ctx context.Context, id int64) error
}

type QuestionRepository interface {
	Create(ctx context.Context, question *domain.Question) error
	ByID(ctx context.Context, id int64) (*domain.Question, error)
	ListByQuiz(ctx context.Context, quizID int64) ([]*domain.Question, error)
	CountByQuiz(ctx context.Context, quizID int64) (int, error)
	Update(ctx context.Context, question *domain.Question) error
	Delete(ctx context.Context, id int64) error
}

// SignupRepository persists quiz signups. Get returns domain.ErrNotSignedUp
// when no signup exists for the pair.
type SignupRepository interface {
	Create(ctx context.Context, signup *domain.QuizSignup) error
	Get(ctx context.Context, userID, quizID int64) (*domain.QuizSignup, error)
	Delete(ctx context.Context, userID, quizID int64) error
	// ListByUser loads signups with quiz, chapter and subject relations.
	ListByUser(ctx context.Context, userID int64) ([]*domain.QuizSignup, error)
}

// ScoreRepository persists attempts. CreateWithAttempts must commit the score
// and its question attempts in one transaction.
type ScoreRepository interface {
	CreateWithAttempts(ctx context.Context, score *domain.Score, attempts []*domain.QuestionAttempt) error
	// Latest returns the most recent score for the pair by submission time,
	// or domain.ErrScoreNotFound.
	Latest(ctx context.Context, userID, quizID int64) (*domain.Score, error)
	// LatestWithAttempts additionally loads attempts and their questions.
	LatestWithAttempts(ctx context.Context, userID, quizID int64) (*domain.Score, error)
	// ListByUser loads all scores for the user with quiz and question relations.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Score, error)
}

// QuizContentRepository serves quiz content (schedule plus full question set,
// answer key included) for the attempt path, typically through a cache.
type QuizContentRepository interface {
	GetQuiz(ctx context.Context, quizID int64) (*domain.Quiz, error)
}

// QuizContentInvalidator drops cached quiz content after a mutation so the
// attempt path never serves stale questions for a whole cache TTL.
type QuizContentInvalidator interface {
	Invalidate(ctx context.Context, quizID int64)
}

// QuizContentCache is what the content caches implement: reads for the
// attempt path, invalidation for the management path.
type QuizContentCache interface {
	QuizContentRepository
	QuizContentInvalidator
}

// RevocationStore tracks revoked token IDs. Implementations may expire
// entries once the token itself would have expired.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// SearchRepository executes full-text queries. An empty query text must fall
// back to plain listing with limit/offset. Total is the full match count,
// independent of pagination.
type SearchRepository interface {
	SearchSubjects(ctx context.Context, query string, limit, offset int) ([]*domain.Subject, int, error)
	SearchChapters(ctx context.Context, subjectID int64, query string, limit, offset int) ([]*domain.Chapter, int, error)
	SearchQuizzes(ctx context.Context, chapterID int64, query string, limit, offset int) ([]*domain.Quiz, int, error)
	SearchUsers(ctx context.Context, query string, limit, offset int) ([]*domain.User, int, error)
}
