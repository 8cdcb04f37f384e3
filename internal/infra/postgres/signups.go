package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	"quizhub/internal/domain"
)

// SignupRepository is the bun-backed implementation of app.SignupRepository.
type SignupRepository struct {
	db *bun.DB
}

func NewSignupRepository(db *bun.DB) *SignupRepository {
	return &SignupRepository{db: db}
}

func (r *SignupRepository) Create(ctx context.Context, signup *domain.QuizSignup) error {
	if _, err := r.db.NewInsert().Model(signup).Exec(ctx); err != nil {
		// two racing signups both pass the service check; the composite PK
		// decides the loser
		if isUniqueViolation(err) {
			return domain.ErrAlreadySignedUp
		}
		return fmt.Errorf("insert signup: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}

func (r *SignupRepository) Get(ctx context.Context, userID, quizID int64) (*domain.QuizSignup, error) {
	signup := new(domain.QuizSignup)
	err := r.db.NewSelect().Model(signup).
		Where("sg.user_id = ?", userID).
		Where("sg.quiz_id = ?", quizID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotSignedUp
	}
	if err != nil {
		return nil, fmt.Errorf("select signup: %w", err)
	}
	return signup, nil
}

func (r *SignupRepository) Delete(ctx context.Context, userID, quizID int64) error {
	_, err := r.db.NewDelete().Model((*domain.QuizSignup)(nil)).
		Where("user_id = ?", userID).
		Where("quiz_id = ?", quizID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete signup: %w", err)
	}
	return nil
}

func (r *SignupRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.QuizSignup, error) {
	var signups []*domain.QuizSignup
	err := r.db.NewSelect().Model(&signups).
		Relation("Quiz").
		Relation("Quiz.Questions").
		Relation("Quiz.Chapter").
		Relation("Quiz.Chapter.Subject").
		Where("sg.user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list signups: %w", err)
	}
	return signups, nil
}
