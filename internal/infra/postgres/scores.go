package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"quizhub/internal/domain"
)

// ScoreRepository is the bun-backed implementation of app.ScoreRepository.
type ScoreRepository struct {
	db *bun.DB
}

func NewScoreRepository(db *bun.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// CreateWithAttempts commits the score row and its question attempts in a
// single transaction, so a partial submission can never be observed.
func (r *ScoreRepository) CreateWithAttempts(ctx context.Context, score *domain.Score, attempts []*domain.QuestionAttempt) error {
	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(score).Exec(ctx); err != nil {
			return fmt.Errorf("insert score: %w", err)
		}
		if len(attempts) == 0 {
			return nil
		}
		for _, attempt := range attempts {
			attempt.ScoreID = score.ID
		}
		if _, err := tx.NewInsert().Model(&attempts).Exec(ctx); err != nil {
			return fmt.Errorf("insert attempts: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create score: %w", err)
	}
	return nil
}

func (r *ScoreRepository) Latest(ctx context.Context, userID, quizID int64) (*domain.Score, error) {
	score := new(domain.Score)
	err := r.db.NewSelect().Model(score).
		Where("sc.user_id = ?", userID).
		Where("sc.quiz_id = ?", quizID).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrScoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select score: %w", err)
	}
	return score, nil
}

func (r *ScoreRepository) LatestWithAttempts(ctx context.Context, userID, quizID int64) (*domain.Score, error) {
	score := new(domain.Score)
	err := r.db.NewSelect().Model(score).
		Relation("Attempts").
		Relation("Attempts.Question").
		Where("sc.user_id = ?", userID).
		Where("sc.quiz_id = ?", quizID).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrScoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select score with attempts: %w", err)
	}
	return score, nil
}

func (r *ScoreRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Score, error) {
	var scores []*domain.Score
	err := r.db.NewSelect().Model(&scores).
		Relation("Quiz").
		Relation("Quiz.Questions").
		Where("sc.user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	return scores, nil
}
