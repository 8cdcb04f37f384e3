package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"quizhub/internal/domain"
)

// QuizRepository is the bun-backed implementation of app.QuizRepository.
type QuizRepository struct {
	db *bun.DB
}

func NewQuizRepository(db *bun.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *domain.Quiz) error {
	if _, err := r.db.NewInsert().Model(quiz).Exec(ctx); err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

func (r *QuizRepository) ByID(ctx context.Context, id int64) (*domain.Quiz, error) {
	quiz := new(domain.Quiz)
	err := r.db.NewSelect().Model(quiz).Where("q.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrQuizNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select quiz: %w", err)
	}
	return quiz, nil
}

func (r *QuizRepository) ListByChapter(ctx context.Context, chapterID int64) ([]*domain.Quiz, error) {
	var quizzes []*domain.Quiz
	err := r.db.NewSelect().Model(&quizzes).
		Where("q.chapter_id = ?", chapterID).
		Order("date_of_quiz ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

func (r *QuizRepository) ListUpcoming(ctx context.Context, now time.Time) ([]*domain.Quiz, error) {
	var quizzes []*domain.Quiz
	err := r.db.NewSelect().Model(&quizzes).
		Relation("Questions").
		Relation("Chapter").
		Relation("Chapter.Subject").
		Where("q.date_of_quiz > ?", now).
		Order("q.date_of_quiz ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list upcoming quizzes: %w", err)
	}
	return quizzes, nil
}

func (r *QuizRepository) Update(ctx context.Context, quiz *domain.Quiz) error {
	if _, err := r.db.NewUpdate().Model(quiz).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("update quiz: %w", err)
	}
	return nil
}

func (r *QuizRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.NewDelete().Model((*domain.Quiz)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	return nil
}

// QuestionRepository is the bun-backed implementation of app.QuestionRepository.
type QuestionRepository struct {
	db *bun.DB
}

func NewQuestionRepository(db *bun.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	if _, err := r.db.NewInsert().Model(question).Exec(ctx); err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

func (r *QuestionRepository) ByID(ctx context.Context, id int64) (*domain.Question, error) {
	question := new(domain.Question)
	err := r.db.NewSelect().Model(question).Where("qn.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrQuestionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select question: %w", err)
	}
	return question, nil
}

func (r *QuestionRepository) ListByQuiz(ctx context.Context, quizID int64) ([]*domain.Question, error) {
	var questions []*domain.Question
	err := r.db.NewSelect().Model(&questions).
		Where("qn.quiz_id = ?", quizID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

func (r *QuestionRepository) CountByQuiz(ctx context.Context, quizID int64) (int, error) {
	count, err := r.db.NewSelect().Model((*domain.Question)(nil)).
		Where("quiz_id = ?", quizID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return count, nil
}

func (r *QuestionRepository) Update(ctx context.Context, question *domain.Question) error {
	if _, err := r.db.NewUpdate().Model(question).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	return nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.NewDelete().Model((*domain.Question)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}
