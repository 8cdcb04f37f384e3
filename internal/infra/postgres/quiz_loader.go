package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quizhub/internal/domain"
)

// QuizLoader reads quiz content (schedule plus the full question set, answer
// key included) straight from Postgres. The attempt path wraps it in a cache.
type QuizLoader struct {
	pool *pgxpool.Pool
}

func NewQuizLoader(pool *pgxpool.Pool) *QuizLoader {
	return &QuizLoader{pool: pool}
}

func (l *QuizLoader) LoadQuiz(ctx context.Context, quizID int64) (*domain.Quiz, error) {
	quiz := &domain.Quiz{}
	err := l.pool.QueryRow(ctx,
		`SELECT id, chapter_id, name, date_of_quiz, time_duration, remarks, created_at, updated_at
		 FROM quizzes WHERE id = $1`, quizID).
		Scan(&quiz.ID, &quiz.ChapterID, &quiz.Name, &quiz.DateOfQuiz, &quiz.TimeDuration,
			&quiz.Remarks, &quiz.CreatedAt, &quiz.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrQuizNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz: %w", err)
	}

	rows, err := l.pool.Query(ctx,
		`SELECT id, quiz_id, question_statement, option1, option2, option3, option4, correct_option, points
		 FROM questions WHERE quiz_id = $1 ORDER BY id`, quizID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		question := &domain.Question{}
		if err := rows.Scan(&question.ID, &question.QuizID, &question.Statement,
			&question.Option1, &question.Option2, &question.Option3, &question.Option4,
			&question.CorrectOption, &question.Points); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		quiz.Questions = append(quiz.Questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return quiz, nil
}
