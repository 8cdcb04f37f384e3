package postgres

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v4/pgxpool"

	"quizhub/internal/domain"
)

// SearchRepository runs full-text queries against the trigger-maintained
// search_tsv columns. An empty query falls back to plain listing so the
// search endpoints double as paginated listings.
type SearchRepository struct {
	pool *pgxpool.Pool
}

func NewSearchRepository(pool *pgxpool.Pool) *SearchRepository {
	return &SearchRepository{pool: pool}
}

// prefixQuery turns free text into a to_tsquery expression where every term
// matches as a prefix ("alg intro" -> "alg:* & intro:*"). Characters with
// meaning to tsquery are stripped so user input cannot break the expression.
func prefixQuery(query string) string {
	fields := strings.FieldsFunc(query, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		terms = append(terms, field+":*")
	}
	return strings.Join(terms, " & ")
}

func (r *SearchRepository) SearchSubjects(ctx context.Context, query string, limit, offset int) ([]*domain.Subject, int, error) {
	const columns = `id, name, description, created_at, updated_at`

	var (
		listSQL  string
		countSQL string
		args     []interface{}
	)
	if tsq := prefixQuery(query); tsq != "" {
		listSQL = `SELECT ` + columns + ` FROM subjects
			WHERE search_tsv @@ to_tsquery('simple', $1)
			ORDER BY ts_rank(search_tsv, to_tsquery('simple', $1)) DESC, id
			LIMIT $2 OFFSET $3`
		countSQL = `SELECT count(*) FROM subjects WHERE search_tsv @@ to_tsquery('simple', $1)`
		args = []interface{}{tsq}
	} else {
		listSQL = `SELECT ` + columns + ` FROM subjects ORDER BY id LIMIT $1 OFFSET $2`
		countSQL = `SELECT count(*) FROM subjects`
	}

	var total int
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count subjects: %w", err)
	}

	rows, err := r.pool.Query(ctx, listSQL, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("search subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*domain.Subject
	for rows.Next() {
		subject := &domain.Subject{}
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.Description,
			&subject.CreatedAt, &subject.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("search subjects: %w", err)
	}
	return subjects, total, nil
}

func (r *SearchRepository) SearchChapters(ctx context.Context, subjectID int64, query string, limit, offset int) ([]*domain.Chapter, int, error) {
	const columns = `id, subject_id, name, description, created_at, updated_at`

	var (
		listSQL  string
		countSQL string
		args     []interface{}
	)
	if tsq := prefixQuery(query); tsq != "" {
		listSQL = `SELECT ` + columns + ` FROM chapters
			WHERE subject_id = $1 AND search_tsv @@ to_tsquery('simple', $2)
			ORDER BY ts_rank(search_tsv, to_tsquery('simple', $2)) DESC, id
			LIMIT $3 OFFSET $4`
		countSQL = `SELECT count(*) FROM chapters
			WHERE subject_id = $1 AND search_tsv @@ to_tsquery('simple', $2)`
		args = []interface{}{subjectID, tsq}
	} else {
		listSQL = `SELECT ` + columns + ` FROM chapters WHERE subject_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
		countSQL = `SELECT count(*) FROM chapters WHERE subject_id = $1`
		args = []interface{}{subjectID}
	}

	var total int
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count chapters: %w", err)
	}

	rows, err := r.pool.Query(ctx, listSQL, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("search chapters: %w", err)
	}
	defer rows.Close()

	var chapters []*domain.Chapter
	for rows.Next() {
		chapter := &domain.Chapter{}
		if err := rows.Scan(&chapter.ID, &chapter.SubjectID, &chapter.Name,
			&chapter.Description, &chapter.CreatedAt, &chapter.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("search chapters: %w", err)
	}
	return chapters, total, nil
}

func (r *SearchRepository) SearchQuizzes(ctx context.Context, chapterID int64, query string, limit, offset int) ([]*domain.Quiz, int, error) {
	const columns = `id, chapter_id, name, date_of_quiz, time_duration, remarks, created_at, updated_at`

	var (
		listSQL  string
		countSQL string
		args     []interface{}
	)
	if tsq := prefixQuery(query); tsq != "" {
		listSQL = `SELECT ` + columns + ` FROM quizzes
			WHERE chapter_id = $1 AND search_tsv @@ to_tsquery('simple', $2)
			ORDER BY ts_rank(search_tsv, to_tsquery('simple', $2)) DESC, id
			LIMIT $3 OFFSET $4`
		countSQL = `SELECT count(*) FROM quizzes
			WHERE chapter_id = $1 AND search_tsv @@ to_tsquery('simple', $2)`
		args = []interface{}{chapterID, tsq}
	} else {
		listSQL = `SELECT ` + columns + ` FROM quizzes WHERE chapter_id = $1 ORDER BY date_of_quiz LIMIT $2 OFFSET $3`
		countSQL = `SELECT count(*) FROM quizzes WHERE chapter_id = $1`
		args = []interface{}{chapterID}
	}

	var total int
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count quizzes: %w", err)
	}

	rows, err := r.pool.Query(ctx, listSQL, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("search quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []*domain.Quiz
	for rows.Next() {
		quiz := &domain.Quiz{}
		if err := rows.Scan(&quiz.ID, &quiz.ChapterID, &quiz.Name, &quiz.DateOfQuiz,
			&quiz.TimeDuration, &quiz.Remarks, &quiz.CreatedAt, &quiz.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("search quizzes: %w", err)
	}
	return quizzes, total, nil
}

func (r *SearchRepository) SearchUsers(ctx context.Context, query string, limit, offset int) ([]*domain.User, int, error) {
	const columns = `id, username, email, full_name, dob, role, joined_at`

	var (
		listSQL  string
		countSQL string
		args     []interface{}
	)
	if tsq := prefixQuery(query); tsq != "" {
		listSQL = `SELECT ` + columns + ` FROM users
			WHERE search_tsv @@ to_tsquery('simple', $1)
			ORDER BY ts_rank(search_tsv, to_tsquery('simple', $1)) DESC, id
			LIMIT $2 OFFSET $3`
		countSQL = `SELECT count(*) FROM users WHERE search_tsv @@ to_tsquery('simple', $1)`
		args = []interface{}{tsq}
	} else {
		listSQL = `SELECT ` + columns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`
		countSQL = `SELECT count(*) FROM users`
	}

	var total int
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	rows, err := r.pool.Query(ctx, listSQL, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user := &domain.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.FullName,
			&user.DOB, &user.Role, &user.JoinedAt); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("search users: %w", err)
	}
	return users, total, nil
}
