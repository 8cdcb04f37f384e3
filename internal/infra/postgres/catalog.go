package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"quizhub/internal/domain"
)

// SubjectRepository is the bun-backed implementation of app.SubjectRepository.
type SubjectRepository struct {
	db *bun.DB
}

func NewSubjectRepository(db *bun.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

func (r *SubjectRepository) Create(ctx context.Context, subject *domain.Subject) error {
	if _, err := r.db.NewInsert().Model(subject).Exec(ctx); err != nil {
		return fmt.Errorf("insert subject: %w", err)
	}
	return nil
}

func (r *SubjectRepository) ByID(ctx context.Context, id int64) (*domain.Subject, error) {
	subject := new(domain.Subject)
	err := r.db.NewSelect().Model(subject).Where("s.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSubjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select subject: %w", err)
	}
	return subject, nil
}

func (r *SubjectRepository) List(ctx context.Context) ([]*domain.Subject, error) {
	var subjects []*domain.Subject
	if err := r.db.NewSelect().Model(&subjects).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

func (r *SubjectRepository) Update(ctx context.Context, subject *domain.Subject) error {
	if _, err := r.db.NewUpdate().Model(subject).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("update subject: %w", err)
	}
	return nil
}

func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.NewDelete().Model((*domain.Subject)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	return nil
}

// ChapterRepository is the bun-backed implementation of app.ChapterRepository.
type ChapterRepository struct {
	db *bun.DB
}

func NewChapterRepository(db *bun.DB) *ChapterRepository {
	return &ChapterRepository{db: db}
}

func (r *ChapterRepository) Create(ctx context.Context, chapter *domain.Chapter) error {
	if _, err := r.db.NewInsert().Model(chapter).Exec(ctx); err != nil {
		return fmt.Errorf("insert chapter: %w", err)
	}
	return nil
}

func (r *ChapterRepository) ByID(ctx context.Context, id int64) (*domain.Chapter, error) {
	chapter := new(domain.Chapter)
	err := r.db.NewSelect().Model(chapter).Where("c.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrChapterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select chapter: %w", err)
	}
	return chapter, nil
}

func (r *ChapterRepository) ListBySubject(ctx context.Context, subjectID int64) ([]*domain.Chapter, error) {
	var chapters []*domain.Chapter
	err := r.db.NewSelect().Model(&chapters).
		Where("c.subject_id = ?", subjectID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	return chapters, nil
}

func (r *ChapterRepository) Update(ctx context.Context, chapter *domain.Chapter) error {
	if _, err := r.db.NewUpdate().Model(chapter).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("update chapter: %w", err)
	}
	return nil
}

func (r *ChapterRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.NewDelete().Model((*domain.Chapter)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}
	return nil
}
