package app

import (
	"context"
	"time"

	"quizhub/internal/domain"
)

// CatalogService manages subjects and their chapters.
type CatalogService struct {
	subjects SubjectRepository
	chapters ChapterRepository
	now      func() time.Time
}

func NewCatalogService(subjects SubjectRepository, chapters ChapterRepository) *CatalogService {
	return &CatalogService{subjects: subjects, chapters: chapters, now: time.Now}
}

type SubjectInput struct {
	Name        string
	Description string
}

func (s *CatalogService) CreateSubject(ctx context.Context, in SubjectInput) (*domain.Subject, error) {
	subject := &domain.Subject{
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *CatalogService) Subjects(ctx context.Context) ([]*domain.Subject, error) {
	return s.subjects.List(ctx)
}

func (s *CatalogService) Subject(ctx context.Context, id int64) (*domain.Subject, error) {
	return s.subjects.ByID(ctx, id)
}

type SubjectUpdate struct {
	Name        *string
	Description *string
}

func (s *CatalogService) UpdateSubject(ctx context.Context, id int64, in SubjectUpdate) (*domain.Subject, error) {
	subject, err := s.subjects.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		subject.Name = *in.Name
	}
	if in.Description != nil {
		subject.Description = *in.Description
	}
	touched := s.now().UTC()
	subject.UpdatedAt = &touched
	if err := s.subjects.Update(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// DeleteSubject removes the subject; chapters, quizzes, questions, scores and
// signups underneath it cascade in the database.
func (s *CatalogService) DeleteSubject(ctx context.Context, id int64) error {
	if _, err := s.subjects.ByID(ctx, id); err != nil {
		return err
	}
	return s.subjects.Delete(ctx, id)
}

type ChapterInput struct {
	Name        string
	Description string
}

func (s *CatalogService) CreateChapter(ctx context.Context, subjectID int64, in ChapterInput) (*domain.Chapter, error) {
	if _, err := s.subjects.ByID(ctx, subjectID); err != nil {
		return nil, err
	}
	chapter := &domain.Chapter{
		SubjectID:   subjectID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.chapters.Create(ctx, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *CatalogService) SubjectChapters(ctx context.Context, subjectID int64) ([]*domain.Chapter, error) {
	if _, err := s.subjects.ByID(ctx, subjectID); err != nil {
		return nil, err
	}
	return s.chapters.ListBySubject(ctx, subjectID)
}

func (s *CatalogService) Chapter(ctx context.Context, id int64) (*domain.Chapter, error) {
	return s.chapters.ByID(ctx, id)
}

type ChapterUpdate struct {
	Name        *string
	Description *string
}

func (s *CatalogService) UpdateChapter(ctx context.Context, id int64, in ChapterUpdate) (*domain.Chapter, error) {
	chapter, err := s.chapters.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		chapter.Name = *in.Name
	}
	if in.Description != nil {
		chapter.Description = *in.Description
	}
	touched := s.now().UTC()
	chapter.UpdatedAt = &touched
	if err := s.chapters.Update(ctx, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *CatalogService) DeleteChapter(ctx context.Context, id int64) error {
	if _, err := s.chapters.ByID(ctx, id); err != nil {
		return err
	}
	return s.chapters.Delete(ctx, id)
}
