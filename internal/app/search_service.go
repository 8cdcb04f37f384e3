package app

import (
	"context"
	"log"

	"quizhub/internal/domain"
)

// SearchService wraps the full-text repository. Search is best-effort: any
// engine error is logged and converted to an empty page so callers degrade
// gracefully instead of failing the request.
type SearchService struct {
	repo SearchRepository
}

func NewSearchService(repo SearchRepository) *SearchService {
	return &SearchService{repo: repo}
}

func (s *SearchService) Subjects(ctx context.Context, query string, limit, offset int) ([]*domain.Subject, int) {
	items, total, err := s.repo.SearchSubjects(ctx, query, limit, offset)
	if err != nil {
		log.Printf("subject search failed, returning empty page: %v", err)
		return []*domain.Subject{}, 0
	}
	return items, total
}

func (s *SearchService) Chapters(ctx context.Context, subjectID int64, query string, limit, offset int) ([]*domain.Chapter, int) {
	items, total, err := s.repo.SearchChapters(ctx, subjectID, query, limit, offset)
	if err != nil {
		log.Printf("chapter search failed, returning empty page: %v", err)
		return []*domain.Chapter{}, 0
	}
	return items, total
}

func (s *SearchService) Quizzes(ctx context.Context, chapterID int64, query string, limit, offset int) ([]*domain.Quiz, int) {
	items, total, err := s.repo.SearchQuizzes(ctx, chapterID, query, limit, offset)
	if err != nil {
		log.Printf("quiz search failed, returning empty page: %v", err)
		return []*domain.Quiz{}, 0
	}
	return items, total
}

func (s *SearchService) Users(ctx context.Context, query string, limit, offset int) ([]*domain.User, int) {
	items, total, err := s.repo.SearchUsers(ctx, query, limit, offset)
	if err != nil {
		log.Printf("user search failed, returning empty page: %v", err)
		return []*domain.User{}, 0
	}
	return items, total
}
