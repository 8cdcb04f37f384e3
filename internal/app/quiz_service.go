package app

import (
	"context"
	"time"

	"quizhub/internal/domain"
)

// QuizService manages quizzes and their questions. Mutations invalidate the
// quiz content cache so attempts see edits immediately.
type QuizService struct {
	chapters  ChapterRepository
	quizzes   QuizRepository
	questions QuestionRepository
	content   QuizContentInvalidator
	now       func() time.Time
}

func NewQuizService(chapters ChapterRepository, quizzes QuizRepository, questions QuestionRepository, content QuizContentInvalidator) *QuizService {
	return &QuizService{chapters: chapters, quizzes: quizzes, questions: questions, content: content, now: time.Now}
}

type QuizInput struct {
	Name         string
	DateOfQuiz   time.Time
	TimeDuration string
	Remarks      *string
}

func (s *QuizService) CreateQuiz(ctx context.Context, chapterID int64, in QuizInput) (*domain.Quiz, error) {
	if _, err := s.chapters.ByID(ctx, chapterID); err != nil {
		return nil, err
	}
	if _, err := domain.ParseQuizDuration(in.TimeDuration); err != nil {
		return nil, err
	}
	quiz := &domain.Quiz{
		ChapterID:    chapterID,
		Name:         in.Name,
		DateOfQuiz:   in.DateOfQuiz,
		TimeDuration: in.TimeDuration,
		Remarks:      in.Remarks,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) ChapterQuizzes(ctx context.Context, chapterID int64) ([]*domain.Quiz, error) {
	if _, err := s.chapters.ByID(ctx, chapterID); err != nil {
		return nil, err
	}
	return s.quizzes.ListByChapter(ctx, chapterID)
}

func (s *QuizService) Quiz(ctx context.Context, id int64) (*domain.Quiz, error) {
	return s.quizzes.ByID(ctx, id)
}

// UpcomingQuizzes lists quizzes that have not started yet. Quizzes without
// questions are hidden from non-admin callers since they cannot be signed up for.
func (s *QuizService) UpcomingQuizzes(ctx context.Context, caller Caller) ([]*domain.Quiz, error) {
	quizzes, err := s.quizzes.ListUpcoming(ctx, s.now())
	if err != nil {
		return nil, err
	}
	if caller.IsAdmin() {
		return quizzes, nil
	}
	visible := make([]*domain.Quiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		if len(quiz.Questions) > 0 {
			visible = append(visible, quiz)
		}
	}
	return visible, nil
}

type QuizUpdate struct {
	Name         *string
	DateOfQuiz   *time.Time
	TimeDuration *string
	Remarks      *string
}

func (s *QuizService) UpdateQuiz(ctx context.Context, id int64, in QuizUpdate) (*domain.Quiz, error) {
	quiz, err := s.quizzes.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		quiz.Name = *in.Name
	}
	if in.DateOfQuiz != nil {
		quiz.DateOfQuiz = *in.DateOfQuiz
	}
	if in.TimeDuration != nil {
		if _, err := domain.ParseQuizDuration(*in.TimeDuration); err != nil {
			return nil, err
		}
		quiz.TimeDuration = *in.TimeDuration
	}
	if in.Remarks != nil {
		quiz.Remarks = in.Remarks
	}
	touched := s.now().UTC()
	quiz.UpdatedAt = &touched
	if err := s.quizzes.Update(ctx, quiz); err != nil {
		return nil, err
	}
	s.content.Invalidate(ctx, quiz.ID)
	return quiz, nil
}

func (s *QuizService) DeleteQuiz(ctx context.Context, id int64) error {
	if _, err := s.quizzes.ByID(ctx, id); err != nil {
		return err
	}
	if err := s.quizzes.Delete(ctx, id); err != nil {
		return err
	}
	s.content.Invalidate(ctx, id)
	return nil
}

type QuestionInput struct {
	Statement     string
	Option1       string
	Option2       string
	Option3       string
	Option4       string
	CorrectOption int
	Points        int
}

func (s *QuizService) CreateQuestion(ctx context.Context, quizID int64, in QuestionInput) (*domain.Question, error) {
	if _, err := s.quizzes.ByID(ctx, quizID); err != nil {
		return nil, err
	}
	points := in.Points
	if points <= 0 {
		points = 1
	}
	question := &domain.Question{
		QuizID:        quizID,
		Statement:     in.Statement,
		Option1:       in.Option1,
		Option2:       in.Option2,
		Option3:       in.Option3,
		Option4:       in.Option4,
		CorrectOption: in.CorrectOption,
		Points:        points,
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}
	s.content.Invalidate(ctx, quizID)
	return question, nil
}

func (s *QuizService) QuizQuestions(ctx context.Context, quizID int64) ([]*domain.Question, error) {
	if _, err := s.quizzes.ByID(ctx, quizID); err != nil {
		return nil, err
	}
	return s.questions.ListByQuiz(ctx, quizID)
}

func (s *QuizService) Question(ctx context.Context, id int64) (*domain.Question, error) {
	return s.questions.ByID(ctx, id)
}

type QuestionUpdate struct {
	Statement     *string
	Option1       *string
	Option2       *string
	Option3       *string
	Option4       *string
	CorrectOption *int
	Points        *int
}

func (s *QuizService) UpdateQuestion(ctx context.Context, id int64, in QuestionUpdate) (*domain.Question, error) {
	question, err := s.questions.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Statement != nil {
		question.Statement = *in.Statement
	}
	if in.Option1 != nil {
		question.Option1 = *in.Option1
	}
	if in.Option2 != nil {
		question.Option2 = *in.Option2
	}
	if in.Option3 != nil {
		question.Option3 = *in.Option3
	}
	if in.Option4 != nil {
		question.Option4 = *in.Option4
	}
	if in.CorrectOption != nil {
		question.CorrectOption = *in.CorrectOption
	}
	if in.Points != nil && *in.Points > 0 {
		question.Points = *in.Points
	}
	if err := s.questions.Update(ctx, question); err != nil {
		return nil, err
	}
	s.content.Invalidate(ctx, question.QuizID)
	return question, nil
}

func (s *QuizService) DeleteQuestion(ctx context.Context, id int64) error {
	question, err := s.questions.ByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		return err
	}
	s.content.Invalidate(ctx, question.QuizID)
	return nil
}
