package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Roles a user account can hold.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UnansweredOption is the stored selected-option sentinel for a question the
// user left blank. 0 can never collide with a real choice (1-4).
const UnansweredOption = 0

// QuizState is the derived temporal state of a quiz. It is computed from the
// clock and the stored schedule, never persisted.
type QuizState string

const (
	StateUpcoming  QuizState = "upcoming"
	StateActive    QuizState = "active"
	StateCompleted QuizState = "completed"
)

// User is a registered account. Scores and signups cascade-delete with it.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64      `bun:"id,pk,autoincrement" json:"id"`
	Username     string     `bun:"username,notnull,unique" json:"username"`
	Email        string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash string     `bun:"password_hash,notnull" json:"-"`
	FullName     string     `bun:"full_name,notnull" json:"full_name"`
	DOB          *time.Time `bun:"dob" json:"dob,omitempty"`
	Role         string     `bun:"role,notnull,default:'user'" json:"role"`
	JoinedAt     time.Time  `bun:"joined_at,notnull,default:current_timestamp" json:"joined_at"`

	Scores []*Score `bun:"rel:has-many,join:id=user_id" json:"-"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

type Subject struct {
	bun.BaseModel `bun:"table:subjects,alias:s"`

	ID          int64      `bun:"id,pk,autoincrement" json:"id"`
	Name        string     `bun:"name,notnull" json:"name"`
	Description string     `bun:"description,notnull" json:"description"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   *time.Time `bun:"updated_at" json:"updated_at,omitempty"`

	Chapters []*Chapter `bun:"rel:has-many,join:id=subject_id" json:"-"`
}

type Chapter struct {
	bun.BaseModel `bun:"table:chapters,alias:c"`

	ID          int64      `bun:"id,pk,autoincrement" json:"id"`
	SubjectID   int64      `bun:"subject_id,notnull" json:"subject_id"`
	Name        string     `bun:"name,notnull" json:"name"`
	Description string     `bun:"description,notnull" json:"description"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   *time.Time `bun:"updated_at" json:"updated_at,omitempty"`

	Subject *Subject `bun:"rel:belongs-to,join:subject_id=id" json:"-"`
	Quizzes []*Quiz  `bun:"rel:has-many,join:id=chapter_id" json:"-"`
}

// Quiz is scheduled at DateOfQuiz and runs for TimeDuration ("hh:mm").
type Quiz struct {
	bun.BaseModel `bun:"table:quizzes,alias:q"`

	ID           int64      `bun:"id,pk,autoincrement" json:"id"`
	ChapterID    int64      `bun:"chapter_id,notnull" json:"chapter_id"`
	Name         string     `bun:"name,notnull" json:"name"`
	DateOfQuiz   time.Time  `bun:"date_of_quiz,notnull" json:"date_of_quiz"`
	TimeDuration string     `bun:"time_duration,notnull" json:"time_duration"`
	Remarks      *string    `bun:"remarks" json:"remarks,omitempty"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    *time.Time `bun:"updated_at" json:"updated_at,omitempty"`

	Chapter   *Chapter    `bun:"rel:belongs-to,join:chapter_id=id" json:"-"`
	Questions []*Question `bun:"rel:has-many,join:id=quiz_id" json:"-"`
	Scores    []*Score    `bun:"rel:has-many,join:id=quiz_id" json:"-"`
}

// ParseQuizDuration parses the stored "hh:mm" duration format. The whole
// string must be consumed; trailing text is rejected.
func ParseQuizDuration(raw string) (time.Duration, error) {
	hoursPart, minutesPart, ok := strings.Cut(raw, ":")
	if !ok {
		return 0, fmt.Errorf("parse quiz duration %q: want hh:mm", raw)
	}
	hours, err := strconv.Atoi(hoursPart)
	if err != nil {
		return 0, fmt.Errorf("parse quiz duration %q: %w", raw, err)
	}
	minutes, err := strconv.Atoi(minutesPart)
	if err != nil {
		return 0, fmt.Errorf("parse quiz duration %q: %w", raw, err)
	}
	if hours < 0 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("parse quiz duration %q: out of range", raw)
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
}

// Duration returns the quiz length; an unparseable stored value counts as zero.
func (q *Quiz) Duration() time.Duration {
	d, err := ParseQuizDuration(q.TimeDuration)
	if err != nil {
		return 0
	}
	return d
}

// EndTime is the last instant at which the quiz is still active.
func (q *Quiz) EndTime() time.Time {
	return q.DateOfQuiz.Add(q.Duration())
}

// StateAt derives the quiz state from the clock. The active window
// [start, start+duration] is inclusive on both ends.
func (q *Quiz) StateAt(now time.Time) QuizState {
	switch {
	case now.Before(q.DateOfQuiz):
		return StateUpcoming
	case now.After(q.EndTime()):
		return StateCompleted
	default:
		return StateActive
	}
}

// TotalScore sums question points over the loaded Questions relation.
func (q *Quiz) TotalScore() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}

// Question is a four-option MCQ. CorrectOption is 1-based.
type Question struct {
	bun.BaseModel `bun:"table:questions,alias:qn"`

	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	QuizID        int64  `bun:"quiz_id,notnull" json:"quiz_id"`
	Statement     string `bun:"question_statement,notnull" json:"question_statement"`
	Option1       string `bun:"option1,notnull" json:"option1"`
	Option2       string `bun:"option2,notnull" json:"option2"`
	Option3       string `bun:"option3,notnull" json:"option3"`
	Option4       string `bun:"option4,notnull" json:"option4"`
	CorrectOption int    `bun:"correct_option,notnull" json:"correct_option"`
	Points        int    `bun:"points,notnull,default:1" json:"points"`

	Quiz *Quiz `bun:"rel:belongs-to,join:quiz_id=id" json:"-"`
}

// QuizSignup records a user's intent to attempt an upcoming quiz. The
// composite key enforces at most one signup per (user, quiz).
type QuizSignup struct {
	bun.BaseModel `bun:"table:quiz_signups,alias:sg"`

	UserID    int64     `bun:"user_id,pk" json:"user_id"`
	QuizID    int64     `bun:"quiz_id,pk" json:"quiz_id"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	Quiz *Quiz `bun:"rel:belongs-to,join:quiz_id=id" json:"-"`
}

// Score is one submitted attempt. Multiple rows per (user, quiz) are allowed;
// the latest attempt is resolved by CreatedAt at read time.
type Score struct {
	bun.BaseModel `bun:"table:scores,alias:sc"`

	ID             int64     `bun:"id,pk,autoincrement" json:"id"`
	QuizID         int64     `bun:"quiz_id,notnull" json:"quiz_id"`
	UserID         int64     `bun:"user_id,notnull" json:"user_id"`
	TotalScore     int       `bun:"total_score,notnull" json:"total_score"`
	CorrectAnswers int       `bun:"correct_answers,notnull" json:"correct_answers"`
	CreatedAt      time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`

	Quiz     *Quiz              `bun:"rel:belongs-to,join:quiz_id=id" json:"-"`
	User     *User              `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	Attempts []*QuestionAttempt `bun:"rel:has-many,join:id=score_id" json:"-"`
}

// QuestionAttempt is the per-question answer record behind a Score.
// SelectedOption is UnansweredOption when the question was left blank.
type QuestionAttempt struct {
	bun.BaseModel `bun:"table:question_attempts,alias:qa"`

	ID             int64 `bun:"id,pk,autoincrement" json:"id"`
	ScoreID        int64 `bun:"score_id,notnull" json:"score_id"`
	QuestionID     int64 `bun:"question_id,notnull" json:"question_id"`
	SelectedOption int   `bun:"selected_option,notnull" json:"selected_option"`
	IsCorrect      bool  `bun:"is_correct,notnull" json:"is_correct"`

	Score    *Score    `bun:"rel:belongs-to,join:score_id=id" json:"-"`
	Question *Question `bun:"rel:belongs-to,join:question_id=id" json:"-"`
}
