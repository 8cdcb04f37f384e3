package domain

import "errors"

var (
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrSubjectNotFound is returned when the referenced subject does not exist.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrChapterNotFound is returned when the referenced chapter does not exist.
	ErrChapterNotFound = errors.New("chapter not found")
	// ErrQuizNotFound is returned when the referenced quiz does not exist.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound is returned when the referenced question does not exist.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrScoreNotFound is returned when no attempt exists for a (user, quiz) pair.
	ErrScoreNotFound = errors.New("score not found")

	// ErrEmailTaken guards global email uniqueness at registration.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUsernameTaken guards global username uniqueness.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned when the caller's role does not permit the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadySignedUp is returned on a duplicate signup for the same quiz.
	ErrAlreadySignedUp = errors.New("user already signed up for this quiz")
	// ErrNotSignedUp is returned when an operation requires an existing signup.
	ErrNotSignedUp = errors.New("user is not signed up for this quiz")
	// ErrSignupClosed is returned once the quiz is no longer upcoming.
	ErrSignupClosed = errors.New("quiz registration window is over")
	// ErrQuizHasNoQuestions blocks signup for an empty quiz.
	ErrQuizHasNoQuestions = errors.New("quiz has no questions")
	// ErrQuizNotActive is returned when an attempt is started outside the active window.
	ErrQuizNotActive = errors.New("quiz is not active")
	// ErrQuizStillActive hides results while the quiz is in progress.
	ErrQuizStillActive = errors.New("quiz is still active")
)
