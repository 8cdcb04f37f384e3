package domain

import (
	"testing"
	"time"
)

func TestParseQuizDuration(t *testing.T) {
	d, err := ParseQuizDuration("01:30")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if d != 90*time.Minute {
		t.Fatalf("expected 90m, got %v", d)
	}

	for _, raw := range []string{
		"junk",
		"01:75",
		"01:30xyz", // trailing text must not be silently dropped
		"x01:30",
		"01:30:00",
		"-01:30",
		"01:-5",
		"",
	} {
		if _, err := ParseQuizDuration(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestQuizStateWindowIsInclusive(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	quiz := &Quiz{DateOfQuiz: start, TimeDuration: "01:00"}
	end := start.Add(time.Hour)

	cases := []struct {
		at   time.Time
		want QuizState
	}{
		{start.Add(-time.Second), StateUpcoming},
		{start, StateActive},
		{start.Add(30 * time.Minute), StateActive},
		{end, StateActive},
		{end.Add(time.Second), StateCompleted},
	}
	for _, tc := range cases {
		if got := quiz.StateAt(tc.at); got != tc.want {
			t.Fatalf("state at %v: expected %s, got %s", tc.at, tc.want, got)
		}
	}
}

func TestQuizStatesAreMutuallyExclusive(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	quiz := &Quiz{DateOfQuiz: start, TimeDuration: "00:45"}

	seen := map[QuizState]bool{}
	for _, at := range []time.Time{
		start.Add(-time.Hour),
		start.Add(20 * time.Minute),
		start.Add(2 * time.Hour),
	} {
		state := quiz.StateAt(at)
		if seen[state] {
			t.Fatalf("state %s derived twice", state)
		}
		seen[state] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected all three states, got %v", seen)
	}
}

func TestQuizTotalScore(t *testing.T) {
	quiz := &Quiz{Questions: []*Question{
		{Points: 2},
		{Points: 3},
		{Points: 1},
	}}
	if got := quiz.TotalScore(); got != 6 {
		t.Fatalf("expected total 6, got %d", got)
	}
}

func TestEndTimeZeroForBadDuration(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	quiz := &Quiz{DateOfQuiz: start, TimeDuration: "broken"}
	if !quiz.EndTime().Equal(start) {
		t.Fatalf("expected end == start for unparseable duration, got %v", quiz.EndTime())
	}
}
