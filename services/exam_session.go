package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/models"
	"github.com/google/uuid"
)

type sessionState int

const (
	stateRunning sessionState = iota
	stateSubmitting
	statePassed
	stateFailed
)

// SubmitResult is the terminal outcome of one attempt.
type SubmitResult struct {
	AttemptID     uuid.UUID  `json:"attempt_id"`
	Earned        int        `json:"earned"`
	Total         int        `json:"total"`
	Percentage    int        `json:"percentage"`
	Passed        bool       `json:"passed"`
	Compromised   bool       `json:"compromised"`
	Cause         string     `json:"cause"`
	CertificateID *uuid.UUID `json:"certificate_id,omitempty"`
}

// ExamSession owns the lifecycle of one attempt. All operations are
// serialized on the session mutex; the attempt is mutated only through
// this session while it lives.
type ExamSession struct {
	mu    sync.Mutex
	store ExamStore

	exam      models.Exam
	questions map[uuid.UUID]models.Question
	attempt   models.ExamAttempt
	answers   map[uuid.UUID]string

	state     sessionState
	remaining int // seconds
	result    *SubmitResult
}

func newExamSession(store ExamStore, exam models.Exam, attempt models.ExamAttempt) *ExamSession {
	questions := make(map[uuid.UUID]models.Question, len(exam.Questions))
	for _, q := range exam.Questions {
		questions[q.ID] = q
	}
	answers := make(map[uuid.UUID]string, len(attempt.Answers))
	for _, a := range attempt.Answers {
		answers[a.QuestionID] = a.SelectedOption
	}
	remaining := int(time.Until(attempt.ExpiresAt).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return &ExamSession{
		store:     store,
		exam:      exam,
		questions: questions,
		attempt:   attempt,
		answers:   answers,
		state:     stateRunning,
		remaining: remaining,
	}
}

func (s *ExamSession) AttemptID() uuid.UUID { return s.attempt.ID }
func (s *ExamSession) UserID() uuid.UUID    { return s.attempt.UserID }
func (s *ExamSession) ExamID() uuid.UUID    { return s.exam.ID }
func (s *ExamSession) ExpiresAt() time.Time { return s.attempt.ExpiresAt }

// AttemptSnapshot returns a copy of the attempt as last persisted.
func (s *ExamSession) AttemptSnapshot() models.ExamAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt
}

// Remaining returns the seconds left on the session clock.
func (s *ExamSession) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Terminal reports whether the attempt has reached Passed or Failed.
func (s *ExamSession) Terminal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == statePassed || s.state == stateFailed
}

// RecordAnswer stores the chosen label for a question, overwriting any
// earlier choice. The answer is persisted before the call returns.
func (s *ExamSession) RecordAnswer(questionID uuid.UUID, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateRunning {
		return ErrSessionNotActive
	}
	if !models.ValidOption(label) {
		return fmt.Errorf("label %q: %w", label, ErrInvalidAnswer)
	}
	if _, ok := s.questions[questionID]; !ok {
		return fmt.Errorf("question %s not in exam: %w", questionID, ErrInvalidAnswer)
	}
	if err := s.store.SaveAnswer(s.attempt.ID, questionID, label); err != nil {
		return err
	}
	s.answers[questionID] = label
	return nil
}

// Tick advances the session clock by elapsed seconds. When the clock
// reaches zero the attempt is submitted with cause timeout. A non-nil
// result means the tick terminated the attempt.
func (s *ExamSession) Tick(elapsed int) (int, *SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateRunning {
		return s.remaining, s.result, nil
	}
	s.remaining -= elapsed
	if s.remaining > 0 {
		return s.remaining, nil, nil
	}
	s.remaining = 0
	res, err := s.submitLocked(models.CauseTimeout)
	return 0, res, err
}

// ReportIntegrityViolation marks the attempt compromised and submits
// it immediately. The first client-reported signal is final; there is
// no warn-and-continue.
func (s *ExamSession) ReportIntegrityViolation(kind string) (*SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateRunning {
		return nil, ErrSessionNotActive
	}
	s.attempt.Compromised = true
	return s.submitLocked(models.CauseViolation)
}

// Submit finalizes the attempt. A second submission on the same
// attempt fails with ErrAlreadySubmitted; the first result stands.
func (s *ExamSession) Submit(cause string) (*SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateRunning {
		return nil, ErrAlreadySubmitted
	}
	return s.submitLocked(cause)
}

// submitLocked freezes the answer map, scores it, and persists the
// terminal fields. Callers hold s.mu. On a persistence failure the
// session stays Running so the submission can be retried.
func (s *ExamSession) submitLocked(cause string) (*SubmitResult, error) {
	s.state = stateSubmitting

	score, err := ScoreExam(s.exam.Questions, s.answers)
	if err != nil {
		s.state = stateRunning
		return nil, err
	}
	passed := score.Percentage >= s.exam.PassingScore && !s.attempt.Compromised

	now := time.Now()
	s.attempt.Status = models.AttemptSubmitted
	s.attempt.CompletedAt = &now
	s.attempt.Score = &score.Percentage
	s.attempt.Passed = &passed
	s.attempt.Cause = &cause

	if err := s.store.FinalizeAttempt(&s.attempt); err != nil {
		s.state = stateRunning
		return nil, err
	}

	if passed {
		s.state = statePassed
	} else {
		s.state = stateFailed
	}
	s.result = &SubmitResult{
		AttemptID:   s.attempt.ID,
		Earned:      score.Earned,
		Total:       score.Total,
		Percentage:  score.Percentage,
		Passed:      passed,
		Compromised: s.attempt.Compromised,
		Cause:       cause,
	}
	return s.result, nil
}
