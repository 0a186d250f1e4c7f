package services

import (
	"errors"
	"testing"
	"time"

	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/models"
	"github.com/google/uuid"
)

func newTestSession(store *memStore, exam models.Exam, user uuid.UUID) *ExamSession {
	now := time.Now()
	attempt := models.ExamAttempt{
		UserID:    user,
		ExamID:    exam.ID,
		Status:    models.AttemptInProgress,
		StartedAt: now,
		ExpiresAt: now.Add(time.Duration(exam.DurationMinutes) * time.Minute),
	}
	store.CreateAttempt(&attempt)
	return newExamSession(store, exam, attempt)
}

func TestSessionRemainingStartsAtDuration(t *testing.T) {
	store := newMemStore()
	exam := seedExam(store, 2, 65, 30)
	sess := newTestSession(store, exam, uuid.New())

	remaining := sess.Remaining()
	if remaining < 29*60 || remaining > 30*60 {
		t.Errorf("remaining = %d, want about %d", remaining, 30*60)
	}
	if sess.Terminal() {
		t.Error("fresh session is terminal")
	}
}

func TestSessionTickIsIdempotentAfterTerminal(t *testing.T) {
	store := newMemStore()
	exam := seedExam(store, 2, 65, 1)
	sess := newTestSession(store, exam, uuid.New())

	_, res, err := sess.Tick(120)
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if res == nil || res.Cause != models.CauseTimeout {
		t.Fatalf("res = %+v, want timeout submission", res)
	}
	if !sess.Terminal() {
		t.Error("session not terminal after timeout")
	}

	// Further ticks return the stored result without re-scoring.
	remaining, again, err := sess.Tick(1)
	if err != nil {
		t.Fatalf("post-terminal Tick: %v", err)
	}
	if remaining != 0 || again != res {
		t.Errorf("post-terminal tick = (%d, %p), want (0, %p)", remaining, again, res)
	}
}

func TestSessionViolationIsPermanent(t *testing.T) {
	store := newMemStore()
	exam := seedExam(store, 2, 65, 30)
	sess := newTestSession(store, exam, uuid.New())

	res, err := sess.ReportIntegrityViolation("clipboard")
	if err != nil {
		t.Fatalf("ReportIntegrityViolation: %v", err)
	}
	if !res.Compromised || res.Passed {
		t.Errorf("res = %+v, want compromised and failed", res)
	}

	snapshot := sess.AttemptSnapshot()
	if !snapshot.Compromised {
		t.Error("compromised flag not persisted on attempt")
	}
	if _, err := sess.Submit(models.CauseManual); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("Submit after violation err = %v, want ErrAlreadySubmitted", err)
	}
}
