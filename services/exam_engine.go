package services

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/models"
	"github.com/google/uuid"
)

// Engine is the process-wide exam session engine, set by
// InitExamEngine at startup.
var Engine *ExamEngine

func InitExamEngine(store ExamStore, certs *CertificateService) {
	Engine = NewExamEngine(store, certs)
}

// ExamEngine orchestrates live exam sessions: it opens sessions,
// routes answers and integrity signals, enforces the server-side
// deadline, and issues certificates on passing terminal results.
type ExamEngine struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*ExamSession

	store ExamStore
	certs *CertificateService
}

func NewExamEngine(store ExamStore, certs *CertificateService) *ExamEngine {
	return &ExamEngine{
		sessions: make(map[uuid.UUID]*ExamSession),
		store:    store,
		certs:    certs,
	}
}

// StartedAttempt is the response payload of StartAttempt. Exam still
// carries the answer key; handlers must sanitize questions before
// serving them.
type StartedAttempt struct {
	Attempt         models.ExamAttempt
	Exam            models.Exam
	DurationSeconds int
}

// StartAttempt opens a new session for (user, exam). It fails with
// ErrAlreadyActiveAttempt while an unterminated attempt exists, and
// with ErrMisconfiguredExam for an exam without questions. An expired
// but unswept attempt is timed out first rather than blocking the
// student forever.
func (e *ExamEngine) StartAttempt(userID, examID uuid.UUID) (*StartedAttempt, error) {
	exam, err := e.store.LoadExam(examID)
	if err != nil {
		return nil, err
	}
	if len(exam.Questions) == 0 {
		return nil, ErrMisconfiguredExam
	}

	if active, err := e.store.LoadActiveAttempt(userID, examID); err != nil {
		return nil, err
	} else if active != nil {
		if time.Now().Before(active.ExpiresAt) {
			return nil, ErrAlreadyActiveAttempt
		}
		if err := e.timeoutAttempt(*active); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	attempt := models.ExamAttempt{
		UserID:    userID,
		ExamID:    examID,
		Status:    models.AttemptInProgress,
		StartedAt: now,
		ExpiresAt: now.Add(time.Duration(exam.DurationMinutes) * time.Minute),
	}
	if err := e.store.CreateAttempt(&attempt); err != nil {
		return nil, err
	}

	sess := newExamSession(e.store, exam, attempt)
	e.mu.Lock()
	e.sessions[attempt.ID] = sess
	e.mu.Unlock()

	return &StartedAttempt{
		Attempt:         attempt,
		Exam:            exam,
		DurationSeconds: exam.DurationMinutes * 60,
	}, nil
}

// RecordAnswer persists one answer for a running attempt.
func (e *ExamEngine) RecordAnswer(userID, attemptID, questionID uuid.UUID, label string) error {
	sess, err := e.session(userID, attemptID)
	if err != nil {
		if errors.Is(err, ErrAlreadySubmitted) {
			return ErrSessionNotActive
		}
		return err
	}
	if res := e.enforceDeadline(sess); res != nil {
		return ErrSessionNotActive
	}
	return sess.RecordAnswer(questionID, label)
}

// ReportViolation marks the attempt compromised and auto-submits it.
func (e *ExamEngine) ReportViolation(userID, attemptID uuid.UUID, kind string) (*SubmitResult, error) {
	sess, err := e.session(userID, attemptID)
	if err != nil {
		if errors.Is(err, ErrAlreadySubmitted) {
			return nil, ErrSessionNotActive
		}
		return nil, err
	}
	if res := e.enforceDeadline(sess); res != nil {
		return nil, ErrSessionNotActive
	}
	log.Printf("⚠️ Integrity violation (%s) on attempt %s", kind, attemptID)
	res, err := sess.ReportIntegrityViolation(kind)
	if err != nil {
		return nil, err
	}
	e.finish(sess, res)
	return res, nil
}

// Submit finalizes a running attempt with cause manual.
func (e *ExamEngine) Submit(userID, attemptID uuid.UUID) (*SubmitResult, error) {
	sess, err := e.session(userID, attemptID)
	if err != nil {
		return nil, err
	}
	if res := e.enforceDeadline(sess); res != nil {
		return nil, ErrAlreadySubmitted
	}
	res, err := sess.Submit(models.CauseManual)
	if err != nil {
		return nil, err
	}
	e.finish(sess, res)
	return res, nil
}

// Tick advances a session clock by elapsed seconds; used by the live
// attempt channel ticker. A non-nil result means the clock ran out and
// the attempt auto-submitted.
func (e *ExamEngine) Tick(attemptID uuid.UUID, elapsed int) (int, *SubmitResult, error) {
	sess, err := e.session(uuid.Nil, attemptID)
	if err != nil {
		return 0, nil, err
	}
	remaining, res, err := sess.Tick(elapsed)
	if err != nil {
		return remaining, nil, err
	}
	if res != nil {
		e.finish(sess, res)
	}
	return remaining, res, nil
}

// TimeRemaining reports the seconds left on an attempt.
func (e *ExamEngine) TimeRemaining(userID, attemptID uuid.UUID) (int, error) {
	sess, err := e.session(userID, attemptID)
	if err != nil {
		return 0, err
	}
	return sess.Remaining(), nil
}

// SweepExpired times out every in-progress attempt whose deadline has
// passed. It runs on a schedule independent of any client connection,
// so a disconnected client cannot outlive its exam clock.
func (e *ExamEngine) SweepExpired() (int, error) {
	expired, err := e.store.ExpiredAttempts(time.Now())
	if err != nil {
		return 0, err
	}
	swept := 0
	for _, attempt := range expired {
		if err := e.timeoutAttempt(attempt); err != nil {
			log.Printf("🔥 Failed to time out attempt %s: %v", attempt.ID, err)
			continue
		}
		swept++
	}
	return swept, nil
}

func (e *ExamEngine) timeoutAttempt(attempt models.ExamAttempt) error {
	sess, err := e.session(uuid.Nil, attempt.ID)
	if err != nil {
		if errors.Is(err, ErrAlreadySubmitted) {
			return nil
		}
		return err
	}
	res, err := sess.Submit(models.CauseTimeout)
	if err != nil {
		if errors.Is(err, ErrAlreadySubmitted) {
			return nil
		}
		return err
	}
	e.finish(sess, res)
	return nil
}

// enforceDeadline checks the authoritative clock before an operation
// and times the session out when it is overdue, returning the terminal
// result if it did.
func (e *ExamEngine) enforceDeadline(sess *ExamSession) *SubmitResult {
	if time.Now().Before(sess.ExpiresAt()) {
		return nil
	}
	res, err := sess.Submit(models.CauseTimeout)
	if err != nil {
		return nil
	}
	e.finish(sess, res)
	return res
}

// finish runs after a terminal submission: drops the live session from
// the registry and, for a passing attempt, mints the certificate and
// attaches its id to the result.
func (e *ExamEngine) finish(sess *ExamSession, res *SubmitResult) {
	e.mu.Lock()
	delete(e.sessions, sess.AttemptID())
	e.mu.Unlock()

	if !res.Passed || e.certs == nil {
		return
	}
	courseID, err := e.store.CourseIDForExam(sess.ExamID())
	if err != nil {
		log.Printf("🔥 Failed to resolve course for exam %s: %v", sess.ExamID(), err)
		return
	}
	cert, err := e.certs.Issue(sess.UserID(), courseID, sess.AttemptSnapshot())
	if err != nil {
		log.Printf("🔥 Failed to issue certificate for attempt %s: %v", sess.AttemptID(), err)
		return
	}
	res.CertificateID = &cert.ID
}

// session returns the live session for an attempt, rehydrating it from
// storage after a restart. A submitted attempt yields
// ErrAlreadySubmitted; callers translate per operation. userID
// uuid.Nil skips the ownership check (internal callers).
func (e *ExamEngine) session(userID, id uuid.UUID) (*ExamSession, error) {
	e.mu.RLock()
	sess, ok := e.sessions[id]
	e.mu.RUnlock()
	if !ok {
		attempt, err := e.store.LoadAttempt(id)
		if err != nil {
			return nil, err
		}
		if attempt.Status != models.AttemptInProgress {
			return nil, ErrAlreadySubmitted
		}
		exam, err := e.store.LoadExam(attempt.ExamID)
		if err != nil {
			return nil, err
		}
		fresh := newExamSession(e.store, exam, attempt)
		e.mu.Lock()
		if existing, ok := e.sessions[id]; ok {
			sess = existing
		} else {
			e.sessions[id] = fresh
			sess = fresh
		}
		e.mu.Unlock()
	}

	if userID != uuid.Nil && sess.UserID() != userID {
		return nil, ErrNotFound
	}
	return sess, nil
}
