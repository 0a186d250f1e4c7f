package services

import (
	"sync"
	"time"

	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/models"
	"github.com/google/uuid"
)

// memStore is the in-memory ExamStore used by the engine tests.
type memStore struct {
	mu       sync.Mutex
	exams    map[uuid.UUID]models.Exam
	attempts map[uuid.UUID]models.ExamAttempt
	answers  map[uuid.UUID]map[uuid.UUID]string
	certs    []models.Certificate
}

func newMemStore() *memStore {
	return &memStore{
		exams:    make(map[uuid.UUID]models.Exam),
		attempts: make(map[uuid.UUID]models.ExamAttempt),
		answers:  make(map[uuid.UUID]map[uuid.UUID]string),
	}
}

func (m *memStore) putExam(e models.Exam) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exams[e.ID] = e
}

func (m *memStore) LoadExam(examID uuid.UUID) (models.Exam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.exams[examID]
	if !ok {
		return models.Exam{}, ErrNotFound
	}
	return e, nil
}

func (m *memStore) LoadActiveAttempt(userID, examID uuid.UUID) (*models.ExamAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.attempts {
		if a.UserID == userID && a.ExamID == examID && a.Status == models.AttemptInProgress {
			out := a
			out.Answers = m.answerRows(a.ID)
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memStore) LoadAttempt(attemptID uuid.UUID) (models.ExamAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attempts[attemptID]
	if !ok {
		return models.ExamAttempt{}, ErrNotFound
	}
	a.Answers = m.answerRows(attemptID)
	return a, nil
}

// answerRows is called with m.mu held.
func (m *memStore) answerRows(attemptID uuid.UUID) []models.AttemptAnswer {
	var rows []models.AttemptAnswer
	for qid, label := range m.answers[attemptID] {
		rows = append(rows, models.AttemptAnswer{
			AttemptID:      attemptID,
			QuestionID:     qid,
			SelectedOption: label,
		})
	}
	return rows
}

func (m *memStore) CreateAttempt(attempt *models.ExamAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}
	m.attempts[attempt.ID] = *attempt
	return nil
}

func (m *memStore) SaveAnswer(attemptID, questionID uuid.UUID, label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.answers[attemptID] == nil {
		m.answers[attemptID] = make(map[uuid.UUID]string)
	}
	m.answers[attemptID][questionID] = label
	return nil
}

func (m *memStore) FinalizeAttempt(attempt *models.ExamAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.attempts[attempt.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Status = attempt.Status
	stored.Score = attempt.Score
	stored.Passed = attempt.Passed
	stored.Compromised = attempt.Compromised
	stored.Cause = attempt.Cause
	stored.CompletedAt = attempt.CompletedAt
	m.attempts[attempt.ID] = stored
	return nil
}

func (m *memStore) CourseIDForExam(examID uuid.UUID) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.exams[examID]
	if !ok {
		return uuid.Nil, ErrNotFound
	}
	return e.CourseID, nil
}

func (m *memStore) InsertCertificate(cert *models.Certificate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.certs {
		if c.UserID == cert.UserID && c.CourseID == cert.CourseID {
			return ErrDuplicateCertificate
		}
		if c.CertificateNumber == cert.CertificateNumber {
			return ErrDuplicateCertificate
		}
	}
	if cert.ID == uuid.Nil {
		cert.ID = uuid.New()
	}
	cert.IssuedAt = time.Now()
	m.certs = append(m.certs, *cert)
	return nil
}

func (m *memStore) CertificateForUserCourse(userID, courseID uuid.UUID) (*models.Certificate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.certs {
		if c.UserID == userID && c.CourseID == courseID {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memStore) ExpiredAttempts(now time.Time) ([]models.ExamAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ExamAttempt
	for _, a := range m.attempts {
		if a.Status == models.AttemptInProgress && !a.ExpiresAt.After(now) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) certificateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.certs)
}
