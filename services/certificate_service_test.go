package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/models"
	"github.com/google/uuid"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

func passingAttempt(score int) models.ExamAttempt {
	return models.ExamAttempt{
		ID:     uuid.New(),
		Status: models.AttemptSubmitted,
		Score:  intPtr(score),
		Passed: boolPtr(true),
	}
}

func TestIssueRejectsIneligibleAttempts(t *testing.T) {
	store := newMemStore()
	svc := NewCertificateService(store, nil)

	tests := []struct {
		name    string
		attempt models.ExamAttempt
	}{
		{"failed attempt", models.ExamAttempt{ID: uuid.New(), Passed: boolPtr(false), Score: intPtr(40)}},
		{"compromised attempt", func() models.ExamAttempt {
			a := passingAttempt(100)
			a.Passed = boolPtr(false)
			a.Compromised = true
			return a
		}()},
		{"compromised with passed flag set", func() models.ExamAttempt {
			a := passingAttempt(100)
			a.Compromised = true
			return a
		}()},
		{"unsubmitted attempt", models.ExamAttempt{ID: uuid.New()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Issue(uuid.New(), uuid.New(), tt.attempt)
			if !errors.Is(err, ErrNotEligible) {
				t.Fatalf("err = %v, want ErrNotEligible", err)
			}
		})
	}
	if store.certificateCount() != 0 {
		t.Errorf("certificates stored = %d, want 0", store.certificateCount())
	}
}

func TestIssueIsIdempotentPerUserCourse(t *testing.T) {
	store := newMemStore()
	svc := NewCertificateService(store, nil)
	user, course := uuid.New(), uuid.New()

	first, err := svc.Issue(user, course, passingAttempt(80))
	if err != nil {
		t.Fatalf("first Issue: %v", err)
	}
	// A later, separate passing attempt must not mint a second record.
	second, err := svc.Issue(user, course, passingAttempt(95))
	if err != nil {
		t.Fatalf("second Issue: %v", err)
	}
	if first.CertificateNumber != second.CertificateNumber {
		t.Errorf("numbers differ: %s vs %s", first.CertificateNumber, second.CertificateNumber)
	}
	if store.certificateCount() != 1 {
		t.Errorf("certificates stored = %d, want 1", store.certificateCount())
	}
}

// collidingStore forces ErrDuplicateCertificate a set number of times
// before delegating to the real store.
type collidingStore struct {
	*memStore
	mu         sync.Mutex
	collisions int
}

func (s *collidingStore) InsertCertificate(cert *models.Certificate) error {
	s.mu.Lock()
	collide := s.collisions > 0
	if collide {
		s.collisions--
	}
	s.mu.Unlock()
	if collide {
		return ErrDuplicateCertificate
	}
	return s.memStore.InsertCertificate(cert)
}

func TestIssueRetriesNumberCollisions(t *testing.T) {
	store := &collidingStore{memStore: newMemStore(), collisions: 2}
	svc := NewCertificateService(store, nil)

	cert, err := svc.Issue(uuid.New(), uuid.New(), passingAttempt(70))
	if err != nil {
		t.Fatalf("Issue with collisions: %v", err)
	}
	if cert.CertificateNumber == "" {
		t.Error("empty certificate number")
	}
}

func TestIssueGivesUpAfterBoundedRetries(t *testing.T) {
	store := &collidingStore{memStore: newMemStore(), collisions: certNumberMaxRetries}
	svc := NewCertificateService(store, nil)

	_, err := svc.Issue(uuid.New(), uuid.New(), passingAttempt(70))
	if !errors.Is(err, ErrDuplicateCertificate) {
		t.Fatalf("err = %v, want wrapped ErrDuplicateCertificate", err)
	}
	if store.certificateCount() != 0 {
		t.Errorf("certificates stored = %d, want 0", store.certificateCount())
	}
}

func TestConcurrentIssuanceSameCourseMintsOnce(t *testing.T) {
	store := newMemStore()
	svc := NewCertificateService(store, nil)
	user, course := uuid.New(), uuid.New()

	// Two passing submissions for the same (user, course) can race,
	// e.g. a manual submit against the expiry sweeper on a sibling
	// attempt. Exactly one record may exist afterwards and every
	// caller must see it.
	const n = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	certs := make([]*models.Certificate, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			certs[i], errs[i] = svc.Issue(user, course, passingAttempt(85))
		}(i)
	}
	close(start)
	wg.Wait()

	if store.certificateCount() != 1 {
		t.Fatalf("certificates stored = %d, want 1", store.certificateCount())
	}
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("Issue %d: %v", i, errs[i])
		}
		if certs[i].CertificateNumber != certs[0].CertificateNumber {
			t.Errorf("Issue %d returned number %s, want %s", i, certs[i].CertificateNumber, certs[0].CertificateNumber)
		}
	}
}

func TestConcurrentIssuanceNumbersAreUnique(t *testing.T) {
	store := newMemStore()
	svc := NewCertificateService(store, nil)

	const n = 32
	var wg sync.WaitGroup
	certs := make([]*models.Certificate, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			certs[i], errs[i] = svc.Issue(uuid.New(), uuid.New(), passingAttempt(90))
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("Issue %d: %v", i, errs[i])
		}
		if seen[certs[i].CertificateNumber] {
			t.Fatalf("duplicate certificate number %s", certs[i].CertificateNumber)
		}
		seen[certs[i].CertificateNumber] = true
	}
}
