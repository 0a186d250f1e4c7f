package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/models"
	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/utils"
	"github.com/google/uuid"
)

// certNumberMaxRetries bounds the regenerate-and-retry loop on a
// certificate-number collision. Collisions are a benign race between
// students finishing simultaneously; anything past the bound is a
// server error.
const certNumberMaxRetries = 3

// CertificateDelivery renders and delivers an issued certificate (PDF,
// upload, email). It runs after the record is committed; its failure
// never un-issues the certificate.
type CertificateDelivery interface {
	Deliver(cert models.Certificate)
}

// CertificateService mints certificate records for passing,
// non-compromised attempts.
type CertificateService struct {
	store    ExamStore
	delivery CertificateDelivery
}

func NewCertificateService(store ExamStore, delivery CertificateDelivery) *CertificateService {
	return &CertificateService{store: store, delivery: delivery}
}

// Issue mints the certificate for a qualifying attempt. Issuance is
// idempotent per (user, course): a later passing attempt returns the
// certificate already on record instead of minting a second one. The
// composite unique index on (user_id, course_id) is the arbiter when
// two submissions race; the loser re-reads the winner's record.
func (cs *CertificateService) Issue(userID, courseID uuid.UUID, attempt models.ExamAttempt) (*models.Certificate, error) {
	if attempt.Passed == nil || !*attempt.Passed || attempt.Compromised {
		return nil, ErrNotEligible
	}

	existing, err := cs.store.CertificateForUserCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	score := 0
	if attempt.Score != nil {
		score = *attempt.Score
	}

	for i := 0; i < certNumberMaxRetries; i++ {
		cert := models.Certificate{
			UserID:            userID,
			CourseID:          courseID,
			AttemptID:         attempt.ID,
			ExamScore:         score,
			CertificateNumber: utils.GenerateCertificateNumber(),
		}
		err := cs.store.InsertCertificate(&cert)
		if err == nil {
			log.Printf("✅ Issued certificate %s for user %s", cert.CertificateNumber, userID)
			if cs.delivery != nil {
				go cs.delivery.Deliver(cert)
			}
			return &cert, nil
		}
		if !errors.Is(err, ErrDuplicateCertificate) {
			return nil, err
		}
		// A concurrent issuance for the same (user, course) may have
		// won between our existence check and the insert.
		existing, rerr := cs.store.CertificateForUserCourse(userID, courseID)
		if rerr != nil {
			return nil, rerr
		}
		if existing != nil {
			return existing, nil
		}
		log.Printf("Certificate number collision, regenerating (try %d)", i+1)
	}
	return nil, fmt.Errorf("exhausted certificate number retries: %w", ErrDuplicateCertificate)
}
