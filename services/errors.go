package services

import "errors"

// Error taxonomy of the exam session engine. Handlers map these to
// HTTP statuses; nothing here is retried blindly.
var (
	// ErrNotFound means the requested exam or attempt does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyActiveAttempt means an unterminated attempt already
	// exists for the (user, exam) pair.
	ErrAlreadyActiveAttempt = errors.New("an attempt is already in progress for this exam")

	// ErrAlreadySubmitted means the attempt has already reached a
	// terminal state; its stored result is final.
	ErrAlreadySubmitted = errors.New("attempt has already been submitted")

	// ErrSessionNotActive means the operation requires a running
	// attempt.
	ErrSessionNotActive = errors.New("exam session is not active")

	// ErrInvalidAnswer means the question is not part of the exam or
	// the label is outside {a,b,c,d}. State is unchanged.
	ErrInvalidAnswer = errors.New("invalid answer")

	// ErrMisconfiguredExam means the exam has no questions (total
	// weight zero) and can never be scored.
	ErrMisconfiguredExam = errors.New("exam has no questions")

	// ErrNotEligible means a certificate was requested without a
	// passing, non-compromised attempt.
	ErrNotEligible = errors.New("attempt is not eligible for a certificate")

	// ErrDuplicateCertificate is the storage-level unique violation on
	// certificate insert: either the generated number collided or a
	// concurrent issuance already minted the (user, course)
	// certificate. The issuer re-reads to tell the two apart.
	ErrDuplicateCertificate = errors.New("certificate already exists")
)
