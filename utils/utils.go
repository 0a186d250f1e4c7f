package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateCertificateNumber returns a fresh human-readable certificate
// number, e.g. ECO-1A2B3C4D-5E6F7A8B. Uniqueness is enforced by the
// certificates table; the issuer regenerates on collision.
func GenerateCertificateNumber() string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("ECO-%s-%s", hex[:8], hex[8:16])
}
