package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teris-io/shortid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== BOOKING REFERENCE ====================

// GenerateReference creates a unique booking reference.
// Format: SMQ-YYYYMMDD-SUFFIX where the suffix is an uppercase
// alphanumeric short id. The SMQ- prefix is load-bearing: it is what
// the calendar sync greps out of event text as a fallback.
func GenerateReference() string {
	datePart := time.Now().Format("20060102")
	suffix := sanitizeShortID(shortid.MustGenerate())

	return fmt.Sprintf("SMQ-%s-%s", datePart, suffix)
}

// sanitizeShortID strips non-alphanumerics and uppercases so the
// reference survives the text-regex round trip through calendar events.
func sanitizeShortID(id string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(id) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		// shortid alphabets always contain alphanumerics, but keep a floor
		return strings.ToUpper(uuid.New().String()[:8])
	}
	return b.String()
}
