package domain

import (
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var requestIDRe = regexp.MustCompile(`^AMG-[0-9]{8}-[0-9A-F]{6}$`)

// NewRequestID builds the human-readable id shown on the confirmation step,
// e.g. AMG-20250131-3FA2C1.
func NewRequestID(now time.Time, id uuid.UUID) string {
	suffix := strings.ToUpper(hex.EncodeToString(id[:3]))
	return "AMG-" + now.UTC().Format("20060102") + "-" + suffix
}

func IsRequestID(s string) bool {
	return requestIDRe.MatchString(s)
}
