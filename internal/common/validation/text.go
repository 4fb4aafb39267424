// internal/common/validation/text.go
package validation

import (
	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/scoring"
)

// CheckMissionText enforces the length bounds on trimmed mission text,
// measured in UTF-16 units. maxLen <= 0 disables the upper bound.
func CheckMissionText(text string, minLen, maxLen int) error {
	n := scoring.TextLength(scoring.TrimText(text))
	if n < minLen {
		return errors.NewTextTooShortError(minLen)
	}
	if maxLen > 0 && n > maxLen {
		return errors.NewTextTooLongError(maxLen)
	}
	return nil
}
