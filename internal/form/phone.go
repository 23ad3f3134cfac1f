// Package form implements the lead-capture form core: field validators,
// phone display formatting, per-step validation, and the three-step wizard
// state machine.
package form

import "strings"

// StripPhone removes every non-digit character from a phone value. Used
// before validation and before persistence.
func StripPhone(display string) string {
	var b strings.Builder
	for _, r := range display {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone maps raw input to the progressive (XXX) XXX-XXXX display form.
// Formatting is always re-derived from the stripped digits so re-applying it
// to partially formatted input never compounds punctuation. Digits beyond
// ten are dropped.
func FormatPhone(raw string) string {
	digits := StripPhone(raw)
	if digits == "" {
		return ""
	}
	if len(digits) > 10 {
		digits = digits[:10]
	}
	switch {
	case len(digits) <= 3:
		return "(" + digits
	case len(digits) <= 6:
		return "(" + digits[:3] + ") " + digits[3:]
	default:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	}
}
