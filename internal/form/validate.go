package form

import "regexp"

// Shape checks only. Email is the permissive single-@ single-dot form, not
// RFC 5322; ZIP accepts the optional +4 extension.
var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipRe   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidPhone reports whether s contains exactly ten digits once display
// formatting is stripped.
func ValidPhone(s string) bool {
	return len(StripPhone(s)) == 10
}

// ValidZip reports whether s is a 5-digit or 5+4 ZIP code.
func ValidZip(s string) bool {
	return zipRe.MatchString(s)
}
