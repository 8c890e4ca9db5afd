// Package validate enforces the input rules for every tool before any AWS
// call is made. Checks are fail-fast: the first violation is returned.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Error reports a problem with caller-supplied input. Its message is
// returned to the caller verbatim, so it must be specific enough for the
// caller to self-correct.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Errorf builds a caller-input error.
func Errorf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

const (
	// MaxNameLength bounds knowledge base and data source names.
	MaxNameLength = 100

	// MinSessionDuration and MaxSessionDuration are the IAM limits for a
	// role's maximum session duration, in seconds (1h to 12h).
	MinSessionDuration = 3600
	MaxSessionDuration = 43200
)

var (
	bucketNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]*[a-z0-9]$`)
	ipAddressPattern  = regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)
	roleNamePattern   = regexp.MustCompile(`^[\w+=,.@-]+$`)
)

// RequiredString trims value and rejects it when nothing remains.
func RequiredString(value, param string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", Errorf("%s is required", param)
	}
	return trimmed, nil
}

// Name validates a knowledge base or data source name (1-100 characters).
func Name(value, param string) (string, error) {
	trimmed, err := RequiredString(value, param)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return "", Errorf("%s must be between 1 and %d characters", param, MaxNameLength)
	}
	return trimmed, nil
}

// ResultCount validates the number of results requested from a retrieval
// query. The service accepts 1-100.
func ResultCount(n int) error {
	if n < 1 || n > 100 {
		return Errorf("number_of_results must be between 1 and 100")
	}
	return nil
}

// BucketName validates a bucket name for bucket creation against the S3
// naming rules: 3-63 characters, lowercase letters, digits, hyphens and
// periods, letter or digit at both ends, no consecutive hyphens or
// periods, and not shaped like an IP address.
func BucketName(value string) (string, error) {
	name, err := RequiredString(value, "bucket_name")
	if err != nil {
		return "", err
	}
	if len(name) < 3 || len(name) > 63 {
		return "", Errorf("bucket_name must be between 3 and 63 characters")
	}
	if !bucketNamePattern.MatchString(name) {
		return "", Errorf("bucket_name must start and end with a lowercase letter or number, " +
			"and contain only lowercase letters, numbers, hyphens, and periods")
	}
	if strings.Contains(name, "..") || strings.Contains(name, "--") {
		return "", Errorf("bucket_name cannot contain consecutive periods or hyphens")
	}
	if ipAddressPattern.MatchString(name) {
		return "", Errorf("bucket_name cannot be in IP address format")
	}
	return name, nil
}

// RoleName validates an IAM role name: 1-64 characters from the IAM
// charset (alphanumerics and +=,.@-_).
func RoleName(value string) (string, error) {
	name, err := RequiredString(value, "role_name")
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(name) > 64 {
		return "", Errorf("role_name must be between 1 and 64 characters")
	}
	if !roleNamePattern.MatchString(name) {
		return "", Errorf("role_name must contain only alphanumeric characters, hyphens, " +
			"underscores, periods, plus signs, equals signs, commas, and @ symbols")
	}
	return name, nil
}

// SessionDuration validates an IAM role's maximum session duration.
func SessionDuration(seconds int) error {
	if seconds < MinSessionDuration || seconds > MaxSessionDuration {
		return Errorf("max_session_duration must be between %d and %d seconds",
			MinSessionDuration, MaxSessionDuration)
	}
	return nil
}

// Region trims a caller-supplied region and falls back to def when empty.
func Region(value, def string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def
	}
	return trimmed
}
