package release

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ValidateVersion checks that input is a strict semantic version
// (major.minor.patch[-pre][+build], no leading "v") and returns its
// canonical string form.
func ValidateVersion(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	v, err := semver.StrictNewVersion(trimmed)
	if err != nil {
		return "", &InvalidVersionError{Input: input}
	}
	// the parser drops a dangling "-" or "+" and allows empty identifiers
	if v.String() != trimmed || hasEmptyIdentifier(v.Prerelease()) || hasEmptyIdentifier(v.Metadata()) {
		return "", &InvalidVersionError{Input: input}
	}
	return v.String(), nil
}

func hasEmptyIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, id := range strings.Split(s, ".") {
		if id == "" {
			return true
		}
	}
	return false
}
