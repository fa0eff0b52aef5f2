package fetcher

import (
	"regexp"
	"strings"

	"instagrab/pkg/serrors"
)

// maxUsernameLength matches Instagram's own username limit.
const maxUsernameLength = 30

var usernameRE = regexp.MustCompile(`^[a-z0-9._]+$`)

// NormalizeUsername returns a canonical form of an Instagram username.
//
// The normalization rules help with cache de-duplication:
//   - Trim surrounding whitespace
//   - Strip a single leading "@"
//   - Lower-case (Instagram usernames are case-insensitive)
//
// The result must be non-empty, at most 30 characters and consist only of
// letters, digits, periods and underscores; anything else is a bad request.
func NormalizeUsername(raw string) (string, error) {
	username := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "@"))

	if username == "" {
		return "", serrors.With(serrors.ErrBadRequest, "username is required")
	}
	if len(username) > maxUsernameLength {
		return "", serrors.With(serrors.ErrBadRequest, "username is too long")
	}
	if !usernameRE.MatchString(username) {
		return "", serrors.With(serrors.ErrBadRequest, "invalid username: %q", raw)
	}

	return username, nil
}
