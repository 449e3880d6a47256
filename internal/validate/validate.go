// Package validate holds the pure request-validation predicates shared by
// every handler. All functions are side-effect free and operate on values
// already decoded from JSON (string, bool, float64, []any, map[string]any).
package validate

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// local@domain.tld with word characters, optional dot/hyphen separators and a
// 2-3 character top-level segment; multi-segment domains permitted.
var emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// IsPresent reports whether v is a string with non-empty trimmed content.
// Any non-string value (including nil) fails.
func IsPresent(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

// IsNonEmptyMap reports whether a decoded request payload has at least one
// key. Handlers use it both ways: to reject an empty body and, inverted, to
// reject a body on operations that forbid one.
func IsNonEmptyMap(m map[string]any) bool {
	return len(m) > 0
}

// IsEmail reports whether v matches the conventional address format.
func IsEmail(v string) bool {
	return emailRe.MatchString(v)
}

// IsObjectID reports whether v is a well-formed Mongo object id.
func IsObjectID(v string) bool {
	_, err := primitive.ObjectIDFromHex(v)
	return err == nil
}

// IsTagLike reports whether v is a non-empty string or an array. Per-element
// checks on arrays happen at the call site before the values are used.
func IsTagLike(v any) bool {
	if IsPresent(v) {
		return true
	}
	_, ok := v.([]any)
	return ok
}
