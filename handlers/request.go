package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/blogmint/blogmint/internal/models"
	"github.com/blogmint/blogmint/internal/validate"
)

// decodeBody reads the request body as a generic JSON object. Handlers need
// the raw key set to enforce key-count caps and key-presence rules, so the
// payload is decoded to a map rather than bound to a struct. An absent or
// empty body yields an empty map; malformed JSON is an error.
func decodeBody(c *gin.Context) (map[string]any, error) {
	b, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// trimmed returns the whitespace-trimmed string form of an already
// presence-validated value.
func trimmed(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// presentValues validates every supplied query value as a present string and
// returns the trimmed set.
func presentValues(vals []string) ([]string, error) {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if !validate.IsPresent(v) {
			return nil, errInvalidValue
		}
		out = append(out, strings.TrimSpace(v))
	}
	return out, nil
}

// presentTagList validates a body value that may be a single string or an
// array; every element must be a present string.
func presentTagList(v any) ([]string, error) {
	list, ok := models.TagListFromValue(v)
	if !ok {
		return nil, errInvalidValue
	}
	for _, e := range list {
		if !validate.IsPresent(e) {
			return nil, errInvalidValue
		}
	}
	return list.Trimmed(), nil
}

var errInvalidValue = errors.New("invalid value")

// fail writes the uniform error envelope.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": false, "message": message})
}

// serverError surfaces an unexpected failure with its raw description.
func serverError(c *gin.Context, err error) {
	c.JSON(500, gin.H{"error": err.Error()})
}
