package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TagList models a field that clients may send either as a single string or
// as an array of strings ("tags" and "subcategory" on blog payloads). It is
// normalized to a slice on unmarshal; elements keep their order and are not
// trimmed here, so per-element validation stays at the call site.
type TagList []string

// UnmarshalJSON accepts "x" or ["x","y"]. Non-string elements are rejected.
func (t *TagList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = TagList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("taglist: expected string or array of strings")
	}
	*t = TagList(many)
	return nil
}

// TagListFromValue converts an already-decoded JSON value (string or array)
// into a TagList. ok is false when v has neither shape. Array elements of any
// type are accepted here, mirroring the shape-only check of the validation
// layer; non-string elements surface later as empty strings a per-element
// presence check rejects.
func TagListFromValue(v any) (TagList, bool) {
	switch vv := v.(type) {
	case string:
		return TagList{vv}, true
	case []any:
		out := make(TagList, 0, len(vv))
		for _, e := range vv {
			s, _ := e.(string)
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// Trimmed returns a copy with every element whitespace-trimmed.
func (t TagList) Trimmed() TagList {
	out := make(TagList, len(t))
	for i, s := range t {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
