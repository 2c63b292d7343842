// Package ref normalizes entity references. The backend is inconsistent about
// foreign keys: a courseId may arrive as a bare string, a numeric id, or an
// embedded object carrying "_id" or "id". Every comparison and index key in
// the client goes through Canonical so the same entity always resolves to the
// same string.
package ref

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Canonical returns the canonical string identity of a reference.
// PRE: none; v may be nil or any decoded JSON value
// POST: Returns "" for nil, the stable string form otherwise; never panics
// INVARIANT: Canonical(Canonical(v)) == Canonical(v) for canonical input
func Canonical(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case ID:
		return string(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case map[string]any:
		if id, ok := t["_id"]; ok {
			return Canonical(id)
		}
		if id, ok := t["id"]; ok {
			return Canonical(id)
		}
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// ID is a foreign-key reference field. It decodes all wire shapes the backend
// emits (bare string, number, embedded object, null) to the canonical string.
type ID string

// UnmarshalJSON decodes any supported reference shape.
// PRE: data is valid JSON
// POST: *r holds the canonical string; null decodes to ""
func (r *ID) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = ID(Canonical(v))
	return nil
}

// MarshalJSON encodes the reference as its canonical string.
func (r ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

// String returns the canonical string form.
func (r ID) String() string {
	return string(r)
}
