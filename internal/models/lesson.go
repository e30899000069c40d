package models

import (
	"bytes"
	"encoding/json"
	"math"
)

// Lesson is a lesson document exactly as stored. Only id, subject and
// location are expected on every document; price, spaces, image and any
// other field are optional and kept with their stored types.
type Lesson map[string]any

// LessonUpdate is a partial set of lesson fields to merge into a stored document
type LessonUpdate map[string]any

// ID returns the numeric lesson id. Integral doubles are accepted since
// documents may be written by other tools.
func (l Lesson) ID() (int64, bool) {
	switch v := l["id"].(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int64(v), true
		}
	}
	return 0, false
}

// Subject returns the subject, or "" when it is missing or not a string
func (l Lesson) Subject() string {
	s, _ := l["subject"].(string)
	return s
}

// Location returns the location, or "" when it is missing or not a string
func (l Lesson) Location() string {
	s, _ := l["location"].(string)
	return s
}

// Clone returns a deep copy of the document
func (l Lesson) Clone() Lesson {
	if l == nil {
		return nil
	}
	return Lesson(CloneValue(map[string]any(l)).(map[string]any))
}

// UnmarshalJSON decodes a JSON object keeping integers as int64
func (l *Lesson) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	if doc == nil {
		*l = nil
		return nil
	}

	*l = Lesson(NormalizeJSONValue(doc).(map[string]any))
	return nil
}

// CloneValue deep-copies nested objects and arrays; scalars are shared
func CloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = CloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CloneValue(item)
		}
		return out
	default:
		return v
	}
}
