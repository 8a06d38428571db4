package validation

import (
	"encoding/json"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Error carries every violation found in one pass, in evaluation order.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return "validation error: " + strings.Join(e.Messages, "; ")
}

// violations накапливает сообщения, не останавливаясь на первой ошибке
type violations []string

func (v *violations) add(msg string) {
	if msg != "" {
		*v = append(*v, msg)
	}
}

func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return &Error{Messages: v}
}

type textRule struct {
	min, max    int
	requiredMsg string
	emptyMsg    string
	typeMsg     string
	minMsg      string
	maxMsg      string
}

// check trims the value and runs non-empty → min → max. The first failing
// constraint wins for this field.
func (r textRule) check(raw interface{}) (string, string) {
	s, ok := raw.(string)
	if !ok {
		return "", r.typeMsg
	}
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	switch {
	case n == 0:
		return "", r.emptyMsg
	case n < r.min:
		return "", r.minMsg
	case n > r.max:
		return "", r.maxMsg
	}
	return s, ""
}

func checkEnum[T ~string](raw interface{}, valid func(T) bool, msg string) (T, string) {
	s, ok := raw.(string)
	if !ok || !valid(T(s)) {
		return "", msg
	}
	return T(s), ""
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// maxEpochMillis is the widest instant a JavaScript Date can hold.
const maxEpochMillis = 8.64e15

func parseDate(raw interface{}) (time.Time, bool) {
	switch v := raw.(type) {
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, inJSONRange(t)
			}
		}
	case float64:
		return fromEpochMillis(v)
	case json.Number:
		if ms, err := v.Float64(); err == nil {
			return fromEpochMillis(ms)
		}
	}
	return time.Time{}, false
}

// fromEpochMillis проверяет диапазон до перевода в int64, иначе 1e300 переполняется
func fromEpochMillis(ms float64) (time.Time, bool) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxEpochMillis {
		return time.Time{}, false
	}
	t := time.UnixMilli(int64(ms)).UTC()
	return t, inJSONRange(t)
}

// inJSONRange reports whether t survives time.Time.MarshalJSON (years 0-9999).
func inJSONRange(t time.Time) bool {
	y := t.Year()
	return y >= 0 && y <= 9999
}

// checkDueDate requires the date to be strictly after now.
func checkDueDate(raw interface{}, now time.Time) (time.Time, string) {
	t, ok := parseDate(raw)
	if !ok {
		return time.Time{}, "Due date must be a valid date"
	}
	if !t.After(now) {
		return time.Time{}, "Due date must be in the future"
	}
	return t, ""
}

func checkTags(raw interface{}) ([]string, string) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, "Tags must be an array of strings"
	}
	tags := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, "Tags must be an array of strings"
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			return nil, "Tags cannot contain empty values"
		}
		tags = append(tags, s)
	}
	return tags, ""
}
