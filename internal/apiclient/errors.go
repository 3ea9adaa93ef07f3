package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error is a non-2xx backend answer reduced to a single message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// ReadError turns a failed response body into the message shown to users:
// the JSON "message" field, then "error", then the JSON text, then the raw
// text, then "HTTP <status>".
func ReadError(status int, body []byte) string {
	text := string(body)
	fallback := text
	if strings.TrimSpace(fallback) == "" {
		fallback = fmt.Sprintf("HTTP %d", status)
	}

	if strings.TrimSpace(text) == "" {
		return fallback
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fallback
	}

	switch parsed.(type) {
	case map[string]any, []any:
	default:
		return fallback
	}

	if obj, ok := parsed.(map[string]any); ok {
		for _, key := range []string{"message", "error"} {
			if s := stringify(obj[key]); s != "" {
				return s
			}
		}
	}

	compact, err := json.Marshal(parsed)
	if err != nil {
		return fallback
	}
	return string(compact)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
	case float64:
		if t == 0 {
			return ""
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
