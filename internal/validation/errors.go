package validation

import (
	"maps"
	"slices"
)

// Errors maps a form field to its message. An empty map means the form is valid.
type Errors map[string]string

func (e Errors) Valid() bool { return len(e) == 0 }

// First returns the message of the first failing field in form order, for
// surfaces that show a single message at a time. Fields missing from order
// are taken alphabetically.
func (e Errors) First(order ...string) string {
	for _, field := range order {
		if msg, ok := e[field]; ok {
			return msg
		}
	}
	for _, field := range slices.Sorted(maps.Keys(e)) {
		return e[field]
	}
	return ""
}
