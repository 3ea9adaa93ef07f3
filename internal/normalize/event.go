package normalize

import (
	"strings"

	"itgirls-web/internal/backend"
	"itgirls-web/internal/model"
)

// Event maps a backend event. A missing typeKey falls back to the lower-case
// "type" the dashboard endpoint sends; an unreadable start time stays zero.
func Event(r backend.EventRecord) model.Event {
	typeKey := r.TypeKey
	if typeKey == "" {
		typeKey = strings.ToLower(r.Type)
	}
	typeLabel := r.TypeLabel
	if typeLabel == "" {
		typeLabel = r.Type
	}

	ev := model.Event{
		ID:                r.ID,
		TypeKey:           typeKey,
		TypeLabel:         typeLabel,
		Title:             r.Title,
		DurationMins:      orDefault(r.DurationMins, 0),
		ParticipantsCount: orDefault(r.ParticipantsCount, 0),
		Badge:             r.Badge,
		Cover:             r.Cover,
	}
	if t, ok := model.ParseTime(r.StartsAt); ok {
		ev.StartsAt = t
	}
	return ev
}

func Events(records []backend.EventRecord) []model.Event {
	out := make([]model.Event, 0, len(records))
	for _, r := range records {
		out = append(out, Event(r))
	}
	return out
}
