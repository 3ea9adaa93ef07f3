package catalog

import (
	"sort"
	"strings"

	"itgirls-web/internal/model"
)

var EventTypes = []Option{
	{Key: All, Label: "Tout"},
	{Key: "atelier", Label: "Ateliers"},
	{Key: "conference", Label: "Conférences"},
	{Key: "competition", Label: "Compétitions"},
}

type EventFilters struct {
	TypeKey string
	Q       string
}

// FilterEvents keeps past and upcoming events matching the type and the
// title search, oldest first.
func FilterEvents(events []model.Event, f EventFilters) []model.Event {
	q := strings.ToLower(strings.TrimSpace(f.Q))
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if active(f.TypeKey) && e.TypeKey != strings.TrimSpace(f.TypeKey) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(e.Title), q) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out
}
