package dashboard

import (
	"math"
	"sort"
	"time"

	"itgirls-web/internal/backend"
	"itgirls-web/internal/model"
	"itgirls-web/internal/normalize"
	"itgirls-web/internal/session"
)

const (
	DefaultGirlName  = "Jeune fille"
	DefaultGirlLevel = "Débutant"
	DefaultGirlBadge = "Girl Mode"
	PlaceholderGreet = "Hello 👋"

	maxReminders    = 3
	reminderHorizon = 2
)

var educationLevels = map[string]bool{
	"lyceenne": true, "bac2": true, "bac3": true, "master": true, "autre": true,
}

// Author is the identity the girl dashboard writes with: messages, feedback.
type Author struct {
	UserID model.ID
	Name   string
	Title  string
}

// AuthorFor derives the author from the signed-in user. Without a user the
// id is 1, as the backend expects some id on every write.
func AuthorFor(user *session.Record, levelLabel func(string) string) Author {
	a := Author{UserID: "1", Name: DefaultGirlName, Title: DefaultGirlLevel}
	if user == nil {
		return a
	}
	if user.ID != "" {
		a.UserID = user.ID
	}
	if user.Name != "" {
		a.Name = user.Name
	}
	if user.Level != "" {
		a.Title = user.Level
		if educationLevels[user.Level] && levelLabel != nil {
			a.Title = levelLabel(user.Level)
		}
	}
	return a
}

// EmptyGirlDashboard is what the page shows before, or instead of, backend data.
func EmptyGirlDashboard() model.GirlDashboard {
	return model.GirlDashboard{
		Profile:       model.GirlProfile{Name: PlaceholderGreet, Level: DefaultGirlLevel, Badge: DefaultGirlBadge},
		Enrollments:   []model.Enrollment{},
		Events:        []model.EventCard{},
		Conversations: []model.Conversation{},
		Reminders:     []model.Reminder{},
	}
}

// BuildGirlDashboard merges the backend payload with the author fallbacks and
// derives stats, event cards and reminders.
func BuildGirlDashboard(rec *backend.DashboardRecord, author Author) model.GirlDashboard {
	if rec == nil {
		return EmptyGirlDashboard()
	}

	now := timeNow()
	d := EmptyGirlDashboard()

	d.Profile = model.GirlProfile{Name: author.Name, Level: author.Title, Badge: DefaultGirlBadge}
	if p := rec.Profile; p != nil {
		d.Profile.Name = firstNonEmpty(p.Name, author.Name)
		d.Profile.Level = firstNonEmpty(p.Level, author.Title)
		d.Profile.Badge = firstNonEmpty(p.Badge, DefaultGirlBadge)
	}

	for _, e := range rec.Enrollments {
		d.Enrollments = append(d.Enrollments, model.Enrollment{
			ID:              e.ID,
			Title:           e.Title,
			ThemeLabel:      e.ThemeLabel,
			Level:           e.Level,
			ProgressPercent: ClampProgress(e.ProgressPercent),
		})
	}

	for _, ev := range normalize.Events(rec.Events) {
		d.Events = append(d.Events, EventCardFor(ev, now))
	}

	if rec.Conversations != nil {
		d.Conversations = rec.Conversations
	}

	d.Stats = model.GirlStats{
		Formations: len(d.Enrollments),
		Events:     len(d.Events),
		Messages:   len(d.Conversations),
	}
	if s := rec.Stats; s != nil {
		if s.Formations != nil {
			d.Stats.Formations = *s.Formations
		}
		if s.Events != nil {
			d.Stats.Events = *s.Events
		}
		if s.Messages != nil {
			d.Stats.Messages = *s.Messages
		}
	}

	d.Reminders = Reminders(d.Events)
	return d
}

// ClampProgress keeps a progress percentage within 0..100; absent is 0.
func ClampProgress(p *float64) int {
	if p == nil || math.IsNaN(*p) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, *p))))
}

// EventCardFor adds the time-derived fields to an event. Events without a
// start time are neither past nor soon.
func EventCardFor(ev model.Event, now time.Time) model.EventCard {
	card := model.EventCard{Event: ev}
	if ev.StartsAt.IsZero() {
		return card
	}
	days := DaysUntil(ev.StartsAt, now)
	card.DaysUntil = &days
	card.Past = ev.StartsAt.Before(now)
	card.Soon = days >= 0 && days <= reminderHorizon
	card.When = FormatDateTime(ev.StartsAt)
	return card
}

// Reminders keeps events starting within the next two days, soonest first,
// at most three.
func Reminders(cards []model.EventCard) []model.Reminder {
	out := []model.Reminder{}
	for _, c := range cards {
		if c.DaysUntil == nil || *c.DaysUntil < 0 || *c.DaysUntil > reminderHorizon {
			continue
		}
		out = append(out, model.Reminder{
			EventID:   c.ID,
			Title:     c.Title,
			StartsAt:  c.StartsAt,
			DaysUntil: *c.DaysUntil,
			Label:     ReminderLabel(*c.DaysUntil),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysUntil < out[j].DaysUntil })
	if len(out) > maxReminders {
		out = out[:maxReminders]
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
