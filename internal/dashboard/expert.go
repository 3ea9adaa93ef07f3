package dashboard

import (
	"strings"
	"unicode"

	"itgirls-web/internal/fixtures"
	"itgirls-web/internal/model"
	"itgirls-web/internal/session"
)

const (
	StatusConfirmed = "Confirmé"
	StatusPending   = "En attente"
	StatusPublished = "Publié"
)

var DefaultExpertProfile = model.ExpertProfile{
	Name:       "Expert IT",
	Initials:   "EI",
	Profession: "Expert IT",
	IsMentor:   false,
	RoleLabel:  "EXPERT",
	Badge:      "Expert IT • Non-mentor",
}

// ExpertProfileFor maps the signed-in user to the sidebar profile.
func ExpertProfileFor(user *session.Record) model.ExpertProfile {
	if user == nil {
		return DefaultExpertProfile
	}

	name := strings.TrimSpace(firstNonEmpty(user.Name, user.Email, DefaultExpertProfile.Name))
	role := strings.ToUpper(firstNonEmpty(user.Role, "EXPERT"))
	profession := strings.TrimSpace(user.Profession)
	if profession == "" {
		profession = "Expert IT"
	}

	badge := role
	if role == "EXPERT" {
		badge = "Expert IT • Non-mentor"
		if user.IsMentor {
			badge = "Expert IT • Mentor"
		}
	}

	return model.ExpertProfile{
		Name:       name,
		Initials:   Initials(name),
		Profession: profession,
		IsMentor:   user.IsMentor,
		RoleLabel:  role,
		AvatarURL:  user.AvatarURL,
		Badge:      badge,
	}
}

// Initials takes the first letter of the first and last words, upper-cased,
// or "IT" for a blank name.
func Initials(name string) string {
	parts := strings.FieldsFunc(name, unicode.IsSpace)
	if len(parts) == 0 {
		return "IT"
	}
	initials := firstRune(parts[0])
	if len(parts) > 1 {
		initials += firstRune(parts[len(parts)-1])
	}
	return strings.ToUpper(initials)
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// StatusTone picks the pill style for a training or reservation status.
func StatusTone(status string) string {
	switch status {
	case StatusConfirmed, "Confirmée", StatusPublished:
		return "ok"
	case StatusPending:
		return "wait"
	default:
		return "muted"
	}
}

// BuildExpertDashboard assembles the expert view from the user and the
// static panels.
func BuildExpertDashboard(user *session.Record, panels fixtures.ExpertPanels) model.ExpertDashboard {
	d := model.ExpertDashboard{
		Profile:       ExpertProfileFor(user),
		Nav:           append([]model.NavItem(nil), panels.Nav...),
		Trainings:     make([]model.Training, 0, len(panels.Trainings)),
		Events:        append([]model.ExpertEvent(nil), panels.Events...),
		Reservations:  make([]model.Reservation, 0, len(panels.Reservations)),
		Notifications: append([]model.ExpertNotification(nil), panels.Notifications...),
	}

	activeTrainings := 0
	for _, t := range panels.Trainings {
		t.Tone = StatusTone(t.Status)
		if t.Status == StatusPublished {
			activeTrainings++
		}
		d.Trainings = append(d.Trainings, t)
	}

	pending := 0
	for _, r := range panels.Reservations {
		r.Tone = StatusTone(r.Status)
		if r.Status == StatusPending {
			pending++
		}
		d.Reservations = append(d.Reservations, r)
	}

	d.Stats = []model.StatTile{
		{ID: "s1", Label: "Formations actives", Value: activeTrainings, Tone: "teal", Path: "/expert/content?tab=trainings"},
		{ID: "s2", Label: "Événements à venir", Value: len(panels.Events), Tone: "indigo", Path: "/expert/content?tab=events"},
		{ID: "s3", Label: "Réservations en attente", Value: pending, Tone: "pink", Path: "/expert/requests?tab=mentorat"},
		{ID: "s4", Label: "Notifications", Value: len(panels.Notifications), Tone: "orange"},
	}

	return d
}
