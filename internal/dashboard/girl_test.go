package dashboard

import (
	"testing"
	"time"

	"itgirls-web/internal/backend"
	"itgirls-web/internal/model"
	"itgirls-web/internal/session"

	"github.com/stretchr/testify/require"
)

func fixedNow(t *testing.T, now time.Time) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = prev })
}

func ptr[T any](v T) *T { return &v }

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	require.Equal(t, 1, DaysUntil(now.Add(3*time.Hour), now))
	require.Equal(t, 0, DaysUntil(now.Add(-3*time.Hour), now))
	require.Equal(t, 2, DaysUntil(now.Add(48*time.Hour), now))
	require.Equal(t, 3, DaysUntil(now.Add(49*time.Hour), now))
	require.Equal(t, -1, DaysUntil(now.Add(-25*time.Hour), now))
}

func TestReminders_FilterSortAndCap(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	fixedNow(t, now)

	at := func(d time.Duration) string { return now.Add(d).Format("2006-01-02T15:04:05") }
	rec := &backend.DashboardRecord{Events: []backend.EventRecord{
		{ID: "far", Title: "Far", StartsAt: at(5 * 24 * time.Hour)},
		{ID: "two", Title: "Two", StartsAt: at(47 * time.Hour)},
		{ID: "past", Title: "Past", StartsAt: at(-30 * time.Hour)},
		{ID: "one", Title: "One", StartsAt: at(20 * time.Hour)},
		{ID: "today", Title: "Today", StartsAt: at(-1 * time.Hour)},
		{ID: "one-b", Title: "One B", StartsAt: at(23 * time.Hour)},
		{ID: "nodate", Title: "No date"},
	}}

	d := BuildGirlDashboard(rec, Author{Name: "Lina", Title: "Débutant"})

	require.Len(t, d.Reminders, 3)
	require.Equal(t, model.ID("today"), d.Reminders[0].EventID)
	require.Equal(t, "Aujourd’hui", d.Reminders[0].Label)
	require.Equal(t, model.ID("one"), d.Reminders[1].EventID)
	require.Equal(t, "Dans 1 jour(s)", d.Reminders[1].Label)
	require.Equal(t, model.ID("one-b"), d.Reminders[2].EventID)

	byID := map[model.ID]model.EventCard{}
	for _, c := range d.Events {
		byID[c.ID] = c
	}
	require.True(t, byID["past"].Past)
	require.False(t, byID["past"].Soon)
	require.True(t, byID["two"].Soon)
	require.False(t, byID["far"].Soon)
	require.Nil(t, byID["nodate"].DaysUntil)
}

func TestBuildGirlDashboard_StatsAndProfileFallbacks(t *testing.T) {
	fixedNow(t, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

	rec := &backend.DashboardRecord{
		Enrollments: []backend.EnrollmentRecord{
			{ID: "1", Title: "Go", ProgressPercent: ptr(140.0)},
			{ID: "2", Title: "SQL", ProgressPercent: ptr(-5.0)},
			{ID: "3", Title: "Git"},
		},
		Conversations: []model.Conversation{{ID: "c1", Title: "Mentor"}},
	}
	rec.Stats = &struct {
		Formations *int `json:"formations"`
		Events     *int `json:"events"`
		Messages   *int `json:"messages"`
	}{Events: ptr(9)}

	d := BuildGirlDashboard(rec, Author{UserID: "4", Name: "Lina", Title: "Avancé"})

	require.Equal(t, model.GirlProfile{Name: "Lina", Level: "Avancé", Badge: "Girl Mode"}, d.Profile)
	require.Equal(t, model.GirlStats{Formations: 3, Events: 9, Messages: 1}, d.Stats)
	require.Equal(t, 100, d.Enrollments[0].ProgressPercent)
	require.Equal(t, 0, d.Enrollments[1].ProgressPercent)
	require.Equal(t, 0, d.Enrollments[2].ProgressPercent)
}

func TestBuildGirlDashboard_NilRecord(t *testing.T) {
	d := BuildGirlDashboard(nil, Author{})
	require.Equal(t, "Hello 👋", d.Profile.Name)
	require.Equal(t, "Débutant", d.Profile.Level)
	require.Empty(t, d.Events)
	require.NotNil(t, d.Reminders)
}

func TestAuthorFor(t *testing.T) {
	a := AuthorFor(nil, nil)
	require.Equal(t, Author{UserID: "1", Name: "Jeune fille", Title: "Débutant"}, a)

	label := func(string) string { return "Intermédiaire" }
	a = AuthorFor(&session.Record{ID: "9", Name: "Sara", Level: "bac2"}, label)
	require.Equal(t, Author{UserID: "9", Name: "Sara", Title: "Intermédiaire"}, a)

	a = AuthorFor(&session.Record{Level: "Avancé"}, label)
	require.Equal(t, "Avancé", a.Title)
}

func TestFormatDateTime(t *testing.T) {
	require.Equal(t, "15 févr. 2025, 15:00", FormatDateTime(time.Date(2025, 2, 15, 15, 0, 0, 0, time.UTC)))
	require.Equal(t, "", FormatDateTime(time.Time{}))
}
