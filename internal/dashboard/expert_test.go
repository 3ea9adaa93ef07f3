package dashboard_test

import (
	"testing"

	"itgirls-web/internal/dashboard"
	"itgirls-web/internal/fixtures"
	"itgirls-web/internal/session"

	"github.com/stretchr/testify/require"
)

func TestInitials(t *testing.T) {
	require.Equal(t, "SE", dashboard.Initials("Salma EL AMRANI"))
	require.Equal(t, "A", dashboard.Initials("  ada  "))
	require.Equal(t, "ÉB", dashboard.Initials("émilie   bernard"))
	require.Equal(t, "IT", dashboard.Initials("   "))
}

func TestStatusTone(t *testing.T) {
	require.Equal(t, "ok", dashboard.StatusTone("Confirmé"))
	require.Equal(t, "ok", dashboard.StatusTone("Confirmée"))
	require.Equal(t, "ok", dashboard.StatusTone("Publié"))
	require.Equal(t, "wait", dashboard.StatusTone("En attente"))
	require.Equal(t, "muted", dashboard.StatusTone("Brouillon"))
}

func TestExpertProfileFor(t *testing.T) {
	require.Equal(t, dashboard.DefaultExpertProfile, dashboard.ExpertProfileFor(nil))

	p := dashboard.ExpertProfileFor(&session.Record{Name: "Nadia Benali", Role: "expert", IsMentor: true, Profession: "  "})
	require.Equal(t, "Nadia Benali", p.Name)
	require.Equal(t, "NB", p.Initials)
	require.Equal(t, "EXPERT", p.RoleLabel)
	require.Equal(t, "Expert IT", p.Profession)
	require.Equal(t, "Expert IT • Mentor", p.Badge)

	p = dashboard.ExpertProfileFor(&session.Record{Email: "x@y.z", Role: "GIRL"})
	require.Equal(t, "x@y.z", p.Name)
	require.Equal(t, "GIRL", p.Badge)

	p = dashboard.ExpertProfileFor(&session.Record{Name: "Sam"})
	require.Equal(t, "Expert IT • Non-mentor", p.Badge)
}

func TestBuildExpertDashboard_Stats(t *testing.T) {
	set := fixtures.MustLoad()

	d := dashboard.BuildExpertDashboard(&session.Record{Name: "Sam"}, set.Expert)

	require.Len(t, d.Stats, 4)
	require.Equal(t, 2, d.Stats[0].Value)
	require.Equal(t, 2, d.Stats[1].Value)
	require.Equal(t, 1, d.Stats[2].Value)
	require.Equal(t, 3, d.Stats[3].Value)
	require.Empty(t, d.Stats[3].Path)

	require.Equal(t, "ok", d.Reservations[0].Tone)
	require.Equal(t, "wait", d.Reservations[1].Tone)
	require.Equal(t, "muted", d.Trainings[1].Tone)
}
