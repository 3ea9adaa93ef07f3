package catalog_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"itgirls-web/internal/backend"
	"itgirls-web/internal/catalog"
	"itgirls-web/internal/model"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

type fakeLister struct {
	records []backend.FormationRecord
	err     error
	queries chan backend.FormationQuery
	block   bool
}

func (f *fakeLister) ListFormations(ctx context.Context, q backend.FormationQuery) ([]backend.FormationRecord, error) {
	if f.queries != nil {
		f.queries <- q
	}
	if f.block && q.Q == "slow" {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.records, f.err
}

func sampleRecords() []backend.FormationRecord {
	return []backend.FormationRecord{
		{ID: "1", ThemeKey: "dev", ThemeLabel: "Développement", Title: "Go avancé", Level: "Avancé", IsPopular: ptr(true)},
		{ID: "2", ThemeKey: "cyber", ThemeLabel: "Cybersécurité", Title: "Pentest", Level: "Débutant"},
		{ID: "3", ThemeKey: "dev", ThemeLabel: "Développement", Title: "React", Level: "Débutant", IsPopular: ptr(true)},
	}
}

func TestFiltersQueryOmitsDefaults(t *testing.T) {
	q := catalog.Filters{ThemeKey: "all", Level: " ", Q: "  go "}.Query()
	require.Equal(t, backend.FormationQuery{Q: "go"}, q)

	q = catalog.Filters{ThemeKey: "dev", Level: "Avancé"}.Query()
	require.Equal(t, backend.FormationQuery{ThemeKey: "dev", Level: "Avancé"}, q)
}

func TestSearchAppliesLocalFilter(t *testing.T) {
	s := catalog.NewSearcher(&fakeLister{records: sampleRecords()})

	res, err := s.Search(context.Background(), "k", catalog.Filters{ThemeKey: "dev", Q: "DÉVELOP"})
	require.NoError(t, err)
	require.Len(t, res.Formations, 2)
	require.False(t, res.ShowPopular)
	require.Len(t, res.Popular, 2)

	res, err = s.Search(context.Background(), "k", catalog.Filters{ThemeKey: "all", Level: "all"})
	require.NoError(t, err)
	require.Len(t, res.Formations, 3)
	require.True(t, res.ShowPopular)
	require.Equal(t, 4.7, res.Formations[1].Rating)
}

func TestSearchBackendFailureDegradesToEmpty(t *testing.T) {
	s := catalog.NewSearcher(&fakeLister{err: errors.New("HTTP 500")})

	res, err := s.Search(context.Background(), "k", catalog.Filters{})
	require.NoError(t, err)
	require.NotNil(t, res.Formations)
	require.Empty(t, res.Formations)
	require.Empty(t, res.Popular)
}

func TestSearchNewerFilterCancelsPrevious(t *testing.T) {
	lister := &fakeLister{records: sampleRecords(), block: true, queries: make(chan backend.FormationQuery, 2)}
	s := catalog.NewSearcher(lister)

	errc := make(chan error, 1)
	go func() {
		_, err := s.Search(context.Background(), "k", catalog.Filters{Q: "slow"})
		errc <- err
	}()
	<-lister.queries

	res, err := s.Search(context.Background(), "k", catalog.Filters{Q: "react"})
	require.NoError(t, err)
	require.Len(t, res.Formations, 1)

	select {
	case err := <-errc:
		require.ErrorIs(t, err, catalog.ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("previous search was not cancelled")
	}
}

func TestSearchOtherSessionNotCancelled(t *testing.T) {
	lister := &fakeLister{records: sampleRecords(), queries: make(chan backend.FormationQuery, 2)}
	s := catalog.NewSearcher(lister)

	_, err := s.Search(context.Background(), "a", catalog.Filters{})
	require.NoError(t, err)
	_, err = s.Search(context.Background(), "b", catalog.Filters{})
	require.NoError(t, err)
}

func TestSearchCallerCancelled(t *testing.T) {
	s := catalog.NewSearcher(&fakeLister{block: true})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Search(ctx, "k", catalog.Filters{Q: "slow"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuildCapsPopular(t *testing.T) {
	all := make([]model.Formation, 0, 8)
	for i := 0; i < 8; i++ {
		all = append(all, model.Formation{ID: model.ID(strconv.Itoa(i)), IsPopular: true})
	}
	res := catalog.Build(all, catalog.Filters{})
	require.Len(t, res.Popular, 6)
	require.Len(t, res.Formations, 8)
}

func TestFilterEventsSortsAndFilters(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	events := []model.Event{
		{ID: "1", TypeKey: "atelier", Title: "Atelier Git", StartsAt: base.Add(48 * time.Hour)},
		{ID: "2", TypeKey: "conference", Title: "IA et société", StartsAt: base},
		{ID: "3", TypeKey: "atelier", Title: "Atelier Docker", StartsAt: base.Add(-24 * time.Hour)},
	}

	got := catalog.FilterEvents(events, catalog.EventFilters{TypeKey: "all"})
	require.Equal(t, []model.ID{"3", "2", "1"}, ids(got))

	got = catalog.FilterEvents(events, catalog.EventFilters{TypeKey: "atelier", Q: "git"})
	require.Equal(t, []model.ID{"1"}, ids(got))
}

func ids(events []model.Event) []model.ID {
	out := make([]model.ID, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}
