// Package catalog filters the formations and events catalogs.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"itgirls-web/internal/backend"
	"itgirls-web/internal/model"
	"itgirls-web/internal/normalize"
)

// All is the filter value that disables a filter.
const All = "all"

const maxPopular = 6

// ErrSuperseded reports a search cancelled by a newer one for the same session.
var ErrSuperseded = errors.New("search superseded by a newer one")

type Option struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var Themes = []Option{
	{Key: All, Label: "Tout"},
	{Key: "dev", Label: "Dev"},
	{Key: "cyber", Label: "Cyber"},
	{Key: "cloud", Label: "Cloud"},
	{Key: "ai", Label: "IA"},
	{Key: "bigdata", Label: "Big Data"},
	{Key: "net", Label: "Réseaux"},
}

var Levels = []Option{
	{Key: All, Label: "Tous niveaux"},
	{Key: "Débutant", Label: "Débutant"},
	{Key: "Intermédiaire", Label: "Intermédiaire"},
	{Key: "Avancé", Label: "Avancé"},
}

type Filters struct {
	ThemeKey string
	Level    string
	Q        string
}

func active(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != All
}

// IsDefault reports whether no filter narrows the catalog.
func (f Filters) IsDefault() bool {
	return !active(f.ThemeKey) && !active(f.Level) && strings.TrimSpace(f.Q) == ""
}

// Query drops "all" and blank values.
func (f Filters) Query() backend.FormationQuery {
	var q backend.FormationQuery
	if active(f.ThemeKey) {
		q.ThemeKey = strings.TrimSpace(f.ThemeKey)
	}
	if active(f.Level) {
		q.Level = strings.TrimSpace(f.Level)
	}
	q.Q = strings.TrimSpace(f.Q)
	return q
}

// Match applies the filters locally: exact theme and level, and a
// case-insensitive substring of the title or the theme label.
func (f Filters) Match(c model.Formation) bool {
	if active(f.ThemeKey) && c.ThemeKey != strings.TrimSpace(f.ThemeKey) {
		return false
	}
	if active(f.Level) && c.Level != strings.TrimSpace(f.Level) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strings.ToLower(c.ThemeLabel), q)
}

type Result struct {
	Formations  []model.Formation `json:"formations"`
	Popular     []model.Formation `json:"popular"`
	ShowPopular bool              `json:"showPopular"`
}

type FormationLister interface {
	ListFormations(ctx context.Context, q backend.FormationQuery) ([]backend.FormationRecord, error)
}

type inflight struct {
	seq    uint64
	cancel context.CancelFunc
}

// Searcher runs formation searches; a new search for a session key cancels
// the one still running for that key.
type Searcher struct {
	backend FormationLister

	mu       sync.Mutex
	seq      uint64
	inflight map[string]inflight
}

func NewSearcher(b FormationLister) *Searcher {
	return &Searcher{backend: b, inflight: make(map[string]inflight)}
}

func (s *Searcher) Search(ctx context.Context, sessionKey string, f Filters) (Result, error) {
	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	seq := s.start(sessionKey, cancel)

	records, err := s.backend.ListFormations(searchCtx, f.Query())

	if s.finish(sessionKey, seq) {
		return Result{}, ErrSuperseded
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		slog.ErrorContext(ctx, "Failed to fetch formations", slog.String("error", err.Error()))
		records = nil
	}

	return Build(normalize.Formations(records), f), nil
}

func (s *Searcher) start(key string, cancel context.CancelFunc) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.inflight[key]; ok {
		prev.cancel()
	}
	s.seq++
	s.inflight[key] = inflight{seq: s.seq, cancel: cancel}
	return s.seq
}

// finish unregisters the search and reports whether a newer one replaced it.
func (s *Searcher) finish(key string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.inflight[key]
	if !ok || cur.seq != seq {
		return true
	}
	delete(s.inflight, key)
	return false
}

// Build filters the catalog and picks the popular strip.
func Build(all []model.Formation, f Filters) Result {
	res := Result{
		Formations:  []model.Formation{},
		Popular:     []model.Formation{},
		ShowPopular: f.IsDefault(),
	}
	for _, c := range all {
		if c.IsPopular && len(res.Popular) < maxPopular {
			res.Popular = append(res.Popular, c)
		}
		if f.Match(c) {
			res.Formations = append(res.Formations, c)
		}
	}
	return res
}
