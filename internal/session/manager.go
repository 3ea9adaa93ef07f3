package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"itgirls-web/internal/jwt"

	"github.com/google/uuid"
)

type Scope int

const (
	// Persistent survives browser restarts ("remember me").
	Persistent Scope = iota
	// Transient lives as long as the browser tab session.
	Transient
)

func (s Scope) String() string {
	if s == Persistent {
		return "persistent"
	}
	return "transient"
}

const (
	PersistentCookie = "itg_user"
	TransientCookie  = "itg_user_tab"
)

// Keys are the session keys a browser presented, one per scope.
type Keys struct {
	Persistent string
	Transient  string
}

func (k Keys) Empty() bool { return k.Persistent == "" && k.Transient == "" }

// Primary is the key the session is currently stored under.
func (k Keys) Primary() string {
	if k.Persistent != "" {
		return k.Persistent
	}
	return k.Transient
}

// Handle tells the caller which cookie to set after a Save.
type Handle struct {
	Scope Scope
	Key   string
	TTL   time.Duration
}

func (h Handle) Cookie() string {
	if h.Scope == Persistent {
		return PersistentCookie
	}
	return TransientCookie
}

type Manager struct {
	persistent    Store
	transient     Store
	rememberTTL   time.Duration
	tabSessionTTL time.Duration
	now           func() time.Time
}

func NewManager(persistent, transient Store, rememberTTL, tabSessionTTL time.Duration) *Manager {
	return &Manager{
		persistent:    persistent,
		transient:     transient,
		rememberTTL:   rememberTTL,
		tabSessionTTL: tabSessionTTL,
		now:           time.Now,
	}
}

func (m *Manager) store(scope Scope) Store {
	if scope == Persistent {
		return m.persistent
	}
	return m.transient
}

// Save stores raw under a fresh key in scope, then removes whatever the
// browser had in either scope, so a session only ever lives in one place.
// When the new entry cannot be stored the previous session is left intact.
func (m *Manager) Save(ctx context.Context, previous Keys, scope Scope, raw []byte) (Handle, error) {
	ttl := m.tabSessionTTL
	if scope == Persistent {
		token := ""
		if rec := ParseRecord(raw); rec != nil {
			token = rec.Token
		}
		ttl = jwt.TTL(token, m.now(), m.rememberTTL)
	}

	h := Handle{Scope: scope, Key: uuid.NewString(), TTL: ttl}
	if err := m.store(scope).Put(ctx, h.Key, raw, ttl); err != nil {
		return Handle{}, err
	}

	if err := m.Clear(ctx, previous); err != nil {
		// the stale entry expires on its own and its cookie is replaced
		slog.WarnContext(ctx, "Failed to remove previous session",
			slog.String("scope", scope.String()),
			slog.String("error", err.Error()),
		)
	}
	return h, nil
}

// Load returns the stored user, preferring the persistent scope. A missing,
// expired or malformed entry is reported as nil with no error.
func (m *Manager) Load(ctx context.Context, keys Keys) (*Record, error) {
	if rec, err := m.load(ctx, Persistent, keys.Persistent); rec != nil || err != nil {
		return rec, err
	}
	return m.load(ctx, Transient, keys.Transient)
}

func (m *Manager) load(ctx context.Context, scope Scope, key string) (*Record, error) {
	if key == "" {
		return nil, nil
	}
	raw, err := m.store(scope).Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec := ParseRecord(raw)
	if rec == nil {
		slog.WarnContext(ctx, "Discarding malformed session payload", slog.String("scope", scope.String()))
	}
	return rec, nil
}

// Clear removes the session from both scopes.
func (m *Manager) Clear(ctx context.Context, keys Keys) error {
	var errs []error
	if keys.Persistent != "" {
		errs = append(errs, m.persistent.Delete(ctx, keys.Persistent))
	}
	if keys.Transient != "" {
		errs = append(errs, m.transient.Delete(ctx, keys.Transient))
	}
	return errors.Join(errs...)
}
