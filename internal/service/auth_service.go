package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"itgirls-web/internal/backend"
	"itgirls-web/internal/events"
	"itgirls-web/internal/session"
	"itgirls-web/internal/validation"
)

var ErrEmptyAuthResponse = errors.New("backend returned no session data")

type AuthBackend interface {
	Login(ctx context.Context, req backend.LoginRequest) (json.RawMessage, error)
	Register(ctx context.Context, req backend.RegisterRequest) (json.RawMessage, error)
}

// SessionDropper releases per-session state kept in memory.
type SessionDropper interface {
	Drop(sessionKey string)
}

type AuthResult struct {
	User     *session.Record
	Redirect string
	Handle   session.Handle
}

type AuthService interface {
	Login(ctx context.Context, previous session.Keys, form validation.LoginForm) (*AuthResult, error)
	Register(ctx context.Context, previous session.Keys, form validation.RegisterForm) (*AuthResult, error)
	Logout(ctx context.Context, keys session.Keys) error
	StoredUser(ctx context.Context, keys session.Keys) (*session.Record, error)
}

type authService struct {
	backend   AuthBackend
	sessions  *session.Manager
	publisher events.EventPublisher
	droppers  []SessionDropper
}

func NewAuthService(b AuthBackend, sessions *session.Manager, publisher events.EventPublisher, droppers ...SessionDropper) AuthService {
	return &authService{
		backend:   b,
		sessions:  sessions,
		publisher: publisher,
		droppers:  droppers,
	}
}

func (s *authService) Login(ctx context.Context, previous session.Keys, form validation.LoginForm) (*AuthResult, error) {
	raw, err := s.backend.Login(ctx, backend.LoginRequest{
		Email:    strings.ToLower(strings.TrimSpace(form.Email)),
		Password: form.Password,
	})
	if err != nil {
		return nil, err
	}

	scope := session.Transient
	if form.Remember {
		scope = session.Persistent
	}

	result, err := s.persist(ctx, previous, scope, raw)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishUserLoggedIn(result.User.ID, result.User.Role, form.Remember); err != nil {
		slog.WarnContext(ctx, "Failed to publish login event", slog.String("error", err.Error()))
	}

	return result, nil
}

// Register always keeps the new session in the persistent scope.
func (s *authService) Register(ctx context.Context, previous session.Keys, form validation.RegisterForm) (*AuthResult, error) {
	raw, err := s.backend.Register(ctx, RegisterRequestFromForm(form))
	if err != nil {
		return nil, err
	}

	result, err := s.persist(ctx, previous, session.Persistent, raw)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishUserRegistered(result.User.ID, result.User.Role, result.User.IsMentor); err != nil {
		slog.WarnContext(ctx, "Failed to publish register event", slog.String("error", err.Error()))
	}

	return result, nil
}

func (s *authService) persist(ctx context.Context, previous session.Keys, scope session.Scope, raw json.RawMessage) (*AuthResult, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyAuthResponse
	}

	user := session.ParseRecord(raw)
	if user == nil {
		return nil, ErrEmptyAuthResponse
	}

	for _, d := range s.droppers {
		d.Drop(previous.Primary())
	}

	handle, err := s.sessions.Save(ctx, previous, scope, raw)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Redirect: RedirectFor(raw), Handle: handle}, nil
}

func (s *authService) Logout(ctx context.Context, keys session.Keys) error {
	for _, d := range s.droppers {
		d.Drop(keys.Primary())
	}
	return s.sessions.Clear(ctx, keys)
}

func (s *authService) StoredUser(ctx context.Context, keys session.Keys) (*session.Record, error) {
	return s.sessions.Load(ctx, keys)
}

// RegisterRequestFromForm maps the sign-up form to the backend shape.
func RegisterRequestFromForm(form validation.RegisterForm) backend.RegisterRequest {
	isExpert := form.Role == validation.RoleExpert

	req := backend.RegisterRequest{
		Name:     strings.TrimSpace(form.FirstName + " " + form.LastName),
		Email:    strings.ToLower(strings.TrimSpace(form.Email)),
		Password: form.Password,
		Role:     "GIRL",
	}

	if isExpert {
		req.Role = "EXPERT"
		req.IsMentor = form.IsMentor

		profession := form.Profession
		if profession == "" {
			profession = form.Parcours
		}
		req.Profession = &profession

		cv := form.CVObjectKey
		if cv == "" {
			cv = form.CVFileName
		}
		req.CVFile = &cv
		return req
	}

	level := form.EducationLevel
	if level == "" {
		level = "lyceenne"
	}
	req.Level = &level
	return req
}
