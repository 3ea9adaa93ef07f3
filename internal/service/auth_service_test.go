package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"itgirls-web/internal/apiclient"
	"itgirls-web/internal/backend"
	"itgirls-web/internal/events"
	"itgirls-web/internal/service"
	"itgirls-web/internal/session"
	"itgirls-web/internal/validation"

	"github.com/stretchr/testify/require"
)

type fakeAuthBackend struct {
	loginReq    backend.LoginRequest
	registerReq backend.RegisterRequest
	response    string
	err         error
}

func (f *fakeAuthBackend) Login(_ context.Context, req backend.LoginRequest) (json.RawMessage, error) {
	f.loginReq = req
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.response), nil
}

func (f *fakeAuthBackend) Register(_ context.Context, req backend.RegisterRequest) (json.RawMessage, error) {
	f.registerReq = req
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.response), nil
}

type recordingDropper struct{ dropped []string }

func (d *recordingDropper) Drop(key string) { d.dropped = append(d.dropped, key) }

func newAuthService(b service.AuthBackend) (service.AuthService, *recordingDropper) {
	sessions := session.NewManager(session.NewMemoryStore(), session.NewMemoryStore(), 720*time.Hour, 12*time.Hour)
	dropper := &recordingDropper{}
	return service.NewAuthService(b, sessions, events.NoopPublisher{}, dropper), dropper
}

func TestAuthService_LoginExpertRedirectsToExpertDashboard(t *testing.T) {
	b := &fakeAuthBackend{response: `{"id":1,"role":"EXPERT","token":"t"}`}
	svc, _ := newAuthService(b)

	res, err := svc.Login(context.Background(), session.Keys{}, validation.LoginForm{Email: "  Ada@Mail.COM ", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "/expert-dashboard", res.Redirect)
	require.Equal(t, "ada@mail.com", b.loginReq.Email)
	require.Equal(t, session.Transient, res.Handle.Scope)

	stored, err := svc.StoredUser(context.Background(), session.Keys{Transient: res.Handle.Key})
	require.NoError(t, err)
	require.Equal(t, "t", stored.Token)
}

func TestAuthService_LoginRememberUsesPersistentScope(t *testing.T) {
	svc, _ := newAuthService(&fakeAuthBackend{response: `{"role":"GIRL"}`})

	res, err := svc.Login(context.Background(), session.Keys{}, validation.LoginForm{Email: "a@b.co", Password: "pw", Remember: true})
	require.NoError(t, err)
	require.Equal(t, "/girl-dashboard", res.Redirect)
	require.Equal(t, session.Persistent, res.Handle.Scope)
	require.Equal(t, session.PersistentCookie, res.Handle.Cookie())
}

func TestAuthService_LoginBackendErrorStoresNothing(t *testing.T) {
	svc, _ := newAuthService(&fakeAuthBackend{err: &apiclient.Error{Status: 401, Message: "Identifiants invalides"}})

	res, err := svc.Login(context.Background(), session.Keys{}, validation.LoginForm{Email: "a@b.co", Password: "bad"})
	require.Nil(t, res)
	require.EqualError(t, err, "Identifiants invalides")
	require.Equal(t, 401, apiclient.StatusOf(err))
}

func TestAuthService_LoginEmptyResponse(t *testing.T) {
	svc, _ := newAuthService(&fakeAuthBackend{response: ``})

	_, err := svc.Login(context.Background(), session.Keys{}, validation.LoginForm{Email: "a@b.co", Password: "pw"})
	require.True(t, errors.Is(err, service.ErrEmptyAuthResponse))
}

func TestAuthService_RegisterExpert(t *testing.T) {
	b := &fakeAuthBackend{response: `{"user":{"id":"7","role":"EXPERT","isMentor":true},"token":"tk"}`}
	svc, _ := newAuthService(b)

	res, err := svc.Register(context.Background(), session.Keys{}, validation.RegisterForm{
		FirstName:  " Sam ",
		LastName:   "Lee ",
		Email:      "SAM@x.io",
		Role:       validation.RoleExpert,
		Parcours:   "Data",
		IsMentor:   true,
		CVFileName: "cv.pdf",
	})
	require.NoError(t, err)
	require.Equal(t, "/expert-dashboard", res.Redirect)
	require.Equal(t, session.Persistent, res.Handle.Scope)
	require.Equal(t, "tk", res.User.Token)

	req := b.registerReq
	require.Equal(t, "Sam  Lee", req.Name)
	require.Equal(t, "sam@x.io", req.Email)
	require.Equal(t, "EXPERT", req.Role)
	require.Nil(t, req.Level)
	require.Equal(t, "Data", *req.Profession)
	require.Equal(t, "cv.pdf", *req.CVFile)
	require.True(t, req.IsMentor)
}

func TestRegisterRequestFromForm_StudentDefaults(t *testing.T) {
	req := service.RegisterRequestFromForm(validation.RegisterForm{FirstName: "Lina", Role: validation.RoleStudent, IsMentor: true})

	require.Equal(t, "Lina", req.Name)
	require.Equal(t, "GIRL", req.Role)
	require.Equal(t, "lyceenne", *req.Level)
	require.Nil(t, req.Profession)
	require.Nil(t, req.CVFile)
	require.False(t, req.IsMentor)

	b, err := json.Marshal(req)
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"Lina","email":"","password":"","role":"GIRL","level":"lyceenne","profession":null,"isMentor":false,"cvFile":null}`, string(b))
}

func TestAuthService_LogoutClearsAndDrops(t *testing.T) {
	svc, dropper := newAuthService(&fakeAuthBackend{response: `{"id":1}`})

	res, err := svc.Login(context.Background(), session.Keys{}, validation.LoginForm{Email: "a@b.co", Password: "pw", Remember: true})
	require.NoError(t, err)

	keys := session.Keys{Persistent: res.Handle.Key}
	require.NoError(t, svc.Logout(context.Background(), keys))
	require.Contains(t, dropper.dropped, res.Handle.Key)

	user, err := svc.StoredUser(context.Background(), keys)
	require.NoError(t, err)
	require.Nil(t, user)
}
