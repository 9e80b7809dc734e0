package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yukta/symposium/internal/common"
	"github.com/yukta/symposium/internal/logging"
	"github.com/yukta/symposium/internal/server/auth"
	"github.com/yukta/symposium/internal/server/catalog"
	"github.com/yukta/symposium/internal/server/models"
	"github.com/yukta/symposium/internal/server/services"
)

const goodToken = "good-token"

var alice = models.PublicUser{ID: 1, Email: "alice@example.com", Name: "Alice"}

type fakeAuth struct {
	signUpErr error
	signInErr error

	gotEmail, gotPassword, gotName string
}

func (f *fakeAuth) session() *services.Session {
	return &services.Session{User: alice, Token: goodToken, ExpiresAt: time.Now().Add(time.Hour)}
}

func (f *fakeAuth) SignUp(_ context.Context, email, password, name string) (*services.Session, error) {
	f.gotEmail, f.gotPassword, f.gotName = email, password, name
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return f.session(), nil
}

func (f *fakeAuth) SignIn(_ context.Context, email, password string) (*services.Session, error) {
	f.gotEmail, f.gotPassword = email, password
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.session(), nil
}

func (f *fakeAuth) SignOut(context.Context) error { return nil }

func (f *fakeAuth) WhoAmI(_ context.Context, token string) (*auth.Claims, error) {
	switch token {
	case "":
		return nil, common.ErrUnauthenticated
	case goodToken:
		return &auth.Claims{UserID: alice.ID, Email: alice.Email, Name: alice.Name}, nil
	default:
		return nil, common.ErrInvalidToken
	}
}

type fakeRegistrations struct {
	registerErr error
	listErr     error
	panicOn     string

	registered []string
}

func (f *fakeRegistrations) Register(_ context.Context, claims *auth.Claims, eventID string) (bool, error) {
	if eventID == f.panicOn {
		panic("boom")
	}
	if f.registerErr != nil {
		return false, f.registerErr
	}
	f.registered = append(f.registered, eventID)
	return true, nil
}

func (f *fakeRegistrations) ListMine(context.Context, *auth.Claims) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]string{}, f.registered...), nil
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type fixture struct {
	auth    *fakeAuth
	regs    *fakeRegistrations
	pinger  *fakePinger
	handler http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cat, err := catalog.New(catalog.Default())
	if err != nil {
		t.Fatal(err)
	}

	f := &fixture{auth: &fakeAuth{}, regs: &fakeRegistrations{}, pinger: &fakePinger{}}
	f.handler = NewRouter(Options{
		Auth:          f.auth,
		Registrations: f.regs,
		Catalog:       cat,
		DB:            f.pinger,
		Cookie:        testCookie(),
		CORSOrigins:   []string{"https://yukta.example"},
		Logger:        logging.Nop(),
	})
	return f
}

func testCookie() CookieConfig {
	return CookieConfig{Name: "token", Secure: true, SameSite: http.SameSiteNoneMode, TTL: time.Hour}
}

func (f *fixture) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(v string) *http.Cookie {
	return &http.Cookie{Name: "token", Value: v}
}

var errStorage = errors.New("pq: connection refused to 10.0.0.7")
