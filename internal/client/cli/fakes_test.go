package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/yukta/symposium/internal/client/config"
	"github.com/yukta/symposium/internal/client/models"
)

type fakeAPI struct {
	pingErr error

	signUpEmail, signUpName, signUpPass string
	signInEmail, signInPass             string
	user                                *models.User
	authErr                             error

	signOutCalled bool
	signOutErr    error

	meUser *models.User
	meErr  error

	events    []models.Event
	eventsErr error

	registered  []string
	registerErr error

	mine    []string
	mineErr error
}

func (f *fakeAPI) Ping(context.Context) error { return f.pingErr }

func (f *fakeAPI) SignUp(_ context.Context, email, password, name string) (*models.User, error) {
	f.signUpEmail, f.signUpPass, f.signUpName = email, password, name
	return f.user, f.authErr
}

func (f *fakeAPI) SignIn(_ context.Context, email, password string) (*models.User, error) {
	f.signInEmail, f.signInPass = email, password
	return f.user, f.authErr
}

func (f *fakeAPI) SignOut(context.Context) error {
	f.signOutCalled = true
	return f.signOutErr
}

func (f *fakeAPI) Me(context.Context) (*models.User, error) { return f.meUser, f.meErr }

func (f *fakeAPI) Events(context.Context) ([]models.Event, error) { return f.events, f.eventsErr }

func (f *fakeAPI) Register(_ context.Context, id string) error {
	f.registered = append(f.registered, id)
	return f.registerErr
}

func (f *fakeAPI) MyRegistrations(context.Context) ([]string, error) { return f.mine, f.mineErr }

func testAppConfig() *config.Config {
	return &config.Config{ServerURL: "https://example.test", RequestTimeout: time.Second, OnlineCheckInterval: time.Hour}
}

func newTestApp(api *fakeAPI, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return newApp(testAppConfig(), api, strings.NewReader(input), &out), &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) (string, error) { return pw, nil }
	t.Cleanup(func() { getPassword = orig })
}
