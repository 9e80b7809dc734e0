package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yukta/symposium/internal/client/models"
)

// Client is the API surface the CLI depends on.
type Client interface {
	Ping(ctx context.Context) error
	SignUp(ctx context.Context, email, password, name string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	SignOut(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	Events(ctx context.Context) ([]models.Event, error)
	Register(ctx context.Context, eventID string) error
	MyRegistrations(ctx context.Context) ([]string, error)
}

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the API rooted at serverURL. The
// underlying http.Client may be nil, in which case one with the given
// timeout is created. A loopback-aware cookie jar is attached when missing.
func NewHTTPClient(serverURL string, timeout time.Duration, hc *http.Client) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(serverURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", serverURL)
	}

	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	if hc.Jar == nil {
		jar, err := newSessionJar()
		if err != nil {
			return nil, err
		}
		hc.Jar = jar
	}

	return &HTTPClient{baseURL: u, http: hc}, nil
}

type userEnvelope struct {
	User models.User `json:"user"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *HTTPClient) SignUp(ctx context.Context, email, password, name string) (*models.User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", credentials{Email: email, Password: password, Name: name}, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/auth/signin", credentials{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *HTTPClient) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/signout", nil, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *HTTPClient) Events(ctx context.Context) ([]models.Event, error) {
	var out struct {
		Events []models.Event `json:"events"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/events", nil, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

func (c *HTTPClient) Register(ctx context.Context, eventID string) error {
	in := struct {
		EventID string `json:"eventId"`
	}{EventID: eventID}
	return c.do(ctx, http.MethodPost, "/api/events/register", in, nil)
}

func (c *HTTPClient) MyRegistrations(ctx context.Context) ([]string, error) {
	var out struct {
		Registrations []string `json:"registrations"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/user/registrations", nil, &out); err != nil {
		return nil, err
	}
	if out.Registrations == nil {
		out.Registrations = []string{}
	}
	return out.Registrations, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&e)
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
