package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID_GeneratedAndPropagated(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/healthz", "")
	id := rec.Header().Get(requestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err, id)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestRequestID_InContext(t *testing.T) {
	var seen string
	h := requestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, rec.Header().Get(requestIDHeader), seen)
}

func TestRecoverer_PanicBecomes500(t *testing.T) {
	f := newFixture(t)
	f.regs.panicOn = "explode"

	rec := f.do(http.MethodPost, "/api/events/register", `{"eventId":"explode"}`, sessionCookie(goodToken))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())

	// the server keeps serving
	rec = f.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS_Preflight(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/signin", nil)
	req.Header.Set("Origin", "https://yukta.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://yukta.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/api/auth/signin", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestParseSameSite(t *testing.T) {
	assert.Equal(t, http.SameSiteNoneMode, ParseSameSite("None"))
	assert.Equal(t, http.SameSiteLaxMode, ParseSameSite("lax"))
	assert.Equal(t, http.SameSiteStrictMode, ParseSameSite(" strict "))
	assert.Equal(t, http.SameSiteDefaultMode, ParseSameSite("default"))
	assert.Equal(t, http.SameSiteDefaultMode, ParseSameSite("whatever"))
}
