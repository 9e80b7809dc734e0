package client

import (
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
)

// sessionJar is a cookie jar that treats plain-HTTP loopback hosts as
// secure, the way browsers treat http://localhost. Without it the server's
// Secure session cookie would never be sent back to a local http server.
type sessionJar struct {
	jar *cookiejar.Jar
}

func newSessionJar() (*sessionJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &sessionJar{jar: jar}, nil
}

func (j *sessionJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.jar.SetCookies(secureLoopback(u), cookies)
}

func (j *sessionJar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(secureLoopback(u))
}

// secureLoopback rewrites http URLs pointing at a loopback host to https.
// Other URLs are returned unchanged.
func secureLoopback(u *url.URL) *url.URL {
	if u.Scheme != "http" || !isLoopback(u.Hostname()) {
		return u
	}
	c := *u
	c.Scheme = "https"
	return &c
}

func isLoopback(host string) bool {
	if strings.EqualFold(host, "localhost") || strings.HasSuffix(strings.ToLower(host), ".localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
