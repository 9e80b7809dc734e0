// Package config handles configuration for the server component,
// including defaults, a JSON or YAML file overlay, environment variables
// (optionally from a .env file) and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yukta/symposium/internal/common"
	"github.com/yukta/symposium/internal/dbx"
	"github.com/yukta/symposium/internal/server/models"
	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the symposium server.
//
// Fields:
//   - HTTPAddr: bind address for the JSON API.
//   - TLSCertFile / TLSKeyFile: PEM files; when both are set the API is served over HTTPS.
//   - GRPCHealthAddr: bind address for the gRPC health service; empty disables it.
//   - DatabaseDriver / DatabaseDSN: "sqlite" or "postgres" and its DSN.
//   - SecretKey: HMAC secret for signing session tokens (HS256). Required.
//   - SessionTTL: session token and cookie lifetime. Required.
//   - CatalogSource: "" for the built-in events, a file path, or s3://bucket/key.
//   - S3*: credentials and endpoint used when CatalogSource is an S3 URL.
type Config struct {
	HTTPAddr            string
	TLSCertFile         string
	TLSKeyFile          string
	GRPCHealthAddr      string
	DatabaseDriver      string
	DatabaseDSN         string
	SecretKey           string
	SessionTTL          time.Duration
	BcryptCost          int
	RegistrationPolicy  string
	CookieName          string
	CookieSecure        bool
	CookieSameSite      string
	CookieDomain        string
	CORSOrigins         []string
	CatalogSource       string
	S3RootUser          string
	S3RootPassword      string
	S3Region            string
	S3BaseEndpoint      string
	LogLevel            string
	LogFormat           string
	ShutdownTimeout     time.Duration
	HealthCheckInterval time.Duration
}

// LoadDefaults populates Config with development defaults. SecretKey and
// SessionTTL are left unset on purpose: the server refuses to start until
// they are configured.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":3000"
	c.GRPCHealthAddr = ":50051"
	c.DatabaseDriver = string(dbx.SQLite)
	c.DatabaseDSN = "file:yukta.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	c.BcryptCost = bcrypt.DefaultCost
	c.RegistrationPolicy = string(models.PolicyIgnore)
	c.CookieName = common.SessionCookieName
	c.CookieSecure = true
	c.CookieSameSite = "none"
	c.S3Region = "us-east-1"
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.ShutdownTimeout = 10 * time.Second
	c.HealthCheckInterval = 15 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file, the environment and finally command-line
// flags. The result is validated before it is returned.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every setting that would keep the server from working
// correctly.
func (c *Config) Validate() error {
	var errs []error

	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is not set (JWT_SECRET or -s)"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("session ttl must be positive (SESSION_TTL or -t)"))
	}
	if _, err := dbx.ParseDialect(c.DatabaseDriver); err != nil {
		errs = append(errs, err)
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database dsn is not set"))
	}
	if _, err := models.ParseRegistrationPolicy(c.RegistrationPolicy); err != nil {
		errs = append(errs, err)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.CookieName == "" {
		errs = append(errs, errors.New("cookie name is empty"))
	}
	switch strings.ToLower(c.CookieSameSite) {
	case "none":
		// browsers drop SameSite=None cookies without Secure
		if !c.CookieSecure {
			errs = append(errs, errors.New("cookie samesite none requires a secure cookie"))
		}
	case "lax", "strict", "default":
	default:
		errs = append(errs, fmt.Errorf("unknown cookie samesite %q", c.CookieSameSite))
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		errs = append(errs, errors.New("tls cert file and key file must be set together"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown timeout must be positive"))
	}
	if c.GRPCHealthAddr != "" && c.HealthCheckInterval <= 0 {
		errs = append(errs, errors.New("health check interval must be positive"))
	}

	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}
