package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yukta/symposium/internal/flagx"
	"github.com/yukta/symposium/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Files ending in
// .yaml or .yml are decoded as YAML, anything else as JSON. Durations accept
// both strings such as "24h" and integer nanoseconds.
//
// Keys missing from the file keep whatever value the Config already had.
type FileConfig struct {
	HTTPAddr            string         `json:"http_addr" yaml:"http_addr"`
	TLSCertFile         string         `json:"tls_cert_file" yaml:"tls_cert_file"`
	TLSKeyFile          string         `json:"tls_key_file" yaml:"tls_key_file"`
	GRPCHealthAddr      string         `json:"grpc_health_addr" yaml:"grpc_health_addr"`
	DatabaseDriver      string         `json:"database_driver" yaml:"database_driver"`
	DatabaseDSN         string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey           string         `json:"secret_key" yaml:"secret_key"`
	SessionTTL          timex.Duration `json:"session_ttl" yaml:"session_ttl"`
	BcryptCost          int            `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	RegistrationPolicy  string         `json:"registration_policy" yaml:"registration_policy"`
	CookieName          string         `json:"cookie_name" yaml:"cookie_name"`
	CookieSecure        bool           `json:"cookie_secure" yaml:"cookie_secure"`
	CookieSameSite      string         `json:"cookie_samesite" yaml:"cookie_samesite"`
	CookieDomain        string         `json:"cookie_domain" yaml:"cookie_domain"`
	CORSOrigins         []string       `json:"cors_origins" yaml:"cors_origins"`
	CatalogSource       string         `json:"catalog_source" yaml:"catalog_source"`
	S3RootUser          string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword      string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Region            string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint      string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
	LogFormat           string         `json:"log_format" yaml:"log_format"`
	ShutdownTimeout     timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	HealthCheckInterval timex.Duration `json:"health_check_interval" yaml:"health_check_interval"`
}

// parseFile overlays values from the file named by -c or -config.
// Without either flag nothing is loaded.
func parseFile(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fc := fromConfig(config)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	fc.apply(config)
	return nil
}

func fromConfig(c *Config) *FileConfig {
	return &FileConfig{
		HTTPAddr:            c.HTTPAddr,
		TLSCertFile:         c.TLSCertFile,
		TLSKeyFile:          c.TLSKeyFile,
		GRPCHealthAddr:      c.GRPCHealthAddr,
		DatabaseDriver:      c.DatabaseDriver,
		DatabaseDSN:         c.DatabaseDSN,
		SecretKey:           c.SecretKey,
		SessionTTL:          timex.Duration{Duration: c.SessionTTL},
		BcryptCost:          c.BcryptCost,
		RegistrationPolicy:  c.RegistrationPolicy,
		CookieName:          c.CookieName,
		CookieSecure:        c.CookieSecure,
		CookieSameSite:      c.CookieSameSite,
		CookieDomain:        c.CookieDomain,
		CORSOrigins:         c.CORSOrigins,
		CatalogSource:       c.CatalogSource,
		S3RootUser:          c.S3RootUser,
		S3RootPassword:      c.S3RootPassword,
		S3Region:            c.S3Region,
		S3BaseEndpoint:      c.S3BaseEndpoint,
		LogLevel:            c.LogLevel,
		LogFormat:           c.LogFormat,
		ShutdownTimeout:     timex.Duration{Duration: c.ShutdownTimeout},
		HealthCheckInterval: timex.Duration{Duration: c.HealthCheckInterval},
	}
}

func (fc *FileConfig) apply(c *Config) {
	c.HTTPAddr = fc.HTTPAddr
	c.TLSCertFile = fc.TLSCertFile
	c.TLSKeyFile = fc.TLSKeyFile
	c.GRPCHealthAddr = fc.GRPCHealthAddr
	c.DatabaseDriver = fc.DatabaseDriver
	c.DatabaseDSN = fc.DatabaseDSN
	c.SecretKey = fc.SecretKey
	c.SessionTTL = fc.SessionTTL.Duration
	c.BcryptCost = fc.BcryptCost
	c.RegistrationPolicy = fc.RegistrationPolicy
	c.CookieName = fc.CookieName
	c.CookieSecure = fc.CookieSecure
	c.CookieSameSite = fc.CookieSameSite
	c.CookieDomain = fc.CookieDomain
	c.CORSOrigins = fc.CORSOrigins
	c.CatalogSource = fc.CatalogSource
	c.S3RootUser = fc.S3RootUser
	c.S3RootPassword = fc.S3RootPassword
	c.S3Region = fc.S3Region
	c.S3BaseEndpoint = fc.S3BaseEndpoint
	c.LogLevel = fc.LogLevel
	c.LogFormat = fc.LogFormat
	c.ShutdownTimeout = fc.ShutdownTimeout.Duration
	c.HealthCheckInterval = fc.HealthCheckInterval.Duration
}
