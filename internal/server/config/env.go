package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the process environment. When dotenv names an
// existing file it is loaded first; variables already present in the
// environment win over the file.
//
// Recognised variables:
//
//	HTTP_ADDR, PORT, TLS_CERT_FILE, TLS_KEY_FILE, GRPC_HEALTH_ADDR, DATABASE_DRIVER, DATABASE_DSN
//	(or DATABASE_URL), JWT_SECRET, SESSION_TTL, BCRYPT_COST,
//	REGISTRATION_POLICY, COOKIE_NAME, COOKIE_SECURE, COOKIE_SAMESITE,
//	COOKIE_DOMAIN, CORS_ORIGINS, CATALOG_SOURCE, S3_ROOT_USER,
//	S3_ROOT_PASSWORD, S3_REGION, S3_BASE_ENDPOINT, LOG_LEVEL, LOG_FORMAT.
func parseEnv(config *Config, dotenv string) error {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	if v, ok := lookupEnv("PORT"); ok && v != "" {
		config.HTTPAddr = ":" + v
	}
	setString(&config.HTTPAddr, "HTTP_ADDR")
	setString(&config.TLSCertFile, "TLS_CERT_FILE")
	setString(&config.TLSKeyFile, "TLS_KEY_FILE")
	setString(&config.GRPCHealthAddr, "GRPC_HEALTH_ADDR")
	setString(&config.DatabaseDriver, "DATABASE_DRIVER")
	setString(&config.DatabaseDSN, "DATABASE_URL")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.SecretKey, "JWT_SECRET")
	setString(&config.RegistrationPolicy, "REGISTRATION_POLICY")
	setString(&config.CookieName, "COOKIE_NAME")
	setString(&config.CookieSameSite, "COOKIE_SAMESITE")
	setString(&config.CookieDomain, "COOKIE_DOMAIN")
	setString(&config.CatalogSource, "CATALOG_SOURCE")
	setString(&config.S3RootUser, "S3_ROOT_USER")
	setString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	setString(&config.LogLevel, "LOG_LEVEL")
	setString(&config.LogFormat, "LOG_FORMAT")

	if v, ok := lookupEnv("CORS_ORIGINS"); ok {
		config.CORSOrigins = splitList(v)
	}

	if v, ok := lookupEnv("SESSION_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_TTL: %w", err)
		}
		config.SessionTTL = d
	}
	if v, ok := lookupEnv("BCRYPT_COST"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BCRYPT_COST: %w", err)
		}
		config.BcryptCost = n
	}
	if v, ok := lookupEnv("COOKIE_SECURE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("COOKIE_SECURE: %w", err)
		}
		config.CookieSecure = b
	}

	return nil
}

// setString overwrites dst only when key is set to a non-empty value.
func setString(dst *string, key string) {
	if v, ok := lookupEnv(key); ok && v != "" {
		*dst = v
	}
}
