package config

import (
	"flag"
	"io"
	"time"

	"github.com/yukta/symposium/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-g string   gRPC health bind address, "" to disable
//	-k string   database driver: sqlite | postgres
//	-d string   database DSN
//	-s string   session token HMAC secret
//	-t int      session TTL, minutes
//	-b int      bcrypt cost
//	-r string   registration policy: allow | reject | ignore
//	-e string   event catalog source (file path or s3://bucket/key)
//
// Arguments that belong to other parsers (such as -c) are filtered out with
// flagx.FilterArgs before parsing.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run the HTTP API")
	fs.StringVar(&config.GRPCHealthAddr, "g", config.GRPCHealthAddr, "address and port for the gRPC health service")
	fs.StringVar(&config.DatabaseDriver, "k", config.DatabaseDriver, "database driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionTTL := fs.Int("t", int(config.SessionTTL.Minutes()), "session_ttl (in minutes)")

	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.RegistrationPolicy, "r", config.RegistrationPolicy, "duplicate registration policy")
	fs.StringVar(&config.CatalogSource, "e", config.CatalogSource, "event catalog source")

	if err := fs.Parse(flagx.FilterArgs(args, flagx.FlagNames(fs))); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
		}
	})

	return nil
}
