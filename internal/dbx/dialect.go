package dbx

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Dialect names a supported SQL backend.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect maps a configured driver name onto a Dialect.
// "pgx" and "postgresql" are accepted as aliases for Postgres, "sqlite3" for SQLite.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", s)
	}
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

// GooseDialect is the dialect name understood by goose.SetDialect.
func (d Dialect) GooseDialect() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite3"
}

// Rebind rewrites '?' placeholders into the dialect's bind syntax.
// Queries passed here must not contain literal question marks.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SerializableTx returns the transaction options that make a read-then-write
// sequence atomic. SQLite write transactions are already serialized, so the
// driver default is used there.
func (d Dialect) SerializableTx() *sql.TxOptions {
	if d == Postgres {
		return &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	return nil
}
