package postgres

import "time"

// Config holds PostgreSQL connection and behavior settings.
type Config struct {
	// DSN is the PostgreSQL connection string
	// (e.g., "postgres://precis:secret@db:5432/precis?sslmode=require").
	DSN string

	// MaxConns caps the connection pool size (default: 25). Summarize
	// requests hold a connection only around the two short queries, not
	// for the duration of the provider call.
	MaxConns int32

	// MinConns is the number of idle connections kept warm (default: 5).
	MinConns int32

	// MaxConnLifetime bounds how long a connection is reused before being
	// replaced (default: 5 minutes).
	MaxConnLifetime time.Duration

	// MigrateOnStart applies pending schema migrations during New.
	MigrateOnStart bool
}

// defaults fills unset fields in place.
func (c *Config) defaults() {
	if c.MaxConns == 0 {
		c.MaxConns = 25
	}
	if c.MinConns == 0 {
		c.MinConns = 5
	}
	if c.MaxConnLifetime == 0 {
		c.MaxConnLifetime = 5 * time.Minute
	}
}
