package model

// Long-term memory: completed analyses in PostgreSQL

// DatabaseConfig holds the relational store connection
type DatabaseConfig struct {
	URL          string `envconfig:"DATABASE_URL" required:"true" yaml:"-"`
	MaxOpenConns int    `envconfig:"DATABASE_MAX_OPEN_CONNS" default:"10" yaml:"max_open_conns"`
	MaxIdleConns int    `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5" yaml:"max_idle_conns"`
}
