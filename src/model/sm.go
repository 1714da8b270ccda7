package model

import "time"

// Short-term memory: workflow sessions
//
// session:{session_id} // JSON snapshot (step pointer, fields, pending message)

// Session backends
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// SessionConfig holds session store configuration.
// A zero TTL keeps sessions for the lifetime of the backend.
type SessionConfig struct {
	Backend string        `envconfig:"SESSION_BACKEND" default:"memory" yaml:"backend"`
	TTL     time.Duration `envconfig:"SESSION_TTL" default:"0s" yaml:"ttl"`
}

// RedisConfig holds the Redis connection used by the redis session backend
type RedisConfig struct {
	URL string `envconfig:"REDIS_URL" yaml:"-"`
}
