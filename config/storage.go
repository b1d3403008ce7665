package config

import (
	"fmt"
	"strings"
)

// StorageBackend selects where the session is persisted.
type StorageBackend string

const (
	// StorageBolt keeps the session in a local bbolt file. The default:
	// no external services needed.
	StorageBolt StorageBackend = "bolt"
	// StorageRedis keeps the session in Redis, shared across processes.
	StorageRedis StorageBackend = "redis"
	// StorageMemory keeps the session in process memory only.
	StorageMemory StorageBackend = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageBackend.
func (b *StorageBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "bolt", "redis", "memory":
		*b = StorageBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageBackend: %q (valid options: bolt, redis, memory)", v)
	}
}

// RedisConfig contains Redis connection configuration.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"       envDefault:"0"`
	// Key is the hash key holding the session.
	Key string `env:"KEY" envDefault:"eduhub:session"`
}

// StorageConfig groups session persistence configuration.
type StorageConfig struct {
	// Backend selects the session store implementation.
	Backend StorageBackend `env:"BACKEND" envDefault:"bolt"`

	// BoltPath is the session database file (used when Backend=bolt).
	BoltPath string `env:"BOLT_PATH" envDefault:"eduhub-session.db"`

	// Redis configuration (used when Backend=redis).
	Redis RedisConfig `envPrefix:"REDIS_"`
}

// Sanitize applies guardrails to values loaded from env.
func (c *StorageConfig) Sanitize() {
	if c.Backend == "" {
		c.Backend = StorageBolt
	}
	if c.BoltPath == "" {
		c.BoltPath = "eduhub-session.db"
	}
	if c.Redis.Key == "" {
		c.Redis.Key = "eduhub:session"
	}
}
