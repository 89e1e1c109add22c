package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures process level configuration.
type Server struct {
	Addr            string        `env:"PHARMAFINDER_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// OpsAdminToken guards /ops; empty disables every ops route.
	OpsAdminToken string `env:"OPS_ADMIN_TOKEN"`

	JWT      JWTConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Riders   RiderConfig
}

// JWTConfig validates caller bearer tokens.
type JWTConfig struct {
	SigningKey string `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	Issuer     string `env:"JWT_ISSUER" envDefault:"pharmafinder"`
	Audience   string `env:"JWT_AUDIENCE" envDefault:"pharmafinder-rider"`
}

// PostgresConfig is optional; an empty URL keeps every store in memory.
type PostgresConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DATABASE_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// RedisConfig is optional; an empty URL disables the Redis admin registry.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	// KeyPrefix namespaces every key this service writes.
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"pharmafinder:"`
}

// KafkaConfig is optional; no brokers means audit events stay in-process.
type KafkaConfig struct {
	Brokers           []string `env:"KAFKA_BROKERS" envSeparator:","`
	AuditTopic        string   `env:"KAFKA_AUDIT_TOPIC" envDefault:"pharmafinder.audit"`
	TopicPartitions   int32    `env:"KAFKA_AUDIT_PARTITIONS" envDefault:"3"`
	ReplicationFactor int16    `env:"KAFKA_AUDIT_REPLICATION" envDefault:"1"`
	AuditBuffer       int      `env:"AUDIT_BUFFER" envDefault:"256"`
	// DeliveryTimeout bounds how long one audit record may wait for a broker.
	DeliveryTimeout time.Duration `env:"KAFKA_DELIVERY_TIMEOUT" envDefault:"10s"`
	// AppendTimeout bounds each audit append made by the publisher.
	AppendTimeout time.Duration `env:"AUDIT_APPEND_TIMEOUT" envDefault:"5s"`
}

// RiderConfig controls rider provisioning behavior.
type RiderConfig struct {
	// AdminBackend selects the admin registry: memory, postgres or redis.
	AdminBackend  string `env:"ADMIN_REGISTRY" envDefault:"memory"`
	AdminSeedFile string `env:"ADMIN_SEED_FILE"`
	OrphanCleanup bool   `env:"RIDER_ORPHAN_CLEANUP" envDefault:"false"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.Riders.AdminBackend {
	case "memory", "postgres", "redis":
	default:
		return Server{}, fmt.Errorf("unknown ADMIN_REGISTRY %q", cfg.Riders.AdminBackend)
	}
	if cfg.Riders.AdminBackend == "postgres" && cfg.Postgres.URL == "" {
		return Server{}, fmt.Errorf("ADMIN_REGISTRY=postgres requires DATABASE_URL")
	}
	if cfg.Riders.AdminBackend == "redis" && cfg.Redis.URL == "" {
		return Server{}, fmt.Errorf("ADMIN_REGISTRY=redis requires REDIS_URL")
	}
	return cfg, nil
}
