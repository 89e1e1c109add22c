package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "memory", cfg.Riders.AdminBackend)
	assert.False(t, cfg.Riders.OrphanCleanup)
	assert.Equal(t, "pharmafinder.audit", cfg.Kafka.AuditTopic)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Minute, cfg.Postgres.ConnMaxLifetime)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, int32(3), cfg.Kafka.TopicPartitions)
	assert.Equal(t, int16(1), cfg.Kafka.ReplicationFactor)
	assert.Equal(t, "pharmafinder:", cfg.Redis.KeyPrefix)
	assert.Equal(t, 10*time.Second, cfg.Kafka.DeliveryTimeout)
	assert.Equal(t, 5*time.Second, cfg.Kafka.AppendTimeout)
	assert.Empty(t, cfg.OpsAdminToken)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PHARMAFINDER_ADDR", ":9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("RIDER_ORPHAN_CLEANUP", "true")
	t.Setenv("ADMIN_REGISTRY", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Riders.OrphanCleanup)
	assert.Equal(t, "redis", cfg.Riders.AdminBackend)
}

func TestFromEnvRejectsInvalidAdminBackend(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("ADMIN_REGISTRY", "firestore")
		_, err := FromEnv()
		require.Error(t, err)
	})

	t.Run("postgres without database url", func(t *testing.T) {
		t.Setenv("ADMIN_REGISTRY", "postgres")
		t.Setenv("DATABASE_URL", "")
		_, err := FromEnv()
		require.Error(t, err)
	})

	t.Run("redis without redis url", func(t *testing.T) {
		t.Setenv("ADMIN_REGISTRY", "redis")
		t.Setenv("REDIS_URL", "")
		_, err := FromEnv()
		require.Error(t, err)
	})
}
