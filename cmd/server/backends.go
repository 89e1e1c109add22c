package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	httpapi "pharmafinder/internal/http"
	idservice "pharmafinder/internal/identity/service"
	"pharmafinder/internal/identity/store/account"
	"pharmafinder/internal/platform/config"
	"pharmafinder/internal/platform/postgres"
	"pharmafinder/internal/platform/redis"
	riderservice "pharmafinder/internal/rider/service"
	"pharmafinder/internal/rider/store/admin"
	"pharmafinder/internal/rider/store/profile"
	"pharmafinder/pkg/platform/audit"
	"pharmafinder/pkg/platform/audit/publishers/kafka"
	auditmemory "pharmafinder/pkg/platform/audit/store/memory"
	auditpostgres "pharmafinder/pkg/platform/audit/store/postgres"
)

type profileStore interface {
	riderservice.ProfileStore
	riderservice.Counter
}

type adminRegistry interface {
	riderservice.AdminRegistry
	admin.Seeder
}

// backends holds the stores chosen from config. PostgreSQL backs accounts,
// profiles and audit when DATABASE_URL is set; otherwise they live in memory.
type backends struct {
	db    *sql.DB
	redis *redis.Client
	kafka *kafka.Sink

	accounts   idservice.AccountStore
	profiles   profileStore
	admins     adminRegistry
	auditStore audit.Store
}

func openBackends(ctx context.Context, cfg config.Server, log *slog.Logger) (*backends, error) {
	b := &backends{}
	if err := b.open(ctx, cfg, log); err != nil {
		b.close(log)
		return nil, err
	}
	return b, nil
}

func (b *backends) open(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	var err error

	if b.db, err = postgres.Open(ctx, cfg.Postgres); err != nil {
		return err
	}
	if b.db != nil {
		if err = postgres.Migrate(ctx, b.db); err != nil {
			return err
		}
		b.accounts = account.NewPostgres(b.db)
		b.profiles = profile.NewPostgres(b.db)
		log.Info("using postgres stores")
	} else {
		b.accounts = account.NewInMemory()
		b.profiles = profile.NewInMemory()
		log.Warn("DATABASE_URL not set; accounts and profiles are kept in memory")
	}

	if b.redis, err = redis.New(ctx, cfg.Redis); err != nil {
		return err
	}

	switch cfg.Riders.AdminBackend {
	case "postgres":
		b.admins = admin.NewPostgres(b.db)
	case "redis":
		b.admins = admin.NewRedis(b.redis.Client, admin.WithRedisKey(b.redis.Key(admin.RedisSetName)))
	default:
		b.admins = admin.NewInMemory()
	}
	n, err := admin.SeedFromFile(ctx, b.admins, cfg.Riders.AdminSeedFile)
	if err != nil {
		return fmt.Errorf("seed admins: %w", err)
	}
	if n > 0 {
		log.Info("seeded admin registry", "count", n, "backend", cfg.Riders.AdminBackend)
	}

	var sinks []audit.Store
	if b.db != nil {
		sinks = append(sinks, auditpostgres.New(b.db))
	}
	if len(cfg.Kafka.Brokers) > 0 {
		if b.kafka, err = kafka.New(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic,
			kgo.RecordDeliveryTimeout(cfg.Kafka.DeliveryTimeout),
		); err != nil {
			return err
		}
		if err = b.kafka.EnsureTopic(ctx, cfg.Kafka.TopicPartitions, cfg.Kafka.ReplicationFactor); err != nil {
			return err
		}
		sinks = append(sinks, b.kafka)
	}
	if len(sinks) == 0 {
		sinks = append(sinks, auditmemory.NewInMemoryStore())
	}
	b.auditStore = audit.Fanout(sinks...)
	return nil
}

func (b *backends) healthChecks() map[string]httpapi.HealthCheck {
	checks := map[string]httpapi.HealthCheck{}
	if b.db != nil {
		checks["postgres"] = b.db.PingContext
	}
	if b.redis != nil {
		checks["redis"] = b.redis.Health
	}
	if b.kafka != nil {
		checks["kafka"] = b.kafka.Ping
	}
	return checks
}

func (b *backends) close(log *slog.Logger) {
	if b.kafka != nil {
		b.kafka.Close()
	}
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			log.Warn("redis close", "error", err)
		}
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			log.Warn("postgres close", "error", err)
		}
	}
}
