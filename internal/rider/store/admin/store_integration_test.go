//go:build integration

package admin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"pharmafinder/internal/rider/store/admin"
	"pharmafinder/pkg/testutil/containers"
)

type registry interface {
	IsAdmin(ctx context.Context, uid string) (bool, error)
	Add(ctx context.Context, uid string) error
	Seed(ctx context.Context, uids []string) error
}

// registryContract runs the same membership checks against any backend.
type registryContract struct {
	suite.Suite
	store registry
	reset func()
}

func (s *registryContract) SetupTest() {
	s.reset()
}

func (s *registryContract) TestMembership() {
	ctx := context.Background()

	ok, err := s.store.IsAdmin(ctx, "admin-1")
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.store.Add(ctx, "admin-1"))
	s.Require().NoError(s.store.Add(ctx, "admin-1"))
	ok, err = s.store.IsAdmin(ctx, "admin-1")
	s.Require().NoError(err)
	s.True(ok)
}

func (s *registryContract) TestSeed() {
	ctx := context.Background()
	s.Require().NoError(s.store.Seed(ctx, []string{"a", "", "b", "a"}))

	for _, uid := range []string{"a", "b"} {
		ok, err := s.store.IsAdmin(ctx, uid)
		s.Require().NoError(err)
		s.True(ok, uid)
	}
	ok, err := s.store.IsAdmin(ctx, "")
	s.Require().NoError(err)
	s.False(ok)
}

func TestPostgresRegistry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.GetManager().GetPostgres(t)
	suite.Run(t, &registryContract{
		store: admin.NewPostgres(pg.DB),
		reset: func() {
			if err := pg.TruncateTables(context.Background(), "admins"); err != nil {
				t.Fatalf("truncate admins: %v", err)
			}
		},
	})
}

func TestRedisRegistry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)
	suite.Run(t, &registryContract{
		store: admin.NewRedis(rc.Client, admin.WithRedisKey(rc.Key("registry", admin.RedisSetName))),
		reset: func() {
			if err := rc.DeleteSuiteKeys(context.Background(), "registry"); err != nil {
				t.Fatalf("reset registry keys: %v", err)
			}
		},
	})
}
