package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	idservice "pharmafinder/internal/identity/service"
	"pharmafinder/internal/identity/store/account"
	jwttoken "pharmafinder/internal/jwt_token"
	"pharmafinder/internal/platform/metrics"
	riderhandler "pharmafinder/internal/rider/handler"
	"pharmafinder/internal/rider/models"
	riderservice "pharmafinder/internal/rider/service"
	"pharmafinder/internal/rider/store/admin"
	"pharmafinder/internal/rider/store/profile"
	"pharmafinder/pkg/testutil"
)

type routerFixture struct {
	router   http.Handler
	jwt      *jwttoken.JWTService
	admins   *admin.InMemory
	accounts *account.InMemory
}

func newRouterFixture(t *testing.T, checks map[string]HealthCheck) *routerFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	f := &routerFixture{
		jwt:      jwttoken.NewJWTService("test-key", "pharmafinder", "pharmafinder-rider"),
		admins:   admin.NewInMemory("admin-1"),
		accounts: account.NewInMemory(),
	}
	identity := idservice.New(f.accounts, idservice.WithBcryptCost(bcrypt.MinCost))
	profiles := profile.NewInMemory()
	svc, err := riderservice.New(f.admins, identity, profiles,
		riderservice.WithLogger(logger),
		riderservice.WithMetrics(m),
		riderservice.WithInventory(identity, profiles),
	)
	require.NoError(t, err)

	f.router = NewRouter(Deps{
		Riders:        riderhandler.New(svc, logger),
		Validator:     jwttoken.NewJWTServiceAdapter(f.jwt),
		Logger:        logger,
		Metrics:       m,
		Gatherer:      reg,
		OpsAdminToken: "ops-secret",
		Checks:        checks,
	})
	return f
}

func (f *routerFixture) bearer(t *testing.T, req *http.Request, uid string) *http.Request {
	t.Helper()
	token, err := f.jwt.GenerateCallerToken(uid, time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

var riderPayload = map[string]string{"email": "a@b.com", "password": "secret1", "name": "Rider One"}

func TestCreateRiderEndToEnd(t *testing.T) {
	f := newRouterFixture(t, nil)

	t.Run("admin creates rider", func(t *testing.T) {
		req := f.bearer(t, testutil.NewCallableRequest(t, "/createRider", riderPayload), "admin-1")
		rr := testutil.DoRequest(f.router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
		body := testutil.UnmarshalResponse[struct {
			Result models.CreateRiderResult `json:"result"`
		}](t, rr)
		assert.Equal(t, "Successfully created rider Rider One (a@b.com).", body.Result.Message)
	})

	t.Run("created rider is readable by admin", func(t *testing.T) {
		acc, err := f.accounts.FindByEmail(context.Background(), "a@b.com")
		require.NoError(t, err)

		req := f.bearer(t, testutil.NewJSONRequest(t, http.MethodGet, "/riders/"+acc.UID, nil), "admin-1")
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
	})

	t.Run("duplicate email is internal with detail", func(t *testing.T) {
		req := f.bearer(t, testutil.NewCallableRequest(t, "/createRider", riderPayload), "admin-1")
		rr := testutil.DoRequest(f.router, req)

		body := testutil.AssertCallableError(t, rr, http.StatusInternalServerError, riderhandler.StatusInternal)
		assert.Equal(t, idservice.ErrEmailExists.Error(), body.Error.Details)
	})

	t.Run("missing token is unauthenticated", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewCallableRequest(t, "/createRider", riderPayload))
		testutil.AssertCallableError(t, rr, http.StatusUnauthorized, riderhandler.StatusUnauthenticated)
	})

	t.Run("invalid token is unauthenticated", func(t *testing.T) {
		req := testutil.NewCallableRequest(t, "/createRider", riderPayload)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertCallableError(t, rr, http.StatusUnauthorized, riderhandler.StatusUnauthenticated)
	})

	t.Run("non-admin is denied", func(t *testing.T) {
		req := f.bearer(t, testutil.NewCallableRequest(t, "/createRider", riderPayload), "user-9")
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertCallableError(t, rr, http.StatusForbidden, riderhandler.StatusPermissionDenied)
	})

	t.Run("incomplete payload is invalid", func(t *testing.T) {
		req := f.bearer(t, testutil.NewCallableRequest(t, "/createRider", map[string]string{"email": "x@y.com"}), "admin-1")
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertCallableError(t, rr, http.StatusBadRequest, riderhandler.StatusInvalidArgument)
	})
}

func TestOpsRoutes(t *testing.T) {
	f := newRouterFixture(t, nil)

	t.Run("rejects missing token", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/ops/admins", map[string]string{"uid": "u-2"}))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("grants admin with token", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/ops/admins", map[string]string{"uid": "u-2"})
		req.Header.Set("X-Admin-Token", "ops-secret")
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusNoContent)

		ok, err := f.admins.IsAdmin(context.Background(), "u-2")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("inventory counts provisioned riders", func(t *testing.T) {
		create := f.bearer(t, testutil.NewCallableRequest(t, "/createRider", riderPayload), "admin-1")
		testutil.AssertStatus(t, testutil.DoRequest(f.router, create), http.StatusOK)

		req := testutil.NewJSONRequest(t, http.MethodGet, "/ops/inventory", nil)
		req.Header.Set("X-Admin-Token", "ops-secret")
		rr := testutil.DoRequest(f.router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		inv := testutil.UnmarshalResponse[models.Inventory](t, rr)
		assert.Equal(t, models.Inventory{Accounts: 1, Riders: 1}, *inv)
	})
}

func TestHealthAndMetrics(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		f := newRouterFixture(t, map[string]HealthCheck{
			"postgres": func(context.Context) error { return nil },
		})
		rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodGet, "/healthz", nil))
		testutil.AssertStatus(t, rr, http.StatusOK)
	})

	t.Run("degraded", func(t *testing.T) {
		f := newRouterFixture(t, map[string]HealthCheck{
			"redis": func(context.Context) error { return errors.New("connection refused") },
		})
		rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodGet, "/healthz", nil))
		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
		assert.Contains(t, rr.Body.String(), "connection refused")
	})

	t.Run("metrics exposes rider counters", func(t *testing.T) {
		f := newRouterFixture(t, nil)
		_ = testutil.DoRequest(f.router, f.bearer(t, testutil.NewCallableRequest(t, "/createRider", riderPayload), "admin-1"))

		rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodGet, "/metrics", nil))
		testutil.AssertStatus(t, rr, http.StatusOK)
		assert.Contains(t, rr.Body.String(), "pharmafinder_riders_created_total 1")
	})
}

type panickingRegistry struct{}

func (panickingRegistry) IsAdmin(context.Context, string) (bool, error) { panic("registry exploded") }
func (panickingRegistry) Add(context.Context, string) error            { panic("registry exploded") }

func TestCreateRiderPanicUsesCallableEnvelope(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)
	jwt := jwttoken.NewJWTService("test-key", "pharmafinder", "pharmafinder-rider")
	identity := idservice.New(account.NewInMemory(), idservice.WithBcryptCost(bcrypt.MinCost))
	svc, err := riderservice.New(panickingRegistry{}, identity, profile.NewInMemory(), riderservice.WithLogger(logger))
	require.NoError(t, err)

	router := NewRouter(Deps{
		Riders:        riderhandler.New(svc, logger),
		Validator:     jwttoken.NewJWTServiceAdapter(jwt),
		Logger:        logger,
		Metrics:       m,
		Gatherer:      reg,
		OpsAdminToken: "ops-secret",
	})
	token, err := jwt.GenerateCallerToken("admin-1", time.Hour)
	require.NoError(t, err)

	t.Run("callable route keeps its envelope", func(t *testing.T) {
		req := testutil.NewCallableRequest(t, "/createRider", riderPayload)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := testutil.DoRequest(router, req)

		body := testutil.AssertCallableError(t, rr, http.StatusInternalServerError, riderhandler.StatusInternal)
		assert.Equal(t, "internal", body.Error.Message)
		assert.Empty(t, body.Error.Details)
	})

	t.Run("ops route keeps the plain error body", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/ops/admins", map[string]string{"uid": "admin-2"})
		req.Header.Set("X-Admin-Token", "ops-secret")
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusInternalServerError)
		testutil.AssertErrorCode(t, rr, "internal_error")
	})
}
