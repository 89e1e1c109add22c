package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"pharmafinder/internal/rider/handler/mocks"
	"pharmafinder/internal/rider/models"
	dErrors "pharmafinder/pkg/domain-errors"
	"pharmafinder/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	h.Register(s.router)
	s.router.Route("/ops", h.RegisterOps)
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) TestCreateRiderSuccess() {
	want := models.CreateRiderRequest{Email: "a@b.com", Password: "secret1", Name: "Rider One"}
	s.service.EXPECT().CreateRider(gomock.Any(), models.Caller{UID: "admin-1"}, want).
		Return(models.NewCreateRiderResult("Rider One", "a@b.com"), nil)

	req := testutil.WithCaller(testutil.NewCallableRequest(s.T(), "/createRider", want), "admin-1")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	body := testutil.UnmarshalResponse[struct {
		Result models.CreateRiderResult `json:"result"`
	}](s.T(), rr)
	s.Equal("Successfully created rider Rider One (a@b.com).", body.Result.Message)
}

func (s *HandlerSuite) TestCreateRiderPassesAnonymousCaller() {
	s.service.EXPECT().CreateRider(gomock.Any(), models.Caller{}, models.CreateRiderRequest{}).
		Return(nil, dErrors.New(dErrors.CodeUnauthenticated, "The function must be called while authenticated."))

	rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/createRider", `{"data":{}}`))

	body := testutil.AssertCallableError(s.T(), rr, http.StatusUnauthorized, StatusUnauthenticated)
	s.Equal("The function must be called while authenticated.", body.Error.Message)
	s.Empty(body.Error.Details)
}

func (s *HandlerSuite) TestCreateRiderMissingData() {
	s.service.EXPECT().CreateRider(gomock.Any(), gomock.Any(), models.CreateRiderRequest{}).
		Return(nil, dErrors.New(dErrors.CodeInvalidArgument, "The function must be called with email, password, and name."))

	req := testutil.WithCaller(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/createRider", `{}`), "admin-1")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertCallableError(s.T(), rr, http.StatusBadRequest, StatusInvalidArgument)
}

func (s *HandlerSuite) TestCreateRiderMalformedBody() {
	for _, raw := range []string{"", "not json", `{"data": "string"}`} {
		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/createRider", raw))
		testutil.AssertCallableError(s.T(), rr, http.StatusBadRequest, StatusInvalidArgument)
	}
}

func (s *HandlerSuite) TestCreateRiderErrorMapping() {
	cases := []struct {
		err        error
		httpStatus int
		status     string
		details    string
	}{
		{dErrors.New(dErrors.CodePermissionDenied, "You must be an admin to perform this action."), http.StatusForbidden, StatusPermissionDenied, ""},
		{dErrors.Wrap(errors.New("The email address is already in use by another account."), dErrors.CodeInternal, "Failed to create rider account."),
			http.StatusInternalServerError, StatusInternal, "The email address is already in use by another account."},
		{errors.New("raw failure"), http.StatusInternalServerError, StatusInternal, ""},
	}
	for _, tc := range cases {
		s.service.EXPECT().CreateRider(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

		req := testutil.WithCaller(testutil.NewCallableRequest(s.T(), "/createRider", map[string]string{"email": "a@b.com"}), "u")
		rr := testutil.DoRequest(s.router, req)

		body := testutil.AssertCallableError(s.T(), rr, tc.httpStatus, tc.status)
		s.Equal(tc.details, body.Error.Details)
	}
}

func (s *HandlerSuite) TestGetRider() {
	created := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	s.service.EXPECT().GetRider(gomock.Any(), models.Caller{UID: "admin-1"}, "rider-uid").
		Return(&models.RiderProfile{UID: "rider-uid", Name: "R", Email: "a@b.com", CreatedAt: created}, nil)
	s.service.EXPECT().GetRider(gomock.Any(), models.Caller{UID: "admin-1"}, "missing").
		Return(nil, dErrors.New(dErrors.CodeNotFound, "rider not found"))

	rr := testutil.DoRequest(s.router, testutil.WithCaller(testutil.NewJSONRequest(s.T(), http.MethodGet, "/riders/rider-uid", nil), "admin-1"))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	body := testutil.UnmarshalResponse[struct {
		Result models.RiderProfile `json:"result"`
	}](s.T(), rr)
	s.Equal("R", body.Result.Name)
	s.True(created.Equal(body.Result.CreatedAt))

	rr = testutil.DoRequest(s.router, testutil.WithCaller(testutil.NewJSONRequest(s.T(), http.MethodGet, "/riders/missing", nil), "admin-1"))
	testutil.AssertCallableError(s.T(), rr, http.StatusNotFound, StatusNotFound)
}

func (s *HandlerSuite) TestAddAdmin() {
	s.service.EXPECT().AddAdmin(gomock.Any(), "new-admin").Return(nil)
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/ops/admins", map[string]string{"uid": "new-admin"}))
	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)

	s.service.EXPECT().AddAdmin(gomock.Any(), "").Return(dErrors.New(dErrors.CodeInvalidArgument, "uid is required"))
	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/ops/admins", map[string]string{}))
	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	testutil.AssertErrorCode(s.T(), rr, string(dErrors.CodeInvalidArgument))
}

func (s *HandlerSuite) TestInventory() {
	s.service.EXPECT().Inventory(gomock.Any()).Return(models.NewInventory(5, 3), nil)
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/ops/inventory", nil))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.JSONEq(`{"accounts":5,"riders":3,"unprofiledAccounts":2}`, rr.Body.String())

	s.service.EXPECT().Inventory(gomock.Any()).Return(nil, dErrors.Wrap(errors.New("db down"), dErrors.CodeInternal, "Failed to count accounts."))
	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/ops/inventory", nil))
	testutil.AssertStatus(s.T(), rr, http.StatusInternalServerError)
	s.NotContains(rr.Body.String(), "db down")
}

func TestWriteCallableErrorOmitsDetailsOutsideInternal(t *testing.T) {
	rr := testutil.DoRequest(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeCallableError(w, dErrors.Wrap(errors.New("secret cause"), dErrors.CodePermissionDenied, "denied"))
	}), testutil.NewJSONRequest(t, http.MethodGet, "/", nil))

	require.Equal(t, http.StatusForbidden, rr.Code)
	assert.NotContains(t, rr.Body.String(), "secret cause")
}

func TestWritePanicIsCallableInternal(t *testing.T) {
	rr := testutil.DoRequest(http.HandlerFunc(WritePanic), testutil.NewJSONRequest(t, http.MethodPost, "/createRider", nil))

	body := testutil.AssertCallableError(t, rr, http.StatusInternalServerError, StatusInternal)
	assert.Equal(t, "internal", body.Error.Message)
	assert.Empty(t, body.Error.Details)
}
