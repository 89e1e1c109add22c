package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"pharmafinder/pkg/requestcontext"
)

type stubValidator struct {
	uid string
	err error
}

func (s stubValidator) ValidateToken(string) (*CallerClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &CallerClaims{UID: s.uid, JTI: "jti"}, nil
}

func serveWithCaller(t *testing.T, v CallerValidator, header string) string {
	t.Helper()
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.CallerUID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := OptionalCaller(v, logger)(next)

	req := httptest.NewRequest(http.MethodPost, "/createRider", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	return seen
}

func TestOptionalCaller(t *testing.T) {
	t.Run("valid bearer token sets caller", func(t *testing.T) {
		uid := serveWithCaller(t, stubValidator{uid: "admin-1"}, "Bearer good")
		assert.Equal(t, "admin-1", uid)
	})

	t.Run("missing header passes through anonymously", func(t *testing.T) {
		uid := serveWithCaller(t, stubValidator{uid: "admin-1"}, "")
		assert.Empty(t, uid)
	})

	t.Run("non bearer scheme passes through anonymously", func(t *testing.T) {
		uid := serveWithCaller(t, stubValidator{uid: "admin-1"}, "Basic abc")
		assert.Empty(t, uid)
	})

	t.Run("invalid token passes through anonymously", func(t *testing.T) {
		uid := serveWithCaller(t, stubValidator{err: errors.New("bad signature")}, "Bearer bad")
		assert.Empty(t, uid)
	})
}
