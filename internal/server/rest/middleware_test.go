package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/server/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticated(t *testing.T) {
	s, _, codec := newTestServer(t, Options{})

	valid, err := codec.Encode("user-1", "ann@example.com")
	require.NoError(t, err)

	foreign, err := auth.NewTokenCodec([]byte("other-secret"), time.Hour).Encode("user-1", "ann@example.com")
	require.NoError(t, err)

	tampered := []byte(valid)
	tampered[len(tampered)-2] ^= 0x01

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
		UserID:           "user-1",
		Email:            "ann@example.com",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"scheme only", "Bearer", http.StatusUnauthorized},
		{"garbage", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"foreign secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"tampered", "Bearer " + string(tampered), http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusNoContent},
		{"lowercase scheme", "bearer " + valid, http.StatusNoContent},
	}

	var rejected []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				called bool
				got    auth.Identity
			)
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got, _ = IdentityFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/contact", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			s.authenticated(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNoContent {
				assert.True(t, called)
				assert.Equal(t, auth.Identity{UserID: "user-1", Email: "ann@example.com"}, got)
			} else {
				assert.False(t, called, "handler must not run for rejected requests")
				body := decode[errorResponse](t, rec.Body.Bytes())
				assert.Equal(t, "Unauthorized", body.Error)
				assert.Equal(t, unauthorizedMessage, body.Message)
				rejected = append(rejected, rec.Body.String())
			}
		})
	}

	require.NotEmpty(t, rejected)
	for _, b := range rejected[1:] {
		assert.Equal(t, rejected[0], b, "rejections must not reveal their cause")
	}
}

func TestIdentityFromContext_Missing(t *testing.T) {
	_, ok := IdentityFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}

func TestLogRequests_RecordsStatus(t *testing.T) {
	s, _, _ := newTestServer(t, Options{})

	h := s.logRequests(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
