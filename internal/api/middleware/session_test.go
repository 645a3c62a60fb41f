package middleware

import (
	"bank-backoffice/internal/domain/auth"
	"bank-backoffice/internal/mocks"
	"bank-backoffice/internal/pkg/apperrors"
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func identityEcho(t *testing.T, got *auth.Identity, found *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, *found = auth.IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	customerID := auth.Identity{UserID: 3, Name: "Asha Rao", Role: auth.RoleCustomer, SessionID: "sid-1"}

	t.Run("should pass anonymous request through without identity", func(t *testing.T) {
		authenticator := new(mocks.Authenticator)
		var got auth.Identity
		var found bool

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		Session(authenticator, logger)(identityEcho(t, &got, &found)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, found)
		authenticator.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("should attach identity from session cookie", func(t *testing.T) {
		authenticator := new(mocks.Authenticator)
		authenticator.On("Authenticate", mock.Anything, "cookie-token").Return(customerID, nil).Once()
		var got auth.Identity
		var found bool

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})
		rec := httptest.NewRecorder()
		Session(authenticator, logger)(identityEcho(t, &got, &found)).ServeHTTP(rec, req)

		require.True(t, found)
		assert.Equal(t, customerID, got)
		authenticator.AssertExpectations(t)
	})

	t.Run("should accept bearer header", func(t *testing.T) {
		authenticator := new(mocks.Authenticator)
		authenticator.On("Authenticate", mock.Anything, "header-token").Return(customerID, nil).Once()
		var got auth.Identity
		var found bool

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer header-token")
		rec := httptest.NewRecorder()
		Session(authenticator, logger)(identityEcho(t, &got, &found)).ServeHTTP(rec, req)

		assert.True(t, found)
		authenticator.AssertExpectations(t)
	})

	t.Run("should drop revoked token", func(t *testing.T) {
		authenticator := new(mocks.Authenticator)
		authenticator.On("Authenticate", mock.Anything, "revoked").Return(auth.Identity{}, apperrors.ErrUnauthorized).Once()
		var got auth.Identity
		var found bool

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "revoked"})
		rec := httptest.NewRecorder()
		Session(authenticator, logger)(identityEcho(t, &got, &found)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, found)
	})
}

func TestSessionToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, SessionToken(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer  tok ")
	assert.Equal(t, "tok", SessionToken(req))

	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", SessionToken(req))
}

func TestRequireRole(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		identity *auth.Identity
		want     int
	}{
		{"anonymous is redirected", nil, http.StatusSeeOther},
		{"wrong role is redirected", &auth.Identity{UserID: 1, Role: auth.RoleEmployee}, http.StatusSeeOther},
		{"matching role passes", &auth.Identity{UserID: 1, Role: auth.RoleCustomer}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/customer/dashboard", nil)
			if tt.identity != nil {
				req = req.WithContext(auth.WithIdentity(req.Context(), *tt.identity))
			}
			rec := httptest.NewRecorder()

			RequireRole(auth.RoleCustomer, logger)(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusSeeOther {
				assert.Equal(t, "/", rec.Header().Get("Location"))
			}
		})
	}
}

func TestRequireRoleAPI(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("should reject anonymous caller with JSON error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/get_balance", nil)
		rec := httptest.NewRecorder()

		RequireRoleAPI(auth.RoleCustomer, logger)(ok).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		var body map[string]map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "Unauthorized", body["error"]["message"])
	})

	t.Run("should allow customer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/get_balance", nil)
		req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{UserID: 2, Role: auth.RoleCustomer}))
		rec := httptest.NewRecorder()

		RequireRoleAPI(auth.RoleCustomer, logger)(ok).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
