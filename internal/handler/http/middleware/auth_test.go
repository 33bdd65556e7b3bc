package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablerota/rota-backend-go/internal/domain/account"
	"github.com/tablerota/rota-backend-go/internal/pkg/jwt"
	"github.com/tablerota/rota-backend-go/internal/pkg/tenant"
)

const middlewareTestSecret = "test-secret-key-for-jwt"

// newProtectedRouter mounts a probe endpoint behind the auth chain. The
// probe echoes the tenant slug it finds in the request context.
func newProtectedRouter(jwtSvc jwt.Service, approverOnly bool) *chi.Mux {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(jwtSvc.JWTAuth()))
	r.Use(AuthRequired(jwtSvc.JWTAuth()))
	if approverOnly {
		r.Use(RequireApprover)
	}
	r.Get("/check", func(w http.ResponseWriter, r *http.Request) {
		slug, _ := tenant.FromContext(r.Context())
		w.Write([]byte(slug))
	})
	return r
}

func mintAccessToken(t *testing.T, jwtSvc jwt.Service, tenantSlug string, level account.Level) string {
	t.Helper()
	employeeID := "0198d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"
	token, _, err := jwtSvc.GenerateAccessToken("acc-1", "dana@example.com", tenantSlug, level, &employeeID)
	require.NoError(t, err)
	return token
}

func doGet(router *chi.Mux, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	jwtSvc := jwt.NewJWTService(middlewareTestSecret, "1h", "24h")
	router := newProtectedRouter(jwtSvc, false)

	t.Run("valid access token passes and carries the tenant", func(t *testing.T) {
		rec := doGet(router, mintAccessToken(t, jwtSvc, "bluedoor", account.LevelEmployee))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "bluedoor", rec.Body.String())
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		rec := doGet(router, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		rec := doGet(router, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh token does not pass as an access token", func(t *testing.T) {
		refresh, _, err := jwtSvc.GenerateRefreshToken("acc-1")
		require.NoError(t, err)

		rec := doGet(router, refresh)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("access token without a tenant claim is rejected", func(t *testing.T) {
		rec := doGet(router, mintAccessToken(t, jwtSvc, "", account.LevelEmployee))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireApprover(t *testing.T) {
	jwtSvc := jwt.NewJWTService(middlewareTestSecret, "1h", "24h")
	router := newProtectedRouter(jwtSvc, true)

	for _, level := range []account.Level{account.LevelAdmin, account.LevelAM, account.LevelManager} {
		t.Run(string(level)+" passes", func(t *testing.T) {
			rec := doGet(router, mintAccessToken(t, jwtSvc, "bluedoor", level))
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}

	t.Run("employee is forbidden", func(t *testing.T) {
		rec := doGet(router, mintAccessToken(t, jwtSvc, "bluedoor", account.LevelEmployee))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
