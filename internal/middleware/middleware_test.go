package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/edunexus/schoolhub/internal/config"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/edunexus/schoolhub/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type authFixture struct {
	auth     *service.AuthService
	sessions *session.RedisStore
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	store := session.NewRedisStore(rdb)
	cfg := &config.Config{JWTSecret: testSecret, JWTExpiry: time.Hour}
	return authFixture{auth: service.NewAuthService(cfg, nil, store, zerolog.Nop()), sessions: store}
}

// signIn mints a token for claims and, when live, stores its session.
func (f authFixture) signIn(t *testing.T, claims service.Claims, live bool) string {
	t.Helper()
	claims.ID = "sess-" + string(claims.Role)
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	if live {
		require.NoError(t, f.sessions.Write(context.Background(), session.Session{
			ID:        claims.ID,
			Token:     signed,
			User:      session.User{ID: claims.UserID, Role: string(claims.Role)},
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(time.Hour),
		}))
	}
	return signed
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) response.ErrCode {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error, w.Body.String())
	return body.Error.Code
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	f := newAuthFixture(t)
	r := gin.New()
	r.GET("/me", RequireAuth(f.auth), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetClaims(c).UserID})
	})

	live := f.signIn(t, service.Claims{UserID: 9, Role: model.RoleTeacher, BranchID: 1}, true)
	ended := f.signIn(t, service.Claims{UserID: 10, Role: model.RoleParent, BranchID: 1}, false)

	t.Run("missing header", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, response.ErrTokenRequired, errorCode(t, w))
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer nope")
		w := serve(r, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, response.ErrTokenInvalid, errorCode(t, w))
	})

	t.Run("session ended", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+ended)
		w := serve(r, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, response.ErrSessionInvalidated, errorCode(t, w))
	})

	t.Run("live session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "bearer "+live)
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":9}`, w.Body.String())
	})
}

func TestRequireWSAuth_QueryToken(t *testing.T) {
	f := newAuthFixture(t)
	r := gin.New()
	r.GET("/ws", RequireWSAuth(f.auth), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	tok := f.signIn(t, service.Claims{UserID: 3, Role: model.RoleStudent, BranchID: 2}, true)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/ws?token="+tok, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// withClaims stands in for RequireAuth.
func withClaims(claims *service.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

func TestBranchScope(t *testing.T) {
	newRouter := func(claims *service.Claims) *gin.Engine {
		r := gin.New()
		r.GET("/scoped", withClaims(claims), BranchScope(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"branch_id": GetBranchID(c)})
		})
		return r
	}

	t.Run("branch user is pinned to token branch", func(t *testing.T) {
		r := newRouter(&service.Claims{UserID: 1, Role: model.RolePrincipal, BranchID: 4})
		req := httptest.NewRequest(http.MethodGet, "/scoped?branch_id=9", nil)
		req.Header.Set(HeaderBranchID, "9")
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"branch_id":4}`, w.Body.String())
	})

	t.Run("branch user without branch", func(t *testing.T) {
		r := newRouter(&service.Claims{UserID: 1, Role: model.RoleTeacher})
		w := serve(r, httptest.NewRequest(http.MethodGet, "/scoped", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, response.ErrBranchMismatch, errorCode(t, w))
	})

	t.Run("superadmin header", func(t *testing.T) {
		r := newRouter(&service.Claims{UserID: 1, Role: model.RoleSuperadmin})
		req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
		req.Header.Set(HeaderBranchID, "7")
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"branch_id":7}`, w.Body.String())
	})

	t.Run("superadmin query", func(t *testing.T) {
		r := newRouter(&service.Claims{UserID: 1, Role: model.RoleSuperadmin})
		w := serve(r, httptest.NewRequest(http.MethodGet, "/scoped?branch_id=3", nil))
		assert.JSONEq(t, `{"branch_id":3}`, w.Body.String())
	})

	t.Run("superadmin without branch", func(t *testing.T) {
		r := newRouter(&service.Claims{UserID: 1, Role: model.RoleSuperadmin})
		for _, target := range []string{"/scoped", "/scoped?branch_id=0", "/scoped?branch_id=abc"} {
			w := serve(r, httptest.NewRequest(http.MethodGet, target, nil))
			assert.Equal(t, http.StatusBadRequest, w.Code, target)
			assert.Equal(t, response.ErrBranchRequired, errorCode(t, w))
		}
	})
}

func TestRequirePermission(t *testing.T) {
	newRouter := func(role model.Role, guard gin.HandlerFunc) *gin.Engine {
		r := gin.New()
		r.GET("/x", withClaims(&service.Claims{UserID: 1, Role: role, BranchID: 1}), guard, func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		return r
	}

	tests := []struct {
		name  string
		role  model.Role
		guard gin.HandlerFunc
		want  int
	}{
		{"librarian manages library", model.RoleLibrarian, RequirePermission(model.PermissionLibraryManage), http.StatusNoContent},
		{"student cannot manage fees", model.RoleStudent, RequirePermission(model.PermissionFeesManage), http.StatusForbidden},
		{"parent pays through any-of", model.RoleParent, RequireAnyPermission(model.PermissionFeesManage, model.PermissionFeesPay), http.StatusNoContent},
		{"superadmin holds everything", model.RoleSuperadmin, RequirePermission(model.PermissionSettingsWrite), http.StatusNoContent},
		{"role gate", model.RoleTeacher, RequireRole(model.RoleParent), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newRouter(tt.role, tt.guard), httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequirePermission_NoClaims(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequirePermission(model.PermissionReportsRead), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
