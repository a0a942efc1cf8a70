package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	"github.com/SscSPs/business_tracker/internal/middleware"
	"github.com/SscSPs/business_tracker/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-test-secret"

type mockBusinessReader struct {
	mock.Mock
}

func (m *mockBusinessReader) ListBusinesses(ctx context.Context) ([]domain.Business, error) {
	args := m.Called(ctx)
	return nil, args.Error(1)
}
func (m *mockBusinessReader) GetBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	return nil, args.Error(1)
}
func (m *mockBusinessReader) GetActiveBusiness(ctx context.Context) (*domain.Business, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

type mockAuthorizer struct {
	mock.Mock
}

func (m *mockAuthorizer) Authorize(sess domain.Session, perm domain.Permission) error {
	return m.Called(sess, perm).Error(0)
}

func newRouter(handlers ...gin.HandlerFunc) (*gin.Engine, *domain.Session) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	seen := &domain.Session{}
	handlers = append(handlers, func(c *gin.Context) {
		sess, _ := middleware.GetSessionFromCtx(c.Request.Context())
		*seen = sess
		c.Status(http.StatusNoContent)
	})
	r.GET("/guarded", handlers...)
	return r, seen
}

func serve(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func token(t *testing.T, role string, expiry time.Duration) string {
	t.Helper()
	tok, err := utils.GenerateJWT("user-1", "sam", role, secret, expiry, "bt-test")
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid token populates session", func(t *testing.T) {
		r, seen := newRouter(middleware.AuthMiddleware(secret))
		w := serve(r, token(t, "admin", time.Hour))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, domain.Session{UserID: "user-1", Username: "sam", Role: domain.RoleAdmin}, *seen)
	})

	t.Run("missing header", func(t *testing.T) {
		r, _ := newRouter(middleware.AuthMiddleware(secret))
		w := serve(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Authorization header required")
	})

	t.Run("expired token", func(t *testing.T) {
		r, _ := newRouter(middleware.AuthMiddleware(secret))
		w := serve(r, token(t, "user", -time.Minute))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token has expired")
	})

	t.Run("unknown role", func(t *testing.T) {
		r, _ := newRouter(middleware.AuthMiddleware(secret))
		w := serve(r, token(t, "owner", time.Hour))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		r, _ := newRouter(middleware.AuthMiddleware("another-secret"))
		w := serve(r, token(t, "user", time.Hour))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestSessionMiddleware(t *testing.T) {
	t.Run("scopes session to active business", func(t *testing.T) {
		reader := new(mockBusinessReader)
		reader.On("GetActiveBusiness", mock.Anything).Return(&domain.Business{BusinessID: "biz-9"}, nil).Once()

		r, seen := newRouter(middleware.AuthMiddleware(secret), middleware.SessionMiddleware(reader))
		w := serve(r, token(t, "user", time.Hour))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "biz-9", seen.BusinessID)
		reader.AssertExpectations(t)
	})

	t.Run("no active business passes through", func(t *testing.T) {
		reader := new(mockBusinessReader)
		reader.On("GetActiveBusiness", mock.Anything).Return(nil, apperrors.ErrNoActiveBusiness).Once()

		r, seen := newRouter(middleware.AuthMiddleware(secret), middleware.SessionMiddleware(reader))
		w := serve(r, token(t, "user", time.Hour))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.False(t, seen.HasBusiness())
		assert.Equal(t, "user-1", seen.UserID)
	})

	t.Run("store failure aborts", func(t *testing.T) {
		reader := new(mockBusinessReader)
		reader.On("GetActiveBusiness", mock.Anything).Return(nil, errors.New("connection refused")).Once()

		r, _ := newRouter(middleware.AuthMiddleware(secret), middleware.SessionMiddleware(reader))
		w := serve(r, token(t, "user", time.Hour))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("requires auth first", func(t *testing.T) {
		reader := new(mockBusinessReader)
		r, _ := newRouter(middleware.SessionMiddleware(reader))
		w := serve(r, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		reader.AssertNotCalled(t, "GetActiveBusiness", mock.Anything)
	})
}

func TestRequirePermission(t *testing.T) {
	userSession := domain.Session{UserID: "user-1", Username: "sam", Role: domain.RoleUser}

	authz := new(mockAuthorizer)
	authz.On("Authorize", userSession, domain.PermBackupRestore).Return(apperrors.ErrForbidden).Once()

	r, _ := newRouter(middleware.AuthMiddleware(secret), middleware.RequirePermission(authz, domain.PermBackupRestore))
	w := serve(r, token(t, "user", time.Hour))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "You do not have permission")
	authz.AssertExpectations(t)
}

func TestNewMemoryLimiter_RejectsBadRate(t *testing.T) {
	_, err := middleware.NewMemoryLimiter("five-per-minute")
	assert.Error(t, err)
}
