package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeads/marketplace-api/internal/domain/entity"
	repo "github.com/freeads/marketplace-api/internal/domain/repository"
	"github.com/freeads/marketplace-api/pkg/helpers"
)

type stubUserRepo struct {
	users map[string]*entity.User
}

func (s *stubUserRepo) Create(context.Context, *entity.User) error { return nil }
func (s *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}
func (s *stubUserRepo) GetByPhone(context.Context, string) (*entity.User, error) {
	return nil, repo.ErrNotFound
}
func (s *stubUserRepo) GetByGoogle(context.Context, string, string) (*entity.User, error) {
	return nil, repo.ErrNotFound
}
func (s *stubUserRepo) UpdateName(context.Context, string, string) error { return nil }

func authTestRouter(users repo.UserRepository, jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(users, jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(CtxUserIDKey)})
	})
	return r
}

func TestAuth_MissingHeader(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := authTestRouter(&stubUserRepo{}, jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Not authorized, no token")
}

func TestAuth_MalformedToken(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := authTestRouter(&stubUserRepo{}, jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Not authorized, invalid token")
}

func TestAuth_DeletedUserIsRejected(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	token, _, err := jwt.Generate("gone-user")
	require.NoError(t, err)

	r := authTestRouter(&stubUserRepo{users: map[string]*entity.User{}}, jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Not authorized, user not found")
}

func TestAuth_ValidTokenResolvesUser(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	users := &stubUserRepo{users: map[string]*entity.User{
		"u-1": {ID: "u-1", Name: "Ravi", Phone: "9876543210"},
	}}
	token, _, err := jwt.Generate("u-1")
	require.NoError(t, err)

	r := authTestRouter(users, jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u-1")
}

func TestAuth_WrongSigningSecret(t *testing.T) {
	other := helpers.NewJWTManager("other-secret", time.Hour)
	token, _, err := other.Generate("u-1")
	require.NoError(t, err)

	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := authTestRouter(&stubUserRepo{}, jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
