package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeads/marketplace-api/internal/application"
	"github.com/freeads/marketplace-api/internal/domain/entity"
	repo "github.com/freeads/marketplace-api/internal/domain/repository"
	"github.com/freeads/marketplace-api/internal/infrastructure/otpledger"
	"github.com/freeads/marketplace-api/internal/infrastructure/postgres"
	"github.com/freeads/marketplace-api/internal/interface/middleware"
	"github.com/freeads/marketplace-api/pkg/helpers"
	"github.com/freeads/marketplace-api/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: map[string]*entity.User{}} }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = uuid.NewString()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByPhone(_ context.Context, phone string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memUserRepo) GetByGoogle(_ context.Context, googleID, _ string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.GoogleID != "" && u.GoogleID == googleID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memUserRepo) UpdateName(_ context.Context, id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Name = name
	return nil
}

type memAdRepo struct {
	mu        sync.Mutex
	ads       []*entity.Advertisement
	createErr error
}

func (r *memAdRepo) Create(_ context.Context, ad *entity.Advertisement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	ad.ID = uuid.NewString()
	ad.CreatedAt = time.Now()
	ad.UpdatedAt = ad.CreatedAt
	cp := *ad
	r.ads = append(r.ads, &cp)
	return nil
}

func (r *memAdRepo) GetByID(_ context.Context, id string) (*entity.Advertisement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ad := range r.ads {
		if ad.ID == id {
			cp := *ad
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memAdRepo) List(_ context.Context, category string, limit, offset int) ([]*entity.Advertisement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Advertisement
	for _, ad := range r.ads {
		if category != "" && ad.Category != category {
			continue
		}
		cp := *ad
		out = append(out, &cp)
	}
	return out, nil
}

type testServer struct {
	engine *gin.Engine
	users  *memUserRepo
	ads    *memAdRepo
	hook   *test.Hook
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger, hook := test.NewNullLogger()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	users := newMemUserRepo()
	ads := &memAdRepo{}

	authSvc := application.NewAuthService(users, otpledger.NewMemoryLedger(), jwt, logger, nil, 20*time.Minute)
	listSvc := application.NewListingService(ads, users, logger, nil, "", nil, false)

	authH := NewAuthHandler(authSvc, logger)
	listH := NewListingHandler(listSvc, logger)

	r := gin.New()
	r.POST("/otp-login", authH.RequestOTP)
	r.POST("/verify-otp", authH.VerifyOTP)
	r.POST("/google-login", authH.GoogleLogin)
	r.GET("/advertisements", listH.List)
	r.GET("/advertisements/:id", listH.Get)
	r.POST("/advertisements", middleware.Auth(users, jwt), listH.Create)

	return &testServer{engine: r, users: users, ads: ads, hook: hook}
}

type envelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
	Error   any            `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func (s *testServer) loggedOTP(t *testing.T) string {
	t.Helper()
	entries := s.hook.AllEntries()
	for i := len(entries) - 1; i >= 0; i-- {
		if code, ok := entries[i].Data["otp"].(string); ok {
			return code
		}
	}
	t.Fatal("no OTP was logged")
	return ""
}

func TestPhoneLoginFlow(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/otp-login", "", gin.H{"name": "Ravi", "phone": "9876543210"})
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, "OTP sent successfully", env.Message)

	otp := s.loggedOTP(t)
	wrong := "000000"
	if wrong == otp {
		wrong = "000001"
	}

	code, env = s.do(t, http.MethodPost, "/verify-otp", "", gin.H{"phone": "9876543210", "otp": wrong})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid or expired OTP", env.Message)

	code, env = s.do(t, http.MethodPost, "/verify-otp", "", gin.H{"phone": "9876543210", "otp": otp})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ravi", env.Data["name"])
	token, _ := env.Data["token"].(string)
	require.NotEmpty(t, token)

	// The code was consumed on success.
	code, env = s.do(t, http.MethodPost, "/verify-otp", "", gin.H{"phone": "9876543210", "otp": otp})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid or expired OTP", env.Message)
}

func TestVerifyOTP_UnknownUserIs404(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/verify-otp", "", gin.H{"phone": "1112223334", "otp": "123456"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", env.Message)
}

func TestOTPLogin_RejectsBadPhone(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/otp-login", "", gin.H{"name": "Ravi", "phone": "12345"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid payload", env.Message)
	assert.False(t, env.Success)
}

func TestGoogleLogin_ReturnsToken(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/google-login", "", gin.H{
		"name":     "Priya",
		"googleId": "google-123",
		"email":    "priya@example.com",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Priya", env.Data["name"])
	assert.NotEmpty(t, env.Data["token"])
}

func TestCreateAdvertisement_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/advertisements", "", gin.H{"title": "A fine bike"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Not authorized, no token", env.Message)
}

func loginDemoUser(t *testing.T, s *testServer) string {
	t.Helper()
	code, _ := s.do(t, http.MethodPost, "/otp-login", "", gin.H{"name": "Ravi", "phone": "9876543210"})
	require.Equal(t, http.StatusOK, code)
	code, env := s.do(t, http.MethodPost, "/verify-otp", "", gin.H{"phone": "9876543210", "otp": s.loggedOTP(t)})
	require.Equal(t, http.StatusOK, code)
	token, _ := env.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestCreateAdvertisement_EndToEnd(t *testing.T) {
	s := newTestServer(t)
	token := loginDemoUser(t, s)

	payload := gin.H{
		"category":    "Bikes",
		"subCategory": "Motorcycles",
		"title":       "Royal Enfield Classic 350",
		"description": "2021 model, first owner.",
		"price":       145000,
		"location":    "Bangalore",
		"phone":       "9876543210",
		"images":      []string{"https://example.com/classic350.jpg"},
	}

	code, env := s.do(t, http.MethodPost, "/advertisements", token, payload)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Advertisement created successfully", env.Message)

	ad, ok := env.Data["advertisement"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Royal Enfield Classic 350", ad["title"])
	assert.NotEmpty(t, ad["id"])
	assert.NotEmpty(t, ad["user"])

	// The listing shows up on the browse endpoint.
	code, env = s.do(t, http.MethodGet, "/advertisements", "", nil)
	require.Equal(t, http.StatusOK, code)
	list, ok := env.Data["advertisements"].([]any)
	require.True(t, ok)
	assert.Len(t, list, 1)

	// And on the detail endpoint.
	code, env = s.do(t, http.MethodGet, "/advertisements/"+ad["id"].(string), "", nil)
	require.Equal(t, http.StatusOK, code)
	detail := env.Data["advertisement"].(map[string]any)
	assert.Equal(t, "Bangalore", detail["location"])
}

func TestCreateAdvertisement_MissingFields(t *testing.T) {
	s := newTestServer(t)
	token := loginDemoUser(t, s)

	code, env := s.do(t, http.MethodPost, "/advertisements", token, gin.H{"category": "Bikes"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Message, "Missing required fields")
	assert.Contains(t, env.Message, "title")
}

func TestCreateAdvertisement_SchemaViolationIs400(t *testing.T) {
	s := newTestServer(t)
	token := loginDemoUser(t, s)
	s.ads.createErr = &postgres.SchemaViolationError{
		Constraint: "advertisements_price_non_negative",
		Message:    "Price cannot be negative",
	}

	payload := gin.H{
		"category":    "Bikes",
		"subCategory": "Motorcycles",
		"title":       "Royal Enfield Classic 350",
		"description": "2021 model, first owner.",
		"price":       -5,
		"location":    "Bangalore",
		"phone":       "9876543210",
		"images":      []string{"https://example.com/classic350.jpg"},
	}

	code, env := s.do(t, http.MethodPost, "/advertisements", token, payload)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation error", env.Message)
	assert.Equal(t, "Price cannot be negative", env.Error)
}

func TestGetAdvertisement_UnknownIDIs404(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/advertisements/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Not found", env.Message)
}
