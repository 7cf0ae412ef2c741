package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freeads/marketplace-api/internal/container"
	handlers "github.com/freeads/marketplace-api/internal/interface/http"
	"github.com/freeads/marketplace-api/internal/interface/middleware"
)

// AuthModule wires the login endpoints.
// Public: POST /otp-login, POST /verify-otp, POST /google-login
// All three are rate-limited per IP; OTP issuance gets the tightest limit
// since every call costs an SMS.

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	otpLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	verifyLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	googleLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/otp-login", otpLimiter, m.Handler.RequestOTP)
	rg.POST("/verify-otp", verifyLimiter, m.Handler.VerifyOTP)
	rg.POST("/google-login", googleLimiter, m.Handler.GoogleLogin)
}
