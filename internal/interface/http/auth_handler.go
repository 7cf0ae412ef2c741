package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/freeads/marketplace-api/internal/application"
	"github.com/freeads/marketplace-api/pkg/response"
	"github.com/freeads/marketplace-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type otpLoginRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required,phone10"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone" binding:"required,phone10"`
	OTP   string `json:"otp" binding:"required,otp6"`
}

type googleLoginRequest struct {
	Name     string `json:"name" binding:"required"`
	GoogleID string `json:"googleId" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// RequestOTP POST /otp-login
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req otpLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	if err := h.Svc.RequestOTP(c.Request.Context(), req.Name, req.Phone); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"phone": req.Phone}, "OTP sent successfully", nil)
}

// VerifyOTP POST /verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, token, err := h.Svc.VerifyOTP(c.Request.Context(), req.Phone, req.OTP)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"phone": u.Phone,
		"token": token,
	}, "login successful", nil)
}

// GoogleLogin POST /google-login
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, token, err := h.Svc.GoogleLogin(c.Request.Context(), req.Name, req.GoogleID, req.Email)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":       u.ID,
		"name":     u.Name,
		"googleId": u.GoogleID,
		"email":    u.Email,
		"token":    token,
	}, "login successful", nil)
}
