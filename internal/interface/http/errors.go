package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/freeads/marketplace-api/internal/application"
	repo "github.com/freeads/marketplace-api/internal/domain/repository"
	"github.com/freeads/marketplace-api/internal/infrastructure/postgres"
	"github.com/freeads/marketplace-api/pkg/response"
)

// writeServiceError maps service errors onto the response taxonomy:
// validation 400, schema violation 400, invalid OTP 400, not found 404,
// unauthorized 401, anything else a generic 500.
func writeServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	var verr *application.ValidationError
	var sverr *postgres.SchemaViolationError
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, verr.Message, nil)
	case errors.As(err, &sverr):
		response.Error(c, http.StatusBadRequest, "Validation error", sverr.Message)
	case errors.Is(err, application.ErrInvalidOTP):
		response.Error(c, http.StatusBadRequest, "Invalid or expired OTP", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, repo.ErrNotFound):
		response.Error(c, http.StatusNotFound, "Not found", nil)
	case errors.Is(err, application.ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
	default:
		if logger != nil {
			logger.WithError(err).Error("unexpected service error")
		}
		response.Error(c, http.StatusInternalServerError, "Server error", err.Error())
	}
}
