package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freeads/marketplace-api/internal/container"
	repo "github.com/freeads/marketplace-api/internal/domain/repository"
	handlers "github.com/freeads/marketplace-api/internal/interface/http"
	"github.com/freeads/marketplace-api/internal/interface/middleware"
	"github.com/freeads/marketplace-api/pkg/helpers"
)

// ListingModule wires advertisement and upload routes.
// Public: GET /advertisements, GET /advertisements/:id
// Protected (bearer token): POST /advertisements, POST /uploads

type ListingModule struct {
	Handler *handlers.ListingHandler
	Uploads *handlers.UploadHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewListingModule(h *handlers.ListingHandler, u *handlers.UploadHandler, users repo.UserRepository, jwt *helpers.JWTManager) *ListingModule {
	return &ListingModule{Handler: h, Uploads: u, Users: users, JWT: jwt}
}

func (m *ListingModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/advertisements", browseLimiter, m.Handler.List)
	rg.GET("/advertisements/:id", browseLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/advertisements", m.Handler.Create)
		auth.POST("/uploads", m.Uploads.Upload)
	}
}
