package router

import (
	"github.com/freeads/marketplace-api/internal/application"
	"github.com/freeads/marketplace-api/internal/container"
	repo "github.com/freeads/marketplace-api/internal/domain/repository"
	"github.com/freeads/marketplace-api/internal/infrastructure/otpledger"
	pginfra "github.com/freeads/marketplace-api/internal/infrastructure/postgres"
	handlers "github.com/freeads/marketplace-api/internal/interface/http"
	"github.com/freeads/marketplace-api/internal/router/modules"
)

type AuthModuleDeps struct {
	Users   repo.UserRepository
	Service *application.AuthService
	Handler *handlers.AuthHandler
}

func buildAuthDeps(users repo.UserRepository) AuthModuleDeps {
	cfg := container.GetConfig()

	service := application.NewAuthService(
		users,
		otpledger.NewRedisLedger(container.GetRedis()),
		container.GetJWT(),
		container.GetLogger(),
		container.GetRabbitPub(),
		cfg.OTPTTL,
	)

	return AuthModuleDeps{
		Users:   users,
		Service: service,
		Handler: handlers.NewAuthHandler(service, container.GetLogger()),
	}
}

type ListingModuleDeps struct {
	Service *application.ListingService
	Handler *handlers.ListingHandler
	Uploads *handlers.UploadHandler
}

func buildListingDeps(users repo.UserRepository) ListingModuleDeps {
	cfg := container.GetConfig()

	service := application.NewListingService(
		pginfra.NewAdvertisementRepository(container.GetPGPool()),
		users,
		container.GetLogger(),
		container.GetES(),
		cfg.ESAdsIndex,
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
	)

	return ListingModuleDeps{
		Service: service,
		Handler: handlers.NewListingHandler(service, container.GetLogger()),
		Uploads: handlers.NewUploadHandler(container.GetGCS(), cfg.GCSBucket, container.GetLogger()),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	users := pginfra.NewUserRepository(container.GetPGPool())

	authDeps := buildAuthDeps(users)
	listingDeps := buildListingDeps(users)

	r.Add(modules.NewAuthModule(authDeps.Handler))
	r.Add(modules.NewListingModule(listingDeps.Handler, listingDeps.Uploads, users, container.GetJWT()))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
