package services

import (
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, media portssvc.MediaStore) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Media = media
	container.User = NewUserService(repos.UserRepo, media)
	container.Token = NewTokenService(cfg, repos.UserRepo)
	container.Channel = NewChannelService(repos.SubscriptionRepo, repos.VideoRepo)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
