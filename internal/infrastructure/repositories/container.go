package repositories

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/dockerscanner/internal/domain/repositories"
	ghRepo "github.com/rios0rios0/dockerscanner/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/dockerscanner/internal/infrastructure/repositories/gitlab"
	inputRepo "github.com/rios0rios0/dockerscanner/internal/infrastructure/repositories/input"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register provider registry with all hosting provider factories
	if err := container.Provide(func(log logrus.FieldLogger) *ProviderRegistry {
		reg := NewProviderRegistry(log)
		reg.Register("github", ghRepo.NewHostingRepository)
		reg.Register("gitlab", glRepo.NewHostingRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.InputRepository {
		return inputRepo.NewHTTPInputRepository()
	}); err != nil {
		return err
	}

	return nil
}
