//go:build unit

package repositories_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/dockerscanner/internal/domain/entities"
	domainRepos "github.com/rios0rios0/dockerscanner/internal/domain/repositories"
	"github.com/rios0rios0/dockerscanner/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/dockerscanner/test/infrastructure/repositorydoubles"
)

func spyFactory(name string) repositories.ProviderFactory {
	return func(settings entities.ProviderSettings, _ logrus.FieldLogger) domainRepos.HostingRepository {
		return &doubles.SpyHostingRepository{ProviderName: name, ProviderHost: settings.Host}
	}
}

func TestProviderRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should return the registered names sorted", func(t *testing.T) {
		t.Parallel()

		// given
		log, _ := logtest.NewNullLogger()
		registry := repositories.NewProviderRegistry(log)
		registry.Register("gitlab", spyFactory("gitlab"))
		registry.Register("github", spyFactory("github"))

		// when
		names := registry.Names()

		// then
		assert.Equal(t, []string{"github", "gitlab"}, names)
	})

	t.Run("should build a provider from its settings", func(t *testing.T) {
		t.Parallel()

		// given
		log, _ := logtest.NewNullLogger()
		registry := repositories.NewProviderRegistry(log)
		registry.Register("gitlab", spyFactory("gitlab"))

		// when
		provider, err := registry.Get(entities.ProviderSettings{Type: "gitlab", Host: "gitlab.example.com"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "gitlab", provider.Name())
		assert.Equal(t, "gitlab.example.com", provider.Host())
	})

	t.Run("should fail for an unregistered provider type", func(t *testing.T) {
		t.Parallel()

		// given
		log, _ := logtest.NewNullLogger()
		registry := repositories.NewProviderRegistry(log)

		// when
		provider, err := registry.Get(entities.ProviderSettings{Type: "bitbucket", Host: "bitbucket.org"})

		// then
		require.ErrorIs(t, err, repositories.ErrUnknownProvider)
		assert.Nil(t, provider)
		assert.Contains(t, err.Error(), "bitbucket")
	})

	t.Run("should index providers by host", func(t *testing.T) {
		t.Parallel()

		// given
		log, _ := logtest.NewNullLogger()
		registry := repositories.NewProviderRegistry(log)
		registry.Register("github", spyFactory("github"))
		registry.Register("gitlab", spyFactory("gitlab"))

		// when
		hosts, err := registry.ByHost([]entities.ProviderSettings{
			{Type: "github", Host: "github.com"},
			{Type: "gitlab", Host: "gitlab.com"},
			{Type: "gitlab", Host: "git.example.com"},
		})

		// then
		require.NoError(t, err)
		require.Len(t, hosts, 3)
		assert.Equal(t, "github", hosts["github.com"].Name())
		assert.Equal(t, "gitlab", hosts["gitlab.com"].Name())
		assert.Equal(t, "gitlab", hosts["git.example.com"].Name())
	})

	t.Run("should fail indexing when any provider type is unknown", func(t *testing.T) {
		t.Parallel()

		// given
		log, _ := logtest.NewNullLogger()
		registry := repositories.NewProviderRegistry(log)
		registry.Register("github", spyFactory("github"))

		// when
		hosts, err := registry.ByHost([]entities.ProviderSettings{
			{Type: "github", Host: "github.com"},
			{Type: "gitea", Host: "gitea.com"},
		})

		// then
		require.ErrorIs(t, err, repositories.ErrUnknownProvider)
		assert.Nil(t, hosts)
	})
}
