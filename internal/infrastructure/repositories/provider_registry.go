package repositories

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/rios0rios0/dockerscanner/internal/domain/entities"
	domainRepos "github.com/rios0rios0/dockerscanner/internal/domain/repositories"
)

// ErrUnknownProvider is returned when the configuration names an unregistered provider type.
var ErrUnknownProvider = errors.New("unknown provider type")

// ProviderFactory is a constructor function that creates a HostingRepository from its settings.
type ProviderFactory func(settings entities.ProviderSettings, log logrus.FieldLogger) domainRepos.HostingRepository

// ProviderRegistry manages all registered hosting provider implementations.
type ProviderRegistry struct {
	providers map[string]ProviderFactory
	log       logrus.FieldLogger
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry(log logrus.FieldLogger) *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
		log:       log,
	}
}

// Register adds a provider factory under the given name (e.g. "github").
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// Get returns a configured provider instance for the given settings.
func (r *ProviderRegistry) Get(settings entities.ProviderSettings) (domainRepos.HostingRepository, error) {
	factory, ok := r.providers[settings.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, settings.Type)
	}
	return factory(settings, r.log.WithField("provider", settings.Type)), nil
}

// ByHost instantiates every configured provider and indexes it by host.
// A later entry for the same host wins.
func (r *ProviderRegistry) ByHost(settings []entities.ProviderSettings) (map[string]domainRepos.HostingRepository, error) {
	hosts := make(map[string]domainRepos.HostingRepository, len(settings))
	for _, providerSettings := range settings {
		provider, err := r.Get(providerSettings)
		if err != nil {
			return nil, err
		}
		hosts[provider.Host()] = provider
	}
	return hosts, nil
}

// Names returns the sorted list of registered provider names.
func (r *ProviderRegistry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
