package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultInputTimeout bounds the retrieval of the repository list.
const DefaultInputTimeout = 3 * time.Second

// Settings is the top-level configuration for dockerscanner.
type Settings struct {
	InputTimeout time.Duration      `yaml:"input_timeout"`
	Providers    []ProviderSettings `yaml:"providers"`
}

// ProviderSettings describes a single hosting provider instance.
type ProviderSettings struct {
	Type   string `yaml:"type"`    // "github", "gitlab"
	Host   string `yaml:"host"`    // Repository URL host served by this provider
	APIURL string `yaml:"api_url"` // Empty means the provider's public API
	WebURL string `yaml:"web_url"` // Empty means https://<host>
	Token  string `yaml:"token"`   // Inline, ${ENV_VAR}, or file path; empty for anonymous access
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the built-in configuration: public GitHub and GitLab,
// authenticated only when GITHUB_TOKEN or GITLAB_TOKEN is set.
func DefaultSettings() *Settings {
	return &Settings{
		InputTimeout: DefaultInputTimeout,
		Providers: []ProviderSettings{
			{Type: "github", Host: "github.com", Token: os.Getenv("GITHUB_TOKEN")},
			{Type: "gitlab", Host: "gitlab.com", Token: os.Getenv("GITLAB_TOKEN")},
		},
	}
}

// NewSettings reads and parses a configuration file, expanding environment
// variables and resolving token file paths.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	if settings.InputTimeout == 0 {
		settings.InputTimeout = DefaultInputTimeout
	}
	for i := range settings.Providers {
		settings.Providers[i].Host = strings.ToLower(settings.Providers[i].Host)
		settings.Providers[i].Token = resolveToken(settings.Providers[i].Token)
	}

	if validateErr := validateSettings(&settings); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".dockerscanner.yaml",
		".dockerscanner.yml",
		"dockerscanner.yaml",
		"dockerscanner.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Debugf("Environment variable %q is not set, using anonymous access", varName)
		return ""
	})

	if resolved == "" {
		return resolved
	}

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validateSettings checks for required configuration values.
func validateSettings(settings *Settings) error {
	if settings.InputTimeout < 0 {
		return errors.New("input_timeout must be positive")
	}
	if len(settings.Providers) == 0 {
		return errors.New("at least one provider must be configured")
	}

	for i, p := range settings.Providers {
		if p.Type == "" {
			return fmt.Errorf("providers[%d].type is required", i)
		}
		if p.Host == "" {
			return fmt.Errorf("providers[%d].host is required", i)
		}
	}

	return nil
}
