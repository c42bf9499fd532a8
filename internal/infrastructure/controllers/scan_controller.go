package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/dockerscanner/internal/domain/commands"
	"github.com/rios0rios0/dockerscanner/internal/domain/entities"
)

var errInvalidInputURL = errors.New("invalid URL")

var _ entities.Controller = (*ScanController)(nil)

// ScanController handles the root command: scan the repositories listed at a URL.
type ScanController struct {
	command commands.Scan
	log     logrus.FieldLogger
}

// NewScanController creates a new ScanController.
func NewScanController(command commands.Scan, log logrus.FieldLogger) *ScanController {
	return &ScanController{command: command, log: log}
}

// GetBind returns the Cobra command metadata for the scan controller.
func (it *ScanController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "dockerscanner <url>",
		Short: "Report the base images of every Dockerfile in a list of repositories",
		Long: `Download a plain-text list of "<repository URL> <commit SHA>" lines, find every
file named Dockerfile in each repository at that commit, and print the image named
by each FROM instruction as JSON.

Example list:
  https://github.com/user1/repo1.git 40af65af14a2dce962df923446afff24dd8f123e
  https://github.com/user2/repo2.git a260deaf135fc0efaab365ea234a5b86b3ead404`,
	}
}

// AddFlags adds the scan-specific flags to the given Cobra command.
func (it *ScanController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("normalize", false,
		"Report fully qualified image references (e.g. docker.io/library/ubuntu:20.04)")
}

// Execute runs the scan and writes the JSON report to the command output.
func (it *ScanController) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, _ := cmd.Flags().GetString("config")
	normalize, _ := cmd.Flags().GetBool("normalize")

	settings, err := loadSettings(configPath, it.log)
	if err != nil {
		return err
	}

	report, err := it.command.Execute(ctx, settings, commands.ScanOptions{
		InputURL:  args[0],
		Normalize: normalize,
	})
	if err != nil {
		return err
	}

	rendered, err := entities.Output{Data: report}.Render()
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(rendered))
	return err
}

// ValidateInputURL accepts exactly one absolute http(s) URL.
func ValidateInputURL(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("accepts 1 arg, received %d", len(args))
	}

	parsed, err := url.ParseRequestURI(args[0])
	if err != nil {
		return fmt.Errorf("%w %q: %w", errInvalidInputURL, args[0], err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w %q: expected an http(s) URL with a host", errInvalidInputURL, args[0])
	}
	return nil
}

// loadSettings reads the given config file, or the first one found in the
// standard locations, falling back to the built-in defaults.
func loadSettings(configPath string, log logrus.FieldLogger) (*entities.Settings, error) {
	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			log.Debugf("Using default settings: %v", err)
			return entities.DefaultSettings(), nil
		}
		configPath = found
	}

	log.Debugf("Using config file: %s", configPath)
	settings, err := entities.NewSettings(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings, nil
}
