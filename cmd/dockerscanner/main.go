package main

import (
	"os"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/dockerscanner/internal"
	"github.com/rios0rios0/dockerscanner/internal/infrastructure/controllers"
)

func newLogger() *logger.Logger {
	log := logger.StandardLogger()
	log.SetOutput(os.Stderr)
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	log.SetFormatter(&logger.TextFormatter{
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		log.SetLevel(logger.DebugLevel)
	}
	return log
}

func buildRootCommand(appContext *internal.AppInternal, log *logger.Logger) *cobra.Command {
	controller := appContext.GetRootController()
	bind := controller.GetBind()
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:           bind.Use,
		Short:         bind.Short,
		Long:          bind.Long,
		Args:          controllers.ValidateInputURL,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(command *cobra.Command, _ []string) {
			if verbose, _ := command.Flags().GetBool("verbose"); verbose {
				log.SetLevel(logger.DebugLevel)
			}
		},
		RunE: controller.Execute,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect, built-in defaults if none)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	controller.AddFlags(cmd)
	return cmd
}

func main() {
	log := newLogger()

	// Tokens referenced as ${GITHUB_TOKEN} may live in a local .env file
	_ = godotenv.Load()

	appContext := injectAppContext(log)
	cobraRoot := buildRootCommand(appContext, log)

	if err := cobraRoot.Execute(); err != nil {
		log.Fatalf("Error executing 'dockerscanner': %s", err)
	}
}
