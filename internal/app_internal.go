package internal

import (
	"github.com/rios0rios0/dockerscanner/internal/domain/entities"
	"github.com/rios0rios0/dockerscanner/internal/infrastructure/controllers"
)

// AppInternal holds the controllers exposed on the command line.
type AppInternal struct {
	scanController *controllers.ScanController
}

// NewAppInternal creates the application from its controllers.
func NewAppInternal(scanController *controllers.ScanController) *AppInternal {
	return &AppInternal{scanController: scanController}
}

// GetRootController returns the controller bound to the root command.
func (it *AppInternal) GetRootController() entities.Controller {
	return it.scanController
}
