package main

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/dig"

	"github.com/rios0rios0/dockerscanner/internal"
)

func injectAppContext(log *logrus.Logger) *internal.AppInternal {
	container := dig.New()

	if err := container.Provide(func() logrus.FieldLogger { return log }); err != nil {
		panic(err)
	}

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get AppInternal
	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}
