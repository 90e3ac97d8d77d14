package config

import (
	"papelog/internal/domain"
	"papelog/internal/repository"
	"papelog/internal/service"
	"papelog/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config  domain.Config
	Logger  domain.Logger
	Backend domain.BackendClient

	Session    *service.Session
	Navigation *service.NavigationTracker
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	backend := repository.NewBackendClient(config, appLogger)

	session := service.NewSession(backend, config, appLogger)
	navigation := service.NewNavigationTracker(session, appLogger)

	return &Container{
		Config:     config,
		Logger:     appLogger,
		Backend:    backend,
		Session:    session,
		Navigation: navigation,
	}
}
