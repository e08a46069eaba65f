package router

import (
	"github.com/taskboard/taskboard/internal/application"
	"github.com/taskboard/taskboard/internal/container"
	pginfra "github.com/taskboard/taskboard/internal/infrastructure/postgres"
	handlers "github.com/taskboard/taskboard/internal/interface/http"
	"github.com/taskboard/taskboard/internal/router/modules"
)

// InitAuthModules wires the authentication service's modules from the
// container singletons. Called once by cmd/authapi at startup.
func InitAuthModules(r *Registry) {
	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	service := application.NewAuthService(userRepo, container.GetTokens(), container.GetLogger())
	handler := handlers.NewAuthHandler(service, container.GetLogger())
	r.Add(modules.NewAuthModule(handler))
}

// InitTaskModules wires the task service's modules from the container
// singletons. Called once by cmd/tasksapi at startup.
func InitTaskModules(r *Registry) {
	taskRepo := pginfra.NewTaskRepository(container.GetPGPool())
	service := application.NewTaskService(taskRepo, container.GetLogger())
	handler := handlers.NewTaskHandler(service, container.GetLogger())
	r.Add(modules.NewTaskModule(handler, container.GetTokens()))
}
