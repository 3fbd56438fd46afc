package router

import (
	"github.com/okasatria/go-auth-api/internal/application"
	"github.com/okasatria/go-auth-api/internal/container"
	pginfra "github.com/okasatria/go-auth-api/internal/infrastructure/postgres"
	handlers "github.com/okasatria/go-auth-api/internal/interface/http"
	"github.com/okasatria/go-auth-api/internal/router/modules"
)

// InitModules builds the auth module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	repo := pginfra.NewUserRepository(container.GetPGPool())

	svc := application.NewService(
		repo,
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
		container.GetRabbitPub(),
	)

	handler := handlers.NewAuthHandler(svc, container.GetLogger())

	r.Add(modules.NewAuthModule(handler, container.GetJWT()))
}
