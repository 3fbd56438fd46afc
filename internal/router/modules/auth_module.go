package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "github.com/okasatria/go-auth-api/internal/interface/http"
	"github.com/okasatria/go-auth-api/internal/interface/middleware"
	"github.com/okasatria/go-auth-api/pkg/helpers"
)

// authLevel is the per-action authentication requirement.
type authLevel int

const (
	authPublic authLevel = iota
	authBearer
)

// route maps one named action to its method, path, required auth level
// and handler. The table is the single place deciding which actions are
// public; anything marked authBearer goes through the token gate before
// its handler runs.
type route struct {
	name    string
	method  string
	path    string
	auth    authLevel
	handler gin.HandlerFunc
}

// AuthModule wires the account endpoints and their auth requirements.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) routes() []route {
	return []route{
		{name: "register", method: http.MethodPost, path: "/auth/register/", auth: authPublic, handler: m.Handler.Register},
		{name: "login", method: http.MethodPost, path: "/auth/login/", auth: authPublic, handler: m.Handler.Login},
		{name: "refresh", method: http.MethodPost, path: "/auth/refresh/", auth: authPublic, handler: m.Handler.Refresh},
		{name: "profile", method: http.MethodGet, path: "/auth/profile/", auth: authBearer, handler: m.Handler.GetProfile},
		{name: "profile_update", method: http.MethodPut, path: "/auth/profile/", auth: authBearer, handler: m.Handler.UpdateProfile},
		{name: "search_users", method: http.MethodGet, path: "/auth/search-users/", auth: authBearer, handler: m.Handler.SearchUsers},
	}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	gate := middleware.BearerAuth(m.JWT)
	for _, rt := range m.routes() {
		switch rt.auth {
		case authBearer:
			rg.Handle(rt.method, rt.path, gate, rt.handler)
		default:
			rg.Handle(rt.method, rt.path, rt.handler)
		}
	}
}
