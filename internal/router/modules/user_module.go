package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-account-service/internal/application"
	handlers "github.com/oksasatya/go-account-service/internal/interface/http"
	"github.com/oksasatya/go-account-service/internal/interface/middleware"
)

// UserModule wires account handlers and the bearer gate into routes
// Public: POST /users/register, POST /users/login
// Protected: GET|PUT|DELETE /users/profile, GET /users/search
// All routes are registered under the given RouterGroup (usually /api)
type UserModule struct {
	Handler *handlers.UserHandler
	Gate    *application.Gate
}

func NewUserModule(h *handlers.UserHandler, gate *application.Gate) *UserModule {
	return &UserModule{Handler: h, Gate: gate}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.POST("/register", m.Handler.Register)
	users.POST("/login", m.Handler.Login)

	auth := users.Group("")
	auth.Use(middleware.Auth(m.Gate))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.DELETE("/profile", m.Handler.DeleteProfile)
		auth.GET("/search", m.Handler.Search)
	}
}
