package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yogswara/gearzone/internal/container"
	handlers "github.com/yogswara/gearzone/internal/interface/http"
	"github.com/yogswara/gearzone/internal/interface/middleware"
	"github.com/yogswara/gearzone/pkg/helpers"
)

// AccountModule wires the authenticated account pages: dashboard, profile
// management, and password change.
type AccountModule struct {
	Handler *handlers.AccountHandler
	JWT     *helpers.JWTManager
}

func NewAccountModule(h *handlers.AccountHandler, jwt *helpers.JWTManager) *AccountModule {
	return &AccountModule{Handler: h, JWT: jwt}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/dashboard", m.Handler.Dashboard)
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.POST("/profile/picture", m.Handler.UploadProfilePicture)
		auth.POST("/password/change", m.Handler.ChangePassword)
	}
}
