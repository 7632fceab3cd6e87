package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yogswara/gearzone/internal/container"
	handlers "github.com/yogswara/gearzone/internal/interface/http"
	"github.com/yogswara/gearzone/internal/interface/middleware"
	"github.com/yogswara/gearzone/pkg/helpers"
)

// OrderModule wires the order history routes. All of them require auth.
type OrderModule struct {
	Handler *handlers.OrderHandler
	JWT     *helpers.JWTManager
}

func NewOrderModule(h *handlers.OrderHandler, jwt *helpers.JWTManager) *OrderModule {
	return &OrderModule{Handler: h, JWT: jwt}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/orders", m.Handler.List)
		auth.GET("/orders/:order_number", m.Handler.Detail)
	}
}
