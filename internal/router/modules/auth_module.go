package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yogswara/gearzone/internal/container"
	handlers "github.com/yogswara/gearzone/internal/interface/http"
	"github.com/yogswara/gearzone/internal/interface/middleware"
	"github.com/yogswara/gearzone/pkg/helpers"
)

// AuthModule wires the account lifecycle routes.
// Public: register, activate, login, refresh, forgot/reset password.
// Protected: logout.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)
	activateLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	forgotLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/accounts/register", registerLimiter, m.Handler.Register)
	rg.GET("/accounts/activate/:uid/:token", activateLimiter, m.Handler.Activate)
	rg.POST("/accounts/login", loginLimiter, m.Handler.Login)
	rg.POST("/accounts/refresh", refreshLimiter, m.Handler.Refresh)
	rg.POST("/accounts/password/forgot", forgotLimiter, m.Handler.ForgotPassword)
	rg.GET("/accounts/reset/validate/:uid/:token", resetLimiter, m.Handler.ResetValidate)
	rg.POST("/accounts/password/reset", resetLimiter, m.Handler.ResetPassword)

	// Logout requires an authenticated session
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.POST("/accounts/logout", m.Handler.Logout)
	}
}
