package router

import (
	"github.com/yogswara/gearzone/internal/application"
	"github.com/yogswara/gearzone/internal/container"
	pginfra "github.com/yogswara/gearzone/internal/infrastructure/postgres"
	handlers "github.com/yogswara/gearzone/internal/interface/http"
	"github.com/yogswara/gearzone/internal/router/modules"
)

type moduleDeps struct {
	Accounts *application.AccountService
	Carts    *application.CartService
	Sessions *application.SessionService
	Orders   *application.OrderService

	AuthHandler    *handlers.AuthHandler
	AccountHandler *handlers.AccountHandler
	OrderHandler   *handlers.OrderHandler
}

func buildDeps() moduleDeps {
	cfg := container.GetConfig()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	cartRepo := pginfra.NewCartRepository(pool)
	orderRepo := pginfra.NewOrderRepository(pool)

	accounts := application.NewAccountService(
		userRepo,
		container.GetTokens(),
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetLogger(),
	)
	carts := application.NewCartService(cartRepo, container.GetLogger())
	slots := application.NewRedisResetSlots(container.GetRedis(), cfg.PendingResetTTL)
	sessions := application.NewSessionService(
		accounts,
		container.GetJWT(),
		container.GetRedis(),
		slots,
		container.GetLogger(),
	)
	orders := application.NewOrderService(orderRepo)

	return moduleDeps{
		Accounts: accounts,
		Carts:    carts,
		Sessions: sessions,
		Orders:   orders,

		AuthHandler:    handlers.NewAuthHandler(accounts, carts, sessions, cfg, container.GetRabbitPub(), container.GetLogger()),
		AccountHandler: handlers.NewAccountHandler(accounts, orders, container.GetLogger()),
		OrderHandler:   handlers.NewOrderHandler(orders),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildDeps()
	jwt := container.GetJWT()

	r.Add(modules.NewAuthModule(deps.AuthHandler, jwt))
	r.Add(modules.NewAccountModule(deps.AccountHandler, jwt))
	r.Add(modules.NewOrderModule(deps.OrderHandler, jwt))
}
