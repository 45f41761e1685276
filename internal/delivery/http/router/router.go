// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"finsync/config"
	"finsync/internal/delivery/http/middleware"
	"finsync/internal/delivery/http/router/handler"
	"finsync/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *metrics.Metrics
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	authMiddleware *middleware.AuthMiddleware
	metrics        *metrics.Metrics
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		authMiddleware: params.AuthMiddleware,
		metrics:        params.Metrics,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	if r.config.Metrics.Enabled {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(r.metrics.Handler()))
	}

	account := e.Group("/api/account")
	{
		account.POST("/register", r.accountHandler.Register)
		account.POST("/login", r.accountHandler.Login)
		account.POST("/refresh-token", r.accountHandler.RefreshToken)
		account.GET("/verify-email", r.accountHandler.VerifyEmail)
		account.GET("/check-email-verified", r.accountHandler.CheckEmailVerified)
		account.POST("/resend-verification", r.accountHandler.ResendVerification)
		account.POST("/logout", r.accountHandler.Logout)
	}

	// Routes below require a valid access token. Admin rights are checked
	// against the stored role by the usecase, not the token claim.
	authenticate := r.authMiddleware.Authenticate
	{
		account.POST("/logout-all", r.accountHandler.LogoutAll, authenticate)
		account.GET("/me", r.accountHandler.GetMe, authenticate)
		account.PATCH("/me", r.accountHandler.UpdateMe, authenticate)
		account.GET("/sessions", r.accountHandler.ListSessions, authenticate)
		account.GET("/users", r.accountHandler.ListAccounts, authenticate)
		account.PATCH("/users/:id", r.accountHandler.UpdateAccount, authenticate)
	}
}
