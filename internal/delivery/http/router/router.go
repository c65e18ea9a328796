// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"addrbook/internal/delivery/http/middleware"
	"addrbook/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ProfileHandler *handler.ProfileHandler
	AddressHandler *handler.AddressHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	profileHandler *handler.ProfileHandler
	addressHandler *handler.AddressHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		profileHandler: params.ProfileHandler,
		addressHandler: params.AddressHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api/v1")

	// User routes: registration and login are public, the rest require a token.
	userGroup := api.Group("/user")
	{
		userGroup.POST("/register", r.userHandler.Register)
		userGroup.GET("/verify-email/:token", r.userHandler.VerifyEmail)
		userGroup.POST("/login", r.userHandler.Login)

		userGroup.GET("/auth", r.userHandler.WhoAmI, r.authMiddleware.Authenticate)
		userGroup.GET("/profile", r.profileHandler.GetProfile, r.authMiddleware.Authenticate)
		userGroup.PUT("/profile", r.profileHandler.UpdateProfile, r.authMiddleware.Authenticate)
		userGroup.POST("/picture", r.profileHandler.UploadPicture, r.authMiddleware.Authenticate)
	}

	// Address book routes, all authenticated.
	addressGroup := api.Group("/addresses")
	addressGroup.Use(r.authMiddleware.Authenticate)
	{
		addressGroup.GET("", r.addressHandler.ListAddresses)
		addressGroup.POST("", r.addressHandler.CreateAddress)
		addressGroup.GET("/:id", r.addressHandler.GetAddress)
		addressGroup.PUT("/:id", r.addressHandler.UpdateAddress)
		addressGroup.DELETE("/:id", r.addressHandler.DeleteAddress)
		addressGroup.PATCH("/:id/isDefault", r.addressHandler.SetDefault)
	}
}
