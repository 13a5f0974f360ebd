// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	OrderHandler           *handler.OrderHandler
	PaymentCallbackHandler *handler.PaymentCallbackHandler
	ProductHandler         *handler.ProductHandler
	CartHandler            *handler.CartHandler
	ProfileHandler         *handler.ProfileHandler
	AdminHandler           *handler.AdminHandler
	AuthMiddleware         *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	orderHandler           *handler.OrderHandler
	paymentCallbackHandler *handler.PaymentCallbackHandler
	productHandler         *handler.ProductHandler
	cartHandler            *handler.CartHandler
	profileHandler         *handler.ProfileHandler
	adminHandler           *handler.AdminHandler
	authMiddleware         *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		orderHandler:           params.OrderHandler,
		paymentCallbackHandler: params.PaymentCallbackHandler,
		productHandler:         params.ProductHandler,
		cartHandler:            params.CartHandler,
		profileHandler:         params.ProfileHandler,
		adminHandler:           params.AdminHandler,
		authMiddleware:         params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Gateway callbacks arrive unauthenticated; PayFast posts a form while
	// the browser return leg uses a query string.
	e.POST("/payment/callback", r.paymentCallbackHandler.HandleNotification)
	e.GET("/payment/callback", r.paymentCallbackHandler.HandleNotification)

	// Public catalog
	productGroup := e.Group("/products")
	{
		productGroup.GET("", r.productHandler.ListProducts)
		productGroup.GET("/:id", r.productHandler.GetProduct)
	}

	// Order routes that require authentication
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate) // Apply JWT authentication middleware
	{
		orderGroup.POST("", r.orderHandler.Checkout)
		orderGroup.GET("", r.orderHandler.ListOrders)
		orderGroup.GET("/:orderId", r.orderHandler.GetOrder)
		orderGroup.POST("/:orderId/cancel", r.orderHandler.CancelOrder)
	}

	// Cart routes that require authentication
	cartGroup := e.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("", r.cartHandler.AddToCart)
		cartGroup.PUT("/:productId", r.cartHandler.UpdateCartItem)
		cartGroup.DELETE("/:productId", r.cartHandler.RemoveFromCart)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
	}

	// Profile routes that require authentication
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.GET("", r.profileHandler.GetProfile)
		profileGroup.PUT("", r.profileHandler.UpdateProfile)
	}

	// Admin routes that require authentication and "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)         // First, check if logged in
	adminGroup.Use(r.authMiddleware.RequireRole("admin")) // Then, check for the role
	{
		adminGroup.GET("/orders", r.adminHandler.GetAllOrders)
		adminGroup.GET("/stats", r.adminHandler.GetOrderStats)
		adminGroup.PUT("/orders/:orderId/status", r.adminHandler.UpdateOrderStatus)
		adminGroup.POST("/products", r.adminHandler.CreateProduct)
		adminGroup.PUT("/products/:id", r.adminHandler.UpdateProduct)
		adminGroup.DELETE("/products/:id", r.adminHandler.DeleteProduct)
	}
}
