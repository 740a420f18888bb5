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

	UserHandler     *handler.UserHandler
	ProfileHandler  *handler.ProfileHandler
	AddressHandler  *handler.AddressHandler
	ActivityHandler *handler.ActivityHandler
	CatalogHandler  *handler.CatalogHandler
	ReviewHandler   *handler.ReviewHandler
	UploadHandler   *handler.UploadHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler     *handler.UserHandler
	profileHandler  *handler.ProfileHandler
	addressHandler  *handler.AddressHandler
	activityHandler *handler.ActivityHandler
	catalogHandler  *handler.CatalogHandler
	reviewHandler   *handler.ReviewHandler
	uploadHandler   *handler.UploadHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:     params.UserHandler,
		profileHandler:  params.ProfileHandler,
		addressHandler:  params.AddressHandler,
		activityHandler: params.ActivityHandler,
		catalogHandler:  params.CatalogHandler,
		reviewHandler:   params.ReviewHandler,
		uploadHandler:   params.UploadHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Account routes. Token endpoints are public; everything under /me
	// requires a valid access token.
	users := e.Group("/users")
	{
		users.POST("/register", r.userHandler.Register)
		users.POST("/token", r.userHandler.Login)
		users.POST("/token/refresh", r.userHandler.RefreshToken)
		users.POST("/logout", r.userHandler.Logout)
	}

	me := users.Group("/me")
	me.Use(r.authMiddleware.Authenticate)
	{
		me.GET("", r.userHandler.GetMe)
		me.PATCH("", r.userHandler.UpdateMe)

		me.GET("/profile", r.profileHandler.GetProfile)
		me.POST("/profile", r.profileHandler.UpsertProfile)
		me.PATCH("/profile", r.profileHandler.UpsertProfile)

		me.GET("/address", r.addressHandler.ListAddresses)
		me.POST("/address", r.addressHandler.CreateAddress)
		me.PATCH("/address/:id", r.addressHandler.UpdateAddress)
		me.POST("/address/:id/default", r.addressHandler.SetDefaultAddress)

		me.GET("/activity", r.activityHandler.ListMyActivity)
	}

	// Catalog routes. Reads are open to anonymous callers; mutations
	// require the seller or admin role.
	catalog := e.Group("/catalog")
	{
		catalog.GET("/categories", r.catalogHandler.ListCategories)
		catalog.GET("/categories/:slug", r.catalogHandler.GetCategory)
		catalog.GET("/brands", r.catalogHandler.ListBrands)
		catalog.GET("/brands/:id", r.catalogHandler.GetBrand)
		catalog.GET("/products", r.catalogHandler.ListProducts)
		catalog.GET("/products/:slug", r.catalogHandler.GetProduct)
		catalog.GET("/products/:slug/reviews", r.reviewHandler.ListReviews)
	}

	catalogWrite := catalog.Group("")
	catalogWrite.Use(r.authMiddleware.Authenticate)
	catalogWrite.Use(r.authMiddleware.RequireCatalogWrite)
	{
		catalogWrite.POST("/categories", r.catalogHandler.CreateCategory)
		catalogWrite.PATCH("/categories/:id", r.catalogHandler.UpdateCategory)
		catalogWrite.POST("/brands", r.catalogHandler.CreateBrand)
		catalogWrite.PATCH("/brands/:id", r.catalogHandler.UpdateBrand)
		catalogWrite.POST("/products", r.catalogHandler.CreateProduct)
		catalogWrite.PATCH("/products/:id", r.catalogHandler.UpdateProduct)
	}

	// Review writes only need authentication, not catalog write.
	reviews := catalog.Group("/products/:slug/reviews")
	reviews.Use(r.authMiddleware.Authenticate)
	{
		reviews.POST("", r.reviewHandler.CreateReview)
	}

	// Image uploads; the returned key is referenced by profile and catalog
	// payloads.
	uploads := e.Group("/uploads")
	uploads.Use(r.authMiddleware.Authenticate)
	{
		uploads.POST("/:category", r.uploadHandler.Upload)
	}
}
