package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/mkravtsov/storefront/internal/handlers"
	authmw "github.com/mkravtsov/storefront/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	CatalogHandler *handlers.CatalogHandler
	CartHandler    *handlers.CartHandler
	OrderHandler   *handlers.OrderHandler
	AdminHandler   *handlers.AdminHandler
	SearchHandler  *handlers.SearchHandler
	Tokens         *authmw.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.GET("/", d.CatalogHandler.Home, d.Tokens.OptionalUser)
	e.GET("/profile", d.CatalogHandler.Profile, d.Tokens.RequireLogin)

	auth := e.Group("/auth")
	auth.GET("/register", d.AuthHandler.RegisterForm)
	auth.POST("/register", d.AuthHandler.Register)
	auth.GET("/login", d.AuthHandler.LoginForm)
	auth.POST("/login", d.AuthHandler.Login)
	auth.GET("/logout", d.AuthHandler.Logout)

	products := e.Group("/products")
	products.GET("", d.CatalogHandler.ListProducts, d.Tokens.OptionalUser)
	products.GET("/search", d.SearchHandler.Search)
	products.GET("/:id", d.CatalogHandler.ProductDetail)
	products.POST("/:id/review", d.CatalogHandler.AddReview, d.Tokens.RequireLogin)

	cart := e.Group("/cart")
	cart.GET("", d.CartHandler.GetCart, d.Tokens.RequireLogin)
	cart.POST("/add/:productId", d.CartHandler.AddToCart, d.Tokens.RequireLogin)
	cart.POST("/update/:cartId", d.CartHandler.UpdateQuantity, d.Tokens.RequireLogin)
	cart.POST("/remove/:cartId", d.CartHandler.Remove, d.Tokens.RequireLogin)
	cart.GET("/api/count", d.CartHandler.Count, d.Tokens.OptionalUser)

	orders := e.Group("/orders", d.Tokens.RequireLogin)
	orders.GET("/checkout", d.OrderHandler.Checkout)
	orders.POST("/place", d.OrderHandler.Place)
	orders.GET("/confirmation/:id", d.OrderHandler.Confirmation)
	orders.GET("", d.OrderHandler.History)
	orders.GET("/:id", d.OrderHandler.Details)

	admin := e.Group("/admin", d.Tokens.AdminOnly)
	admin.GET("", d.AdminHandler.ListProducts)
	admin.GET("/categories", d.AdminHandler.ListCategories)
	admin.GET("/products/:id", d.AdminHandler.GetProduct)
	admin.POST("/products", d.AdminHandler.CreateProduct)
	admin.PATCH("/products/:id", d.AdminHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.AdminHandler.DeleteProduct)
}
