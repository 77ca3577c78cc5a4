// Package http wires the console's middleware chain and routes.
package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Marat1506/apple-admin/internal/api"
	"github.com/Marat1506/apple-admin/internal/config"
	"github.com/Marat1506/apple-admin/internal/http/flash"
	"github.com/Marat1506/apple-admin/internal/http/handlers"
	"github.com/Marat1506/apple-admin/internal/http/middleware"
	"github.com/Marat1506/apple-admin/internal/http/render"
	"github.com/Marat1506/apple-admin/internal/http/tokencookie"
	"github.com/Marat1506/apple-admin/internal/session"
)

// FlashCookieName carries one toast across a redirect.
const FlashCookieName = "admin_flash"

func NewRouter(cfg *config.Config, l *slog.Logger, db *gorm.DB, apiClient *api.Client) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	renderer, err := render.New(l)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(db)
	tokens := tokencookie.New(cfg.CookieSecure)
	flashCodec := flash.NewCodec([]byte(cfg.SecretKey), FlashCookieName, cfg.CookieSecure)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(l),
		middleware.Recovery(l),
		middleware.ErrorHandler(l, store, tokens, flashCodec),
		middleware.FlashMiddleware(flashCodec),
		middleware.CSRF(cfg.CookieSecure),
		middleware.Authenticate(middleware.AuthCfg{API: apiClient, Store: store, Tokens: tokens, Log: l}),
	)

	auth := handlers.NewAuthHandler(apiClient, store, tokens, flashCodec, renderer)
	r.GET("/login", auth.LoginGet)
	r.POST("/login", auth.LoginPost)
	r.POST("/logout", auth.LogoutPost)

	admin := r.Group("/", middleware.RequireAdmin(flashCodec))

	dashboard := handlers.NewDashboardHandler(renderer)
	admin.GET("/", dashboard.Show)

	products := handlers.NewProductsHandler(flashCodec, renderer)
	admin.GET("/products", products.List)
	admin.GET("/products/new", products.NewForm)
	admin.POST("/products", products.Create)
	admin.GET("/products/:id/edit", products.EditForm)
	admin.POST("/products/:id", products.Update)
	admin.POST("/products/:id/delete", products.Delete)

	categories := handlers.NewCategoriesHandler(flashCodec, renderer)
	admin.GET("/categories", categories.List)
	admin.GET("/categories/new", categories.NewForm)
	admin.POST("/categories", categories.Create)
	admin.GET("/categories/:id/edit", categories.EditForm)
	admin.POST("/categories/:id", categories.Update)
	admin.POST("/categories/:id/delete", categories.Delete)

	orders := handlers.NewOrdersHandler(flashCodec, renderer)
	admin.GET("/orders", orders.List)
	admin.GET("/orders/:id", orders.Detail)
	admin.POST("/orders/:id/status", orders.UpdateStatus)

	hero := handlers.NewHeroHandler(flashCodec, renderer)
	admin.GET("/hero-settings", hero.Show)
	admin.POST("/hero-settings/image", hero.UploadImage)

	faq := handlers.NewFAQHandler(flashCodec, renderer)
	admin.GET("/faq", faq.List)
	admin.GET("/faq/new", faq.NewForm)
	admin.POST("/faq", faq.Create)
	admin.GET("/faq/:id/edit", faq.EditForm)
	admin.POST("/faq/:id", faq.Update)
	admin.POST("/faq/:id/delete", faq.Delete)

	about := handlers.NewAboutHandler(flashCodec, renderer)
	admin.GET("/about-us", about.List)
	admin.GET("/about-us/new", about.NewForm)
	admin.POST("/about-us", about.Create)
	admin.GET("/about-us/:id/edit", about.EditForm)
	admin.POST("/about-us/:id", about.Update)
	admin.POST("/about-us/:id/delete", about.Delete)

	return r, nil
}
