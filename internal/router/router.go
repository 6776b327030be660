package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/listkeeper-dev/listkeeper/internal/config"
	"github.com/listkeeper-dev/listkeeper/internal/handlers"
	"github.com/listkeeper-dev/listkeeper/internal/logging"
	"github.com/listkeeper-dev/listkeeper/internal/middleware"
	"github.com/listkeeper-dev/listkeeper/internal/session"
	"github.com/listkeeper-dev/listkeeper/internal/store"
)

// Stores bundles the data access layer handed to the router.
type Stores struct {
	Users store.UserStore
	Lists store.ListStore
	Items store.ItemStore
}

func NewRouter(cfg *config.Config, stores Stores, sessions *session.Manager, log logging.Logger) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	cookies := session.Cookies{Domain: cfg.CookieDomain, Secure: cfg.CookieSecure}

	authHandler := handlers.NewAuthHandler(stores.Users, sessions, cookies, log)
	listHandler := handlers.NewListHandler(stores.Lists, log)
	itemHandler := handlers.NewItemHandler(stores.Items, stores.Lists, log)

	r.GET("/health", handlers.HealthCheck)

	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	// Logout is deliberately ungated so a stale cookie can still be cleared.
	r.POST("/logout", authHandler.Logout)

	protected := r.Group("", middleware.RequireSession(sessions, stores.Users))
	{
		protected.GET("/me", authHandler.Me)

		protected.GET("/get-list", listHandler.GetLists)
		protected.POST("/add-list", listHandler.AddList)
		protected.PUT("/edit-list/:id", listHandler.EditList)
		protected.DELETE("/delete-list/:id", listHandler.DeleteList)

		protected.GET("/get-items/:listId", itemHandler.GetItems)
		protected.POST("/add-item", itemHandler.AddItem)
		protected.PUT("/edit-item/:id", itemHandler.EditItem)
		protected.DELETE("/delete-item/:id", itemHandler.DeleteItem)
	}

	return r
}
