package main

import (
	"github.com/gin-gonic/gin"

	"catadopt-backend/internal/shared/middleware"
	"catadopt-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupCatRoutes(v1, c)
		setupAnnouncementRoutes(v1, c)
	}

	return router
}

// ========================================
// CAT ROUTES
// ========================================
func setupCatRoutes(v1 *gin.RouterGroup, c *container.Container) {
	cats := v1.Group("/cats")
	cats.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		cats.POST("", c.CatHandler.CreateCat)
		cats.GET("/mine", c.CatHandler.ListMyCats)
		cats.GET("/:id", c.CatHandler.GetCat)
		cats.PUT("/:id/thumbnail", c.CatHandler.SetThumbnail)
		cats.DELETE("/:id", c.CatHandler.DeleteCat)

		// Lifecycle transitions
		cats.POST("/:id/assign", c.CatHandler.AssignCat)
		cats.POST("/:id/assign-new", c.CatHandler.AssignCatToNewAnnouncement)
		cats.POST("/:id/reassign", c.CatHandler.ReassignCat)
		cats.POST("/:id/unassign", c.CatHandler.UnassignCat)
		cats.POST("/:id/claim", c.CatHandler.ClaimCat)
	}
}

// ========================================
// ANNOUNCEMENT ROUTES
// ========================================
func setupAnnouncementRoutes(v1 *gin.RouterGroup, c *container.Container) {
	announcements := v1.Group("/announcements")
	{
		// Public catalog
		announcements.GET("", c.AnnouncementHandler.ListAnnouncements)
		announcements.GET("/:id", c.AnnouncementHandler.GetAnnouncement)

		// Owner operations
		authed := announcements.Group("")
		authed.Use(middleware.AuthMiddleware(c.JWTManager))
		{
			authed.GET("/mine", c.AnnouncementHandler.ListMyAnnouncements)
			authed.POST("/:id/claim", c.AnnouncementHandler.MarkClaimed)
		}
	}
}
