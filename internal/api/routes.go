package api

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Services groups what the routes need.
type Services struct {
	Sessions  service.SessionManager
	Search    service.SearchService
	Templates service.TemplateService
	Blocks    service.BlockService
	Focus     service.FocusService
	Stats     service.StatsService
}

func SetupRoutes(router *gin.Engine, jwtSecret string, cal domain.Calendar, svc Services) {
	sessionHandler := NewSessionHandler(cal, svc.Sessions, svc.Search, svc.Templates)
	templateHandler := NewTemplateHandler(svc.Templates)
	libraryHandler := NewLibraryHandler(cal, svc.Blocks, svc.Focus)
	statsHandler := NewStatsHandler(cal, svc.Stats, svc.Focus)

	writers := RoleMiddleware(domain.WriterRoles...)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	protected := router.Group("/api/v1")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role, "canWrite": role.CanWrite()})
		})

		sessions := protected.Group("/sessions")
		{
			sessions.GET("", sessionHandler.ListSessions)
			sessions.GET("/search", sessionHandler.Search)
			sessions.GET("/:day", sessionHandler.GetSession)
			sessions.POST("", writers, sessionHandler.CreateSession)
			sessions.POST("/recurring", writers, sessionHandler.CreateRecurring)
			sessions.POST("/from-template", writers, sessionHandler.CreateFromTemplate)
			sessions.DELETE("/:day", writers, sessionHandler.DeleteSession)
		}

		templates := protected.Group("/templates")
		{
			templates.GET("", templateHandler.ListTemplates)
			templates.POST("", writers, templateHandler.CreateTemplate)
			templates.PUT("/:id", writers, templateHandler.ReplaceTemplate)
			templates.DELETE("/:id", writers, templateHandler.DeleteTemplate)
		}

		blocks := protected.Group("/blocks")
		{
			blocks.GET("", libraryHandler.ListBlocks)
			blocks.POST("", writers, libraryHandler.SaveBlock)
			blocks.DELETE("/:id", writers, libraryHandler.DeleteBlock)
		}

		protected.GET("/focus/:month", libraryHandler.GetFocus)
		protected.PUT("/focus", writers, libraryHandler.SaveFocus)

		stats := protected.Group("/stats")
		{
			stats.GET("/week", statsHandler.Week)
			stats.GET("/month", statsHandler.Month)
		}
	}
}
