package api

import (
	"net/http"

	"entrenador/gym-platform/internal/domain"
	"entrenador/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler under /api/v1.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	adminService service.AdminService,
	clientService service.ClientService,
	planService service.PlanService,
	catalogService service.CatalogService,
	favoriteService service.FavoriteService,
) {
	authHandler := NewAuthHandler(authService)
	adminHandler := NewAdminHandler(adminService, planService)
	clientHandler := NewClientHandler(clientService)
	catalogHandler := NewCatalogHandler(catalogService, favoriteService)
	planHandler := NewPlanHandler(planService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}

		apiV1.GET("/plans", planHandler.ListActivePlans)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- Admin Routes ---
		adminGroup := protected.Group("/admin")
		adminGroup.Use(RoleMiddleware(domain.RoleAdmin))
		{
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.POST("/users", adminHandler.CreateUser)
			adminGroup.GET("/users/:id", adminHandler.GetUser)
			adminGroup.PATCH("/users/:id", adminHandler.UpdateUser)
			adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)

			adminGroup.GET("/plans", adminHandler.ListPlans)
			adminGroup.POST("/plans", adminHandler.CreatePlan)

			adminGroup.POST("/enrollments", adminHandler.CreateEnrollment)
			adminGroup.PATCH("/enrollments/:id", adminHandler.ChangeEnrollmentPlan)

			adminGroup.POST("/enrollments/:id/documents", adminHandler.UploadDocument)
			adminGroup.GET("/enrollments/:id/documents", adminHandler.ListDocuments)
			adminGroup.DELETE("/enrollments/:id/documents/:docId", adminHandler.DeleteDocument)
			adminGroup.POST("/enrollments/:id/media", adminHandler.UploadMedia)

			adminGroup.POST("/comments", adminHandler.AddComment)
			adminGroup.GET("/comments", adminHandler.GetComments)

			adminGroup.GET("/dashboard", adminHandler.Dashboard)
			adminGroup.GET("/stats", adminHandler.Stats)
		}

		// --- Client Routes ---
		clientGroup := protected.Group("/client")
		clientGroup.Use(RoleMiddleware(domain.RoleUser))
		{
			clientGroup.GET("/dashboard", clientHandler.Dashboard)
			clientGroup.GET("/progress", clientHandler.ListProgress)
			clientGroup.POST("/progress", clientHandler.RecordProgress)
			clientGroup.POST("/media", clientHandler.UploadMedia)
			clientGroup.GET("/documents/:docId/download", clientHandler.DownloadDocument)

			clientGroup.POST("/videos", clientHandler.UploadVideo)
			clientGroup.GET("/videos", clientHandler.ListVideos)
			clientGroup.DELETE("/videos/:id", clientHandler.DeleteVideo)
		}

		// --- Exercise Catalog (any authenticated user) ---
		protected.GET("/exercises", catalogHandler.ListExercises)
		protected.GET("/muscles", catalogHandler.ListMuscles)
		protected.GET("/equipment", catalogHandler.ListEquipment)

		favoriteGroup := protected.Group("/favorites")
		{
			favoriteGroup.GET("", catalogHandler.ListFavorites)
			favoriteGroup.POST("", catalogHandler.AddFavorite)
			favoriteGroup.DELETE("/:exerciseApiId", catalogHandler.RemoveFavorite)
			favoriteGroup.POST("/:exerciseApiId/logs", catalogHandler.LogExercise)
			favoriteGroup.GET("/:exerciseApiId/logs", catalogHandler.ListLogs)
		}
	}
}
