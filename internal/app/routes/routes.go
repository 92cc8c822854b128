package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/atcampus/internal/app/controllers"
	"github.com/yigit/atcampus/internal/app/models"
	"github.com/yigit/atcampus/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	researchController *controllers.ResearchController,
	savedJobController *controllers.SavedJobController,
	realtimeController *controllers.RealtimeController,
	authMiddleware *middleware.AuthMiddleware,
	maxUploadSize int64,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Pending and rejected accounts may still read their own profile
	authenticated.GET("/auth/profile", authController.GetProfile)

	approved := authenticated.Group("")
	approved.Use(authMiddleware.AccountApprovalRequired())
	{
		approved.GET("/ws", realtimeController.Connect)

		researches := approved.Group("/researches")
		{
			researches.POST("", researchController.CreateResearch)
			researches.GET("/mine", researchController.ListMyResearches)

			byID := researches.Group("/:id", middleware.ValidUUIDParams("id"))
			byID.GET("", researchController.GetResearch)
			byID.POST("/requests", researchController.RequestCollaboration)
			byID.GET("/requests", researchController.ListPendingRequests)
			byID.PUT("/requests/:requestId",
				middleware.ValidUUIDParams("requestId"),
				researchController.ResolveRequest)
			byID.POST("/attachments",
				middleware.MaxBodySize(maxUploadSize),
				researchController.AddAttachment)
			byID.DELETE("/attachments/:attachmentId",
				middleware.ValidUUIDParams("attachmentId"),
				researchController.DeleteAttachment)
		}

		jobs := approved.Group("/jobs")
		{
			jobs.POST("", savedJobController.CreateJob)
			jobs.GET("/saved", savedJobController.ListSavedJobs)

			byID := jobs.Group("/:id", middleware.ValidUUIDParams("id"))
			byID.GET("", savedJobController.GetJob)
			byID.PUT("/save", savedJobController.SaveJob)
			byID.DELETE("/save", savedJobController.UnsaveJob)
		}

		admin := approved.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/accounts", authController.ListAccounts)
			admin.PUT("/accounts/:id/review",
				middleware.ValidUUIDParams("id"),
				authController.ReviewAccount)
		}
	}
}
