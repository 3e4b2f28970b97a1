package api

import (
	"net/http"

	"fitsage/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	trackerService service.TrackerService,
	profileService service.ProfileService,
	coachService service.CoachService,
) {

	authHandler := NewAuthHandler(authService)
	trackerHandler := NewTrackerHandler(trackerService, profileService)
	coachHandler := NewCoachHandler(coachService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr})
		})

		// --- Profile ---
		protected.GET("/profile", trackerHandler.GetProfile)
		protected.PUT("/profile", trackerHandler.UpdateProfile)

		// --- Record Submission ---
		recordsGroup := protected.Group("/records")
		{
			recordsGroup.POST("/checkins", trackerHandler.SubmitDailyCheckin)
			recordsGroup.POST("/food", trackerHandler.SubmitFoodDiaryDay)
			recordsGroup.POST("/water", trackerHandler.SubmitWaterLog)
			recordsGroup.POST("/sessions", trackerHandler.LogSession)
			recordsGroup.POST("/weekly-checkins", trackerHandler.SubmitWeeklyCheckin)
			recordsGroup.POST("/weekly-checkins/photo-url", trackerHandler.RequestPhotoUploadURL)
			recordsGroup.GET("/weekly-checkins/:weekStart/photo", trackerHandler.GetPhotoDownloadURL)
		}

		// --- Coaching Messages ---
		coachGroup := protected.Group("/coach")
		{
			coachGroup.POST("/weekly-message", coachHandler.GenerateWeeklyMessage)
			coachGroup.POST("/daily-message", coachHandler.GenerateDailyMessage)
			coachGroup.GET("/messages", coachHandler.GetMessages)
		}
	}
}
