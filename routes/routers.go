package routes

import (
	"jobboard/controllers"
	"jobboard/docs"
	middlewares "jobboard/middleware"
	"jobboard/models"
	"jobboard/services/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Controllers gom các controller cần đăng ký route
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Job          *controllers.JobController
	Application  *controllers.ApplicationController
	Engagement   *controllers.EngagementController
	Notification *controllers.NotificationController
	Insight      *controllers.InsightController
}

func SetupRoutes(router *gin.Engine, ctrl Controllers, tokens middlewares.TokenParser, log logger.Logger) {
	router.Use(middlewares.RequestIDMiddleware(), middlewares.RequestLogger(log), middlewares.ErrorHandler())

	jobseeker := middlewares.AuthMiddleware(tokens, models.RoleJobseeker)
	employer := middlewares.AuthMiddleware(tokens, models.RoleEmployer)
	admin := middlewares.AuthMiddleware(tokens, models.RoleAdmin)
	employerOrAdmin := middlewares.AuthMiddleware(tokens, models.RoleEmployer, models.RoleAdmin)
	anyone := middlewares.AuthMiddleware(tokens)

	v1 := router.Group(docs.BasePath)

	v1.POST("/auth/register", ctrl.Auth.RegisterUser)
	v1.POST("/auth/login", ctrl.Auth.Login)
	v1.POST("/auth/google", ctrl.Auth.AuthGoogle)

	v1.GET("/profile", anyone, ctrl.User.GetProfile)
	v1.PUT("/profile", anyone, ctrl.User.UpdateProfile)
	v1.POST("/profile/avatar", anyone, ctrl.User.UploadAvatar)
	v1.GET("/users", admin, ctrl.User.GetUsers)
	v1.PUT("/users/:id/verify", admin, ctrl.User.ChangeUserVerified)
	v1.DELETE("/users/:id", anyone, ctrl.User.DeleteUser)

	v1.GET("/jobs", ctrl.Job.GetAllJobs)
	v1.GET("/jobs/:id", middlewares.OptionalAuth(tokens), ctrl.Job.GetJobDetail)
	v1.GET("/myJobs", employer, ctrl.Job.GetMyJobs)
	v1.POST("/jobs", employer, ctrl.Job.CreateJob)
	v1.PUT("/jobs/:id", employerOrAdmin, ctrl.Job.UpdateJob)
	v1.PUT("/jobs/:id/status", employerOrAdmin, ctrl.Job.ChangeJobStatus)
	v1.PUT("/jobs/:id/trending", employerOrAdmin, ctrl.Job.ChangeJobTrending)
	v1.DELETE("/jobs/:id", employerOrAdmin, ctrl.Job.DeleteJob)

	v1.POST("/jobs/:id/apply", jobseeker, ctrl.Application.ApplyJob)
	v1.GET("/jobs/:id/applications", employerOrAdmin, ctrl.Application.GetJobApplicants)
	v1.GET("/applications/employer", employer, ctrl.Application.GetEmployerApplicants)
	v1.GET("/applications/applied", jobseeker, ctrl.Application.GetAppliedJobs)
	v1.GET("/applications/:id", anyone, ctrl.Application.GetApplication)
	v1.PUT("/applications/:id/status", employerOrAdmin, ctrl.Application.ChangeApplicationStatus)

	v1.POST("/jobs/:id/like", jobseeker, ctrl.Engagement.ToggleLike)
	v1.POST("/jobs/:id/dislike", jobseeker, ctrl.Engagement.ToggleDislike)
	v1.POST("/jobs/:id/save", jobseeker, ctrl.Engagement.ToggleSave)
	v1.GET("/savedJobs", jobseeker, ctrl.Engagement.GetSavedJobs)
	v1.GET("/jobs/:id/views", employerOrAdmin, ctrl.Engagement.GetUniqueViews)

	v1.GET("/notifications", anyone, ctrl.Notification.GetFeed)
	v1.GET("/announcements", admin, ctrl.Notification.GetAnnouncements)
	v1.POST("/announcements", admin, ctrl.Notification.CreateAnnouncement)
	v1.DELETE("/announcements/:id", admin, ctrl.Notification.DeactivateAnnouncement)

	v1.GET("/insights/employer", employer, ctrl.Insight.GetEmployerInsights)
	v1.GET("/insights/platform", admin, ctrl.Insight.GetPlatformInsights)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
