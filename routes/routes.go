package routes

import (
	"net/http"
	"time"

	"riggerbackend/handlers"
	"riggerbackend/middleware"
	"riggerbackend/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/id/:id", hb.GetUserByIDHandler)
		api.PATCH("/update/:id", hb.UpdateUserHandler)
		api.DELETE("/delete/:id", hb.DeleteUserHandler)
		api.DELETE("/revoke/:id", hb.RevokeUserAuthTokenHandler)
	}
}

// RegisterJobRoutes registers job posting endpoints.
func RegisterJobRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/jobs")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("", hb.SearchJobsHandler)
		api.GET("/:id", hb.GetJobHandler)
		api.DELETE("/:id", hb.DeleteJobHandler)
		api.PATCH("/:id", hb.UpdateJobHandler)
		api.POST("/:id/assign", hb.AssignJobHandler)
		api.POST("/:id/complete", hb.CompleteJobHandler)
		api.POST("/:id/cancel", hb.CancelJobHandler)

		employer := api.Group("")
		employer.Use(middleware.RequireRole(models.RoleEmployer, models.RoleAdmin))
		employer.POST("", hb.CreateJobHandler)
	}
}

// RegisterBillingRoutes registers the billing pipeline endpoints.
func RegisterBillingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/billing")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))

		employer := api.Group("")
		employer.Use(middleware.RequireRole(models.RoleEmployer, models.RoleAdmin))
		employer.POST("/jobs/:id/pay", hb.ProcessJobPaymentHandler)
		employer.POST("/recruitment-fee", hb.ProcessRecruitmentFeeHandler)

		// Renewals are normally driven by the background worker; the
		// endpoint exists for manual retries by operators.
		admin := api.Group("")
		admin.Use(middleware.RequireAdmin())
		admin.POST("/subscriptions/:id/renew", hb.ProcessRenewalHandler)
	}
}

// RegisterEarningsRoutes registers worker earnings endpoints.
func RegisterEarningsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/earnings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/:workerID", hb.GetEarningsSummaryHandler)
		api.GET("/:workerID/report", hb.GetEarningsReportHandler)
	}
}

// RegisterTransparencyRoutes registers NGO contribution reporting
// endpoints. The public dashboard is intentionally unauthenticated.
func RegisterTransparencyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/transparency")
	{
		api.GET("/dashboard", hb.GetPublicDashboardHandler)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireAdmin())
		admin.GET("/report", hb.GetTransparencyReportHandler)
		admin.POST("/reconcile", hb.ReconcileLedgerHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Rigger backend up"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterJobRoutes(r, hb)
	RegisterBillingRoutes(r, hb)
	RegisterEarningsRoutes(r, hb)
	RegisterTransparencyRoutes(r, hb)
}
