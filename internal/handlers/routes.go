package handlers

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/middleware"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/services"
	"gorm.io/gorm"
)

// Deps is everything the router needs to serve the API.
type Deps struct {
	DB           *gorm.DB
	Tokens       middleware.TokenVerifier
	Users        *services.UserService
	Companies    *services.CompanyService
	Jobs         *services.JobService
	Applications *services.ApplicationService
	Exports      *services.ExportService
	Logger       *slog.Logger
	CORSOrigins  []string
	// UploadDir is served under /uploads when resumes are stored locally
	UploadDir string
}

func NewRouter(d Deps) *gin.Engine {
	RegisterValidators()

	r := gin.New()
	r.Use(middleware.RequestLogger(d.Logger), middleware.Recovery(d.Logger))

	// Setup CORS
	config := cors.DefaultConfig()
	if len(d.CORSOrigins) == 0 || (len(d.CORSOrigins) == 1 && d.CORSOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = d.CORSOrigins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "token"}
	config.ExposeHeaders = []string{"Content-Disposition"}
	r.Use(cors.New(config))
	r.Use(middleware.ErrorHandler(d.Logger))

	if d.UploadDir != "" {
		r.Static("/uploads", d.UploadDir)
	}

	authn := middleware.Authenticate(d.Tokens, d.Users)
	anyRole := middleware.RequireRole(models.RoleUser, models.RoleCompanyHR)
	hrOnly := middleware.RequireRole(models.RoleCompanyHR)
	userOnly := middleware.RequireRole(models.RoleUser)

	authHandler := NewAuthHandler(d.Users)
	companyHandler := NewCompanyHandler(d.Companies, d.Exports)
	jobHandler := NewJobHandler(d.Jobs)
	applicationHandler := NewApplicationHandler(d.Applications)

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck(d.DB))

		// Auth & account routes
		a := api.Group("/auth")
		a.POST("/signup", authHandler.Signup)
		a.POST("/login", authHandler.Login)
		a.POST("/forget-password", authHandler.ForgetPassword)
		a.POST("/reset-password", authHandler.ResetPassword)
		a.POST("/accounts-by-recovery-email", authHandler.AccountsByRecoveryEmail)
		a.GET("/profile/:userId", authHandler.GetProfile)
		a.POST("/logout", authn, anyRole, authHandler.Logout)
		a.PUT("/users/:userId", authn, anyRole, authHandler.UpdateAccount)
		a.DELETE("/users/:userId", authn, anyRole, authHandler.DeleteAccount)
		a.GET("/users/:userId", authn, anyRole, authHandler.GetAccount)
		a.PUT("/password", authn, anyRole, authHandler.UpdatePassword)

		// Company routes
		co := api.Group("/companies", authn)
		co.POST("", hrOnly, companyHandler.CreateCompany)
		co.GET("/search", anyRole, companyHandler.SearchCompany)
		co.GET("/jobs/:jobId/applications", hrOnly, companyHandler.ApplicationsForJob)
		co.GET("/:companyId", anyRole, companyHandler.GetCompany)
		co.PUT("/:companyId", hrOnly, companyHandler.UpdateCompany)
		co.DELETE("/:companyId", hrOnly, companyHandler.DeleteCompany)
		co.GET("/:companyId/applications/export", hrOnly, companyHandler.ExportApplications)

		// Job routes
		j := api.Group("/jobs", authn)
		j.POST("", hrOnly, jobHandler.CreateJob)
		j.GET("", anyRole, jobHandler.ListJobs)
		j.GET("/by-company", anyRole, jobHandler.JobsByCompany)
		j.GET("/filter", anyRole, jobHandler.FilterJobs)
		j.PUT("/:jobId", hrOnly, jobHandler.UpdateJob)
		j.DELETE("/:jobId", hrOnly, jobHandler.DeleteJob)
		j.POST("/:jobId/apply", userOnly, applicationHandler.Apply)

		// Application routes
		api.POST("/applications", authn, userOnly, applicationHandler.AddApplication)
	}
	return r
}
