package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/credimed/app-leads/internal/config"
	"github.com/credimed/app-leads/internal/handlers"
	"github.com/credimed/app-leads/internal/logging"
	"github.com/credimed/app-leads/internal/middleware"
	"github.com/credimed/app-leads/internal/observability"
	"github.com/credimed/app-leads/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/credimed/app-leads/docs"
)

// @title           CrediMed Leads API
// @version         1.0
// @description     API for comparing South African medical aid schemes and capturing leads. Visitors answer an eight-step questionnaire, receive their top matched schemes, and can register for a consultation. Back-office staff manage the scheme catalogue, brokers, leads and email templates.

// @contact.name   CrediMed Support
// @contact.email  support@credimed.co.za

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name sessions
// @tag.description Comparison wizard sessions

// @tag.name registrations
// @tag.description Registration wizard and phone verification

// @tag.name schemes
// @tag.description Public scheme catalogue

// @tag.name admin
// @tag.description Back-office operations

// @tag.name health
// @tag.description Health check operations

func main() {
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	observability.InitTracer()
	defer observability.ShutdownTracer()

	config.InitMongoDB()
	config.InitRedis()

	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Service wiring, bottom up
	sessions := services.NewSessionStore()
	schemes := services.NewSchemeService()
	matcher := services.NewMatcherService(schemes)
	leads := services.NewLeadService()
	analytics := services.NewAnalyticsService()
	questionnaire := services.NewQuestionnaireService(sessions, matcher, leads, analytics, schemes)
	otp := services.NewOTPService()
	users := services.NewUserService()
	email := services.NewEmailService()
	registrations := services.NewRegistrationService(otp, users, email, analytics)
	brokers := services.NewBrokerService()
	roles := services.NewRoleService()
	export := services.NewExportService()

	handlers.Init(handlers.Deps{
		Sessions:      sessions,
		Questionnaire: questionnaire,
		Matcher:       matcher,
		Schemes:       schemes,
		Registrations: registrations,
		Leads:         leads,
		Brokers:       brokers,
		Email:         email,
		Analytics:     analytics,
		Roles:         roles,
		Export:        export,
	})

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		// Comparison wizard
		v1.POST("/sessions", handlers.CreateSession)
		v1.GET("/sessions/:session_id", handlers.GetSession)
		v1.PUT("/sessions/:session_id/answers", handlers.UpdateSessionAnswers)
		v1.POST("/sessions/:session_id/next", handlers.NextSessionStep)
		v1.POST("/sessions/:session_id/prev", handlers.PrevSessionStep)
		v1.POST("/sessions/:session_id/reset", handlers.ResetSession)
		v1.POST("/sessions/:session_id/submit", handlers.SubmitSession)
		v1.POST("/sessions/:session_id/selection", handlers.SelectScheme)

		// Public catalogue
		v1.GET("/schemes", handlers.ListSchemes)
		v1.GET("/schemes/:id", handlers.GetScheme)

		// Registration wizard
		v1.POST("/registrations", handlers.StartRegistration)
		v1.GET("/registrations/:registration_id", handlers.GetRegistration)
		v1.PUT("/registrations/:registration_id/account", handlers.SubmitAccountStep)
		v1.POST("/registrations/:registration_id/otp/resend", handlers.ResendOTP)
		v1.POST("/registrations/:registration_id/otp/verify", handlers.VerifyOTP)
		v1.POST("/registrations/:registration_id/otp/bypass", handlers.BypassOTP)
		v1.PUT("/registrations/:registration_id/personal", handlers.SubmitPersonalStep)
		v1.POST("/registrations/:registration_id/documents", handlers.AttachDocument)
		v1.PUT("/registrations/:registration_id/consents", handlers.SubmitConsentStep)
		v1.POST("/registrations/:registration_id/next", handlers.NextRegistrationStep)
		v1.POST("/registrations/:registration_id/prev", handlers.PrevRegistrationStep)
		v1.POST("/registrations/:registration_id/finalize", handlers.FinalizeRegistration)

		// Contact form and analytics sink
		v1.POST("/contact", handlers.SubmitContact)
		v1.POST("/events", handlers.TrackEvent)

		// Back office
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(), middleware.RequireAdmin(roles), middleware.AuditLogger())
		{
			admin.GET("/schemes", handlers.AdminListSchemes)
			admin.POST("/schemes", handlers.CreateScheme)
			admin.PUT("/schemes/:id", handlers.UpdateScheme)
			admin.DELETE("/schemes/:id", handlers.DeleteScheme)

			admin.GET("/leads", handlers.ListLeads)
			admin.GET("/leads/:id", handlers.GetLead)
			admin.PUT("/leads/:id", handlers.UpdateLead)
			admin.POST("/leads/:id/assign", handlers.AssignLead)

			admin.GET("/brokers", handlers.ListBrokers)
			admin.GET("/brokers/:id", handlers.GetBroker)
			admin.POST("/brokers", handlers.CreateBroker)
			admin.PUT("/brokers/:id", handlers.UpdateBroker)
			admin.DELETE("/brokers/:id", handlers.DeleteBroker)

			admin.GET("/templates", handlers.ListEmailTemplates)
			admin.GET("/templates/:key", handlers.GetEmailTemplate)
			admin.PUT("/templates", handlers.UpsertEmailTemplate)
			admin.DELETE("/templates/:key", handlers.DeleteEmailTemplate)

			admin.GET("/documents/pending", handlers.ListPendingDocuments)
			admin.GET("/registrations/:registration_id/documents", handlers.ListRegistrationDocuments)
			admin.PUT("/registrations/:registration_id/documents/:type", handlers.ReviewDocument)

			admin.GET("/events", handlers.ListRecentEvents)
			admin.GET("/stats", handlers.AdminStats)
			admin.GET("/export/:data_type", handlers.ExportData)
		}
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}
