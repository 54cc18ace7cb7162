package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sangamhq/sangam/internal/config"
	"github.com/sangamhq/sangam/internal/middleware"
	"github.com/sangamhq/sangam/internal/modules/handler"
	"github.com/sangamhq/sangam/internal/modules/serializer"
)

type RouterDeps struct {
	Config                 *config.Config
	DB                     *gorm.DB
	Log                    *zap.Logger
	AuthHandler            *handler.AuthHandler
	ProfileHandler         *handler.ProfileHandler
	AccessRequestHandler   *handler.AccessRequestHandler
	InquiryHandler         *handler.InquiryHandler
	PaymentSettingsHandler *handler.PaymentSettingsHandler
	AdminHandler           *handler.AdminHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	// Initialize logger for serializer package
	serializer.SetLogger(d.Log)

	r := gin.New()
	r.Use(gin.Recovery())

	// Add OpenTelemetry middleware if enabled (using configuration system)
	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		// Add trace ID to response header
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	auth := middleware.Auth(d.Config, d.DB)
	optionalAuth := middleware.OptionalAuth(d.Config, d.DB)
	adminOnly := middleware.RequireAdmin(d.Config, d.DB)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "pong"}) })

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", d.AuthHandler.Register)
			authGroup.POST("/login", d.AuthHandler.Login)
			authGroup.GET("/me", auth, d.AuthHandler.Me)
		}

		profiles := v1.Group("/profiles")
		{
			// Browse endpoints are public; the detail route resolves the
			// viewer when a token is attached so the gate can upgrade it
			profiles.GET("", d.ProfileHandler.List)
			profiles.GET("/search", d.ProfileHandler.Search)
			profiles.GET("/featured", d.ProfileHandler.Featured)
			profiles.GET("/recent", d.ProfileHandler.Recent)

			profiles.GET("/me", auth, d.ProfileHandler.GetOwn)
			profiles.PUT("/me", auth, d.ProfileHandler.UpsertOwn)

			profiles.GET("/:id", optionalAuth, d.ProfileHandler.Get)
			profiles.POST("/:id/view", optionalAuth, d.ProfileHandler.RecordView)
			profiles.PUT("/:id", auth, d.ProfileHandler.Update)
			profiles.DELETE("/:id", auth, d.ProfileHandler.Delete)

			profiles.POST("/:id/like", auth, d.ProfileHandler.Like)
			profiles.DELETE("/:id/like", auth, d.ProfileHandler.Unlike)

			profiles.POST("/:id/access-requests", auth, d.AccessRequestHandler.Submit)
			profiles.GET("/:id/access", auth, d.AccessRequestHandler.CheckAccess)

			profiles.POST("/:id/inquiries", auth, d.InquiryHandler.Submit)
		}

		v1.GET("/access-requests", auth, d.AccessRequestHandler.ListOwn)
		v1.GET("/inquiries", auth, d.InquiryHandler.ListOwn)

		v1.GET("/payment-settings", d.PaymentSettingsHandler.Active)

		admin := v1.Group("/admin")
		{
			admin.Use(adminOnly)

			admin.GET("/stats", d.AdminHandler.Stats)

			admin.GET("/users", d.AdminHandler.ListUsers)
			admin.DELETE("/users/:id", d.AdminHandler.DeleteUser)

			admin.POST("/profiles", d.ProfileHandler.CreateByAdmin)

			admin.GET("/access-requests", d.AccessRequestHandler.ListAll)
			admin.PUT("/access-requests/:id/decision", d.AccessRequestHandler.Decide)

			admin.GET("/inquiries", d.InquiryHandler.ListAll)
			admin.PUT("/inquiries/:id", d.InquiryHandler.Update)
			admin.DELETE("/inquiries/:id", d.InquiryHandler.Delete)

			admin.PUT("/payment-settings", d.PaymentSettingsHandler.Update)
		}
	}
	return r
}
