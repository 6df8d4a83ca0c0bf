package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/devnexus/marketplace-console/internal/api/docs"
	"github.com/devnexus/marketplace-console/internal/api/handler"
	"github.com/devnexus/marketplace-console/internal/api/middleware"
	"github.com/devnexus/marketplace-console/internal/core/ports"
	"github.com/devnexus/marketplace-console/internal/core/service"
)

const metricsSubsystem = "devnexus_console"

// Dependencies is everything the router needs, already constructed by main.
type Dependencies struct {
	Session ports.SessionService
	Wizards ports.WizardManager
	Profile ports.ProfileService
	Catalog ports.CatalogService
	Probes  map[string]handler.Pinger
	Uploads handler.UploadLimits
	Logger  zerolog.Logger
	// Registry receives the HTTP metrics; nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: registerer,
	}))
	e.Use(middleware.PropagateRequestID())

	// --- Health probes, metrics and docs (no session required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Probes)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are backend and token store up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Session routes ---
	sessionHandler := handler.NewSessionHandler(deps.Session)
	session := e.Group("/api/session")
	session.GET("", sessionHandler.Get)
	session.POST("/login", sessionHandler.Login)
	session.POST("/signup", sessionHandler.Signup)
	session.POST("/logout", sessionHandler.Logout)
	session.POST("/refresh", sessionHandler.Refresh)

	// --- Public catalog ---
	catalogHandler := handler.NewCatalogHandler(deps.Catalog)
	e.GET("/api/marketplace", catalogHandler.Marketplace)
	e.GET("/api/marketplace/:id/contact", catalogHandler.Contact)
	e.GET("/api/discover", catalogHandler.Discover)
	e.GET("/api/discover/suggestions", catalogHandler.Suggestions)

	// --- Submission wizard (seller or admin) ---
	wizardHandler := handler.NewWizardHandler(deps.Wizards, deps.Uploads)
	wizard := e.Group("/api/wizard", middleware.Guard(deps.Session, service.SubmitRoles...))
	wizard.POST("", wizardHandler.Open)
	wizard.GET("", wizardHandler.State)
	wizard.PUT("/basic-info", wizardHandler.SetBasicInfo)
	wizard.PUT("/platform", wizardHandler.SetPlatform)
	wizard.PUT("/marketplace", wizardHandler.SetMarketplace)
	wizard.POST("/next", wizardHandler.Next)
	wizard.POST("/back", wizardHandler.Back)
	wizard.POST("/media", wizardHandler.UploadMedia)
	wizard.POST("/confirmation", wizardHandler.OpenConfirmation)
	wizard.DELETE("/confirmation", wizardHandler.DismissConfirmation)
	wizard.POST("/confirm", wizardHandler.Confirm)
	wizard.POST("/cancel", wizardHandler.Cancel)

	// --- Profile (any signed-in user) ---
	signedIn := middleware.Guard(deps.Session, service.AnyRole...)
	profileHandler := handler.NewProfileHandler(deps.Profile, deps.Uploads)
	profile := e.Group("/api/profile", signedIn)
	profile.GET("", profileHandler.Get)
	profile.PUT("", profileHandler.Update)
	profile.DELETE("", profileHandler.Delete)
	profile.GET("/projects/:status", profileHandler.Projects)
	profile.PUT("/interests", profileHandler.UpdateInterests)
	profile.PUT("/password", profileHandler.ChangePassword)
	profile.POST("/avatar", profileHandler.UploadAvatar)
	profile.DELETE("/avatar", profileHandler.DeleteAvatar)

	e.GET("/api/projects/:id", catalogHandler.Project, signedIn)

	return e
}

// requestLogger writes one zerolog line per console request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
