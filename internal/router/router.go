package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RogansDev/romedicals-api/internal/authz"
	"github.com/RogansDev/romedicals-api/internal/config"
	"github.com/RogansDev/romedicals-api/internal/handler"
	appointmenthandler "github.com/RogansDev/romedicals-api/internal/handler/appointment"
	authhandler "github.com/RogansDev/romedicals-api/internal/handler/auth"
	clinicalnotehandler "github.com/RogansDev/romedicals-api/internal/handler/clinicalnote"
	diagnosishandler "github.com/RogansDev/romedicals-api/internal/handler/diagnosis"
	documenthandler "github.com/RogansDev/romedicals-api/internal/handler/document"
	evolutionhandler "github.com/RogansDev/romedicals-api/internal/handler/evolution"
	patienthandler "github.com/RogansDev/romedicals-api/internal/handler/patient"
	prescriptionhandler "github.com/RogansDev/romedicals-api/internal/handler/prescription"
	ripshandler "github.com/RogansDev/romedicals-api/internal/handler/rips"
	specialtyhandler "github.com/RogansDev/romedicals-api/internal/handler/specialty"
	userhandler "github.com/RogansDev/romedicals-api/internal/handler/user"
	"github.com/RogansDev/romedicals-api/internal/middleware"
	"github.com/RogansDev/romedicals-api/pkg/metrics"
)

// Handlers collects every route-owning handler the router mounts.
type Handlers struct {
	Auth         *authhandler.Handler
	User         *userhandler.Handler
	Patient      *patienthandler.Handler
	Appointment  *appointmenthandler.Handler
	ClinicalNote *clinicalnotehandler.Handler
	Evolution    *evolutionhandler.Handler
	Prescription *prescriptionhandler.Handler
	RIPS         *ripshandler.Handler
	Specialty    *specialtyhandler.Handler
	Diagnosis    *diagnosishandler.Handler
	Document     *documenthandler.Handler
	Health       *handler.HealthHandler
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// "role" restricts a field to the closed role enumeration.
		v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return authz.Role(fl.Field().String()).Valid()
		})
	}
}

// New assembles the engine: global middleware, health and metrics
// endpoints, the public auth routes and the guarded /api/v1 surface.
func New(cfg *config.Config, m *metrics.Metrics, authMw *middleware.AuthMiddleware, h *Handlers) *gin.Engine {
	engine := gin.New()

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(m),
		middleware.CORS(corsConfig),
		rateLimiter.RateLimit(),
		middleware.Timeout(30*time.Second),
	)

	h.Health.RegisterRoutes(engine)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")

	h.Auth.RegisterRoutes(api, authMw)

	protected := api.Group("")
	protected.Use(authMw.Authenticate())
	{
		h.User.RegisterRoutes(protected, authMw)
		h.Patient.RegisterRoutes(protected, authMw)
		h.Appointment.RegisterRoutes(protected, authMw)
		h.ClinicalNote.RegisterRoutes(protected, authMw)
		h.Evolution.RegisterRoutes(protected, authMw)
		h.Prescription.RegisterRoutes(protected, authMw)
		h.RIPS.RegisterRoutes(protected, authMw)
		h.Specialty.RegisterRoutes(protected, authMw)
		h.Diagnosis.RegisterRoutes(protected, authMw)
		h.Document.RegisterRoutes(protected, authMw)
	}

	return engine
}
