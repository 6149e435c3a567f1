package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/wellness-booking/internal/audit"
	"github.com/BruksfildServices01/wellness-booking/internal/config"
	"github.com/BruksfildServices01/wellness-booking/internal/domain/availability"
	"github.com/BruksfildServices01/wellness-booking/internal/handlers"
	"github.com/BruksfildServices01/wellness-booking/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/wellness-booking/internal/infra/repository"
	"github.com/BruksfildServices01/wellness-booking/internal/middleware"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
	"github.com/BruksfildServices01/wellness-booking/internal/telegram"
	ucAppointment "github.com/BruksfildServices01/wellness-booking/internal/usecase/appointment"
	ucSchedule "github.com/BruksfildServices01/wellness-booking/internal/usecase/schedule"
)

// Deps are the process-wide singletons built in main. Redis and Photos may
// be nil; the features relying on them degrade instead of failing.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
	Redis  *redis.Client
	Photos handlers.PhotoStore
	Audit  audit.Recorder
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	scheduleRepo := infraRepo.NewScheduleGormRepository(d.DB)

	var availabilityCache availability.Cache
	var replayGuard telegram.ReplayGuard
	var pinger handlers.Pinger
	if d.Redis != nil {
		availabilityCache = cache.NewAvailabilityCache(d.Redis, cfg.AvailabilityCacheTTL, d.Log)
		replayGuard = cache.NewReplayGuard(d.Redis)
		pinger = cache.NewPinger(d.Redis)
	}

	var tgVerifier handlers.InitDataVerifier
	if cfg.TelegramBotToken != "" {
		tgVerifier = telegram.NewVerifier(
			cfg.TelegramBotToken,
			cfg.TelegramAuthMaxAge,
			replayGuard,
			cfg.TelegramReplayGuard,
		)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	getAvailabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		scheduleRepo,
		appointmentRepo,
		appointmentRepo,
		availabilityCache,
		ucAppointment.AvailabilitySettings{
			StepMinutes:            cfg.SlotStepMinutes,
			DefaultDurationMinutes: cfg.DefaultServiceMinutes,
		},
		d.Log,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		getAvailabilityUC,
		d.Audit,
		d.Log,
	)

	changeStatusUC := ucAppointment.NewChangeAppointmentStatus(
		appointmentRepo,
		availabilityCache,
		d.Audit,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)

	manageScheduleUC := ucSchedule.NewManage(
		appointmentRepo,
		scheduleRepo,
		availabilityCache,
		d.Audit,
		d.Log,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.DB, pinger)
	authHandler := handlers.NewAuthHandler(d.DB, cfg, tgVerifier)
	publicHandler := handlers.NewPublicHandler(d.DB, getAvailabilityUC, createAppointmentUC)
	meHandler := handlers.NewMeHandler(d.DB, listAppointmentsUC, changeStatusUC, createAppointmentUC)
	specialistHandler := handlers.NewSpecialistHandler(d.DB, availabilityCache, d.Photos, d.Audit)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Audit)
	scheduleHandler := handlers.NewScheduleHandler(manageScheduleUC)
	appointmentHandler := handlers.NewAppointmentHandler(listAppointmentsUC, changeStatusUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	r.GET("/health", healthHandler.Check)

	api := r.Group("/api")

	// ======================================================
	// AUTH
	// ======================================================
	limiter := middleware.NewIPRateLimiter(cfg.PublicRatePerMin)

	auth := api.Group("/auth", middleware.RateLimit(limiter))
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/telegram", authHandler.Telegram)
	}

	// ======================================================
	// PUBLIC
	// ======================================================
	public := api.Group("/public", middleware.RateLimit(limiter))
	{
		public.GET("/specialists", publicHandler.ListSpecialists)
		public.GET("/specialists/:id/services", publicHandler.ListServices)
		public.GET("/specialists/:id/availability", publicHandler.Availability)
		public.POST(
			"/specialists/:id/appointments",
			middleware.OptionalAuth(cfg),
			publicHandler.CreateAppointment,
		)
	}

	// ======================================================
	// AUTHENTICATED USER
	// ======================================================
	me := api.Group("/me", middleware.AuthMiddleware(cfg))
	{
		me.GET("", meHandler.GetMe)
		me.GET("/appointments", meHandler.Appointments)
		me.POST("/appointments", meHandler.CreateAppointment)
		me.PATCH("/appointments/:id/cancel", meHandler.CancelAppointment)
	}

	// ======================================================
	// ADMIN
	// ======================================================
	admin := api.Group("/admin",
		middleware.AuthMiddleware(cfg),
		middleware.RequireRole(models.RoleAdmin),
	)
	{
		admin.GET("/specialists", specialistHandler.List)
		admin.POST("/specialists", specialistHandler.Create)
		admin.PATCH("/specialists/:id", specialistHandler.Update)
		admin.POST("/specialists/:id/photo", specialistHandler.UploadPhoto)

		admin.GET("/specialists/:id/services", serviceHandler.List)
		admin.POST("/specialists/:id/services", serviceHandler.Create)
		admin.PATCH("/specialists/:id/services/:serviceID", serviceHandler.Update)

		admin.GET("/specialists/:id/schedule", scheduleHandler.Get)
		admin.PUT("/specialists/:id/schedule", scheduleHandler.Update)
		admin.POST("/specialists/:id/vacations", scheduleHandler.AddVacation)
		admin.DELETE("/specialists/:id/vacations/:vacationID", scheduleHandler.DeleteVacation)

		admin.GET("/specialists/:id/appointments", appointmentHandler.ListByDate)
		admin.GET("/specialists/:id/appointments/month", appointmentHandler.ListByMonth)
		admin.PATCH("/appointments/:id/:action", appointmentHandler.ChangeStatus)

		admin.GET("/audit-logs", auditLogsHandler.List)
	}
}
