package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stayflow/rental-marketplace/internal/api/handler"
	"github.com/stayflow/rental-marketplace/internal/api/middleware"
	"github.com/stayflow/rental-marketplace/internal/core/authz"
	"github.com/stayflow/rental-marketplace/internal/core/service"
	"github.com/stayflow/rental-marketplace/internal/core/token"
	"github.com/stayflow/rental-marketplace/internal/infrastructure/config"
	mongodb "github.com/stayflow/rental-marketplace/internal/infrastructure/db/mongo"
	redisdb "github.com/stayflow/rental-marketplace/internal/infrastructure/db/redis"
	"github.com/stayflow/rental-marketplace/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with every route bound to its enforcement
// mode, and returns the reconciliation dispatcher for the caller to start.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	placeRepo := mongodb.NewPlaceRepository(db)
	bookingRepo := mongodb.NewBookingRepository(db)
	refundRepo := mongodb.NewRefundRepository(db)
	inquiryRepo := mongodb.NewInquiryRepository(db)
	feedbackRepo := mongodb.NewFeedbackRepository(db)

	// --- Services ---
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL())
	marker := redisdb.NewReconcileMarker(rdb)
	supportService := service.NewSupportService(refundRepo, inquiryRepo, feedbackRepo, userRepo, marker, log)
	authService := service.NewAuthService(userRepo, tokens, cfg.AdminSetupCode, log)
	placeService := service.NewPlaceService(placeRepo, log)
	bookingService := service.NewBookingService(bookingRepo, placeRepo, log)
	dashboardService := service.NewDashboardService(userRepo, placeRepo, bookingRepo, refundRepo, inquiryRepo, feedbackRepo)

	dispatcher := queue.NewDispatcher(0, supportService, log)
	authService.SetReconciler(dispatcher)

	// --- Handlers ---
	userHandler := handler.NewUserHandler(authService, dashboardService, int(cfg.TokenTTL().Seconds()))
	placeHandler := handler.NewPlaceHandler(placeService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	supportHandler := handler.NewSupportHandler(supportService)
	guardHandler := handler.NewGuardHandler()

	// --- Enforcement modes ---
	auth := middleware.NewAuthenticator(tokens, userRepo)
	optional := auth.Enforce(authz.OptionalAuth)
	authenticated := auth.Enforce(authz.RequireAuthenticated)
	customer := auth.Enforce(authz.RequireCustomer)
	admin := auth.Enforce(authz.RequireAdmin)

	// --- Users ---
	e.POST("/user/register", userHandler.Register)
	e.POST("/user/login", userHandler.Login)
	e.POST("/user/google/login", userHandler.GoogleLogin)
	e.POST("/user/admin/login", userHandler.AdminLogin)
	e.POST("/user/admin/register", userHandler.AdminRegister)
	e.POST("/user/admin/create", userHandler.AdminCreate, admin)
	e.GET("/user/profile", userHandler.Profile, optional)
	e.POST("/user/logout", userHandler.Logout)
	e.GET("/user/admin/dashboard", userHandler.Dashboard, admin)

	// --- Route guard mirror (advisory only) ---
	e.GET("/auth/guard/:route", guardHandler.Check, optional)

	// --- Places ---
	e.GET("/places", placeHandler.List)
	e.GET("/places/:id", placeHandler.Get)
	e.GET("/places/search/:key", placeHandler.Search)
	e.POST("/places/user/add", placeHandler.Create, authenticated)
	e.PUT("/places/user/update", placeHandler.Update, authenticated)
	e.GET("/places/user/list", placeHandler.ListMine, authenticated)
	e.GET("/places/admin/list", placeHandler.AdminList, admin)
	e.DELETE("/places/admin/:id", placeHandler.AdminDelete, admin)

	// --- Bookings ---
	e.POST("/bookings", bookingHandler.Create, customer)
	e.GET("/bookings", bookingHandler.ListMine, customer)
	e.GET("/bookings/admin/all", bookingHandler.AdminList, admin)

	// --- Refunds ---
	e.POST("/refunds", supportHandler.SubmitRefund, optional)
	e.GET("/refunds", supportHandler.ListRefunds, authenticated)
	e.GET("/refunds/admin/all", supportHandler.AdminListRefunds, admin)
	e.PUT("/refunds/admin/:id/process", supportHandler.ProcessRefund, admin)

	// --- Inquiries ---
	e.POST("/inquiries", supportHandler.SubmitInquiry, optional)
	e.GET("/inquiries", supportHandler.ListInquiries, authenticated)
	e.GET("/inquiries/admin/all", supportHandler.AdminListInquiries, admin)
	e.PUT("/inquiries/admin/:id/respond", supportHandler.RespondInquiry, admin)

	// --- Feedback ---
	e.POST("/feedback", supportHandler.SubmitFeedback, optional)
	e.GET("/feedback", supportHandler.ListFeedback, authenticated)
	e.GET("/feedback/admin/all", supportHandler.AdminListFeedback, admin)
	e.PUT("/feedback/admin/:id/respond", supportHandler.RespondFeedback, admin)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, dispatcher
}
