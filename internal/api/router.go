package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/librarydesk/console/docs"
	"github.com/librarydesk/console/internal/api/handler"
	"github.com/librarydesk/console/internal/api/middleware"
	"github.com/librarydesk/console/internal/api/render"
	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/service"
	"github.com/librarydesk/console/internal/infrastructure/http/handlers"
)

// Deps is everything the router needs to build its handlers.
type Deps struct {
	Log           zerolog.Logger
	SessionSecret string
	SecureCookie  bool
	// Development exposes the swagger UI.
	Development bool

	Sessions     *service.SessionService
	Catalog      *service.CatalogService
	Fines        *service.FineService
	Reservations *service.ReservationService
	Members      *service.MemberService
	Admins       *service.AdminService
	Borrow       *service.BorrowService
	Reports      *service.ReportService
	Dashboards   *service.DashboardService

	// Health maps dependency names to readiness probes.
	Health map[string]handlers.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	renderer, err := render.New()
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("librarydesk"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Sessions, d.SessionSecret, d.SecureCookie, d.Log)
	dashboardHandler := handler.NewDashboardHandler(d.Dashboards)
	bookHandler := handler.NewBookHandler(d.Catalog, d.Reservations)
	fineHandler := handler.NewFineHandler(d.Fines)
	reservationHandler := handler.NewReservationHandler(d.Reservations)
	memberHandler := handler.NewMemberHandler(d.Members)
	adminHandler := handler.NewAdminHandler(d.Admins)
	deskHandler := handler.NewDeskHandler(d.Borrow)
	reportHandler := handler.NewReportHandler(d.Reports)
	apiHandler := handler.NewAPIHandler(d.Catalog)

	gate := middleware.Session(d.SessionSecret, d.Sessions, d.Log)

	// --- Public routes ---
	e.GET("/login", authHandler.ShowLogin)
	e.POST("/login", authHandler.Login)
	e.GET("/admin/login", authHandler.ShowAdminLogin)
	e.POST("/admin/login", authHandler.AdminLogin)
	e.GET("/register", authHandler.ShowRegister)
	e.POST("/register", authHandler.Register)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Health)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	if d.Development {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// --- Signed-in routes ---
	e.GET("/", authHandler.Home, gate)
	e.POST("/logout", authHandler.Logout, gate)

	admin := e.Group("/admin", gate, middleware.RBAC(d.Log, domain.RoleAdmin))
	admin.GET("/dashboard", dashboardHandler.Admin)
	admin.GET("/admins", adminHandler.List)
	admin.POST("/admins", adminHandler.Create)
	admin.GET("/admins/:id/edit", adminHandler.Edit)
	admin.POST("/admins/:id/edit", adminHandler.Update)
	admin.POST("/admins/:id/status", adminHandler.SetStatus)
	admin.POST("/admins/:id/delete", adminHandler.Delete)
	admin.GET("/reports", reportHandler.Show)

	books := e.Group("/librarian/books", gate, middleware.RBAC(d.Log, domain.RoleAdmin, domain.RoleLibrarian))
	books.GET("", bookHandler.List)
	books.POST("", bookHandler.Create)
	books.GET("/:id/edit", bookHandler.Edit)
	books.POST("/:id/edit", bookHandler.Update)
	books.POST("/:id/delete", bookHandler.Delete)

	members := e.Group("/members", gate, middleware.RBAC(d.Log, domain.RoleAdmin, domain.RoleLibrarian))
	members.GET("", memberHandler.List)
	members.POST("", memberHandler.Create)
	members.GET("/:id/edit", memberHandler.Edit)
	members.POST("/:id/edit", memberHandler.Update)
	members.POST("/:id/delete", memberHandler.Delete)

	librarian := e.Group("/librarian", gate, middleware.RBAC(d.Log, domain.RoleLibrarian))
	librarian.GET("/dashboard", dashboardHandler.Librarian)
	librarian.GET("/desk", deskHandler.Show)
	librarian.POST("/desk/lend", deskHandler.Lend)
	librarian.POST("/desk/return", deskHandler.Return)
	librarian.GET("/reservations", reservationHandler.List)
	librarian.POST("/reservations/:id/transition", reservationHandler.Transition)
	librarian.GET("/fines", fineHandler.List)
	librarian.POST("/fines", fineHandler.Create)
	librarian.POST("/fines/:id/pay", fineHandler.Pay)
	librarian.POST("/fines/:id/waive", fineHandler.Waive)

	member := e.Group("/member", gate, middleware.RBAC(d.Log, domain.RoleMember))
	member.GET("/dashboard", dashboardHandler.Member)
	member.GET("/catalog", bookHandler.Catalog)
	member.POST("/books/:id/reserve", bookHandler.Reserve)
	member.GET("/reservations", reservationHandler.Mine)
	member.POST("/reservations/:id/cancel", reservationHandler.Cancel)
	member.GET("/fines", fineHandler.Mine)

	// --- JSON API ---
	v1 := e.Group("/api/v1", middleware.SessionAPI(d.SessionSecret, d.Sessions, d.Log))
	v1.GET("/session", apiHandler.Session)
	v1.GET("/books", apiHandler.Books)

	return e, nil
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
