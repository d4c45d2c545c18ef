package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"padel-club-api/internal/handler/api"
	"padel-club-api/internal/handler/middleware"
	"padel-club-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Availability *api.AvailabilityHandler
	Booking      *api.BookingHandler
	Payment      *api.PaymentHandler
	Cashbox      *api.CashboxHandler
	Recurring    *api.RecurringHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.Recovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		// Public surface: the customer-facing web checkout and the payment
		// provider's webhook hit these without credentials.
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/availability", Handler: h.Availability.GetAvailability},
			{Method: http.MethodPost, Path: "/payments/webhook", Handler: h.Payment.Webhook},
			{Method: http.MethodPost, Path: "/payments/pending", Handler: h.Payment.CreatePendingPayment},
			{Method: http.MethodPost, Path: "/sales/pending", Handler: h.Payment.CreatePendingSale},
		})

		operator := apiGroup.Group("")
		operator.Use(authMiddleware.RequireOperator())
		{
			addRoutes(operator, []route{
				{Method: http.MethodGet, Path: "/courts", Handler: h.Booking.ListCourts},

				{Method: http.MethodPost, Path: "/bookings", Handler: h.Booking.CreateBookings},
				{Method: http.MethodGet, Path: "/bookings", Handler: h.Booking.ListBookings},
				{Method: http.MethodGet, Path: "/bookings/:id", Handler: h.Booking.GetBooking},
				{Method: http.MethodDelete, Path: "/bookings/:id", Handler: h.Booking.CancelBooking},

				{Method: http.MethodPost, Path: "/cashbox/sessions", Handler: h.Cashbox.StartSession},
				{Method: http.MethodPost, Path: "/cashbox/sessions/close", Handler: h.Cashbox.CloseSession},
				{Method: http.MethodGet, Path: "/cashbox/sessions/current", Handler: h.Cashbox.GetCurrentSession},
				{Method: http.MethodGet, Path: "/cashbox/sessions/last", Handler: h.Cashbox.GetLastClosedSession},
				{Method: http.MethodGet, Path: "/cashbox/sessions/:id/movements", Handler: h.Cashbox.ListMovements},
				{Method: http.MethodPost, Path: "/cashbox/movements", Handler: h.Cashbox.RegisterMovement},

				{Method: http.MethodPost, Path: "/recurring", Handler: h.Recurring.CreateTemplate},
				{Method: http.MethodGet, Path: "/recurring", Handler: h.Recurring.ListTemplates},
				{Method: http.MethodGet, Path: "/recurring/:id", Handler: h.Recurring.GetTemplate},
				{Method: http.MethodPut, Path: "/recurring/:id", Handler: h.Recurring.UpdateTemplate},
				{Method: http.MethodDelete, Path: "/recurring/:id", Handler: h.Recurring.DeactivateTemplate},
			})

			admin := operator.Group("")
			admin.Use(authMiddleware.RequireRole(middleware.RoleAdmin))
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/recurring/expand", Handler: h.Recurring.Expand},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
