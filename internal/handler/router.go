package handler

import (
	"net/http"

	"shootbook/internal/domain/user"
	"shootbook/internal/handler/api"
	"shootbook/internal/handler/middleware"
	"shootbook/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Reservation *api.ReservationHandler
	Payment     *api.PaymentHandler
	Policy      *api.PolicyHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	client := authMiddleware.RequireRole(user.RoleClient)
	provider := authMiddleware.RequireRole(user.RoleProvider)
	admin := authMiddleware.RequireRole(user.RoleAdmin)
	party := authMiddleware.RequireRole(user.RoleClient, user.RoleProvider)

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/policy-templates", Handler: h.Policy.Templates},
			{Method: http.MethodGet, Path: "/providers/:id/policies", Handler: h.Policy.ListByProvider},
		})

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.CreateReservation, Mw: []gin.HandlerFunc{client}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.GetReservation},
				{Method: http.MethodGet, Path: "/:id/transactions", Handler: h.Reservation.ListTransactions},
				{Method: http.MethodGet, Path: "/:id/cancellation", Handler: h.Reservation.PreviewCancellation},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Reservation.Cancel, Mw: []gin.HandlerFunc{party}},
				{Method: http.MethodPost, Path: "/:id/payment", Handler: h.Payment.CreatePayment, Mw: []gin.HandlerFunc{client}},
				{Method: http.MethodPost, Path: "/:id/payment/confirm", Handler: h.Payment.ConfirmPayment, Mw: []gin.HandlerFunc{client}},
				{Method: http.MethodPost, Path: "/:id/transfers/deposit", Handler: h.Payment.TransferDeposit, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Payment.CompleteService, Mw: []gin.HandlerFunc{provider}},
				{Method: http.MethodPost, Path: "/:id/transfers/balance", Handler: h.Payment.TransferBalance, Mw: []gin.HandlerFunc{provider}},
			})
		}

		policies := apiGroup.Group("/policies")
		policies.Use(authMiddleware.RequireAuth(), provider)
		{
			addRoutes(policies, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Policy.Create},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Policy.Update},
				{Method: http.MethodPost, Path: "/:id/default", Handler: h.Policy.SetDefault},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Policy.Delete},
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
