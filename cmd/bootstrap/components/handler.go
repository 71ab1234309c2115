package components

import (
	"shootbook/internal/handler"
	"shootbook/internal/handler/api"
	"shootbook/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewPaymentHandler,
		api.NewPolicyHandler,
		middleware.NewAuthMiddleware,
		func(r *api.ReservationHandler, p *api.PaymentHandler, pol *api.PolicyHandler) handler.Handlers {
			return handler.Handlers{Reservation: r, Payment: p, Policy: pol}
		},
	),
	fx.Invoke(handler.NewRouter),
)
