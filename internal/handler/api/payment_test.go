//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"shootbook/internal/domain/payment"
	"shootbook/internal/domain/user"
	"shootbook/internal/handler/api"
	resdto "shootbook/internal/handler/dto/response"
	"shootbook/internal/handler/httperr"
	"shootbook/internal/pkg/errs"
	"shootbook/internal/usecase/commands"
	"shootbook/tests/common/httptest"
	commandsmock "shootbook/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockCmds *commandsmock.MockPaymentCommands
	actor    *user.Actor
	resID    uuid.UUID
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCmds = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	handler := api.NewPaymentHandler(s.mockCmds)

	s.actor = &user.Actor{ID: uuid.New(), Role: user.RoleClient}
	s.resID = uuid.New()
	auth := withActor(&s.actor)

	s.router.POST("/reservations/:id/payment", auth, handler.CreatePayment)
	s.router.POST("/reservations/:id/payment/confirm", auth, handler.ConfirmPayment)
	s.router.POST("/reservations/:id/transfers/deposit", auth, handler.TransferDeposit)
	s.router.POST("/reservations/:id/transfers/balance", auth, handler.TransferBalance)
	s.router.POST("/reservations/:id/complete", auth, handler.CompleteService)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func (s *PaymentHandlerTestSuite) path(suffix string) string {
	return "/reservations/" + s.resID.String() + suffix
}

func (s *PaymentHandlerTestSuite) result(status payment.PaymentStatus) *commands.PaymentStepResult {
	return &commands.PaymentStepResult{
		ReservationID:   s.resID,
		PaymentStatus:   status,
		ServiceStatus:   payment.ServiceStatusConfirmed,
		PaymentIntentID: "pi_1",
		TotalCents:      1000,
		DepositCents:    300,
		BalanceCents:    700,
	}
}

func (s *PaymentHandlerTestSuite) TestCreatePayment() {
	providerID := uuid.New()

	s.Run("success: 201 Created", func() {
		pct := 40.0
		s.mockCmds.EXPECT().CreateBookingPayment(gomock.Any(), commands.CreateBookingPaymentRequest{
			ReservationID:     s.resID,
			ProviderID:        providerID,
			DepositPercentage: &pct,
			PayerEmail:        "client@example.com",
		}, *s.actor).Return(s.result(payment.PaymentStatusIntentCreated), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.path("/payment"), map[string]any{
			"provider_id":        providerID,
			"deposit_percentage": 40,
			"payer_email":        "client@example.com",
		}, "")

		var body resdto.PaymentStepResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("intent_created", body.PaymentStatus)
		s.Equal("pi_1", body.PaymentIntentID)
		s.False(body.Replayed)
	})

	s.Run("success: 200 OK when the intent already exists", func() {
		res := s.result(payment.PaymentStatusIntentCreated)
		res.IsReplayed = true
		s.mockCmds.EXPECT().CreateBookingPayment(gomock.Any(), gomock.Any(), gomock.Any()).Return(res, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.path("/payment"), map[string]any{"provider_id": providerID}, "")

		var body resdto.PaymentStepResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Replayed)
	})

	s.Run("error: 400 without provider_id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.path("/payment"), map[string]any{"total_cents": 1000}, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 400 on invalid email", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.path("/payment"), map[string]any{
			"provider_id": providerID,
			"payer_email": "nope",
		}, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 502 on gateway failure", func() {
		s.mockCmds.EXPECT().CreateBookingPayment(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("connection refused"), errs.ErrGateway))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.path("/payment"), map[string]any{"provider_id": providerID}, "")

		httptest.AssertErrorCode(s.T(), rec, http.StatusBadGateway, "gateway_error")
	})
}

func (s *PaymentHandlerTestSuite) TestConfirmPayment() {
	s.Run("success: 200 OK", func() {
		s.mockCmds.EXPECT().ConfirmPayment(gomock.Any(), commands.ConfirmPaymentRequest{
			ReservationID: s.resID,
			IntentID:      "pi_1",
		}, *s.actor).Return(s.result(payment.PaymentStatusDepositPaid), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.path("/payment/confirm"), map[string]any{"payment_intent_id": " pi_1 "}, "")

		var body resdto.PaymentStepResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("deposit_paid", body.PaymentStatus)
	})

	s.Run("error: 400 without intent id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.path("/payment/confirm"), map[string]any{}, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	mapped := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "intent mismatch", err: errs.ErrIntentMismatch, status: http.StatusConflict, code: "intent_mismatch"},
		{name: "not captured", err: errs.ErrPaymentNotCaptured, status: http.StatusUnprocessableEntity, code: "payment_not_captured"},
		{name: "no payout account", err: errs.ErrMissingPayoutAccount, status: http.StatusUnprocessableEntity, code: "missing_payout_account"},
		{name: "deposit pending", err: errs.ErrDepositTransferPending, status: http.StatusBadGateway, code: "deposit_transfer_pending"},
	}
	for _, tc := range mapped {
		s.Run("error: "+tc.name, func() {
			s.mockCmds.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.path("/payment/confirm"), map[string]any{"payment_intent_id": "pi_1"}, "")

			httptest.AssertErrorCode(s.T(), rec, tc.status, tc.code)
		})
	}

	pending := []struct {
		name  string
		cause error
		code  string
	}{
		{name: "no payout account", cause: errs.ErrMissingPayoutAccount, code: "missing_payout_account"},
		{name: "gateway down", cause: errs.ErrGateway, code: "gateway_error"},
	}
	for _, tc := range pending {
		s.Run("error: captured but deposit blocked by "+tc.name, func() {
			err := errs.Mark(errs.Mark(errs.New("deposit failed"), tc.cause), errs.ErrDepositTransferPending)
			s.mockCmds.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, err)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.path("/payment/confirm"), map[string]any{"payment_intent_id": "pi_1"}, "")

			httptest.AssertErrorCode(s.T(), rec, http.StatusBadGateway, "deposit_transfer_pending")
			var detail httperr.DepositPendingDetail
			httptest.DecodeErrorDetail(s.T(), rec, &detail)
			s.Equal("captured", detail.PaymentStatus)
			s.Equal(tc.code, detail.Cause)
		})
	}
}

func (s *PaymentHandlerTestSuite) TestSteps() {
	steps := []struct {
		name   string
		suffix string
		expect func(id uuid.UUID, actor user.Actor) *gomock.Call
		status payment.PaymentStatus
	}{
		{
			name:   "deposit transfer",
			suffix: "/transfers/deposit",
			expect: func(id uuid.UUID, actor user.Actor) *gomock.Call {
				return s.mockCmds.EXPECT().TransferDeposit(gomock.Any(), id, actor)
			},
			status: payment.PaymentStatusDepositPaid,
		},
		{
			name:   "balance transfer",
			suffix: "/transfers/balance",
			expect: func(id uuid.UUID, actor user.Actor) *gomock.Call {
				return s.mockCmds.EXPECT().TransferBalance(gomock.Any(), id, actor)
			},
			status: payment.PaymentStatusSettled,
		},
		{
			name:   "complete service",
			suffix: "/complete",
			expect: func(id uuid.UUID, actor user.Actor) *gomock.Call {
				return s.mockCmds.EXPECT().CompleteService(gomock.Any(), id, actor)
			},
			status: payment.PaymentStatusDepositPaid,
		},
	}

	for _, tc := range steps {
		s.Run("success: "+tc.name, func() {
			tc.expect(s.resID, *s.actor).Return(s.result(tc.status), nil)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.path(tc.suffix), nil, "")

			var body resdto.PaymentStepResponse
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
			s.Equal(tc.status.String(), body.PaymentStatus)
		})

		s.Run("error: "+tc.name+" on a busy reservation", func() {
			tc.expect(s.resID, *s.actor).Return(nil, errs.Wrap(errs.ErrOperationInProgress, "lock busy"))

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.path(tc.suffix), nil, "")

			httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "operation_in_progress")
		})
	}

	s.Run("error: service not completed", func() {
		s.mockCmds.EXPECT().TransferBalance(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errs.ErrServiceNotCompleted)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.path("/transfers/balance"), nil, "")

		httptest.AssertErrorCode(s.T(), rec, http.StatusUnprocessableEntity, "service_not_completed")
	})

	s.Run("error: 400 on invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/xyz/complete", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}
