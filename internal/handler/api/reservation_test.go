//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"shootbook/internal/domain/payment"
	"shootbook/internal/domain/user"
	"shootbook/internal/handler/api"
	resdto "shootbook/internal/handler/dto/response"
	"shootbook/internal/pkg/errs"
	"shootbook/internal/usecase/commands"
	"shootbook/internal/usecase/queries"
	"shootbook/tests/common/httptest"
	"shootbook/tests/common/testutil"
	commandsmock "shootbook/tests/mock/commands"
	queriesmock "shootbook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// withActor stands in for the JWT middleware. A nil actor leaves the request anonymous.
func withActor(actor **user.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if *actor != nil {
			c.Set("actor", **actor)
		}
		c.Next()
	}
}

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockPayments *commandsmock.MockPaymentCommands
	mockQueries  *queriesmock.MockReservationQueries
	actor        *user.Actor
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockPayments = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	handler := api.NewReservationHandler(s.mockCommands, s.mockPayments, s.mockQueries)

	s.actor = &user.Actor{ID: uuid.New(), Role: user.RoleClient}
	auth := withActor(&s.actor)

	s.router.POST("/reservations", auth, handler.CreateReservation)
	s.router.GET("/reservations/:id", auth, handler.GetReservation)
	s.router.GET("/reservations/:id/transactions", auth, handler.ListTransactions)
	s.router.GET("/reservations/:id/cancellation", auth, handler.PreviewCancellation)
	s.router.POST("/reservations/:id/cancel", auth, handler.Cancel)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) view() *queries.ReservationView {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return &queries.ReservationView{
		ID:                uuid.New(),
		ClientID:          s.actor.ID,
		ProviderID:        uuid.New(),
		TotalCents:        1000,
		DepositCents:      300,
		BalanceCents:      700,
		DepositPercentage: 30,
		ServiceDate:       now.Add(14 * 24 * time.Hour),
		PaymentStatus:     "pending",
		ServiceStatus:     "confirmed",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func createBody() map[string]any {
	return map[string]any{
		"provider_id":  uuid.New().String(),
		"total_cents":  1000,
		"service_date": "2026-03-16T10:00:00Z",
	}
}

// ================================================================================
// TestCreateReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/reservations"

	s.Run("success: 201 Created on first request", func() {
		key := uuid.New()
		view := s.view()
		s.mockCommands.EXPECT().
			CreateReservation(gomock.Any(), gomock.Any(), *s.actor, key).
			DoAndReturn(func(_ any, req commands.CreateReservationRequest, _ user.Actor, _ uuid.UUID) (*commands.CreateReservationResult, error) {
				s.Equal(int64(1000), req.TotalCents)
				s.Equal(time.UTC, req.ServiceDate.Location())
				return &commands.CreateReservationResult{Reservation: view}, nil
			})

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, createBody(),
			map[string]string{"Idempotency-Key": key.String()}, "")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
		s.Equal(int64(300), body.DepositCents)
		httptest.AssertReplayed(s.T(), rec, false)
	})

	s.Run("success: 200 OK with replay header", func() {
		key := uuid.New()
		s.mockCommands.EXPECT().
			CreateReservation(gomock.Any(), gomock.Any(), gomock.Any(), key).
			Return(&commands.CreateReservationResult{Reservation: s.view(), IsReplayed: true}, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, createBody(),
			map[string]string{"Idempotency-Key": key.String()}, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		httptest.AssertReplayed(s.T(), rec, true)
	})

	s.Run("error: 400 without Idempotency-Key", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createBody(), "")

		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "idempotency_key_required")
	})

	s.Run("error: 400 on malformed Idempotency-Key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, createBody(),
			map[string]string{"Idempotency-Key": "not-a-uuid"}, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid Idempotency-Key format")
	})

	validation := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{name: "missing provider_id", mutate: testutil.Field("provider_id", nil)},
		{name: "missing total_cents", mutate: testutil.Field("total_cents", nil)},
		{name: "zero total_cents", mutate: testutil.Field("total_cents", 0)},
		{name: "deposit percentage above 100", mutate: testutil.Field("deposit_percentage", 101)},
		{name: "missing service_date", mutate: testutil.Field("service_date", nil)},
	}
	for _, tc := range validation {
		s.Run("error: 400 "+tc.name, func() {
			body := testutil.DtoMap(s.T(), createBody(), tc.mutate)

			rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body,
				map[string]string{"Idempotency-Key": uuid.NewString()}, "")

			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
		})
	}

	mapped := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "duplicate request", err: errs.Mark(errs.New("hash mismatch"), errs.ErrDuplicateRequest), status: http.StatusConflict, code: "duplicate_request"},
		{name: "in progress", err: errs.ErrIdempotencyInProgress, status: http.StatusConflict, code: "idempotency_in_progress"},
		{name: "forbidden", err: errs.ErrForbidden, status: http.StatusForbidden, code: "forbidden"},
		{name: "unknown policy", err: errs.ErrPolicyNotFound, status: http.StatusNotFound, code: "policy_not_found"},
		{name: "validation", err: errs.ErrDomainValidation, status: http.StatusUnprocessableEntity, code: "validation_failed"},
		{name: "unexpected", err: errs.New("boom"), status: http.StatusInternalServerError, code: "internal_error"},
	}
	for _, tc := range mapped {
		s.Run("error: "+tc.name, func() {
			s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, createBody(),
				map[string]string{"Idempotency-Key": uuid.NewString()}, "")

			httptest.AssertErrorCode(s.T(), rec, tc.status, tc.code)
		})
	}

	s.Run("error: 401 without actor", func() {
		s.actor = nil

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, createBody(),
			map[string]string{"Idempotency-Key": uuid.NewString()}, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestGetReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	s.Run("success: 200 OK", func() {
		view := s.view()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), *s.actor, view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+view.ID.String(), nil, "")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("pending", body.PaymentStatus)
	})

	s.Run("error: 400 on invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/abc", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 not found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errs.ErrReservationNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+uuid.NewString(), nil, "")

		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "reservation_not_found")
	})
}

func (s *ReservationHandlerTestSuite) TestListTransactions() {
	id := uuid.New()
	s.mockQueries.EXPECT().ListTransactions(gomock.Any(), gomock.Any(), id).Return([]*queries.TransactionView{
		{ID: uuid.New(), ReservationID: id, Type: "deposit_transfer", AmountCents: 300, ExternalID: "tr_1", Status: "completed"},
	}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String()+"/transactions", nil, "")

	var body []resdto.TransactionResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Require().Len(body, 1)
	s.Equal("deposit_transfer", body[0].Type)
	s.Equal(int64(300), body[0].AmountCents)
}

// ================================================================================
// TestPreviewCancellation / TestCancel
// ================================================================================

func (s *ReservationHandlerTestSuite) TestPreviewCancellation() {
	id := uuid.New()

	cases := []struct {
		name   string
		role   user.Role
		query  string
		wantBy payment.CancelledBy
	}{
		{name: "client previews as client", role: user.RoleClient, wantBy: payment.CancelledByClient},
		{name: "client cannot pick the party", role: user.RoleClient, query: "?cancelled_by=provider", wantBy: payment.CancelledByClient},
		{name: "provider previews as provider", role: user.RoleProvider, wantBy: payment.CancelledByProvider},
		{name: "admin picks the party", role: user.RoleAdmin, query: "?cancelled_by=provider", wantBy: payment.CancelledByProvider},
		{name: "admin defaults to client", role: user.RoleAdmin, wantBy: payment.CancelledByClient},
	}
	for _, tc := range cases {
		s.Run("success: "+tc.name, func() {
			s.actor = &user.Actor{ID: uuid.New(), Role: tc.role}
			s.mockQueries.EXPECT().PreviewCancellation(gomock.Any(), *s.actor, id, tc.wantBy).
				Return(&queries.CancellationPreview{
					ReservationID:    id,
					CancelledBy:      tc.wantBy.String(),
					CanCancel:        true,
					RefundPercentage: 50,
					GrossRefundCents: 500,
					FeeCents:         50,
					RefundCents:      450,
					PolicyType:       "moderate",
				}, nil)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String()+"/cancellation"+tc.query, nil, "")

			var body resdto.CancellationPreviewResponse
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
			s.Equal(tc.wantBy.String(), body.CancelledBy)
			s.Equal(int64(450), body.RefundCents)
		})
	}
}

func (s *ReservationHandlerTestSuite) TestCancel() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/cancel"

	s.Run("success: 200 OK with reason", func() {
		s.mockPayments.EXPECT().HandleCancellation(gomock.Any(), commands.CancellationRequest{
			ReservationID: id,
			CancelledBy:   payment.CancelledByClient,
			Reason:        "weather",
		}, *s.actor).Return(&commands.CancellationResult{
			ReservationID:    id,
			PaymentStatus:    payment.PaymentStatusRefunded,
			ServiceStatus:    payment.ServiceStatusCancelled,
			CancelledBy:      payment.CancelledByClient,
			RefundPercentage: 50,
			RefundCents:      450,
			FeeCents:         50,
			RefundID:         "re_1",
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "weather"}, "")

		var body resdto.CancellationResultResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("refunded", body.PaymentStatus)
		s.Equal(int64(450), body.RefundCents)
		s.Equal("re_1", body.RefundID)
	})

	s.Run("success: body is optional", func() {
		s.mockPayments.EXPECT().HandleCancellation(gomock.Any(), commands.CancellationRequest{
			ReservationID: id,
			CancelledBy:   payment.CancelledByClient,
		}, gomock.Any()).Return(&commands.CancellationResult{ReservationID: id, PaymentStatus: payment.PaymentStatusCancelled}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	mapped := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "policy refusal", err: errs.ErrPolicyRefusal, status: http.StatusUnprocessableEntity, code: "policy_refusal"},
		{name: "justification", err: errs.ErrInsufficientJustification, status: http.StatusUnprocessableEntity, code: "insufficient_justification"},
		{name: "settled", err: errs.ErrInvalidTransition, status: http.StatusConflict, code: "invalid_transition"},
		{name: "locked", err: errs.ErrOperationInProgress, status: http.StatusConflict, code: "operation_in_progress"},
		{name: "gateway down", err: errs.ErrGateway, status: http.StatusBadGateway, code: "gateway_error"},
	}
	for _, tc := range mapped {
		s.Run("error: "+tc.name, func() {
			s.mockPayments.EXPECT().HandleCancellation(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "x"}, "")

			httptest.AssertErrorCode(s.T(), rec, tc.status, tc.code)
		})
	}
}
