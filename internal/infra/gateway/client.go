package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shootbook/internal/infra/metrics"
	"shootbook/internal/pkg/config"
	"shootbook/internal/pkg/errs"
	"shootbook/internal/usecase/shared"

	"golang.org/x/time/rate"
)

const (
	opCreateIntent  = "create_intent"
	opConfirmIntent = "confirm_intent"
	opCancelIntent  = "cancel_intent"
	opTransfer      = "transfer"
	opRefund        = "refund"
)

// Error is a non-2xx answer from the processor.
type Error struct {
	StatusCode int
	Type       string `json:"type"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("gateway %d: %s", e.StatusCode, e.Message)
}

// Client talks to a Stripe-compatible REST API with form-encoded bodies.
type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
	limiter   *rate.Limiter
}

func NewClient(cfg config.GatewayConfig) *Client {
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	metrics.Register()
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		secretKey: cfg.SecretKey,
		http:      &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RPS), burst),
	}
}

var _ shared.PaymentGateway = (*Client)(nil)

type intentResponse struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	Amount         int64  `json:"amount"`
	AmountReceived int64  `json:"amount_received"`
}

type objectResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (c *Client) CreatePaymentIntent(ctx context.Context, req shared.CreateIntentRequest) (string, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.AmountCents, 10))
	form.Set("currency", req.Currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	if req.ReceiptEmail != "" {
		form.Set("receipt_email", req.ReceiptEmail)
	}
	setMetadata(form, req.Metadata)

	var out intentResponse
	if err := c.post(ctx, opCreateIntent, "/v1/payment_intents", form, req.IdempotencyKey, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) ConfirmPaymentIntent(ctx context.Context, intentID, idempotencyKey string) (shared.ConfirmResult, error) {
	path := "/v1/payment_intents/" + url.PathEscape(intentID) + "/confirm"

	var out intentResponse
	if err := c.post(ctx, opConfirmIntent, path, url.Values{}, idempotencyKey, &out); err != nil {
		return shared.ConfirmResult{}, err
	}
	return shared.ConfirmResult{Status: out.Status, CapturedCents: out.AmountReceived}, nil
}

// CancelPaymentIntent voids an intent that was never captured.
func (c *Client) CancelPaymentIntent(ctx context.Context, intentID, idempotencyKey string) error {
	path := "/v1/payment_intents/" + url.PathEscape(intentID) + "/cancel"
	form := url.Values{}
	form.Set("cancellation_reason", "requested_by_customer")

	var out intentResponse
	return c.post(ctx, opCancelIntent, path, form, idempotencyKey, &out)
}

func (c *Client) CreateTransfer(ctx context.Context, req shared.TransferRequest) (string, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.AmountCents, 10))
	form.Set("currency", req.Currency)
	form.Set("destination", req.DestinationAccountID)
	if req.SourceIntentID != "" {
		form.Set("transfer_group", req.SourceIntentID)
	}
	setMetadata(form, req.Metadata)

	var out objectResponse
	if err := c.post(ctx, opTransfer, "/v1/transfers", form, req.IdempotencyKey, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) CreateRefund(ctx context.Context, req shared.RefundRequest) (string, error) {
	form := url.Values{}
	form.Set("payment_intent", req.IntentID)
	form.Set("amount", strconv.FormatInt(req.AmountCents, 10))
	if req.Reason != "" {
		form.Set("reason", req.Reason)
	}
	setMetadata(form, req.Metadata)

	var out objectResponse
	if err := c.post(ctx, opRefund, "/v1/refunds", form, req.IdempotencyKey, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func setMetadata(form url.Values, md map[string]string) {
	for k, v := range md {
		form.Set("metadata["+k+"]", v)
	}
}

func (c *Client) post(ctx context.Context, op, path string, form url.Values, idempotencyKey string, out any) (err error) {
	started := time.Now()
	defer func() { metrics.ObserveGateway(op, started, err) }()

	if err := c.limiter.Wait(ctx); err != nil {
		return errs.Wrap(err, "gateway rate limiter")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return errs.Wrap(err, "build gateway request")
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.Wrapf(err, "gateway %s", op)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errs.Wrap(err, "read gateway response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		gwErr := &Error{StatusCode: resp.StatusCode}
		var envelope struct {
			Error *Error `json:"error"`
		}
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != nil {
			gwErr.Type = envelope.Error.Type
			gwErr.Code = envelope.Error.Code
			gwErr.Message = envelope.Error.Message
		} else {
			gwErr.Message = http.StatusText(resp.StatusCode)
		}
		slog.WarnContext(ctx, "gateway request rejected",
			"operation", op,
			"status", resp.StatusCode,
			"code", gwErr.Code)
		return errs.WithStack(gwErr)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errs.Wrap(err, "decode gateway response")
	}
	return nil
}
