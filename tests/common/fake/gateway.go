//go:build unit || e2e

package fake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"shootbook/internal/usecase/shared"
)

var ErrGatewayDown = errors.New("fake gateway: unavailable")

// Gateway is an in-memory processor. Like a real one it answers a repeated
// idempotency key with the first result instead of moving money twice.
type Gateway struct {
	mu      sync.Mutex
	seq     int
	results map[string]string
	intents map[string]int64

	Transfers []shared.TransferRequest
	Refunds   []shared.RefundRequest
	Intents   []shared.CreateIntentRequest
	// Voided lists the intents cancelled before capture.
	Voided []string

	// failSteps holds idempotency key suffixes that fail until cleared.
	failSteps map[string]error
	// ConfirmStatus overrides the status reported by ConfirmPaymentIntent.
	ConfirmStatus string
}

var _ shared.PaymentGateway = (*Gateway)(nil)

func NewGateway() *Gateway {
	return &Gateway{
		results:   map[string]string{},
		intents:   map[string]int64{},
		failSteps: map[string]error{},
	}
}

// FailStep makes every call whose idempotency key ends in ":"+step fail with err.
func (g *Gateway) FailStep(step string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failSteps[step] = err
}

func (g *Gateway) ClearFailures() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failSteps = map[string]error{}
}

// Reset forgets every recorded call and failure. Ids keep counting so they stay unique.
func (g *Gateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.results = map[string]string{}
	g.intents = map[string]int64{}
	g.failSteps = map[string]error{}
	g.Transfers = nil
	g.Refunds = nil
	g.Intents = nil
	g.Voided = nil
	g.ConfirmStatus = ""
}

func (g *Gateway) failure(key string) error {
	for step, err := range g.failSteps {
		if strings.HasSuffix(key, ":"+step) {
			return err
		}
	}
	return nil
}

func (g *Gateway) next(prefix string) string {
	g.seq++
	return fmt.Sprintf("%s_%04d", prefix, g.seq)
}

func (g *Gateway) CreatePaymentIntent(_ context.Context, req shared.CreateIntentRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failure(req.IdempotencyKey); err != nil {
		return "", err
	}
	if id, ok := g.results[req.IdempotencyKey]; ok {
		return id, nil
	}
	id := g.next("pi")
	g.results[req.IdempotencyKey] = id
	g.intents[id] = req.AmountCents
	g.Intents = append(g.Intents, req)
	return id, nil
}

func (g *Gateway) ConfirmPaymentIntent(_ context.Context, intentID, idempotencyKey string) (shared.ConfirmResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failure(idempotencyKey); err != nil {
		return shared.ConfirmResult{}, err
	}
	amount, ok := g.intents[intentID]
	if !ok {
		return shared.ConfirmResult{}, fmt.Errorf("fake gateway: no such intent %s", intentID)
	}
	status := shared.IntentStatusSucceeded
	if g.ConfirmStatus != "" {
		status = g.ConfirmStatus
	}
	return shared.ConfirmResult{Status: status, CapturedCents: amount}, nil
}

func (g *Gateway) CancelPaymentIntent(_ context.Context, intentID, idempotencyKey string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failure(idempotencyKey); err != nil {
		return err
	}
	if _, ok := g.results[idempotencyKey]; ok {
		return nil
	}
	g.results[idempotencyKey] = intentID
	g.Voided = append(g.Voided, intentID)
	return nil
}

func (g *Gateway) CreateTransfer(_ context.Context, req shared.TransferRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failure(req.IdempotencyKey); err != nil {
		return "", err
	}
	if id, ok := g.results[req.IdempotencyKey]; ok {
		return id, nil
	}
	id := g.next("tr")
	g.results[req.IdempotencyKey] = id
	g.Transfers = append(g.Transfers, req)
	return id, nil
}

func (g *Gateway) CreateRefund(_ context.Context, req shared.RefundRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failure(req.IdempotencyKey); err != nil {
		return "", err
	}
	if id, ok := g.results[req.IdempotencyKey]; ok {
		return id, nil
	}
	id := g.next("re")
	g.results[req.IdempotencyKey] = id
	g.Refunds = append(g.Refunds, req)
	return id, nil
}

// TransferredCents sums the distinct transfers that were executed.
func (g *Gateway) TransferredCents() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	var sum int64
	for _, t := range g.Transfers {
		sum += t.AmountCents
	}
	return sum
}

func (g *Gateway) RefundedCents() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	var sum int64
	for _, r := range g.Refunds {
		sum += r.AmountCents
	}
	return sum
}
