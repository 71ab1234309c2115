//go:build unit || e2e

package fake

import (
	"context"
	"sync"
	"time"

	"shootbook/internal/domain/cancellation"
	"shootbook/internal/domain/payment"
	"shootbook/internal/infra"
	"shootbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// UoW is an in-memory shared.UnitOfWork. Within runs on a copy of the state
// and publishes it only when fn returns nil, so a failed step leaves no trace.
type UoW struct {
	mu    sync.Mutex
	state *state
	now   func() time.Time

	failNext error
}

var _ shared.UnitOfWork = (*UoW)(nil)

type idemKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

type idemRecord struct {
	shared.IdempotencyRecord
	Endpoint string
}

type state struct {
	reservations map[uuid.UUID]payment.ReconstructParams
	transactions map[uuid.UUID][]*payment.Transaction
	policies     map[uuid.UUID]cancellation.ReconstructParams
	accounts     map[uuid.UUID]string
	idempotency  map[idemKey]idemRecord
	outbox       []shared.OutboxEvent
}

func NewUoW(now func() time.Time) *UoW {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &UoW{
		now: now,
		state: &state{
			reservations: map[uuid.UUID]payment.ReconstructParams{},
			transactions: map[uuid.UUID][]*payment.Transaction{},
			policies:     map[uuid.UUID]cancellation.ReconstructParams{},
			accounts:     map[uuid.UUID]string{},
			idempotency:  map[idemKey]idemRecord{},
		},
	}
}

func (s *state) clone() *state {
	c := &state{
		reservations: make(map[uuid.UUID]payment.ReconstructParams, len(s.reservations)),
		transactions: make(map[uuid.UUID][]*payment.Transaction, len(s.transactions)),
		policies:     make(map[uuid.UUID]cancellation.ReconstructParams, len(s.policies)),
		accounts:     make(map[uuid.UUID]string, len(s.accounts)),
		idempotency:  make(map[idemKey]idemRecord, len(s.idempotency)),
		outbox:       append([]shared.OutboxEvent(nil), s.outbox...),
	}
	for k, v := range s.reservations {
		c.reservations[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = append([]*payment.Transaction(nil), v...)
	}
	for k, v := range s.policies {
		c.policies[k] = v
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.idempotency {
		c.idempotency[k] = v
	}
	return c
}

// FailNextWithin makes the next Within return err without applying anything.
func (u *UoW) FailNextWithin(err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.failNext = err
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.failNext; err != nil {
		u.failNext = nil
		return err
	}

	work := u.state.clone()
	if err := fn(ctx, &fakeTx{st: work, now: u.now}); err != nil {
		return err
	}
	u.state = work
	return nil
}

func (u *UoW) CommandReads() shared.CommandReads {
	return &lockedReads{u: u}
}

// Seeding and inspection helpers.

func (u *UoW) PutReservation(res *payment.Reservation) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state.reservations[res.ID()] = snapshotReservation(res)
}

func (u *UoW) PutPolicy(p *cancellation.Policy) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state.policies[p.ID()] = snapshotPolicy(p)
}

func (u *UoW) PutPayoutAccount(providerID uuid.UUID, accountID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state.accounts[providerID] = accountID
}

// PutIdempotency stores a record as if an earlier request had written it.
func (u *UoW) PutIdempotency(rec shared.IdempotencyRecord) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state.idempotency[idemKey{rec.Key, rec.UserID}] = idemRecord{IdempotencyRecord: rec}
}

func (u *UoW) Reservation(id uuid.UUID) (*payment.Reservation, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	p, ok := u.state.reservations[id]
	if !ok {
		return nil, false
	}
	return payment.ReconstructReservation(p), true
}

func (u *UoW) Reservations() []*payment.Reservation {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]*payment.Reservation, 0, len(u.state.reservations))
	for _, p := range u.state.reservations {
		out = append(out, payment.ReconstructReservation(p))
	}
	return out
}

func (u *UoW) Policy(id uuid.UUID) (*cancellation.Policy, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	p, ok := u.state.policies[id]
	if !ok {
		return nil, false
	}
	return cancellation.ReconstructPolicy(p), true
}

func (u *UoW) PoliciesOf(providerID uuid.UUID) []*cancellation.Policy {
	u.mu.Lock()
	defer u.mu.Unlock()
	var out []*cancellation.Policy
	for _, p := range u.state.policies {
		if p.ProviderID == providerID {
			out = append(out, cancellation.ReconstructPolicy(p))
		}
	}
	return out
}

func (u *UoW) Transactions(reservationID uuid.UUID) []*payment.Transaction {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]*payment.Transaction(nil), u.state.transactions[reservationID]...)
}

func (u *UoW) Events() []shared.OutboxEvent {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]shared.OutboxEvent(nil), u.state.outbox...)
}

func (u *UoW) EventTypes() []string {
	events := u.Events()
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

func (u *UoW) Idempotency(key, userID uuid.UUID) (shared.IdempotencyRecord, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	rec, ok := u.state.idempotency[idemKey{key, userID}]
	return rec.IdempotencyRecord, ok
}

type lockedReads struct {
	u *UoW
}

func (r *lockedReads) reads() *stateReads {
	return &stateReads{st: r.u.state, now: r.u.now}
}

func (r *lockedReads) ReservationByID(ctx context.Context, id uuid.UUID) (*payment.Reservation, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return r.reads().ReservationByID(ctx, id)
}

func (r *lockedReads) TransactionsByReservation(ctx context.Context, reservationID uuid.UUID) ([]*payment.Transaction, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return r.reads().TransactionsByReservation(ctx, reservationID)
}

func (r *lockedReads) PolicyByID(ctx context.Context, id uuid.UUID) (*cancellation.Policy, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return r.reads().PolicyByID(ctx, id)
}

func (r *lockedReads) DefaultPolicy(ctx context.Context, providerID uuid.UUID) (*cancellation.Policy, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return r.reads().DefaultPolicy(ctx, providerID)
}

func (r *lockedReads) PayoutAccount(ctx context.Context, providerID uuid.UUID) (*shared.PayoutAccountSnapshot, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return r.reads().PayoutAccount(ctx, providerID)
}

func (r *lockedReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	return r.reads().IdempotencyByKey(ctx, key, userID)
}

// stateReads reads one state without locking. Used inside Within.
type stateReads struct {
	st  *state
	now func() time.Time
}

func (r *stateReads) ReservationByID(_ context.Context, id uuid.UUID) (*payment.Reservation, error) {
	p, ok := r.st.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return payment.ReconstructReservation(p), nil
}

func (r *stateReads) TransactionsByReservation(_ context.Context, reservationID uuid.UUID) ([]*payment.Transaction, error) {
	return append([]*payment.Transaction(nil), r.st.transactions[reservationID]...), nil
}

func (r *stateReads) PolicyByID(_ context.Context, id uuid.UUID) (*cancellation.Policy, error) {
	p, ok := r.st.policies[id]
	if !ok {
		return nil, infra.WrapRepoErr("policy not found", nil, infra.KindNotFound)
	}
	return cancellation.ReconstructPolicy(p), nil
}

func (r *stateReads) DefaultPolicy(_ context.Context, providerID uuid.UUID) (*cancellation.Policy, error) {
	for _, p := range r.st.policies {
		if p.ProviderID == providerID && p.IsDefault && p.IsActive {
			return cancellation.ReconstructPolicy(p), nil
		}
	}
	return nil, infra.WrapRepoErr("default policy not found", nil, infra.KindNotFound)
}

func (r *stateReads) PayoutAccount(_ context.Context, providerID uuid.UUID) (*shared.PayoutAccountSnapshot, error) {
	return &shared.PayoutAccountSnapshot{
		ProviderID: providerID,
		AccountID:  r.st.accounts[providerID],
	}, nil
}

func (r *stateReads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.st.idempotency[idemKey{key, userID}]
	if !ok || r.now().After(rec.ExpiresAt) {
		return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	out := rec.IdempotencyRecord
	return &out, nil
}

type fakeTx struct {
	st  *state
	now func() time.Time
}

func (t *fakeTx) Reservations() shared.ReservationRepository { return (*reservationRepo)(t) }
func (t *fakeTx) Transactions() shared.TransactionRepository { return (*transactionRepo)(t) }
func (t *fakeTx) Policies() shared.PolicyRepository          { return (*policyRepo)(t) }
func (t *fakeTx) Outbox() shared.OutboxRepository            { return (*outboxRepo)(t) }
func (t *fakeTx) Idempotency() shared.IdempotencyRepository  { return (*idempotencyRepo)(t) }
func (t *fakeTx) Reads() shared.CommandReads                 { return &stateReads{st: t.st, now: t.now} }

type reservationRepo fakeTx

func (r *reservationRepo) Create(_ context.Context, res *payment.Reservation) error {
	if _, ok := r.st.reservations[res.ID()]; ok {
		return infra.WrapRepoErr("reservation already exists", nil, infra.KindDuplicateKey)
	}
	r.st.reservations[res.ID()] = snapshotReservation(res)
	return nil
}

func (r *reservationRepo) Update(_ context.Context, res *payment.Reservation) error {
	stored, ok := r.st.reservations[res.ID()]
	if !ok || stored.Version != res.Version() {
		return infra.WrapRepoErr("reservation was modified concurrently", nil, infra.KindConflict)
	}
	next := snapshotReservation(res)
	next.Version = stored.Version + 1
	r.st.reservations[res.ID()] = next
	return nil
}

type transactionRepo fakeTx

func (r *transactionRepo) Append(_ context.Context, t *payment.Transaction) error {
	for _, existing := range r.st.transactions[t.ReservationID()] {
		if existing.Type() == t.Type() && existing.ExternalID() == t.ExternalID() {
			return infra.WrapRepoErr("transaction already recorded", nil, infra.KindDuplicateKey)
		}
	}
	r.st.transactions[t.ReservationID()] = append(r.st.transactions[t.ReservationID()], t)
	return nil
}

type policyRepo fakeTx

func (r *policyRepo) Create(_ context.Context, p *cancellation.Policy) error {
	if p.IsDefault() {
		if err := r.checkSingleDefault(p); err != nil {
			return err
		}
	}
	r.st.policies[p.ID()] = snapshotPolicy(p)
	return nil
}

func (r *policyRepo) UpdateFlags(_ context.Context, p *cancellation.Policy) error {
	stored, ok := r.st.policies[p.ID()]
	if !ok {
		return infra.WrapRepoErr("policy not found", nil, infra.KindNotFound)
	}
	if p.IsDefault() {
		if err := r.checkSingleDefault(p); err != nil {
			return err
		}
	}
	stored.IsDefault = p.IsDefault()
	stored.IsActive = p.IsActive()
	stored.UpdatedAt = p.UpdatedAt()
	r.st.policies[p.ID()] = stored
	return nil
}

// checkSingleDefault mirrors the partial unique index on (provider_id) WHERE is_default.
func (r *policyRepo) checkSingleDefault(p *cancellation.Policy) error {
	for id, other := range r.st.policies {
		if id != p.ID() && other.ProviderID == p.ProviderID() && other.IsDefault {
			return infra.WrapRepoErr("provider already has a default policy", nil, infra.KindDuplicateKey)
		}
	}
	return nil
}

type outboxRepo fakeTx

func (r *outboxRepo) Enqueue(_ context.Context, ev shared.OutboxEvent) error {
	r.st.outbox = append(r.st.outbox, ev)
	return nil
}

type idempotencyRepo fakeTx

func (r *idempotencyRepo) TryInsert(_ context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	k := idemKey{key, userID}
	if existing, ok := r.st.idempotency[k]; ok && !r.now().After(existing.ExpiresAt) {
		return false, nil
	}
	r.st.idempotency[k] = idemRecord{
		IdempotencyRecord: shared.IdempotencyRecord{
			Key:         key,
			UserID:      userID,
			Status:      shared.IdempotencyStatusProcessing,
			RequestHash: requestHash,
			ExpiresAt:   expiresAt,
		},
		Endpoint: endpoint,
	}
	return true, nil
}

func (r *idempotencyRepo) UpdateStatusCompleted(_ context.Context, key, userID uuid.UUID, _ string, resultReservationID uuid.UUID) error {
	k := idemKey{key, userID}
	rec, ok := r.st.idempotency[k]
	if !ok || rec.Status != shared.IdempotencyStatusProcessing {
		return infra.WrapRepoErr("idempotency key is not processing", nil, infra.KindNotFound)
	}
	id := resultReservationID
	rec.Status = shared.IdempotencyStatusCompleted
	rec.ResultReservationID = &id
	r.st.idempotency[k] = rec
	return nil
}

func (r *idempotencyRepo) Release(_ context.Context, key, userID uuid.UUID) error {
	k := idemKey{key, userID}
	if rec, ok := r.st.idempotency[k]; ok && rec.Status == shared.IdempotencyStatusProcessing {
		delete(r.st.idempotency, k)
	}
	return nil
}

func snapshotReservation(res *payment.Reservation) payment.ReconstructParams {
	var c *payment.Cancellation
	if rc := res.Cancellation(); rc != nil {
		cp := *rc
		c = &cp
	}
	return payment.ReconstructParams{
		ID:                   res.ID(),
		ClientID:             res.ClientID(),
		ProviderID:           res.ProviderID(),
		QuoteID:              res.QuoteID(),
		Split:                res.Split(),
		ServiceDate:          res.ServiceDate(),
		PaymentStatus:        res.PaymentStatus(),
		ServiceStatus:        res.ServiceStatus(),
		PaymentIntentID:      res.PaymentIntentID(),
		DepositTransferID:    res.DepositTransferID(),
		BalanceTransferID:    res.BalanceTransferID(),
		RefundID:             res.RefundID(),
		CancellationPolicyID: res.CancellationPolicyID(),
		Cancellation:         c,
		Version:              res.Version(),
		CreatedAt:            res.CreatedAt(),
		UpdatedAt:            res.UpdatedAt(),
	}
}

func snapshotPolicy(p *cancellation.Policy) cancellation.ReconstructParams {
	return cancellation.ReconstructParams{
		ID:               p.ID(),
		ProviderID:       p.ProviderID(),
		Name:             p.Name(),
		Type:             p.Type(),
		Rules:            p.Rules(),
		Fee:              p.Fee(),
		IsDefault:        p.IsDefault(),
		IsActive:         p.IsActive(),
		ReplacesPolicyID: p.ReplacesPolicyID(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
}
