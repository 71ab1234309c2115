package converter

import (
	"encoding/json"
	"fmt"

	"shootbook/internal/domain/payment"
	"shootbook/internal/infra/db/query"
)

func TransactionToParams(t *payment.Transaction) (query.CreatePaymentTransactionParams, error) {
	var meta []byte
	if m := t.Metadata(); m != nil {
		b, err := json.Marshal(m)
		if err != nil {
			return query.CreatePaymentTransactionParams{}, fmt.Errorf("marshal transaction metadata: %w", err)
		}
		meta = b
	}
	return query.CreatePaymentTransactionParams{
		ID:            t.ID(),
		ReservationID: t.ReservationID(),
		Type:          t.Type().String(),
		AmountCents:   t.AmountCents(),
		ExternalID:    t.ExternalID(),
		Status:        string(t.Status()),
		Metadata:      meta,
		CreatedAt:     t.CreatedAt(),
	}, nil
}

func TransactionFromRow(row query.PaymentTransactions) (*payment.Transaction, error) {
	txType, err := payment.ParseTransactionType(row.Type)
	if err != nil {
		return nil, err
	}
	var meta *payment.TransactionMetadata
	if len(row.Metadata) > 0 {
		meta = &payment.TransactionMetadata{}
		if err := json.Unmarshal(row.Metadata, meta); err != nil {
			return nil, fmt.Errorf("transaction %s metadata: %w", row.ID, err)
		}
	}
	return payment.ReconstructTransaction(
		row.ID,
		row.ReservationID,
		txType,
		row.AmountCents,
		row.ExternalID,
		payment.TransactionStatus(row.Status),
		meta,
		row.CreatedAt.UTC(),
	), nil
}
