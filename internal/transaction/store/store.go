package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tramitefacil/tramitefacil/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectRecordColumns = `
	reference, tramite_id, tramite_name, amount, currency, status,
	form_data, provider_transaction_id, cancellation_reason,
	created_at, updated_at, paid_at, delivered_at, cancelled_at
`

func scanRecord(s scanner) (*transaction.Record, error) {
	var rec transaction.Record

	var statusStr string

	var formData []byte

	var providerTxID, cancelReason sql.NullString

	if err := s.Scan(
		&rec.Reference, &rec.TramiteID, &rec.TramiteName, &rec.Amount, &rec.Currency, &statusStr,
		&formData, &providerTxID, &cancelReason,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.PaidAt, &rec.DeliveredAt, &rec.CancelledAt,
	); err != nil {
		return nil, err
	}

	rec.Status = transaction.Status(statusStr)
	rec.ProviderTransactionID = providerTxID.String
	rec.CancellationReason = cancelReason.String

	if len(formData) > 0 {
		if err := json.Unmarshal(formData, &rec.FormData); err != nil {
			return nil, fmt.Errorf("decoding form data: %w", err)
		}
	}

	return &rec, nil
}

func (s *Store) CreateTransaction(ctx context.Context, rec *transaction.Record) error {
	formData, err := json.Marshal(rec.FormData)
	if err != nil {
		return fmt.Errorf("encoding form data: %w", err)
	}

	query := `
		INSERT INTO transactions (reference, tramite_id, tramite_name, amount, currency, status, form_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at
	`

	if err := s.db.QueryRowContext(ctx, query,
		rec.Reference,
		rec.TramiteID,
		rec.TramiteName,
		rec.Amount,
		rec.Currency,
		rec.Status,
		formData,
	).Scan(&rec.CreatedAt); err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, reference string) (*transaction.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE reference = $1`, selectRecordColumns)

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, reference))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return rec, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions`, selectRecordColumns)

	var args []any

	if filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, *filter.Status)
	}

	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var recs []*transaction.Record

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return recs, nil
}

func (s *Store) MarkPaid(ctx context.Context, reference, providerTransactionID string) error {
	query := `
		UPDATE transactions
		SET status = $2, provider_transaction_id = $3, paid_at = NOW(), updated_at = NOW()
		WHERE reference = $1
	`

	return s.exec(ctx, query, reference, transaction.StatusPaid, providerTransactionID)
}

func (s *Store) MarkDelivered(ctx context.Context, reference string) error {
	query := `
		UPDATE transactions
		SET status = $2, delivered_at = NOW(), updated_at = NOW()
		WHERE reference = $1
	`

	return s.exec(ctx, query, reference, transaction.StatusDelivered)
}

func (s *Store) CancelTransaction(ctx context.Context, reference string, reason transaction.CancelReason) error {
	query := `
		UPDATE transactions
		SET status = $2, cancellation_reason = $3, cancelled_at = NOW(), updated_at = NOW()
		WHERE reference = $1
	`

	return s.exec(ctx, query, reference, transaction.StatusCancelled, reason)
}

// UpsertPaymentEvent creates or updates the row for the event's
// reference. A declined or errored attempt can arrive before the
// transaction row was ever written.
func (s *Store) UpsertPaymentEvent(ctx context.Context, event *transaction.PaymentEvent) error {
	query := `
		INSERT INTO payment_events (reference, outcome, provider, provider_transaction_id, reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (reference) DO UPDATE
		SET outcome = EXCLUDED.outcome,
		    provider = EXCLUDED.provider,
		    provider_transaction_id = EXCLUDED.provider_transaction_id,
		    reason = EXCLUDED.reason,
		    updated_at = NOW()
	`

	return s.exec(ctx, query, event.Reference, event.Outcome, event.Provider, event.ProviderTransactionID, event.Reason)
}

func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("executing update: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}
