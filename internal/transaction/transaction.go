package transaction

import (
	"errors"
	"time"
)

// ErrStore marks persistence failures. The flow treats the store as an
// audit trail, so callers log these and continue.
var ErrStore = errors.New("transaction store error")

// ErrNotFound is returned when no record exists for a reference.
var ErrNotFound = errors.New("transaction not found")

// Status represents the lifecycle state of a trámite transaction record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// CancelReason tags why a transaction was cancelled.
type CancelReason string

const (
	ReasonPaymentPending  CancelReason = "payment_pending"
	ReasonCancelledByUser CancelReason = "cancelled_by_user"
)

// Record is the audit document for one payment attempt, keyed by the
// opaque reference the flow assigned when the charge was initiated.
type Record struct {
	Reference             string
	TramiteID             string
	TramiteName           string
	Amount                int64 // COP, whole pesos
	Currency              string
	Status                Status
	FormData              map[string]string
	ProviderTransactionID string
	CancellationReason    string
	CreatedAt             time.Time
	UpdatedAt             *time.Time
	PaidAt                *time.Time
	DeliveredAt           *time.Time
	CancelledAt           *time.Time
}

// PaymentEvent is one provider resolution, upserted by reference so late
// events still land even when the record was never created.
type PaymentEvent struct {
	Reference             string
	Outcome               string
	Provider              string
	ProviderTransactionID string
	Reason                string
}
