package payment

import (
	"context"
	"errors"
)

// ErrServiceUnavailable is returned by HealthCheck when the provider is
// unreachable or misconfigured.
var ErrServiceUnavailable = errors.New("payment service unavailable")

// Outcome is the business result of a charge attempt. Declines,
// cancellations and provider errors are expected outcomes, not Go errors.
type Outcome string

const (
	OutcomeApproved  Outcome = "approved"
	OutcomeDeclined  Outcome = "declined"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeError     Outcome = "error"
)

// Result is produced by a Provider for one charge attempt.
type Result struct {
	Outcome               Outcome
	Reference             string
	ProviderTransactionID string
	Reason                string
}

// ChargeRequest carries everything a provider needs to attempt a charge.
// Amount is expressed in the smallest currency subunit.
type ChargeRequest struct {
	TramiteID        string
	TramiteName      string
	AmountMinorUnits int64
	Currency         string
	Reference        string
	FormAnswers      map[string]string
	MethodDescriptor string
}

//go:generate mockgen -source=payment.go -destination=provider_mock.go -package=payment
type Provider interface {
	HealthCheck(ctx context.Context) error
	Charge(ctx context.Context, req ChargeRequest) (Result, error)
}

// Mode selects which provider implementation handles charges.
type Mode string

const (
	ModeReal Mode = "real"
	ModeMock Mode = "mock"
)
