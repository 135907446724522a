package payment

import (
	"context"
	"fmt"
)

// OutcomePicker chooses the result of a simulated charge. The TUI
// implementation asks the user; tests inject a function.
type OutcomePicker interface {
	Pick(ctx context.Context, req ChargeRequest) (Outcome, string, error)
}

// PickerFunc adapts a function to the OutcomePicker interface.
type PickerFunc func(ctx context.Context, req ChargeRequest) (Outcome, string, error)

func (f PickerFunc) Pick(ctx context.Context, req ChargeRequest) (Outcome, string, error) {
	return f(ctx, req)
}

// Mock is a Provider that resolves charges locally through an
// OutcomePicker instead of calling a real gateway. It honors the same
// Result contract as MercadoPago so the flow cannot tell them apart.
type Mock struct {
	picker OutcomePicker
	seq    int
}

func NewMock(picker OutcomePicker) *Mock {
	return &Mock{picker: picker}
}

func (m *Mock) HealthCheck(ctx context.Context) error {
	return nil
}

func (m *Mock) Charge(ctx context.Context, req ChargeRequest) (Result, error) {
	outcome, reason, err := m.picker.Pick(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("picking mock outcome: %w", err)
	}

	m.seq++

	return Result{
		Outcome:               outcome,
		Reference:             req.Reference,
		ProviderTransactionID: fmt.Sprintf("mock-%d", m.seq),
		Reason:                reason,
	}, nil
}
