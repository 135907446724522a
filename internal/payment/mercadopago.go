package payment

import (
	"context"
	"fmt"
	"log/slog"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mp "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/paymentmethod"
)

// MercadoPago charges through the Mercado Pago API. It is the "real"
// Provider implementation.
type MercadoPago struct {
	payments mp.Client
	methods  paymentmethod.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("%w: missing access token", ErrServiceUnavailable)
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("creating mercado pago config: %w", err)
	}

	return &MercadoPago{
		payments: mp.NewClient(cfg),
		methods:  paymentmethod.NewClient(cfg),
	}, nil
}

// HealthCheck verifies the provider is reachable and the credentials are
// accepted before real charges are allowed.
func (g *MercadoPago) HealthCheck(ctx context.Context) error {
	if _, err := g.methods.List(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	return nil
}

func (g *MercadoPago) Charge(ctx context.Context, req ChargeRequest) (Result, error) {
	resp, err := g.payments.Create(ctx, mp.Request{
		TransactionAmount: float64(req.AmountMinorUnits) / 100,
		Description:       req.TramiteName,
		ExternalReference: req.Reference,
		PaymentMethodID:   req.MethodDescriptor,
		Installments:      1,
	})
	if err != nil {
		return Result{}, fmt.Errorf("creating payment: %w", err)
	}

	result := Result{
		Outcome:               mapProviderStatus(resp.Status),
		Reference:             req.Reference,
		ProviderTransactionID: fmt.Sprintf("%d", resp.ID),
		Reason:                resp.StatusDetail,
	}

	slog.Info("charge resolved",
		"reference", req.Reference,
		"provider_id", result.ProviderTransactionID,
		"outcome", result.Outcome,
	)

	return result, nil
}

// mapProviderStatus folds Mercado Pago payment statuses onto the four
// outcomes the flow understands. Anything pending or unknown counts as an
// error so the user is told to retry.
func mapProviderStatus(status string) Outcome {
	switch status {
	case "approved":
		return OutcomeApproved
	case "rejected":
		return OutcomeDeclined
	case "cancelled":
		return OutcomeCancelled
	default:
		return OutcomeError
	}
}
