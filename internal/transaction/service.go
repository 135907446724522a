package transaction

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, rec *Record) error
	GetTransaction(ctx context.Context, reference string) (*Record, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Record, error)
	MarkPaid(ctx context.Context, reference, providerTransactionID string) error
	MarkDelivered(ctx context.Context, reference string) error
	CancelTransaction(ctx context.Context, reference string, reason CancelReason) error
	UpsertPaymentEvent(ctx context.Context, event *PaymentEvent) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Reference   string
	TramiteID   string
	TramiteName string
	Amount      int64
	Currency    string
	FormData    map[string]string
}

type ListFilter struct {
	Status *Status
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Record, error) {
	rec := &Record{
		Reference:   params.Reference,
		TramiteID:   params.TramiteID,
		TramiteName: params.TramiteName,
		Amount:      params.Amount,
		Currency:    params.Currency,
		Status:      StatusPending,
		FormData:    params.FormData,
	}
	if err := s.repo.CreateTransaction(ctx, rec); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", ErrStore, params.Reference, err)
	}

	return rec, nil
}

func (s *Service) Get(ctx context.Context, reference string) (*Record, error) {
	return s.repo.GetTransaction(ctx, reference)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Record, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) MarkPaid(ctx context.Context, reference, providerTransactionID string) error {
	if err := s.repo.MarkPaid(ctx, reference, providerTransactionID); err != nil {
		return fmt.Errorf("%w: marking %s paid: %v", ErrStore, reference, err)
	}

	return nil
}

func (s *Service) MarkDelivered(ctx context.Context, reference string) error {
	if err := s.repo.MarkDelivered(ctx, reference); err != nil {
		return fmt.Errorf("%w: marking %s delivered: %v", ErrStore, reference, err)
	}

	return nil
}

func (s *Service) Cancel(ctx context.Context, reference string, reason CancelReason) error {
	if err := s.repo.CancelTransaction(ctx, reference, reason); err != nil {
		return fmt.Errorf("%w: cancelling %s: %v", ErrStore, reference, err)
	}

	return nil
}

// LogPaymentEvent records one provider resolution. Create-or-update
// keyed by the event reference.
func (s *Service) LogPaymentEvent(ctx context.Context, event PaymentEvent) error {
	if err := s.repo.UpsertPaymentEvent(ctx, &event); err != nil {
		return fmt.Errorf("%w: logging event for %s: %v", ErrStore, event.Reference, err)
	}

	return nil
}
