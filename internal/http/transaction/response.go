package transaction

import (
	"time"

	"github.com/tramitefacil/tramitefacil/internal/transaction"
)

type response struct {
	Reference             string            `json:"reference"`
	TramiteID             string            `json:"tramite_id"`
	TramiteName           string            `json:"tramite_name"`
	Amount                int64             `json:"amount"`
	Currency              string            `json:"currency"`
	Status                string            `json:"status"`
	FormData              map[string]string `json:"form_data,omitempty"`
	ProviderTransactionID string            `json:"provider_transaction_id,omitempty"`
	CancellationReason    string            `json:"cancellation_reason,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	PaidAt                *time.Time        `json:"paid_at,omitempty"`
	DeliveredAt           *time.Time        `json:"delivered_at,omitempty"`
	CancelledAt           *time.Time        `json:"cancelled_at,omitempty"`
}

func toResponse(rec *transaction.Record) response {
	return response{
		Reference:             rec.Reference,
		TramiteID:             rec.TramiteID,
		TramiteName:           rec.TramiteName,
		Amount:                rec.Amount,
		Currency:              rec.Currency,
		Status:                string(rec.Status),
		FormData:              rec.FormData,
		ProviderTransactionID: rec.ProviderTransactionID,
		CancellationReason:    rec.CancellationReason,
		CreatedAt:             rec.CreatedAt,
		PaidAt:                rec.PaidAt,
		DeliveredAt:           rec.DeliveredAt,
		CancelledAt:           rec.CancelledAt,
	}
}

func toResponses(recs []*transaction.Record) []response {
	out := make([]response, len(recs))
	for i, rec := range recs {
		out[i] = toResponse(rec)
	}

	return out
}
