package flow

import (
	"github.com/tramitefacil/tramitefacil/internal/payment"
	"github.com/tramitefacil/tramitefacil/internal/transaction"
)

// Effect is a side effect requested by the transition function and
// executed by the engine, in order. The reducer itself never touches
// the transcript, the store or the payment provider.
type Effect interface {
	isEffect()
}

// Say appends a transcript entry.
type Say struct {
	Speaker Speaker
	Text    string
}

// PromptField asks the question for one field and records the
// transcript checkpoint for it.
type PromptField struct {
	Index int
	Label string
}

// MarkComplete records the checkpoint for the all-fields-answered
// notice, then says it.
type MarkComplete struct {
	Text string
}

// ResetConversation clears the transcript and replays the welcome
// prompt.
type ResetConversation struct{}

// TruncateConversation cuts the transcript back to the checkpoint of a
// field index.
type TruncateConversation struct {
	FieldIndex int
}

// CreateRecord writes the pending transaction record. Failures are
// audit-only.
type CreateRecord struct {
	Params transaction.CreateParams
}

// StartCharge hands the charge request to the payment provider. The
// engine resolves it asynchronously into a PaymentResolved event
// carrying Generation.
type StartCharge struct {
	Request    payment.ChargeRequest
	Generation uint64
}

// LogPaymentResult upserts the payment event audit row.
type LogPaymentResult struct {
	Result payment.Result
}

// MarkPaid updates the record after an approved charge.
type MarkPaid struct {
	Reference             string
	ProviderTransactionID string
}

// StartGeneration begins the simulated document generation; it resolves
// into a GenerationDone event carrying Generation.
type StartGeneration struct {
	Generation uint64
}

// MarkDelivered updates the record once the document was issued.
type MarkDelivered struct {
	Reference string
}

// CancelRecord cancels the transaction record with a reason tag.
type CancelRecord struct {
	Reference string
	Reason    transaction.CancelReason
}

func (Say) isEffect()                  {}
func (PromptField) isEffect()          {}
func (MarkComplete) isEffect()         {}
func (ResetConversation) isEffect()    {}
func (TruncateConversation) isEffect() {}
func (CreateRecord) isEffect()         {}
func (StartCharge) isEffect()          {}
func (LogPaymentResult) isEffect()     {}
func (MarkPaid) isEffect()             {}
func (StartGeneration) isEffect()      {}
func (MarkDelivered) isEffect()        {}
func (CancelRecord) isEffect()         {}
