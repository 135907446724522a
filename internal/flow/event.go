package flow

import (
	"github.com/tramitefacil/tramitefacil/internal/catalog"
	"github.com/tramitefacil/tramitefacil/internal/payment"
)

// Event is an input to the transition function. Events come from user
// actions or from the resolution of asynchronous work the engine
// started earlier.
type Event interface {
	isEvent()
}

// TramiteChosen is the user picking a trámite from the catalog. The
// engine resolves the id before building the event, so the trámite is
// always valid here.
type TramiteChosen struct {
	Tramite catalog.Tramite
}

// AnswerSubmitted is the user answering the currently prompted field.
type AnswerSubmitted struct {
	Value string
}

// PayRequested is the user pressing pay. The reference was assigned by
// the engine when the event was built.
type PayRequested struct {
	Reference string
}

// PaymentResolved carries the provider's result for an outstanding
// charge. Generation is the flow generation captured at charge time.
type PaymentResolved struct {
	Result     payment.Result
	Generation uint64
}

// GenerationDone signals the document generation delay elapsed.
type GenerationDone struct {
	Generation uint64
}

// CancelRequested aborts the flow from any non-selecting state.
type CancelRequested struct{}

// TramiteChangeRequested resets to selection so a different trámite can
// be picked.
type TramiteChangeRequested struct{}

// ResumedAt is back-navigation into the filling phase with the first
// Answered answers retained.
type ResumedAt struct {
	Answered int
}

func (TramiteChosen) isEvent()          {}
func (AnswerSubmitted) isEvent()        {}
func (PayRequested) isEvent()           {}
func (PaymentResolved) isEvent()        {}
func (GenerationDone) isEvent()         {}
func (CancelRequested) isEvent()        {}
func (TramiteChangeRequested) isEvent() {}
func (ResumedAt) isEvent()              {}
