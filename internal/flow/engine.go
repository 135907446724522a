package flow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tramitefacil/tramitefacil/internal/catalog"
	"github.com/tramitefacil/tramitefacil/internal/payment"
	"github.com/tramitefacil/tramitefacil/internal/transaction"
)

const storeTimeout = 5 * time.Second

// TransactionStore is the audit-trail contract the engine consumes.
// Write failures never gate flow progress.
//
//go:generate mockgen -source=engine.go -destination=store_mock.go -package=flow
type TransactionStore interface {
	Create(ctx context.Context, params transaction.CreateParams) (*transaction.Record, error)
	MarkPaid(ctx context.Context, reference, providerTransactionID string) error
	MarkDelivered(ctx context.Context, reference string) error
	Cancel(ctx context.Context, reference string, reason transaction.CancelReason) error
	LogPaymentEvent(ctx context.Context, event transaction.PaymentEvent) error
}

// Config tunes one engine instance.
type Config struct {
	Pricing Pricing

	// GenerationDelay stands in for the real document generation
	// latency. Pacing only; correctness does not depend on it.
	GenerationDelay time.Duration

	// Mode is the payment mode the flow ended up with after selection.
	Mode payment.Mode

	// FallbackActive means real mode was requested but the mock was
	// substituted after a failed health check; the user is told once.
	FallbackActive bool
}

// Engine owns the FlowState and the transcript. All mutations go
// through the pure transition function; the engine serializes events
// with a mutex and executes the resulting effects in order, so
// transcript entries stay in causal order across the asynchronous
// payment and generation boundaries.
type Engine struct {
	cfg      Config
	catalog  *catalog.Catalog
	store    TransactionStore
	provider payment.Provider // nil when payment is blocked
	clock    Clock
	notify   func()

	mu         sync.Mutex
	state      State
	transcript *Transcript
}

// NewEngine wires a flow instance. provider may be nil, in which case
// the pay action stays blocked (health check failed, fallback
// disabled). notify, if non-nil, is invoked after every state change.
func NewEngine(cfg Config, cat *catalog.Catalog, store TransactionStore, provider payment.Provider, clock Clock, notify func()) *Engine {
	if clock == nil {
		clock = SystemClock()
	}

	e := &Engine{
		cfg:        cfg,
		catalog:    cat,
		store:      store,
		provider:   provider,
		clock:      clock,
		notify:     notify,
		state:      initialState(1, cfg.FallbackActive),
		transcript: NewTranscript(),
	}

	e.welcome()

	return e
}

func (e *Engine) welcome() {
	e.transcript.Append(SpeakerAssistant, "Soy LIA, tu asistente virtual. Te guiaré paso a paso para que completes tus trámites sin complicaciones.")
	e.transcript.Append(SpeakerAssistant, "1. Elige tu trámite. 2. Ingresa tus datos. 3. Paga de forma segura. 4. Descarga tu documento.")
}

// SelectTramite starts a flow for the given catalog id.
func (e *Engine) SelectTramite(id string) error {
	t, err := e.catalog.Get(id)
	if err != nil {
		return err
	}

	e.dispatch(TramiteChosen{Tramite: t})

	return nil
}

// SubmitAnswer feeds the user's reply to the currently prompted field.
// Out-of-turn submissions are ignored or answered with a notice.
func (e *Engine) SubmitAnswer(value string) {
	e.dispatch(AnswerSubmitted{Value: value})
}

// Pay initiates a charge for the completed form. The provider resolves
// asynchronously; the user may cancel while the charge is outstanding.
func (e *Engine) Pay(ctx context.Context) error {
	if e.provider == nil {
		e.mu.Lock()
		e.transcript.Append(SpeakerAssistant, "El sistema de pagos no está configurado correctamente. Por favor, intenta más tarde.")
		e.mu.Unlock()
		e.changed()

		return payment.ErrServiceUnavailable
	}

	e.dispatchCtx(ctx, PayRequested{Reference: fmt.Sprintf("TF-%s", uuid.NewString())})

	return nil
}

// Cancel aborts the flow from any non-selecting state and resets to
// selection. An open transaction is cancelled in the store with a
// reason tag; store failure does not block the reset.
func (e *Engine) Cancel() {
	e.dispatch(CancelRequested{})
}

// ChangeTramite resets to selection so a different trámite can be
// picked.
func (e *Engine) ChangeTramite() {
	e.dispatch(TramiteChangeRequested{})
}

// Resume restores the filling phase with the first answered answers
// retained, truncating the transcript to match. Answers beyond the
// resume point are discarded.
func (e *Engine) Resume(answered int) {
	e.dispatch(ResumedAt{Answered: answered})
}

// PaymentBlocked reports whether the pay action is permanently blocked
// for this flow (no provider available).
func (e *Engine) PaymentBlocked() bool {
	return e.provider == nil
}

// Mode returns the payment mode this flow runs with.
func (e *Engine) Mode() payment.Mode {
	return e.cfg.Mode
}

// Pricing returns the charge computation inputs used for receipts.
func (e *Engine) Pricing() Pricing {
	return e.cfg.Pricing
}

// Snapshot returns a copy of the current state. The trámite pointer is
// shared but immutable by contract.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	s.Answers = copyAnswers(e.state.Answers)

	return s
}

// Transcript returns the conversation so far, in causal order.
func (e *Engine) Transcript() []Entry {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.transcript.Entries()
}

func (e *Engine) dispatch(ev Event) {
	e.dispatchCtx(context.Background(), ev)
}

func (e *Engine) dispatchCtx(ctx context.Context, ev Event) {
	e.mu.Lock()

	// Late results from a previous flow instance are dropped here: the
	// generation they carry no longer matches.
	switch ev := ev.(type) {
	case PaymentResolved:
		if ev.Generation != e.state.Generation {
			e.mu.Unlock()
			e.changed()

			return
		}
	case GenerationDone:
		if ev.Generation != e.state.Generation {
			e.mu.Unlock()
			e.changed()

			return
		}
	}

	next, effects := transition(e.cfg.Pricing, e.cfg.FallbackActive, e.state, ev)
	e.state = next

	for _, effect := range effects {
		e.run(ctx, effect)
	}

	e.mu.Unlock()
	e.changed()
}

// run executes one effect. Called with the mutex held; asynchronous
// work is handed to goroutines that re-enter through dispatch.
func (e *Engine) run(ctx context.Context, effect Effect) {
	switch effect := effect.(type) {
	case Say:
		e.transcript.Append(effect.Speaker, effect.Text)

	case PromptField:
		e.transcript.Mark(effect.Index)
		e.transcript.Append(SpeakerAssistant, effect.Label)

	case MarkComplete:
		e.transcript.Mark(e.state.FieldCount())
		e.transcript.Append(SpeakerAssistant, effect.Text)

	case ResetConversation:
		e.transcript.Reset()
		e.welcome()

	case TruncateConversation:
		e.transcript.TruncateTo(effect.FieldIndex)

	case CreateRecord:
		e.storeWrite(func(ctx context.Context) error {
			_, err := e.store.Create(ctx, effect.Params)
			return err
		})

	case StartCharge:
		go e.charge(ctx, effect.Request, effect.Generation)

	case LogPaymentResult:
		result := effect.Result
		e.storeWrite(func(ctx context.Context) error {
			return e.store.LogPaymentEvent(ctx, transaction.PaymentEvent{
				Reference:             result.Reference,
				Outcome:               string(result.Outcome),
				Provider:              string(e.cfg.Mode),
				ProviderTransactionID: result.ProviderTransactionID,
				Reason:                result.Reason,
			})
		})

	case MarkPaid:
		e.storeWrite(func(ctx context.Context) error {
			return e.store.MarkPaid(ctx, effect.Reference, effect.ProviderTransactionID)
		})

	case StartGeneration:
		go e.generate(effect.Generation)

	case MarkDelivered:
		e.storeWrite(func(ctx context.Context) error {
			return e.store.MarkDelivered(ctx, effect.Reference)
		})

	case CancelRecord:
		e.storeWrite(func(ctx context.Context) error {
			return e.store.Cancel(ctx, effect.Reference, effect.Reason)
		})
	}
}

// storeWrite runs one audit write. The store is record-keeping, not a
// gate: failures are logged and the flow proceeds.
func (e *Engine) storeWrite(fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		slog.Warn("transaction store write failed", "error", err)
	}
}

func (e *Engine) charge(ctx context.Context, req payment.ChargeRequest, generation uint64) {
	result, err := e.provider.Charge(ctx, req)
	if err != nil {
		// A provider that fails to resolve is indistinguishable from an
		// error outcome: reported, no automatic retry.
		slog.Error("charge failed to resolve", "reference", req.Reference, "error", err)

		result = payment.Result{
			Outcome:   payment.OutcomeError,
			Reference: req.Reference,
			Reason:    "Error de comunicación con el servidor de pagos.",
		}
	}

	e.dispatch(PaymentResolved{Result: result, Generation: generation})
}

func (e *Engine) generate(generation uint64) {
	<-e.clock.After(e.cfg.GenerationDelay)
	e.dispatch(GenerationDone{Generation: generation})
}

func (e *Engine) changed() {
	if e.notify != nil {
		e.notify()
	}
}
