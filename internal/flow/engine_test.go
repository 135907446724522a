package flow_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tramitefacil/tramitefacil/internal/catalog"
	"github.com/tramitefacil/tramitefacil/internal/flow"
	"github.com/tramitefacil/tramitefacil/internal/payment"
	"github.com/tramitefacil/tramitefacil/internal/transaction"
)

func testConfig() flow.Config {
	return flow.Config{
		Pricing: flow.Pricing{ServiceFee: 2500, TaxRate: 0.19, Currency: "COP"},
		Mode:    payment.ModeMock,
	}
}

func newEngine(t *testing.T, store flow.TransactionStore, provider payment.Provider) *flow.Engine {
	t.Helper()

	return flow.NewEngine(testConfig(), catalog.Default(), store, provider, flow.ImmediateClock{}, nil)
}

func fixedOutcome(outcome payment.Outcome, reason string) *payment.Mock {
	return payment.NewMock(payment.PickerFunc(func(_ context.Context, _ payment.ChargeRequest) (payment.Outcome, string, error) {
		return outcome, reason, nil
	}))
}

// gate blocks charge resolution until released, so tests can interleave
// cancellation with an outstanding payment.
type gate struct {
	release chan payment.Outcome
}

func newGate() *gate {
	return &gate{release: make(chan payment.Outcome)}
}

func (g *gate) Pick(ctx context.Context, _ payment.ChargeRequest) (payment.Outcome, string, error) {
	select {
	case outcome := <-g.release:
		return outcome, "", nil
	case <-ctx.Done():
		return payment.OutcomeError, "", ctx.Err()
	}
}

func waitStatus(t *testing.T, e *flow.Engine, want flow.Status) {
	t.Helper()

	require.Eventually(t, func() bool {
		return e.Snapshot().Status == want
	}, 2*time.Second, 5*time.Millisecond, "waiting for status %s", want)
}

func userEntryCount(entries []flow.Entry) int {
	var n int

	for _, entry := range entries {
		if entry.Speaker == flow.SpeakerUser {
			n++
		}
	}

	return n
}

func TestEngine_SelectTramite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := newEngine(t, flow.NewMockTransactionStore(ctrl), fixedOutcome(payment.OutcomeApproved, ""))

	before := userEntryCount(e.Transcript())

	require.NoError(t, e.SelectTramite("afiliacion-eps"))

	s := e.Snapshot()
	assert.Equal(t, flow.StatusFilling, s.Status)
	assert.Equal(t, 0, s.FieldIndex)
	assert.Empty(t, s.Answers)
	require.NotNil(t, s.Tramite)
	assert.Equal(t, "afiliacion-eps", s.Tramite.ID)

	assert.Equal(t, before+1, userEntryCount(e.Transcript()), "exactly one new user entry")
}

func TestEngine_SelectUnknownTramite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := newEngine(t, flow.NewMockTransactionStore(ctrl), fixedOutcome(payment.OutcomeApproved, ""))

	err := e.SelectTramite("pasaporte")
	assert.ErrorIs(t, err, catalog.ErrTramiteNotFound)
	assert.Equal(t, flow.StatusSelecting, e.Snapshot().Status)
}

func TestEngine_PromptedOncePerField(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := newEngine(t, flow.NewMockTransactionStore(ctrl), fixedOutcome(payment.OutcomeApproved, ""))

	require.NoError(t, e.SelectTramite("rut"))
	e.SubmitAnswer("Cédula de Ciudadanía")

	// Re-entering the same index must not duplicate the prompt.
	e.Resume(1)
	e.Resume(1)

	var prompts int

	for _, entry := range e.Transcript() {
		if strings.Contains(entry.Text, "número de documento") {
			prompts++
		}
	}

	assert.Equal(t, 1, prompts)
	assert.Equal(t, 1, e.Snapshot().FieldIndex)
}

func TestEngine_EndToEnd_RutApproved(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := flow.NewMockTransactionStore(ctrl)

	var reference string

	store.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params transaction.CreateParams) (*transaction.Record, error) {
			reference = params.Reference
			assert.Equal(t, "rut", params.TramiteID)
			assert.Equal(t, int64(32725), params.Amount)
			assert.Len(t, params.FormData, 3)
			return &transaction.Record{Reference: params.Reference}, nil
		})
	store.EXPECT().LogPaymentEvent(gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().MarkPaid(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().MarkDelivered(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	e := newEngine(t, store, fixedOutcome(payment.OutcomeApproved, ""))

	require.NoError(t, e.SelectTramite("rut"))
	e.SubmitAnswer("Cédula de Ciudadanía")
	e.SubmitAnswer("123456789")
	e.SubmitAnswer("2010-05-01")

	require.Equal(t, flow.StatusPaying, e.Snapshot().Status)

	require.NoError(t, e.Pay(context.Background()))

	waitStatus(t, e, flow.StatusCompleted)

	s := e.Snapshot()
	assert.NotEmpty(t, s.Reference)
	assert.Equal(t, reference, s.Reference)
	assert.Equal(t, 4, s.Step)
}

func TestEngine_DeclinedStaysPayingAndRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := flow.NewMockTransactionStore(ctrl)

	// The record is created once; the retry reuses the reference.
	store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&transaction.Record{}, nil).Times(1)
	store.EXPECT().LogPaymentEvent(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	store.EXPECT().MarkPaid(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().MarkDelivered(gomock.Any(), gomock.Any()).Return(nil)

	outcomes := make(chan payment.Outcome, 2)
	outcomes <- payment.OutcomeDeclined
	outcomes <- payment.OutcomeApproved

	provider := payment.NewMock(payment.PickerFunc(func(_ context.Context, _ payment.ChargeRequest) (payment.Outcome, string, error) {
		return <-outcomes, "fondos insuficientes", nil
	}))

	e := newEngine(t, store, provider)

	require.NoError(t, e.SelectTramite("camara-comercio"))
	e.SubmitAnswer("900123456-7")

	require.NoError(t, e.Pay(context.Background()))

	// The decline is reported and the flow stays in paying.
	require.Eventually(t, func() bool {
		s := e.Snapshot()
		return s.Status == flow.StatusPaying && !s.ChargePending
	}, 2*time.Second, 5*time.Millisecond)

	firstRef := e.Snapshot().Reference
	require.NotEmpty(t, firstRef)

	entries := e.Transcript()
	last := entries[len(entries)-1]
	assert.Contains(t, last.Text, "Pago rechazado")
	assert.Contains(t, last.Text, "fondos insuficientes")

	require.NoError(t, e.Pay(context.Background()))
	waitStatus(t, e, flow.StatusCompleted)

	assert.Equal(t, firstRef, e.Snapshot().Reference)
}

func TestEngine_CancelDuringPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := flow.NewMockTransactionStore(ctrl)
	store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&transaction.Record{}, nil)
	store.EXPECT().
		Cancel(gomock.Any(), gomock.Any(), transaction.ReasonPaymentPending).
		Return(nil).
		Times(1)

	g := newGate()
	e := newEngine(t, store, payment.NewMock(g))

	require.NoError(t, e.SelectTramite("camara-comercio"))
	e.SubmitAnswer("900123456-7")
	require.NoError(t, e.Pay(context.Background()))

	require.True(t, e.Snapshot().ChargePending)

	e.Cancel()

	s := e.Snapshot()
	assert.Equal(t, flow.StatusSelecting, s.Status)
	assert.Nil(t, s.Tramite)
	assert.Empty(t, s.Answers)
	assert.Empty(t, s.Reference)
	assert.Equal(t, 0, s.FieldIndex)

	// A late approval for the cancelled instance must not resurrect the
	// flow. No MarkPaid/LogPaymentEvent expectations are set, so any
	// processing of the stale result fails the test.
	g.release <- payment.OutcomeApproved

	assert.Never(t, func() bool {
		return e.Snapshot().Status != flow.StatusSelecting
	}, 300*time.Millisecond, 10*time.Millisecond, "stale result must be dropped")
}

func TestEngine_CancelWithoutTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No Cancel expectation: a flow without an open transaction must not
	// touch the store on cancellation.
	store := flow.NewMockTransactionStore(ctrl)

	e := newEngine(t, store, fixedOutcome(payment.OutcomeApproved, ""))

	require.NoError(t, e.SelectTramite("rut"))
	e.SubmitAnswer("Cédula")

	e.Cancel()

	assert.Equal(t, flow.StatusSelecting, e.Snapshot().Status)
}

func TestEngine_StoreFailureDoesNotBlockReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := flow.NewMockTransactionStore(ctrl)
	store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, transaction.ErrStore)
	store.EXPECT().Cancel(gomock.Any(), gomock.Any(), gomock.Any()).Return(transaction.ErrStore)

	g := newGate()
	e := newEngine(t, store, payment.NewMock(g))

	require.NoError(t, e.SelectTramite("camara-comercio"))
	e.SubmitAnswer("900123456-7")
	require.NoError(t, e.Pay(context.Background()))

	e.Cancel()

	assert.Equal(t, flow.StatusSelecting, e.Snapshot().Status, "local reset proceeds despite store failure")
}

func TestEngine_PaymentBlockedWithoutProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Health check failed with fallback disabled: no provider, and no
	// charge may ever be issued. The store stays untouched too.
	store := flow.NewMockTransactionStore(ctrl)

	e := flow.NewEngine(flow.Config{
		Pricing: flow.Pricing{ServiceFee: 2500, TaxRate: 0.19, Currency: "COP"},
		Mode:    payment.ModeReal,
	}, catalog.Default(), store, nil, flow.ImmediateClock{}, nil)

	require.NoError(t, e.SelectTramite("camara-comercio"))
	e.SubmitAnswer("900123456-7")

	require.True(t, e.PaymentBlocked())

	err := e.Pay(context.Background())
	assert.ErrorIs(t, err, payment.ErrServiceUnavailable)

	s := e.Snapshot()
	assert.Equal(t, flow.StatusPaying, s.Status)
	assert.False(t, s.ChargePending)
	assert.Empty(t, s.Reference)
}

func TestEngine_ProviderErrorReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := flow.NewMockTransactionStore(ctrl)
	store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&transaction.Record{}, nil)
	store.EXPECT().LogPaymentEvent(gomock.Any(), gomock.Any()).Return(nil)

	provider := payment.NewMockProvider(ctrl)
	provider.EXPECT().
		Charge(gomock.Any(), gomock.Any()).
		Return(payment.Result{}, assert.AnError)

	e := newEngine(t, store, provider)

	require.NoError(t, e.SelectTramite("camara-comercio"))
	e.SubmitAnswer("900123456-7")
	require.NoError(t, e.Pay(context.Background()))

	// Failure to resolve behaves like an error outcome: reported once,
	// flow remains in paying.
	require.Eventually(t, func() bool {
		s := e.Snapshot()
		return s.Status == flow.StatusPaying && !s.ChargePending
	}, 2*time.Second, 5*time.Millisecond)

	entries := e.Transcript()
	last := entries[len(entries)-1]
	assert.Contains(t, last.Text, "Error de pago")
}

func TestEngine_ResumeTruncatesTranscript(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := newEngine(t, flow.NewMockTransactionStore(ctrl), fixedOutcome(payment.OutcomeApproved, ""))

	require.NoError(t, e.SelectTramite("rut"))
	e.SubmitAnswer("Cédula")
	e.SubmitAnswer("123456789")

	lenBefore := len(e.Transcript())

	e.Resume(1)

	assert.Less(t, len(e.Transcript()), lenBefore)

	s := e.Snapshot()
	assert.Equal(t, 1, s.FieldIndex)
	assert.Equal(t, map[string]string{"tipoDocumento": "Cédula"}, s.Answers)
}
