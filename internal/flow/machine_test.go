package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tramitefacil/tramitefacil/internal/catalog"
	"github.com/tramitefacil/tramitefacil/internal/payment"
)

var testPricing = Pricing{ServiceFee: 2500, TaxRate: 0.19, Currency: "COP"}

func testTramite(t *testing.T, id string) catalog.Tramite {
	t.Helper()

	tr, err := catalog.Default().Get(id)
	require.NoError(t, err)

	return tr
}

func selectState(t *testing.T, id string) State {
	t.Helper()

	s, _ := transition(testPricing, false, initialState(1, false), TramiteChosen{Tramite: testTramite(t, id)})

	return s
}

func fillAll(t *testing.T, s State) State {
	t.Helper()

	for i := s.FieldIndex; i < s.FieldCount(); i++ {
		s, _ = transition(testPricing, false, s, AnswerSubmitted{Value: "respuesta"})
	}

	return s
}

func TestTransition_TramiteChosen(t *testing.T) {
	s, effects := transition(testPricing, false, initialState(1, false), TramiteChosen{Tramite: testTramite(t, "rut")})

	assert.Equal(t, StatusFilling, s.Status)
	assert.Equal(t, 2, s.Step)
	assert.Equal(t, 0, s.FieldIndex)
	assert.Empty(t, s.Answers)
	require.NotNil(t, s.Tramite)
	assert.Equal(t, "rut", s.Tramite.ID)

	var userEntries int

	for _, effect := range effects {
		if say, ok := effect.(Say); ok && say.Speaker == SpeakerUser {
			userEntries++
		}
	}

	assert.Equal(t, 1, userEntries, "exactly one user-transcript entry")

	// The first field is prompted immediately.
	assert.IsType(t, PromptField{}, effects[len(effects)-1])
	assert.Equal(t, 0, s.PromptedIndex)
}

func TestTransition_SelectingRequiredForChoice(t *testing.T) {
	s := selectState(t, "rut")

	next, effects := transition(testPricing, false, s, TramiteChosen{Tramite: testTramite(t, "afiliacion-eps")})

	assert.Equal(t, s, next, "selecting a new trámite requires a reset")
	assert.Empty(t, effects)
}

func TestTransition_FillToCompletion(t *testing.T) {
	s := selectState(t, "rut")
	require.Equal(t, 3, s.FieldCount())

	s, _ = transition(testPricing, false, s, AnswerSubmitted{Value: "Cédula"})
	assert.Equal(t, 1, s.FieldIndex)
	assert.Equal(t, StatusFilling, s.Status)

	s, _ = transition(testPricing, false, s, AnswerSubmitted{Value: "123456789"})
	s, effects := transition(testPricing, false, s, AnswerSubmitted{Value: "2010-05-01"})

	assert.Equal(t, StatusPaying, s.Status)
	assert.Equal(t, 3, s.Step)
	assert.Equal(t, 3, s.FieldIndex)
	assert.True(t, s.AllFieldsAnswered())

	var completed bool

	for _, effect := range effects {
		if _, ok := effect.(MarkComplete); ok {
			completed = true
		}
	}

	assert.True(t, completed, "completion notice emitted")

	// Answers follow question order and only known field ids.
	assert.Equal(t, map[string]string{
		"tipoDocumento":   "Cédula",
		"numeroDocumento": "123456789",
		"fechaExpedicion": "2010-05-01",
	}, s.Answers)
}

func TestTransition_ExtraSubmissionIsNoop(t *testing.T) {
	s := fillAll(t, selectState(t, "camara-comercio"))
	require.Equal(t, StatusPaying, s.Status)

	// Force back into filling with the cursor at the end to hit the
	// guard directly.
	s.Status = StatusFilling

	next, effects := transition(testPricing, false, s, AnswerSubmitted{Value: "de más"})

	assert.Equal(t, s, next, "state unchanged")
	require.Len(t, effects, 1)

	say, ok := effects[0].(Say)
	require.True(t, ok)
	assert.Equal(t, SpeakerAssistant, say.Speaker)
}

func TestTransition_EmptyAnswerRejected(t *testing.T) {
	s := selectState(t, "rut")

	next, effects := transition(testPricing, false, s, AnswerSubmitted{Value: "   "})

	assert.Equal(t, s.FieldIndex, next.FieldIndex)
	assert.Empty(t, next.Answers)
	require.Len(t, effects, 1)
	assert.IsType(t, Say{}, effects[0])
}

func TestTransition_PromptIdempotence(t *testing.T) {
	s := selectState(t, "rut")
	require.Equal(t, 0, s.PromptedIndex)

	// Re-entering filling at the same index without a new answer must
	// not emit another prompt.
	next, effects := promptNext(s, nil)

	assert.Equal(t, s, next)
	assert.Empty(t, effects)
}

func TestTransition_PayRequested(t *testing.T) {
	s := fillAll(t, selectState(t, "rut"))

	next, effects := transition(testPricing, false, s, PayRequested{Reference: "TF-1"})

	assert.Equal(t, "TF-1", next.Reference)
	assert.True(t, next.ChargePending)

	require.Len(t, effects, 2)

	create, ok := effects[0].(CreateRecord)
	require.True(t, ok)
	assert.Equal(t, int64(32725), create.Params.Amount, "round((25000+2500)*1.19)")
	assert.Equal(t, "COP", create.Params.Currency)

	charge, ok := effects[1].(StartCharge)
	require.True(t, ok)
	assert.Equal(t, int64(3272500), charge.Request.AmountMinorUnits)
	assert.Equal(t, "TF-1", charge.Request.Reference)
	assert.Equal(t, s.Generation, charge.Generation)
}

func TestTransition_RetryKeepsReference(t *testing.T) {
	s := fillAll(t, selectState(t, "rut"))

	s, _ = transition(testPricing, false, s, PayRequested{Reference: "TF-1"})
	s, _ = transition(testPricing, false, s, PaymentResolved{Result: payment.Result{
		Outcome:   payment.OutcomeDeclined,
		Reference: "TF-1",
		Reason:    "fondos insuficientes",
	}})

	require.Equal(t, StatusPaying, s.Status)
	require.False(t, s.ChargePending)

	next, effects := transition(testPricing, false, s, PayRequested{Reference: "TF-2"})

	assert.Equal(t, "TF-1", next.Reference, "reference stable within the flow instance")

	// The record already exists; only the charge is re-issued.
	require.Len(t, effects, 1)
	assert.IsType(t, StartCharge{}, effects[0])
}

func TestTransition_PaymentApproved(t *testing.T) {
	s := fillAll(t, selectState(t, "rut"))
	s, _ = transition(testPricing, false, s, PayRequested{Reference: "TF-1"})

	next, effects := transition(testPricing, false, s, PaymentResolved{Result: payment.Result{
		Outcome:               payment.OutcomeApproved,
		Reference:             "TF-1",
		ProviderTransactionID: "mp-9",
	}})

	assert.Equal(t, StatusGenerating, next.Status)
	assert.Equal(t, 4, next.Step)
	assert.False(t, next.ChargePending)
	assert.Equal(t, "TF-1", next.Reference)

	require.Len(t, effects, 4)
	assert.IsType(t, LogPaymentResult{}, effects[0])
	assert.Equal(t, MarkPaid{Reference: "TF-1", ProviderTransactionID: "mp-9"}, effects[1])
	assert.IsType(t, Say{}, effects[2])
	assert.IsType(t, StartGeneration{}, effects[3])
}

func TestTransition_PaymentResolvedForOtherReferenceDropped(t *testing.T) {
	s := fillAll(t, selectState(t, "rut"))
	s, _ = transition(testPricing, false, s, PayRequested{Reference: "TF-1"})

	next, effects := transition(testPricing, false, s, PaymentResolved{Result: payment.Result{
		Outcome:   payment.OutcomeApproved,
		Reference: "TF-otra",
	}})

	assert.Equal(t, s, next)
	assert.Empty(t, effects)
}

func TestTransition_GenerationDone(t *testing.T) {
	s := fillAll(t, selectState(t, "rut"))
	s, _ = transition(testPricing, false, s, PayRequested{Reference: "TF-1"})
	s, _ = transition(testPricing, false, s, PaymentResolved{Result: payment.Result{
		Outcome:   payment.OutcomeApproved,
		Reference: "TF-1",
	}})

	next, effects := transition(testPricing, false, s, GenerationDone{})

	assert.Equal(t, StatusCompleted, next.Status)
	assert.Equal(t, 4, next.Step)
	assert.Equal(t, "TF-1", next.Reference)

	require.NotEmpty(t, effects)
	assert.Equal(t, MarkDelivered{Reference: "TF-1"}, effects[0])
}

func TestTransition_CancelReasons(t *testing.T) {
	t.Run("MidPaying", func(t *testing.T) {
		s := fillAll(t, selectState(t, "rut"))
		s, _ = transition(testPricing, false, s, PayRequested{Reference: "TF-1"})

		next, effects := transition(testPricing, false, s, CancelRequested{})

		assert.Equal(t, StatusSelecting, next.Status)
		assert.Equal(t, 1, next.Step)
		assert.Nil(t, next.Tramite)
		assert.Empty(t, next.Answers)
		assert.Equal(t, 0, next.FieldIndex)
		assert.Empty(t, next.Reference)
		assert.Equal(t, s.Generation+1, next.Generation)

		cancel, ok := effects[0].(CancelRecord)
		require.True(t, ok)
		assert.Equal(t, "TF-1", cancel.Reference)
		assert.Equal(t, "payment_pending", string(cancel.Reason))
	})

	t.Run("FromFilling", func(t *testing.T) {
		s := selectState(t, "rut")

		next, effects := transition(testPricing, false, s, CancelRequested{})

		assert.Equal(t, StatusSelecting, next.Status)

		// No transaction was opened, so no store cancel is issued.
		for _, effect := range effects {
			_, isCancel := effect.(CancelRecord)
			assert.False(t, isCancel)
		}
	})

	t.Run("FromSelectingIsNoop", func(t *testing.T) {
		s := initialState(1, false)

		next, effects := transition(testPricing, false, s, CancelRequested{})

		assert.Equal(t, s, next)
		assert.Empty(t, effects)
	})
}

func TestTransition_ChangeTramiteResets(t *testing.T) {
	s := fillAll(t, selectState(t, "afiliacion-eps"))

	next, _ := transition(testPricing, false, s, TramiteChangeRequested{})

	assert.Equal(t, StatusSelecting, next.Status)
	assert.Nil(t, next.Tramite)
	assert.Equal(t, s.Generation+1, next.Generation)
}

func TestTransition_ResumeDiscardsLaterAnswers(t *testing.T) {
	s := selectState(t, "rut")
	s, _ = transition(testPricing, false, s, AnswerSubmitted{Value: "Cédula"})
	s, _ = transition(testPricing, false, s, AnswerSubmitted{Value: "123456789"})
	require.Equal(t, 2, s.FieldIndex)

	next, effects := transition(testPricing, false, s, ResumedAt{Answered: 1})

	assert.Equal(t, StatusFilling, next.Status)
	assert.Equal(t, 1, next.FieldIndex)
	assert.Equal(t, map[string]string{"tipoDocumento": "Cédula"}, next.Answers)

	require.NotEmpty(t, effects)
	assert.Equal(t, TruncateConversation{FieldIndex: 1}, effects[0])

	// The prompting algorithm re-enters at the restored index.
	prompt, ok := effects[len(effects)-1].(PromptField)
	require.True(t, ok)
	assert.Equal(t, 1, prompt.Index)
}

func TestTransition_ResumeClampsToFieldCount(t *testing.T) {
	s := fillAll(t, selectState(t, "camara-comercio"))
	require.Equal(t, StatusPaying, s.Status)

	next, _ := transition(testPricing, false, s, ResumedAt{Answered: 10})

	assert.Equal(t, StatusPaying, next.Status, "all fields answered resumes straight to paying")
	assert.Equal(t, 1, next.FieldIndex)
}

func TestTransition_FallbackNoticeShownOnce(t *testing.T) {
	s, _ := transition(testPricing, true, initialState(1, true), TramiteChosen{Tramite: testTramite(t, "camara-comercio")})

	s, effects := transition(testPricing, true, s, AnswerSubmitted{Value: "900123456-7"})

	require.Equal(t, StatusPaying, s.Status)
	assert.False(t, s.FallbackNotice)

	var notices int

	for _, effect := range effects {
		if say, ok := effect.(Say); ok && say.Text == "El servicio de pago real no está disponible. Se usará el modo simulado." {
			notices++
		}
	}

	assert.Equal(t, 1, notices)
}
