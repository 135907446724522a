package flow

import (
	"fmt"
	"strings"

	"github.com/tramitefacil/tramitefacil/internal/payment"
	"github.com/tramitefacil/tramitefacil/internal/transaction"
)

// Pricing holds the charge computation inputs. ComputeTotal over these
// is deterministic, so receipts are reproducible.
type Pricing struct {
	ServiceFee int64
	TaxRate    float64
	Currency   string
}

// transition is the pure state-transition function of the flow machine:
// (State, Event) -> (State, effects). It performs no I/O; the engine
// executes the effects in order.
func transition(p Pricing, fallbackActive bool, s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case TramiteChosen:
		return applyTramiteChosen(s, ev)
	case AnswerSubmitted:
		return applyAnswerSubmitted(s, ev)
	case PayRequested:
		return applyPayRequested(p, s, ev)
	case PaymentResolved:
		return applyPaymentResolved(s, ev)
	case GenerationDone:
		return applyGenerationDone(s)
	case CancelRequested:
		return applyReset(fallbackActive, s, "Proceso cancelado. Puedes iniciar un nuevo trámite cuando quieras.")
	case TramiteChangeRequested:
		return applyReset(fallbackActive, s, "Listo, elige el trámite que necesitas.")
	case ResumedAt:
		return applyResumedAt(s, ev)
	}

	return s, nil
}

func applyTramiteChosen(s State, ev TramiteChosen) (State, []Effect) {
	if s.Status != StatusSelecting {
		return s, nil
	}

	t := ev.Tramite

	s.Status = StatusFilling
	s.Step = 2
	s.Tramite = &t
	s.Answers = map[string]string{}
	s.FieldIndex = 0
	s.PromptedIndex = -1

	effects := []Effect{
		Say{Speaker: SpeakerUser, Text: fmt.Sprintf("Quiero realizar el trámite: %s", t.Name)},
		Say{Speaker: SpeakerAssistant, Text: fmt.Sprintf("¡Excelente elección! Para el %s, necesitaré algunos datos.", t.Name)},
	}

	return promptNext(s, effects)
}

func applyAnswerSubmitted(s State, ev AnswerSubmitted) (State, []Effect) {
	if s.Status != StatusFilling || s.Tramite == nil {
		return s, nil
	}

	value := strings.TrimSpace(ev.Value)
	if value == "" {
		return s, []Effect{Say{Speaker: SpeakerAssistant, Text: "Necesito una respuesta para continuar."}}
	}

	// Extra submissions after the last field are a no-op with a notice,
	// never an error.
	if s.FieldIndex >= len(s.Tramite.Fields) {
		return s, []Effect{Say{Speaker: SpeakerAssistant, Text: "Ya has proporcionado todos los datos necesarios."}}
	}

	field := s.Tramite.Fields[s.FieldIndex]

	answers := make(map[string]string, len(s.Answers)+1)
	for k, v := range s.Answers {
		answers[k] = v
	}
	answers[field.ID] = value

	s.Answers = answers
	s.FieldIndex++

	effects := []Effect{Say{Speaker: SpeakerUser, Text: value}}

	return promptNext(s, effects)
}

// promptNext runs the field-prompting algorithm: ask the next field, or
// declare the information complete and move to paying. PromptedIndex
// guards against prompting twice for the same cursor position.
func promptNext(s State, effects []Effect) (State, []Effect) {
	n := len(s.Tramite.Fields)

	if s.FieldIndex < n {
		if s.PromptedIndex != s.FieldIndex {
			field := s.Tramite.Fields[s.FieldIndex]
			effects = append(effects, PromptField{
				Index: s.FieldIndex,
				Label: fmt.Sprintf("Por favor, ingresa tu %s:", strings.ToLower(field.Label)),
			})
			s.PromptedIndex = s.FieldIndex
		}

		return s, effects
	}

	if s.PromptedIndex != n {
		effects = append(effects, MarkComplete{Text: "¡Perfecto! Hemos reunido toda la información."})
		s.PromptedIndex = n
	}

	s.Status = StatusPaying
	s.Step = 3

	if s.FallbackNotice {
		effects = append(effects, Say{
			Speaker: SpeakerAssistant,
			Text:    "El servicio de pago real no está disponible. Se usará el modo simulado.",
		})
		s.FallbackNotice = false
	}

	return s, effects
}

func applyPayRequested(p Pricing, s State, ev PayRequested) (State, []Effect) {
	if s.Status != StatusPaying || s.ChargePending || s.Tramite == nil {
		return s, nil
	}

	total := payment.ComputeTotal(s.Tramite.PriceCOP, p.ServiceFee, p.TaxRate)

	var effects []Effect

	// The reference stays stable across retries within one flow
	// instance; the record is created on the first attempt only.
	reference := s.Reference
	if reference == "" {
		reference = ev.Reference
		effects = append(effects, CreateRecord{Params: transaction.CreateParams{
			Reference:   reference,
			TramiteID:   s.Tramite.ID,
			TramiteName: s.Tramite.Name,
			Amount:      total,
			Currency:    p.Currency,
			FormData:    copyAnswers(s.Answers),
		}})
	}

	effects = append(effects, StartCharge{
		Request: payment.ChargeRequest{
			TramiteID:        s.Tramite.ID,
			TramiteName:      s.Tramite.Name,
			AmountMinorUnits: payment.ToMinorUnits(total),
			Currency:         p.Currency,
			Reference:        reference,
			FormAnswers:      copyAnswers(s.Answers),
			MethodDescriptor: "CARD",
		},
		Generation: s.Generation,
	})

	s.Reference = reference
	s.ChargePending = true

	return s, effects
}

func applyPaymentResolved(s State, ev PaymentResolved) (State, []Effect) {
	// A result for a reference other than the current one belongs to an
	// abandoned attempt and is dropped silently.
	if s.Status != StatusPaying || !s.ChargePending || ev.Result.Reference != s.Reference {
		return s, nil
	}

	s.ChargePending = false

	effects := []Effect{LogPaymentResult{Result: ev.Result}}

	switch ev.Result.Outcome {
	case payment.OutcomeApproved:
		s.Status = StatusGenerating
		s.Step = 4

		effects = append(effects,
			MarkPaid{Reference: s.Reference, ProviderTransactionID: ev.Result.ProviderTransactionID},
			Say{Speaker: SpeakerAssistant, Text: "Pago aprobado. ¡Gracias! Estamos generando tu documento..."},
			StartGeneration{Generation: s.Generation},
		)

	case payment.OutcomeDeclined:
		effects = append(effects, Say{Speaker: SpeakerAssistant, Text: fmt.Sprintf("Pago rechazado: %s", reasonOr(ev.Result.Reason, "no aprobado por el emisor"))})

	case payment.OutcomeCancelled:
		effects = append(effects, Say{Speaker: SpeakerAssistant, Text: reasonOr(ev.Result.Reason, "Pago cancelado.")})

	default:
		effects = append(effects, Say{Speaker: SpeakerAssistant, Text: fmt.Sprintf("Error de pago: %s", reasonOr(ev.Result.Reason, "inténtalo de nuevo"))})
	}

	return s, effects
}

func applyGenerationDone(s State) (State, []Effect) {
	if s.Status != StatusGenerating {
		return s, nil
	}

	s.Status = StatusCompleted
	s.Step = 4

	return s, []Effect{
		MarkDelivered{Reference: s.Reference},
		Say{Speaker: SpeakerAssistant, Text: "¡Tu documento está listo para descargar!"},
		Say{Speaker: SpeakerAssistant, Text: "¿Te fue útil? ¡Ayúdanos a mejorar!"},
	}
}

func applyReset(fallbackActive bool, s State, notice string) (State, []Effect) {
	if s.Status == StatusSelecting {
		return s, nil
	}

	var effects []Effect

	if s.Reference != "" {
		reason := transaction.ReasonCancelledByUser
		if s.Status == StatusPaying {
			reason = transaction.ReasonPaymentPending
		}

		effects = append(effects, CancelRecord{Reference: s.Reference, Reason: reason})
	}

	effects = append(effects,
		ResetConversation{},
		Say{Speaker: SpeakerAssistant, Text: notice},
	)

	return initialState(s.Generation+1, fallbackActive), effects
}

func applyResumedAt(s State, ev ResumedAt) (State, []Effect) {
	if s.Tramite == nil || s.ChargePending {
		return s, nil
	}

	if s.Status != StatusFilling && s.Status != StatusPaying {
		return s, nil
	}

	k := ev.Answered
	if k < 0 {
		k = 0
	}

	if n := len(s.Tramite.Fields); k > n {
		k = n
	}

	// Discard answers beyond the resume point: their keys are
	// unreachable from the restored cursor.
	answers := make(map[string]string, k)
	for _, f := range s.Tramite.Fields[:k] {
		if v, ok := s.Answers[f.ID]; ok {
			answers[f.ID] = v
		}
	}

	s.Status = StatusFilling
	s.Step = 2
	s.Answers = answers
	s.FieldIndex = k
	s.PromptedIndex = -1

	effects := []Effect{TruncateConversation{FieldIndex: k}}

	return promptNext(s, effects)
}

func copyAnswers(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}

	return out
}

func reasonOr(reason, fallback string) string {
	if reason == "" {
		return fallback
	}

	return reason
}
