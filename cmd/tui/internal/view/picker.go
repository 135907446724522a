package view

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tramitefacil/tramitefacil/internal/payment"
)

// Sender forwards messages into the running bubbletea program. The
// program pointer is only known after construction, so it is bound
// late through Attach.
type Sender struct {
	program *tea.Program
}

func (s *Sender) Attach(p *tea.Program) {
	s.program = p
}

func (s *Sender) Send(msg tea.Msg) {
	if s.program != nil {
		s.program.Send(msg)
	}
}

// OutcomePromptMsg asks the UI to let the user choose the result of a
// simulated charge. Reply must receive exactly one value.
type OutcomePromptMsg struct {
	Request payment.ChargeRequest
	Reply   chan<- payment.Outcome
}

// UIOutcomePicker resolves mock charges by prompting the user inside
// the TUI. Pick is called from the engine's charge goroutine, never
// from the UI loop, so blocking here is safe.
type UIOutcomePicker struct {
	sender *Sender
}

func NewUIOutcomePicker(sender *Sender) *UIOutcomePicker {
	return &UIOutcomePicker{sender: sender}
}

func (p *UIOutcomePicker) Pick(ctx context.Context, req payment.ChargeRequest) (payment.Outcome, string, error) {
	reply := make(chan payment.Outcome, 1)
	p.sender.Send(OutcomePromptMsg{Request: req, Reply: reply})

	select {
	case outcome := <-reply:
		return outcome, outcomeReason(outcome), nil
	case <-ctx.Done():
		return "", "", ctx.Err()
	}
}

func outcomeReason(outcome payment.Outcome) string {
	switch outcome {
	case payment.OutcomeDeclined:
		return "Fondos insuficientes."
	case payment.OutcomeCancelled:
		return "Pago cancelado por el usuario."
	case payment.OutcomeError:
		return "Error de comunicación con el servidor de pagos."
	}

	return ""
}
