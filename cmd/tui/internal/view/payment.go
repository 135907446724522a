package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tramitefacil/tramitefacil/internal/catalog"
	"github.com/tramitefacil/tramitefacil/internal/document"
	"github.com/tramitefacil/tramitefacil/internal/flow"
	"github.com/tramitefacil/tramitefacil/internal/payment"
)

// renderPaymentCard shows the pricing breakdown before the user
// confirms the charge.
func renderPaymentCard(t catalog.Tramite, pricing flow.Pricing, mode payment.Mode) string {
	header := lipgloss.NewStyle().Bold(true).Render("Resumen de pago")

	body := document.Receipt(t, pricing.ServiceFee, pricing.TaxRate)

	modeLine := ""
	if mode == payment.ModeMock {
		modeLine = "\n" + helpStyle.Render("Modo simulado: ningún cobro real será realizado.")
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body) + modeLine)
}

// OutcomePromptModel lets the user pick the simulated result of a mock
// charge. It resolves the blocked picker through the reply channel, so
// it must deliver exactly one outcome before being discarded.
type OutcomePromptModel struct {
	form  *huh.Form
	reply chan<- payment.Outcome
	done  bool
}

func NewOutcomePromptModel(prompt OutcomePromptMsg) OutcomePromptModel {
	m := OutcomePromptModel{reply: prompt.Reply}

	title := fmt.Sprintf("Simular resultado del pago (%s)", FormatAmount(prompt.Request.AmountMinorUnits/100))

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("outcome").
				Title(title).
				Options(
					huh.NewOption("Aprobado", string(payment.OutcomeApproved)),
					huh.NewOption("Rechazado", string(payment.OutcomeDeclined)),
					huh.NewOption("Cancelado", string(payment.OutcomeCancelled)),
					huh.NewOption("Error del servidor", string(payment.OutcomeError)),
				),
		),
	).WithWidth(60).WithShowHelp(false)

	return m
}

func (m OutcomePromptModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m OutcomePromptModel) Update(msg tea.Msg) (OutcomePromptModel, tea.Cmd) {
	if m.done {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.done = true
	m.reply <- payment.Outcome(m.form.GetString("outcome"))

	return m, nil
}

func (m OutcomePromptModel) Done() bool {
	return m.done
}

// Cancel resolves an abandoned prompt so the picker goroutine does not
// wait on a reply that will never come. The result is stale by then and
// dropped by the engine.
func (m *OutcomePromptModel) Cancel() {
	if m.done {
		return
	}

	m.done = true
	m.reply <- payment.OutcomeCancelled
}

func (m OutcomePromptModel) View() string {
	if m.done {
		return ""
	}

	return cardStyle.Render(m.form.View())
}
