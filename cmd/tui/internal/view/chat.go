package view

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tramitefacil/tramitefacil/internal/catalog"
	"github.com/tramitefacil/tramitefacil/internal/document"
	"github.com/tramitefacil/tramitefacil/internal/flow"
)

type revealMsg struct{}

// ChatModel is the conversational screen. The engine owns all flow
// state; this model only renders the transcript and routes user input
// to the engine action matching the current phase.
type ChatModel struct {
	CommonModel
	engine *flow.Engine
	cat    *catalog.Catalog

	typingDelay     time.Duration
	generationDelay time.Duration

	input      textinput.Model
	spin       spinner.Model
	selector   SelectorModel
	outcome    *OutcomePromptModel
	generation GenerationModel

	// visible counts transcript entries already revealed; assistant
	// entries appear one at a time with a typing pause.
	visible int
	typing  bool

	lastStatus flow.Status
	issuedAt   time.Time

	savedPath string
	saveErr   error
}

type documentSavedMsg struct {
	path string
	err  error
}

func NewChatModel(engine *flow.Engine, cat *catalog.Catalog, typingDelay, generationDelay time.Duration) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Escribe tu respuesta..."
	ti.CharLimit = 120
	ti.Width = 50
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ChatModel{
		engine:          engine,
		cat:             cat,
		typingDelay:     typingDelay,
		generationDelay: generationDelay,
		input:           ti,
		spin:            s,
		selector:        NewSelectorModel(cat),
		lastStatus:      flow.StatusSelecting,
	}
}

func (m ChatModel) Title() string { return "Trámite Fácil" }

func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(m.selector.Init(), m.spin.Tick, textinput.Blink, func() tea.Msg {
		return RefreshMsg{}
	})
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		return m, nil

	case RefreshMsg:
		return m.sync()

	case revealMsg:
		m.typing = false
		m.visible++

		return m.sync()

	case TramiteSelectedMsg:
		id := msg.ID

		return m, m.engineCmd(func() {
			_ = m.engine.SelectTramite(id)
		})

	case OutcomePromptMsg:
		prompt := NewOutcomePromptModel(msg)
		m.outcome = &prompt

		return m, prompt.Init()

	case stageTickMsg:
		var cmd tea.Cmd
		m.generation, cmd = m.generation.Update(msg)

		return m, cmd

	case documentSavedMsg:
		m.savedPath = msg.path
		m.saveErr = msg.err

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if model, cmd, handled := m.handleKey(msg); handled {
			return model, cmd
		}
	}

	return m.forward(msg)
}

// handleKey covers the phases driven by key bindings rather than an
// embedded form.
func (m ChatModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	snap := m.engine.Snapshot()

	switch snap.Status {
	case flow.StatusFilling:
		switch msg.Type {
		case tea.KeyEnter:
			value := m.input.Value()
			m.input.SetValue("")

			return m, m.engineCmd(func() {
				m.engine.SubmitAnswer(value)
			}), true

		case tea.KeyEsc:
			if snap.FieldIndex > 0 {
				back := snap.FieldIndex - 1

				return m, m.engineCmd(func() {
					m.engine.Resume(back)
				}), true
			}

			return m, m.engineCmd(m.engine.ChangeTramite), true
		}

	case flow.StatusPaying:
		if m.outcome != nil && !m.outcome.Done() {
			return m, nil, false
		}

		if snap.ChargePending {
			return m, nil, true
		}

		switch msg.String() {
		case "p":
			return m, m.engineCmd(func() {
				_ = m.engine.Pay(context.Background())
			}), true
		case "e":
			back := snap.FieldCount() - 1

			return m, m.engineCmd(func() {
				m.engine.Resume(back)
			}), true
		case "t":
			return m, m.engineCmd(m.engine.ChangeTramite), true
		case "c":
			return m, m.engineCmd(m.engine.Cancel), true
		}

		return m, nil, true

	case flow.StatusCompleted:
		switch msg.String() {
		case "d":
			return m, m.saveDocumentCmd(snap), true
		case "n":
			return m, m.engineCmd(m.engine.ChangeTramite), true
		case "q":
			return m, tea.Quit, true
		}

		return m, nil, true

	case flow.StatusGenerating:
		return m, nil, true
	}

	return m, nil, false
}

// forward hands the message to whichever embedded component is active.
func (m ChatModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	snap := m.engine.Snapshot()

	var cmd tea.Cmd

	switch snap.Status {
	case flow.StatusSelecting:
		m.selector, cmd = m.selector.Update(msg)
	case flow.StatusFilling:
		m.input, cmd = m.input.Update(msg)
	case flow.StatusPaying:
		if m.outcome != nil && !m.outcome.Done() {
			var prompt OutcomePromptModel
			prompt, cmd = m.outcome.Update(msg)
			m.outcome = &prompt
		}
	}

	return m, cmd
}

const documentsDir = "./documentos"

func (m ChatModel) saveDocumentCmd(snap flow.State) tea.Cmd {
	pricing := m.engine.Pricing()
	doc := document.Build(snap.Reference, *snap.Tramite, pricing.ServiceFee, pricing.TaxRate, m.issuedAt)

	return func() tea.Msg {
		path, err := document.Save(documentsDir, doc)

		return documentSavedMsg{path: path, err: err}
	}
}

func (m ChatModel) engineCmd(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()

		return RefreshMsg{}
	}
}

// sync reconciles the model with the engine after a state change.
func (m ChatModel) sync() (tea.Model, tea.Cmd) {
	snap := m.engine.Snapshot()

	var cmds []tea.Cmd

	if snap.Status != m.lastStatus {
		switch snap.Status {
		case flow.StatusSelecting:
			m.selector = NewSelectorModel(m.cat)

			if m.outcome != nil {
				m.outcome.Cancel()
				m.outcome = nil
			}

			cmds = append(cmds, m.selector.Init())

		case flow.StatusFilling:
			m.input.SetValue("")
			cmds = append(cmds, textinput.Blink)

		case flow.StatusGenerating:
			m.outcome = nil
			m.generation = NewGenerationModel(m.generationDelay)
			cmds = append(cmds, m.generation.Start())

		case flow.StatusCompleted:
			m.issuedAt = time.Now()
			m.savedPath = ""
			m.saveErr = nil
		}

		m.lastStatus = snap.Status
	}

	var cmd tea.Cmd
	m, cmd = m.reveal()
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// reveal advances the visible transcript window. User entries show
// immediately; each assistant entry waits one typing pause.
func (m ChatModel) reveal() (ChatModel, tea.Cmd) {
	entries := m.engine.Transcript()

	if m.visible > len(entries) {
		m.visible = len(entries)
	}

	if m.typing {
		return m, nil
	}

	for m.visible < len(entries) {
		if entries[m.visible].Speaker == flow.SpeakerUser || m.typingDelay <= 0 {
			m.visible++
			continue
		}

		m.typing = true

		return m, tea.Tick(m.typingDelay, func(time.Time) tea.Msg {
			return revealMsg{}
		})
	}

	return m, nil
}

func (m ChatModel) View() string {
	snap := m.engine.Snapshot()

	var b strings.Builder

	entries := m.engine.Transcript()

	visible := m.visible
	if visible > len(entries) {
		visible = len(entries)
	}

	for _, e := range entries[:visible] {
		if e.Speaker == flow.SpeakerUser {
			b.WriteString(userBubble.Render("Tú: " + e.Text))
		} else {
			b.WriteString(assistantBubble.Render("LIA: " + e.Text))
		}

		b.WriteString("\n")
	}

	if m.typing {
		b.WriteString(helpStyle.Render(m.spin.View()+" LIA está escribiendo...") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.controls(snap))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m ChatModel) controls(snap flow.State) string {
	switch snap.Status {
	case flow.StatusSelecting:
		return m.selector.View()

	case flow.StatusFilling:
		return m.input.View() + "\n" +
			helpStyle.Render("Enter: enviar | Esc: corregir respuesta anterior | Ctrl+C: salir")

	case flow.StatusPaying:
		if m.outcome != nil && !m.outcome.Done() {
			return m.outcome.View()
		}

		if snap.ChargePending {
			return m.spin.View() + " Procesando pago..."
		}

		card := renderPaymentCard(*snap.Tramite, m.engine.Pricing(), m.engine.Mode())

		if m.engine.PaymentBlocked() {
			return card + "\n" +
				errStyle.Render("El pago no está disponible en este momento.") + "\n" +
				helpStyle.Render("e: corregir datos | t: cambiar trámite | c: cancelar")
		}

		return card + "\n" +
			helpStyle.Render("p: pagar | e: corregir datos | t: cambiar trámite | c: cancelar")

	case flow.StatusGenerating:
		return m.generation.View()

	case flow.StatusCompleted:
		return m.renderDocument(snap)
	}

	return ""
}

func (m ChatModel) renderDocument(snap flow.State) string {
	pricing := m.engine.Pricing()
	doc := document.Build(snap.Reference, *snap.Tramite, pricing.ServiceFee, pricing.TaxRate, m.issuedAt)

	header := okStyle.Render("¡Tu documento está listo!")

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		"Referencia: "+doc.Reference,
		"Fecha de expedición: "+FormatDate(doc.IssuedAt),
		"",
		doc.Receipt,
	)

	status := ""

	switch {
	case m.saveErr != nil:
		status = errStyle.Render("No se pudo guardar el documento: "+m.saveErr.Error()) + "\n"
	case m.savedPath != "":
		status = okStyle.Render("Documento guardado en "+m.savedPath) + "\n"
	}

	return cardStyle.Render(body) + "\n" + status +
		helpStyle.Render("d: guardar documento | n: nuevo trámite | q: salir")
}
