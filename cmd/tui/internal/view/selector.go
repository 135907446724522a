package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tramitefacil/tramitefacil/internal/catalog"
)

type TramiteSelectedMsg struct {
	ID string
}

// SelectorModel is the trámite picker shown while the flow is in the
// selection phase.
type SelectorModel struct {
	form *huh.Form
	done bool
}

func NewSelectorModel(cat *catalog.Catalog) SelectorModel {
	m := SelectorModel{}

	options := make([]huh.Option[string], 0, len(cat.List()))
	for _, t := range cat.List() {
		label := fmt.Sprintf("%s (%s)", t.Name, FormatAmount(t.PriceCOP))
		options = append(options, huh.NewOption(label, t.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("tramite").
				Title("¿Qué trámite deseas realizar?").
				Options(options...),
		),
	).WithWidth(60).WithShowHelp(false)

	return m
}

func (m SelectorModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m SelectorModel) Update(msg tea.Msg) (SelectorModel, tea.Cmd) {
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
	id := m.form.GetString("tramite")

	return m, func() tea.Msg {
		return TramiteSelectedMsg{ID: id}
	}
}

func (m SelectorModel) View() string {
	if m.done {
		return ""
	}

	return m.form.View()
}
