package view

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tramitefacil/tramitefacil/internal/document"
)

type stageTickMsg struct{}

// GenerationModel animates the document generation stages. Pacing is
// cosmetic; the flow completes when the engine says so, not when the
// bar fills.
type GenerationModel struct {
	bar      progress.Model
	stages   []document.Stage
	stage    int
	interval time.Duration
}

func NewGenerationModel(total time.Duration) GenerationModel {
	stages := document.Stages()

	interval := total / time.Duration(len(stages))
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	return GenerationModel{
		bar:      progress.New(progress.WithDefaultGradient()),
		stages:   stages,
		interval: interval,
	}
}

func (m GenerationModel) Start() tea.Cmd {
	return m.tick()
}

func (m GenerationModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return stageTickMsg{}
	})
}

func (m GenerationModel) Update(msg tea.Msg) (GenerationModel, tea.Cmd) {
	if _, ok := msg.(stageTickMsg); !ok {
		return m, nil
	}

	if m.stage >= len(m.stages)-1 {
		return m, nil
	}

	m.stage++

	return m, m.tick()
}

func (m GenerationModel) View() string {
	stage := m.stages[m.stage]

	return cardStyle.Render(
		stage.Label + "\n\n" + m.bar.ViewAs(float64(stage.Percent)/100),
	)
}
