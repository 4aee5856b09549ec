package interact

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jdginn/go-prism-studio/optics"
	"github.com/jdginn/go-prism-studio/optics/config"
)

const outputPNG = "interact.png"

var (
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	regenerateKey = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "regenerate"))
	allKey        = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "render all"))
)

type item struct {
	index  int
	source optics.LightSource
	stats  optics.PathStats
}

func (i item) Title() string {
	return fmt.Sprintf("source %d at (%.0f, %.0f)", i.index, i.source.Position.X, i.source.Position.Y)
}

func (i item) Description() string {
	return fmt.Sprintf("%d segments, %.0f inside prisms, %.0f split", i.stats.Segments, i.stats.InsideLength, i.stats.SplitLength)
}

func (i item) FilterValue() string {
	return i.Title()
}

type model struct {
	list   list.Model
	config *config.ExperimentConfig
	scene  *optics.Scene
	traces [][]optics.Segment
	grid   *optics.ExposureGrid
	status string
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, regenerateKey):
			m.regenerate(rand.Int63())
			return m, m.list.SetItems(items(m.config.LightSources(), m.traces))
		case key.Matches(msg, allKey):
			m.render(m.traces)
			return m, nil
		case msg.String() == "enter":
			if i, ok := m.list.SelectedItem().(item); ok && i.index < len(m.traces) {
				m.render([][]optics.Segment{m.traces[i.index]})
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-1)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	return docStyle.Render(m.list.View() + "\n" + statusStyle.Render(m.status))
}

// regenerate replaces the scene with a freshly generated one and retraces every source
func (m *model) regenerate(seed int64) {
	m.config.Generator.Seed = &seed
	m.config.Placements.Inline = nil
	m.config.Mesh.Path = ""
	scene, warnings, err := m.config.BuildScene()
	if err != nil {
		m.status = err.Error()
		return
	}
	m.scene = scene
	m.retrace()
	m.status = fmt.Sprintf("seed %d: %d prisms", seed, len(scene.Polygons))
	if len(warnings) > 0 {
		m.status += " (" + strings.Join(warnings, "; ") + ")"
	}
}

func (m *model) retrace() {
	traces, err := m.scene.TraceSources(context.Background(), m.config.LightSources(), m.config.TraceParams())
	if err != nil {
		m.status = err.Error()
		return
	}
	m.traces = traces
	if m.grid != nil {
		m.grid.Reset()
		for _, segments := range traces {
			m.grid.MarkAll(segments)
		}
	}
}

func (m *model) render(traces [][]optics.Segment) {
	if err := m.config.View(m.scene, m.grid).SavePNG(outputPNG, traces); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("saved %s at %s", outputPNG, time.Now().Format("15:04:05"))
}

func items(sources []optics.LightSource, traces [][]optics.Segment) []list.Item {
	out := make([]list.Item, len(sources))
	for i, source := range sources {
		it := item{index: i, source: source}
		if i < len(traces) {
			it.stats = optics.Summarize(traces[i])
		}
		out[i] = it
	}
	return out
}

func newModel(cfg *config.ExperimentConfig, scene *optics.Scene) model {
	m := model{config: cfg, scene: scene, grid: cfg.ExposureGrid()}
	m.retrace()

	m.list = list.New(items(cfg.LightSources(), m.traces), list.NewDefaultDelegate(), 0, 0)
	m.list.Title = "Light sources"
	m.list.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{regenerateKey, allKey}
	}
	return m
}

// Interact traces the scene and lets the user browse and render sources one at a time
func Interact(cfg *config.ExperimentConfig, scene *optics.Scene) error {
	p := tea.NewProgram(newModel(cfg, scene), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
