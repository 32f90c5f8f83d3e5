package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"armkeys.klederson.com/internal/config"
	"armkeys.klederson.com/internal/pipeline"
	"armkeys.klederson.com/internal/transport"
	"armkeys.klederson.com/internal/ui"
)

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	pipeline  *pipeline.Pipeline
	transport transport.Transport
	history   map[int]*KeyRing
}

// AppModel is the root Bubble Tea model for armkeys. Every pipeline call
// happens in Update, so the pipeline only ever runs on the program's
// goroutine.
type AppModel struct {
	width  int
	height int

	paused bool
	cursor int
	source string
	tick   time.Duration

	shared *shared

	// Cached snapshot
	reports []pipeline.Report
	presses uint64
	lastErr error
}

// New creates a new AppModel. source labels the transport in the menu bar.
func New(p *pipeline.Pipeline, t transport.Transport, source string, tick time.Duration) AppModel {
	return AppModel{
		source: source,
		tick:   tick,
		shared: &shared{
			pipeline:  p,
			transport: t,
			history:   make(map[int]*KeyRing),
		},
	}
}

func (m AppModel) Init() tea.Cmd {
	return tickCmd(m.tick)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		if m.paused {
			m.reports = m.shared.pipeline.Snapshot()
		} else {
			m.reports = m.shared.pipeline.Tick()
			m.recordPresses()
		}
		return m, tickCmd(m.tick)
	}

	if err := m.shared.pipeline.Dispatch(msg); err != nil {
		m.lastErr = err
	}
	return m, nil
}

func (m *AppModel) recordPresses() {
	for _, r := range m.reports {
		if !r.Pressed {
			continue
		}
		ring, ok := m.shared.history[r.ID]
		if !ok {
			ring = NewKeyRing(config.KeyHistorySize)
			m.shared.history[r.ID] = ring
		}
		ring.Push(r.Symbol)
		m.presses++
	}
}

// handleKey binds only keys outside every keyset: the armbands type into
// whatever window has focus, including this one.
func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.shared.transport.Stop()
		return m, tea.Quit

	case "p", "P", " ":
		m.paused = !m.paused

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.reports)-1 {
			m.cursor++
		}

	case "esc":
		m.lastErr = nil
	}

	return m, nil
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing armkeys..."
	}

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < 5 {
		bodyH = 5
	}

	listW := m.width / 3
	if listW < 28 {
		listW = 28
	}
	detailW := m.width - listW
	if detailW < 30 {
		detailW = 30
	}

	profile := m.shared.pipeline.Profile()
	menuBar := ui.RenderMenuBar(m.width, profile.Name, m.source, m.paused)

	limit := m.shared.pipeline.Registry().Limit()
	list := ui.RenderArmbandList(m.reports, limit, listW, bodyH, m.cursor)

	var (
		selected *pipeline.Report
		history  []rune
	)
	if m.cursor < len(m.reports) {
		selected = &m.reports[m.cursor]
		if ring, ok := m.shared.history[selected.ID]; ok {
			history = ring.Values()
		}
	}
	detail := ui.RenderDetailPanel(selected, history, detailW, bodyH)

	connected := 0
	for _, r := range m.reports {
		if r.Connected {
			connected++
		}
	}
	statusBar := ui.RenderStatusBar(m.width, ui.StatusInfo{
		Paused:     m.paused,
		Registered: len(m.reports),
		Connected:  connected,
		Limit:      limit,
		Presses:    m.presses,
		Err:        m.lastErr,
	})

	return ui.ComposeLayout(menuBar, list, detail, statusBar)
}

// StartTransport starts the transport, delivering its events to p. Must be
// called before p.Run().
func (m *AppModel) StartTransport(p *tea.Program) error {
	return m.shared.transport.Start(p)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
