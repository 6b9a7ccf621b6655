// Package tui renders the particle network in a terminal with Bubble Tea.
package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"particlenet/network"
)

// FrameMsg asks for one frame at the carried time
type FrameMsg time.Time

// shared holds state shared between the Bubble Tea model copies
type shared struct {
	sched  *network.Scheduler
	canvas *Canvas
}

// Model is the Bubble Tea model driving a scheduler
type Model struct {
	width    int
	height   int
	ready    bool
	interval time.Duration

	shared *shared
}

// New creates a model; the scheduler must draw onto canvas
func New(sched *network.Scheduler, canvas *Canvas, fps int) Model {
	return Model{
		interval: time.Second / time.Duration(max(1, fps)),
		shared:   &shared{sched: sched, canvas: canvas},
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	net := m.shared.sched.Network()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.shared.sched.Configure(float64(msg.Width)*CellWidth, float64(msg.Height)*CellHeight, 1)
		return m, nil

	case tea.MouseMsg:
		// every mouse event carries a position; treat it as a move
		net.Pointer().Move((float64(msg.X)+0.5)*CellWidth, (float64(msg.Y)+0.5)*CellHeight)
		return m, nil

	case tea.BlurMsg:
		net.Pointer().Leave()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "esc", "ctrl+c":
			m.shared.sched.Stop()
			return m, tea.Quit
		}
		return m, nil

	case FrameMsg:
		if m.shared.sched.State() == network.StateIdle {
			return m, tea.Quit
		}
		if m.ready {
			m.shared.sched.Frame(time.Time(msg))
		}
		return m, tickCmd(m.interval)
	}

	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return ""
	}
	return m.shared.canvas.String()
}

// Run shows the network until the user quits, the scheduler stops or ctx is done
func Run(ctx context.Context, sched *network.Scheduler, canvas *Canvas, fps int) error {
	p := tea.NewProgram(
		New(sched, canvas, fps),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
