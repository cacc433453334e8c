// Package tui presents an assessment session in the terminal, one item
// per page. It is a thin presentation layer: all selection, stopping,
// and state decisions stay inside the assessment package.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/selvastics/inrep-sub013/internal/assessment"
	"github.com/selvastics/inrep-sub013/internal/itembank"
	"github.com/selvastics/inrep-sub013/internal/stopping"
	"github.com/selvastics/inrep-sub013/internal/store"
)

// Options wires the runner's dependencies. EventRepo and SnapshotRepo
// may be nil; the session then runs without persistence.
type Options struct {
	Session      *assessment.Session
	Mode         assessment.Mode
	EventRepo    store.EventRepo
	SnapshotRepo store.SnapshotRepo
}

type model struct {
	opts    Options
	input   textinput.Model
	current *itembank.Item
	errMsg  string
	done    bool
	width   int
	height  int
}

func newModel(opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "Response category (e.g. 0 or 1)"
	ti.CharLimit = 3
	ti.Focus()
	return model{opts: opts, input: ti}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.input.Focus(), m.serveNext())
}

// itemReadyMsg carries the next item across the async boundary.
type itemReadyMsg struct {
	item *itembank.Item
	err  error
}

// recordedMsg reports the stopping decision after a submission.
type recordedMsg struct {
	decision stopping.Decision
	err      error
}

func (m model) serveNext() tea.Cmd {
	sess := m.opts.Session
	return func() tea.Msg {
		it, err := sess.CurrentItem()
		return itemReadyMsg{item: it, err: err}
	}
}

func (m model) submit(itemID string, value int) tea.Cmd {
	opts := m.opts
	return func() tea.Msg {
		decision, err := opts.Session.SubmitResponse(itemID, value)
		if err != nil {
			return recordedMsg{err: err}
		}

		if opts.EventRepo != nil {
			theta, se, _ := opts.Session.Ability()
			_ = opts.EventRepo.AppendResponseEvent(context.Background(), store.ResponseEventData{
				SessionID:  opts.Session.ID(),
				ItemID:     itemID,
				Position:   opts.Session.Progress().Administered,
				Value:      value,
				ThetaAfter: theta,
				SEAfter:    se,
			})
		}
		if opts.SnapshotRepo != nil {
			_ = opts.SnapshotRepo.Save(context.Background(), opts.Session.Snapshot())
		}
		return recordedMsg{decision: decision}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case itemReadyMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.done = true
			return m, nil
		}
		m.current = msg.item
		m.input.SetValue("")
		return m, nil

	case recordedMsg:
		if msg.err != nil {
			// Stale or invalid input: keep the same item on screen.
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		if !msg.decision.Continue {
			m.done = true
			return m, nil
		}
		m.current = nil
		return m, m.serveNext()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.opts.Session.Stop()
			return m, tea.Quit
		case "enter":
			if m.done {
				return m, tea.Quit
			}
			if m.current == nil {
				return m, nil
			}
			value, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
			if err != nil {
				m.errMsg = "enter a response category number"
				return m, nil
			}
			return m, m.submit(m.current.ID, value)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("inrep assessment"))
	b.WriteString("\n\n")

	p := m.opts.Session.Progress()
	progress := fmt.Sprintf("Item %d", p.Administered+1)
	if m.done {
		progress = fmt.Sprintf("%d items administered", p.Administered)
	}
	if p.Of != nil {
		progress += fmt.Sprintf(" of %d", *p.Of)
	}
	b.WriteString(hintStyle.Render(progress))
	b.WriteString("\n\n")

	switch {
	case m.done:
		theta, se, known := m.opts.Session.Ability()
		b.WriteString(doneStyle.Render("Assessment complete"))
		b.WriteString("\n\n")
		b.WriteString(bodyStyle.Render(fmt.Sprintf("Stop reason: %s", m.opts.Session.LastDecision().Reason)))
		if known {
			b.WriteString("\n")
			b.WriteString(bodyStyle.Render(fmt.Sprintf("Ability estimate: %.3f (SE %.3f)", theta, se)))
		}
		if m.errMsg != "" {
			b.WriteString("\n\n")
			b.WriteString(errorStyle.Render(m.errMsg))
		}
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render("Enter to exit"))

	case m.current != nil:
		stimulus := m.current.Text
		if stimulus == "" {
			stimulus = fmt.Sprintf("Item %s (%d response categories)", m.current.ID, m.current.Model.Categories())
		}
		b.WriteString(cardStyle.Render(bodyStyle.Render(stimulus)))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		if m.errMsg != "" {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(m.errMsg))
		}
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render("Enter to submit · Esc to quit"))

	default:
		b.WriteString(hintStyle.Render("Selecting next item..."))
	}

	v.SetContent(lipgloss.NewStyle().Padding(1, 2).Render(b.String()))
	return v
}

// Run starts the interactive session and blocks until it ends. Session
// lifecycle events are recorded when an event repo is configured.
func Run(opts Options) error {
	if opts.Session == nil {
		return fmt.Errorf("no session configured")
	}

	if opts.EventRepo != nil {
		_ = opts.EventRepo.AppendSessionEvent(context.Background(), store.SessionEventData{
			SessionID: opts.Session.ID(),
			Action:    "start",
			Mode:      string(opts.Mode),
		})
	}

	p := tea.NewProgram(newModel(opts))
	_, err := p.Run()

	if opts.EventRepo != nil {
		theta, se, _ := opts.Session.Ability()
		_ = opts.EventRepo.AppendSessionEvent(context.Background(), store.SessionEventData{
			SessionID:         opts.Session.ID(),
			Action:            "stop",
			Mode:              string(opts.Mode),
			ItemsAdministered: opts.Session.Progress().Administered,
			FinalTheta:        theta,
			FinalSE:           se,
			StopReason:        string(opts.Session.LastDecision().Reason),
		})
	}
	return err
}
