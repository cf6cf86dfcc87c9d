package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// busySource is the slice of the controller the status line watches.
type busySource interface {
	Busy() bool
	Version() uint64
	Subscribe() (<-chan struct{}, func())
}

type stateChangedMsg struct{}

type callDoneMsg struct {
	err error
}

// busyStatusModel draws a spinner while the controller reports an intent in
// flight. It re-reads Busy on every change signal instead of assuming the
// call it started is the only one running.
type busyStatusModel struct {
	spinner spinner.Model
	label   string
	source  busySource
	changes <-chan struct{}
	stop    <-chan struct{}
	call    tea.Cmd
	version uint64
	busy    bool
	err     error
	done    bool
}

func newBusyStatusModel(label string, source busySource, changes, stop <-chan struct{}, call tea.Cmd) busyStatusModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return busyStatusModel{
		spinner: s,
		label:   label,
		source:  source,
		changes: changes,
		stop:    stop,
		call:    call,
		version: source.Version(),
		busy:    source.Busy(),
	}
}

func (m busyStatusModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.call, m.waitForChange())
}

func (m busyStatusModel) waitForChange() tea.Cmd {
	changes, stop := m.changes, m.stop
	return func() tea.Msg {
		select {
		case <-changes:
			return stateChangedMsg{}
		case <-stop:
			return nil
		}
	}
}

func (m busyStatusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case stateChangedMsg:
		if version := m.source.Version(); version != m.version {
			m.version = version
			m.busy = m.source.Busy()
		}
		return m, m.waitForChange()
	case callDoneMsg:
		m.done = true
		m.busy = m.source.Busy()
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m busyStatusModel) View() string {
	if m.done || !m.busy {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runWithSpinner runs call and shows label on output for as long as source
// reports the chat API is being waited on.
func runWithSpinner(ctx context.Context, output io.Writer, label string, source busySource, call func(context.Context) error) error {
	changes, unsubscribe := source.Subscribe()
	defer unsubscribe()

	stop := make(chan struct{})
	defer close(stop)

	callCmd := func() tea.Msg {
		return callDoneMsg{err: call(ctx)}
	}

	p := tea.NewProgram(
		newBusyStatusModel(label, source, changes, stop, callCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(busyStatusModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
