package sessions

import (
	"errors"
	"io"

	"github.com/bnema/recruit-chat-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type viewFunc func(opts RenderOptions, s styles) (string, error)

type model struct {
	view   viewFunc
	opts   RenderOptions
	styles styles
	output string
	err    error
}

func newModel(view viewFunc, opts RenderOptions) model {
	return model{
		view:   view,
		opts:   opts,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output, m.err = m.view(m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// RenderList renders session summaries in the order given.
func RenderList(sessions []domain.Session, opts RenderOptions) (string, error) {
	return run(func(opts RenderOptions, s styles) (string, error) {
		return renderList(sessions, opts, s), nil
	}, opts)
}

// RenderSession renders one session with its messages.
func RenderSession(session domain.Session, opts RenderOptions) (string, error) {
	return run(func(opts RenderOptions, s styles) (string, error) {
		return renderSession(session, opts, s)
	}, opts)
}

func run(view viewFunc, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(view, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}
	if rendered.err != nil {
		return "", rendered.err
	}

	return rendered.View(), nil
}
