package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type workbookDoneMsg struct {
	err error
}

type workbookSpinnerModel struct {
	spinner spinner.Model
	label   string
	write   tea.Cmd
	err     error
	done    bool
}

func newWorkbookSpinnerModel(label string, write tea.Cmd) workbookSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return workbookSpinnerModel{
		spinner: s,
		label:   label,
		write:   write,
	}
}

func (m workbookSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.write)
}

func (m workbookSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case workbookDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m workbookSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func runWorkbookSpinner(ctx context.Context, output io.Writer, write func(context.Context) error) error {
	writeCmd := func() tea.Msg {
		return workbookDoneMsg{err: write(ctx)}
	}

	p := tea.NewProgram(
		newWorkbookSpinnerModel("Writing cohort workbooks...", writeCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(workbookSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
