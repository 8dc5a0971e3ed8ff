package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/registry"
	"github.com/taskdeck/taskdeck/internal/task"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

// RunTUI starts the interactive task viewer over the given registry.
func RunTUI(ctx context.Context, reg *registry.Registry, ren *Renderer) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newTUIModel(reg, ren)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

type tuiModel struct {
	reg    *registry.Registry
	ren    *Renderer
	tasks  []task.Task
	cursor int
	filter task.Status // "" shows everything
	note   string      // transient message shown above the footer
}

func newTUIModel(reg *registry.Registry, ren *Renderer) *tuiModel {
	m := &tuiModel{reg: reg, ren: ren}
	m.refresh()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.note = ""
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "1":
		m.filter = task.StatusTodo
		m.refresh()
	case "2":
		m.filter = task.StatusInProgress
		m.refresh()
	case "3":
		m.filter = task.StatusDone
		m.refresh()
	case "0":
		m.filter = ""
		m.refresh()
	case "t":
		m.setStatus(task.StatusTodo)
	case "p":
		m.setStatus(task.StatusInProgress)
	case "d":
		m.setStatus(task.StatusDone)
	case "x":
		m.removeCurrent()
	case "r":
		m.refresh()
	}

	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("taskdeck"))
	b.WriteByte('\n')
	counts := m.reg.Counts()
	fmt.Fprintf(&b, "%d todo · %d in-progress · %d done\n\n",
		counts[task.StatusTodo], counts[task.StatusInProgress], counts[task.StatusDone])

	if m.filter != "" {
		fmt.Fprintf(&b, "Filter: %s (0 to clear)\n\n", m.filter)
	}

	if len(m.tasks) == 0 {
		b.WriteString("No tasks.\n")
	}
	for i, t := range m.tasks {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		b.WriteString(prefix)
		b.WriteString(m.ren.Task(t))
		b.WriteByte('\n')
	}

	if m.note != "" {
		b.WriteString("\n")
		b.WriteString(m.note)
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(faintStyle.Render("j/k move · t/p/d set status · x delete · 1/2/3/0 filter · r refresh · q quit"))
	b.WriteByte('\n')
	return b.String()
}

// refresh reloads the visible task list and clamps the cursor.
func (m *tuiModel) refresh() {
	m.tasks = m.reg.List(string(m.filter))
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) setStatus(status task.Status) {
	t := m.current()
	if t.IsZero() {
		return
	}
	if _, err := m.reg.SetStatus(t.ID, status); err != nil {
		m.note = err.Error()
	}
	m.refresh()
}

func (m *tuiModel) removeCurrent() {
	t := m.current()
	if t.IsZero() {
		return
	}
	if err := m.reg.Remove(t.ID); err != nil {
		m.note = err.Error()
	}
	m.refresh()
}

// current returns the task under the cursor, or a zero task when the
// visible list is empty.
func (m *tuiModel) current() task.Task {
	if len(m.tasks) == 0 || m.cursor >= len(m.tasks) {
		return task.Task{}
	}
	return m.tasks[m.cursor]
}
