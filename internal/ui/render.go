// Package ui renders task lists for the terminal and provides the
// interactive viewer.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/task"
)

var (
	idStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	faintStyle = lipgloss.NewStyle().Faint(true)

	statusStyles = map[task.Status]lipgloss.Style{
		task.StatusTodo:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		task.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		task.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
)

// Renderer formats tasks for terminal output. With color disabled it
// emits plain text, suitable for pipes and tests.
type Renderer struct {
	color bool
}

// NewRenderer returns a renderer. Color is applied only when enabled.
func NewRenderer(color bool) *Renderer {
	return &Renderer{color: color}
}

// Task formats one task as a single line.
func (r *Renderer) Task(t task.Task) string {
	id := t.ID
	status := fmt.Sprintf("%-13s", "["+string(t.Status)+"]")
	age := "updated " + RelativeTime(t.UpdatedAt, time.Now().UTC())
	if r.color {
		id = idStyle.Render(id)
		status = statusStyles[t.Status].Render(status)
		age = faintStyle.Render(age)
	}
	return fmt.Sprintf("%s  %s  %s  (%s)", id, status, t.Description, age)
}

// List formats a task list, one task per line, preserving order.
func (r *Renderer) List(tasks []task.Task) string {
	if len(tasks) == 0 {
		return "No tasks.\n"
	}
	var b strings.Builder
	for _, t := range tasks {
		b.WriteString(r.Task(t))
		b.WriteByte('\n')
	}
	return b.String()
}

// RelativeTime formats how long ago t was, relative to now.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
