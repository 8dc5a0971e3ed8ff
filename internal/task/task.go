package task

import (
	"strings"
	"time"
)

// Status represents a task status.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists all known statuses in lifecycle order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// StatusNames returns the known statuses as a comma-separated string,
// for flag help and error messages.
func StatusNames() string {
	names := make([]string, 0, len(Statuses()))
	for _, s := range Statuses() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task represents a single tracked task.
type Task struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsZero reports whether the task is empty (has no ID).
func (t *Task) IsZero() bool {
	return t.ID == ""
}

// Patch names the mutable task fields for a partial update. Nil fields
// are left unchanged; id and created_at can never be patched.
type Patch struct {
	Description *string
	Status      *Status
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.Description == nil && p.Status == nil
}

// Apply merges the patch into t and stamps updated_at.
func (p Patch) Apply(t *Task, now time.Time) {
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	t.UpdatedAt = now
}

// SchemaVersion is the current tasks file schema version.
const SchemaVersion = 1

// Collection is the full ordered task list, the unit of persistence.
type Collection struct {
	SchemaVersion int    `json:"schema_version"`
	Tasks         []Task `json:"tasks"`
}

// NewCollection returns an empty collection at the current schema version.
func NewCollection() *Collection {
	return &Collection{
		SchemaVersion: SchemaVersion,
		Tasks:         []Task{},
	}
}

// Index returns the position of the task with the given id, or -1 if
// no task has that id.
func (c *Collection) Index(id string) int {
	for i := range c.Tasks {
		if c.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns a task by ID, or nil if not found.
func (c *Collection) Get(id string) *Task {
	if i := c.Index(id); i >= 0 {
		return &c.Tasks[i]
	}
	return nil
}

// Filter returns the tasks whose status matches the given value, in
// collection order. An empty filter returns every task; a filter that
// matches no known status yields an empty slice.
func (c *Collection) Filter(status string) []Task {
	if status == "" {
		out := make([]Task, len(c.Tasks))
		copy(out, c.Tasks)
		return out
	}
	out := make([]Task, 0)
	for _, t := range c.Tasks {
		if string(t.Status) == status {
			out = append(out, t)
		}
	}
	return out
}

// Counts returns the number of tasks per status.
func (c *Collection) Counts() map[Status]int {
	counts := make(map[Status]int)
	for _, t := range c.Tasks {
		counts[t.Status]++
	}
	return counts
}
