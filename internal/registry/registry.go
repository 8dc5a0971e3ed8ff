// Package registry implements task CRUD and the status lifecycle over
// the persisted collection.
//
// A Registry owns the in-memory collection for the duration of one
// process invocation and writes it back through the store after every
// mutation. List is a pure read.
package registry

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/task"
)

// NotFoundError reports an id that matches no task in the collection.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %q not found", e.ID)
}

// ValidationError reports rejected user input.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Registry holds the in-memory task collection loaded from a store.
type Registry struct {
	store *store.Store
	col   *task.Collection
	now   func() time.Time
}

// New loads the collection from the store and returns a registry
// wrapping it.
func New(st *store.Store) (*Registry, error) {
	col, err := st.Load()
	if err != nil {
		return nil, err
	}
	return &Registry{
		store: st,
		col:   col,
		now:   func() time.Time { return time.Now().UTC() },
	}, nil
}

// Add appends a new todo task with the given description, persists the
// collection, and returns the new task.
func (r *Registry) Add(description string) (task.Task, error) {
	if strings.TrimSpace(description) == "" {
		return task.Task{}, &ValidationError{
			Field: "description",
			Err:   fmt.Errorf("must not be empty"),
		}
	}

	now := r.now()
	t := task.Task{
		ID:          xid.New().String(),
		Description: description,
		Status:      task.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.col.Tasks = append(r.col.Tasks, t)
	if err := r.store.Save(r.col); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// Update merges the patch into the task with the given id, stamps
// updated_at, persists, and returns the updated task. The task keeps
// its position in the collection.
func (r *Registry) Update(id string, p task.Patch) (task.Task, error) {
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return task.Task{}, &ValidationError{
			Field: "description",
			Err:   fmt.Errorf("must not be empty"),
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return task.Task{}, &ValidationError{
			Field: "status",
			Err:   fmt.Errorf("invalid status %q, must be one of: %s", *p.Status, task.StatusNames()),
		}
	}

	i := r.col.Index(id)
	if i < 0 {
		return task.Task{}, &NotFoundError{ID: id}
	}

	updated := r.col.Tasks[i]
	p.Apply(&updated, r.now())
	r.col.Tasks[i] = updated

	if err := r.store.Save(r.col); err != nil {
		return task.Task{}, err
	}
	return updated, nil
}

// SetStatus updates the status of the task with the given id. This is
// a convenience wrapper around Update.
func (r *Registry) SetStatus(id string, status task.Status) (task.Task, error) {
	return r.Update(id, task.Patch{Status: &status})
}

// SetDescription replaces the description of the task with the given
// id. This is a convenience wrapper around Update.
func (r *Registry) SetDescription(id, description string) (task.Task, error) {
	return r.Update(id, task.Patch{Description: &description})
}

// Remove deletes the task with the given id and persists the remaining
// collection, preserving the order of the other tasks.
func (r *Registry) Remove(id string) error {
	kept := r.col.Tasks[:0:0]
	for _, t := range r.col.Tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(r.col.Tasks) {
		return &NotFoundError{ID: id}
	}

	r.col.Tasks = kept
	return r.store.Save(r.col)
}

// List returns tasks in insertion order. An empty filter returns the
// whole collection; otherwise only tasks whose status exactly equals
// the filter value are returned. Unrecognized filter values yield an
// empty result rather than an error.
func (r *Registry) List(filter string) []task.Task {
	return r.col.Filter(filter)
}

// Get returns a copy of the task with the given id.
func (r *Registry) Get(id string) (task.Task, error) {
	t := r.col.Get(id)
	if t == nil {
		return task.Task{}, &NotFoundError{ID: id}
	}
	return *t, nil
}

// Len returns the number of tasks in the collection.
func (r *Registry) Len() int {
	return len(r.col.Tasks)
}

// Counts returns the number of tasks per status.
func (r *Registry) Counts() map[task.Status]int {
	return r.col.Counts()
}
