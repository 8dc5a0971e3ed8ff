package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/task"
)

func newTestRegistry(t *testing.T) (*Registry, *store.Store) {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "tasks.json"))
	reg, err := New(st)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return reg, st
}

func TestAdd(t *testing.T) {
	reg, _ := newTestRegistry(t)

	got, err := reg.Add("Buy milk")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if got.ID == "" {
		t.Error("expected a generated id")
	}
	if got.Description != "Buy milk" {
		t.Errorf("Description: got %q, want %q", got.Description, "Buy milk")
	}
	if got.Status != task.StatusTodo {
		t.Errorf("Status: got %q, want todo", got.Status)
	}
	if !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Errorf("CreatedAt %v != UpdatedAt %v on creation", got.CreatedAt, got.UpdatedAt)
	}
}

func TestAddValidation(t *testing.T) {
	reg, _ := newTestRegistry(t)

	for _, desc := range []string{"", "   ", "\t\n"} {
		_, err := reg.Add(desc)
		if err == nil {
			t.Errorf("Add(%q): expected error", desc)
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Add(%q): expected ValidationError, got %T: %v", desc, err, err)
		}
	}

	// Rejected input must not be persisted
	if reg.Len() != 0 {
		t.Errorf("collection size: got %d, want 0", reg.Len())
	}
}

func TestAddUniqueIDs(t *testing.T) {
	reg, _ := newTestRegistry(t)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		got, err := reg.Add("task")
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if seen[got.ID] {
			t.Fatalf("duplicate id %q", got.ID)
		}
		seen[got.ID] = true
	}
}

func TestAddPersists(t *testing.T) {
	reg, st := newTestRegistry(t)

	got, err := reg.Add("Buy milk")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// A fresh registry over the same store sees the task
	reg2, err := New(st)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tasks := reg2.List("")
	if len(tasks) != 1 || tasks[0].ID != got.ID {
		t.Fatalf("reloaded tasks: got %v, want [%s]", tasks, got.ID)
	}
}

func TestUpdateDescription(t *testing.T) {
	reg, _ := newTestRegistry(t)

	first, _ := reg.Add("first")
	second, _ := reg.Add("second")

	got, err := reg.SetDescription(first.ID, "renamed")
	if err != nil {
		t.Fatalf("SetDescription failed: %v", err)
	}

	if got.Description != "renamed" {
		t.Errorf("Description: got %q, want renamed", got.Description)
	}
	// Unspecified fields are unchanged
	if got.Status != first.Status {
		t.Errorf("Status changed: got %q, want %q", got.Status, first.Status)
	}
	if !got.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt changed: got %v, want %v", got.CreatedAt, first.CreatedAt)
	}
	if got.UpdatedAt.Before(first.UpdatedAt) {
		t.Errorf("UpdatedAt moved backwards: got %v, prior %v", got.UpdatedAt, first.UpdatedAt)
	}

	// Position in the collection is unchanged
	tasks := reg.List("")
	if tasks[0].ID != first.ID || tasks[1].ID != second.ID {
		t.Errorf("order changed: got [%s %s]", tasks[0].ID, tasks[1].ID)
	}
}

func TestSetStatus(t *testing.T) {
	reg, _ := newTestRegistry(t)
	added, _ := reg.Add("task")

	// Any state may transition to any other state
	transitions := []task.Status{
		task.StatusDone,
		task.StatusTodo,
		task.StatusInProgress,
		task.StatusDone,
		task.StatusInProgress,
	}
	for _, status := range transitions {
		got, err := reg.SetStatus(added.ID, status)
		if err != nil {
			t.Fatalf("SetStatus(%s) failed: %v", status, err)
		}
		if got.Status != status {
			t.Errorf("Status: got %q, want %q", got.Status, status)
		}
		if got.Description != added.Description {
			t.Errorf("Description changed: got %q", got.Description)
		}
	}
}

func TestUpdateNotFound(t *testing.T) {
	reg, _ := newTestRegistry(t)

	_, err := reg.SetStatus("missing", task.StatusDone)
	if err == nil {
		t.Fatal("expected error for unknown id")
	}
	var nferr *NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if nferr.ID != "missing" {
		t.Errorf("ID: got %q, want missing", nferr.ID)
	}
}

func TestUpdateValidation(t *testing.T) {
	reg, _ := newTestRegistry(t)
	added, _ := reg.Add("task")

	empty := ""
	if _, err := reg.Update(added.ID, task.Patch{Description: &empty}); err == nil {
		t.Error("expected error for blank description patch")
	}

	bad := task.Status("someday")
	if _, err := reg.Update(added.ID, task.Patch{Status: &bad}); err == nil {
		t.Error("expected error for unknown status patch")
	}

	// The stored task is untouched after rejected patches
	got, err := reg.Get(added.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Description != "task" || got.Status != task.StatusTodo {
		t.Errorf("task mutated by rejected patch: %+v", got)
	}
}

func TestRemove(t *testing.T) {
	reg, _ := newTestRegistry(t)

	first, _ := reg.Add("first")
	second, _ := reg.Add("second")
	third, _ := reg.Add("third")

	if err := reg.Remove(second.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	tasks := reg.List("")
	if len(tasks) != 2 {
		t.Fatalf("size after remove: got %d, want 2", len(tasks))
	}
	if tasks[0].ID != first.ID || tasks[1].ID != third.ID {
		t.Errorf("order after remove: got [%s %s], want [%s %s]",
			tasks[0].ID, tasks[1].ID, first.ID, third.ID)
	}

	// Removing the same id again signals NotFoundError and changes nothing
	err := reg.Remove(second.ID)
	var nferr *NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if reg.Len() != 2 {
		t.Errorf("size after failed remove: got %d, want 2", reg.Len())
	}
}

func TestSaveFailureSurfaced(t *testing.T) {
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, "data")
	st := store.New(filepath.Join(dir, "tasks.json"))

	reg, err := New(st)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	added, err := reg.Add("task")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// Replace the containing directory with a regular file so every
	// later save fails.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dir, []byte("not a directory"), 0644); err != nil {
		t.Fatal(err)
	}

	var serr *store.StorageError

	_, err = reg.Add("another")
	if !errors.As(err, &serr) {
		t.Fatalf("Add: expected StorageError, got %T: %v", err, err)
	}
	if serr.Op != "save" {
		t.Errorf("Add error Op: got %q, want save", serr.Op)
	}

	err = reg.Remove(added.ID)
	if !errors.As(err, &serr) {
		t.Fatalf("Remove: expected StorageError, got %T: %v", err, err)
	}

	_, err = reg.SetStatus(added.ID, task.StatusDone)
	if !errors.As(err, &serr) {
		t.Fatalf("SetStatus: expected StorageError, got %T: %v", err, err)
	}
}

func TestListFilter(t *testing.T) {
	reg, _ := newTestRegistry(t)

	a, _ := reg.Add("one")
	b, _ := reg.Add("two")
	c, _ := reg.Add("three")
	if _, err := reg.SetStatus(a.ID, task.StatusDone); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.SetStatus(c.ID, task.StatusDone); err != nil {
		t.Fatal(err)
	}

	done := reg.List("done")
	if len(done) != 2 || done[0].ID != a.ID || done[1].ID != c.ID {
		t.Errorf("List(done): got %v, want [%s %s] in original order", done, a.ID, c.ID)
	}

	todos := reg.List("todo")
	if len(todos) != 1 || todos[0].ID != b.ID {
		t.Errorf("List(todo): got %v, want [%s]", todos, b.ID)
	}

	all := reg.List("")
	if len(all) != 3 {
		t.Errorf("List(\"\"): got %d, want 3", len(all))
	}

	// Unrecognized filter silently yields an empty result
	if got := reg.List("blocked"); len(got) != 0 {
		t.Errorf("List(blocked): got %d, want 0", len(got))
	}
}

func TestScenario(t *testing.T) {
	reg, _ := newTestRegistry(t)

	t1, err := reg.Add("Buy milk")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if t1.Status != task.StatusTodo {
		t.Fatalf("Status: got %q, want todo", t1.Status)
	}

	if _, err := reg.SetStatus(t1.ID, task.StatusDone); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	done := reg.List("done")
	if len(done) != 1 || done[0].ID != t1.ID {
		t.Fatalf("List(done): got %v, want [%s]", done, t1.ID)
	}
	if done[0].Description != "Buy milk" {
		t.Errorf("Description changed: got %q", done[0].Description)
	}

	if err := reg.Remove(t1.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if got := reg.List(""); len(got) != 0 {
		t.Fatalf("List after remove: got %d, want 0", len(got))
	}

	err = reg.Remove(t1.ID)
	var nferr *NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected NotFoundError on second remove, got %T: %v", err, err)
	}
}
