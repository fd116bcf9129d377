package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Task is a single entry in the in-memory task database.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
	Created     string `json:"created"`
}

// NotFoundError signals a well-formed lookup with no matching record.
// Callers report it as ordinary text, not as a transport error.
type NotFoundError struct {
	Kind string // "task" or "note"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// TaskStore holds the ordered in-memory task list. It is owned by the
// process, lives only for its lifetime, and is mutated in place. Requests
// are handled one at a time, so no locking is needed.
type TaskStore struct {
	tasks []Task
	now   func() time.Time
}

// seedTasks is the fixed sample dataset every fresh store starts with.
var seedTasks = []Task{
	{ID: 1, Title: "Learn MCP basics", Completed: false, Created: "2025-08-15"},
	{ID: 2, Title: "Build a simple tool", Completed: true, Created: "2025-08-14"},
	{ID: 3, Title: "Understand resources", Completed: false, Created: "2025-08-15"},
}

// NewTaskStore returns a store seeded with the sample tasks.
func NewTaskStore() *TaskStore {
	tasks := make([]Task, len(seedTasks))
	copy(tasks, seedTasks)
	return &TaskStore{tasks: tasks, now: time.Now}
}

// NewEmptyTaskStore returns a store with no tasks.
func NewEmptyTaskStore() *TaskStore {
	return &TaskStore{now: time.Now}
}

// Add appends a new task. The identifier is max(existing)+1, or 1 for an
// empty store, so identifiers are strictly increasing and never reused.
func (ts *TaskStore) Add(title, description string) Task {
	next := 1
	for _, t := range ts.tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	task := Task{
		ID:          next,
		Title:       title,
		Description: description,
		Completed:   false,
		Created:     ts.now().Format("2006-01-02"),
	}
	ts.tasks = append(ts.tasks, task)
	return task
}

// List returns all tasks in insertion order.
func (ts *TaskStore) List() []Task {
	out := make([]Task, len(ts.tasks))
	copy(out, ts.tasks)
	return out
}

// Len returns the number of tasks.
func (ts *TaskStore) Len() int {
	return len(ts.tasks)
}

// Complete marks the task with the given id as completed and returns it.
// Completion is one-way; completing an already-completed task is a no-op
// that still succeeds. A missing id returns a NotFoundError without
// mutating the store.
func (ts *TaskStore) Complete(id int) (Task, error) {
	for i := range ts.tasks {
		if ts.tasks[i].ID == id {
			ts.tasks[i].Completed = true
			return ts.tasks[i], nil
		}
	}
	return Task{}, &NotFoundError{Kind: "task", Key: fmt.Sprintf("%d", id)}
}

// Snapshot returns the task list as indented JSON, for the database
// resource and for prompt generation.
func (ts *TaskStore) Snapshot() (string, error) {
	data, err := json.MarshalIndent(ts.tasks, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal tasks: %w", err)
	}
	return string(data), nil
}

// Pending returns only the tasks that are not completed, as indented JSON.
func (ts *TaskStore) Pending() (string, error) {
	var pending []Task
	for _, t := range ts.tasks {
		if !t.Completed {
			pending = append(pending, t)
		}
	}
	if pending == nil {
		pending = []Task{}
	}
	data, err := json.MarshalIndent(pending, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal tasks: %w", err)
	}
	return string(data), nil
}

// StatusMarker returns the rendered completion marker for a task.
func StatusMarker(completed bool) string {
	if completed {
		return "✅"
	}
	return "⏳"
}

// RenderTaskLine formats a single task for the list_tasks output.
func RenderTaskLine(t Task) string {
	return fmt.Sprintf("%s [%d] %s (created: %s)", StatusMarker(t.Completed), t.ID, t.Title, t.Created)
}

// RenderTaskList formats the whole store for the list_tasks tool. An empty
// store renders as the designated sentinel message rather than an empty
// enumeration.
func (ts *TaskStore) RenderTaskList() string {
	if len(ts.tasks) == 0 {
		return "No tasks found."
	}
	var b strings.Builder
	b.WriteString("Current Tasks:\n")
	for _, t := range ts.tasks {
		b.WriteString(RenderTaskLine(t))
		b.WriteString("\n")
	}
	return b.String()
}
