package store

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2025, 8, 16, 12, 0, 0, 0, time.UTC)
}

func TestNewTaskStore_Seeded(t *testing.T) {
	ts := NewTaskStore()
	if ts.Len() != 3 {
		t.Fatalf("expected 3 seed tasks, got %d", ts.Len())
	}
	tasks := ts.List()
	if tasks[0].Title != "Learn MCP basics" || tasks[0].ID != 1 {
		t.Errorf("unexpected first seed task: %+v", tasks[0])
	}
	if !tasks[1].Completed {
		t.Error("second seed task should be completed")
	}
}

func TestAdd_IDsStrictlyIncreasing(t *testing.T) {
	ts := NewTaskStore()
	ts.now = fixedClock

	seen := make(map[int]bool)
	for _, task := range ts.List() {
		seen[task.ID] = true
	}

	prev := 0
	for i := 0; i < 10; i++ {
		task := ts.Add("task", "")
		if task.ID <= prev && prev != 0 {
			t.Errorf("expected strictly increasing IDs, got %d after %d", task.ID, prev)
		}
		if seen[task.ID] {
			t.Errorf("ID %d reused", task.ID)
		}
		seen[task.ID] = true
		prev = task.ID
	}
}

func TestAdd_EmptyStoreStartsAtOne(t *testing.T) {
	ts := NewEmptyTaskStore()
	ts.now = fixedClock

	task := ts.Add("first", "")
	if task.ID != 1 {
		t.Errorf("expected ID 1 on empty store, got %d", task.ID)
	}
	if task.Created != "2025-08-16" {
		t.Errorf("expected created date 2025-08-16, got %s", task.Created)
	}
	if task.Completed {
		t.Error("new tasks must start incomplete")
	}
}

func TestComplete(t *testing.T) {
	ts := NewTaskStore()

	task, err := ts.Complete(1)
	if err != nil {
		t.Fatalf("Complete(1) failed: %v", err)
	}
	if !task.Completed {
		t.Error("returned task should be completed")
	}
	if !ts.List()[0].Completed {
		t.Error("store should reflect completion")
	}

	// Completing an already-completed task still succeeds.
	if _, err := ts.Complete(2); err != nil {
		t.Errorf("Complete(2) on completed task failed: %v", err)
	}
}

func TestComplete_MissingID(t *testing.T) {
	ts := NewTaskStore()
	before := ts.List()

	_, err := ts.Complete(99)
	if err == nil {
		t.Fatal("expected error for missing ID")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
	if nf.Key != "99" {
		t.Errorf("expected key 99, got %s", nf.Key)
	}

	after := ts.List()
	if len(after) != len(before) {
		t.Error("store length changed on failed complete")
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("task %d mutated on failed complete", before[i].ID)
		}
	}
}

func TestRenderTaskList(t *testing.T) {
	ts := NewEmptyTaskStore()
	if got := ts.RenderTaskList(); got != "No tasks found." {
		t.Errorf("empty store render = %q, want sentinel message", got)
	}

	ts = NewTaskStore()
	out := ts.RenderTaskList()
	if !strings.HasPrefix(out, "Current Tasks:\n") {
		t.Errorf("render should start with header, got %q", out)
	}
	for _, task := range ts.List() {
		line := RenderTaskLine(task)
		if !strings.Contains(out, line) {
			t.Errorf("render missing line %q", line)
		}
		if !strings.Contains(line, StatusMarker(task.Completed)) {
			t.Errorf("line %q missing status marker", line)
		}
	}
	if !strings.Contains(out, "✅ [2] Build a simple tool (created: 2025-08-14)") {
		t.Errorf("unexpected completed-task rendering in %q", out)
	}
}

func TestSnapshot(t *testing.T) {
	ts := NewTaskStore()
	data, err := ts.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	var tasks []Task
	if err := json.Unmarshal([]byte(data), &tasks); err != nil {
		t.Fatalf("Snapshot is not valid JSON: %v", err)
	}
	if len(tasks) != 3 {
		t.Errorf("expected 3 tasks in snapshot, got %d", len(tasks))
	}
}

func TestPending(t *testing.T) {
	ts := NewTaskStore()
	data, err := ts.Pending()
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}

	var tasks []Task
	if err := json.Unmarshal([]byte(data), &tasks); err != nil {
		t.Fatalf("Pending is not valid JSON: %v", err)
	}
	for _, task := range tasks {
		if task.Completed {
			t.Errorf("Pending included completed task %d", task.ID)
		}
	}
	if len(tasks) != 2 {
		t.Errorf("expected 2 pending seed tasks, got %d", len(tasks))
	}

	// All-completed store still yields a JSON array, not null.
	ts = NewEmptyTaskStore()
	data, err = ts.Pending()
	if err != nil {
		t.Fatalf("Pending on empty store failed: %v", err)
	}
	if strings.TrimSpace(data) != "[]" {
		t.Errorf("expected empty JSON array, got %q", data)
	}
}
