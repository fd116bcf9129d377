package registry

import (
	"context"
	"encoding/json"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/kokistudios/playground/internal/store"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	dir := t.TempDir()
	if err := store.SeedNotes(dir); err != nil {
		t.Fatalf("SeedNotes failed: %v", err)
	}
	return New(store.NewTaskStore(), store.NewNotes(dir), "mcp-learning-server")
}

// text extracts the single text segment of a result.
func text(t *testing.T, res Result) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("expected one content segment, got %d", len(res.Content))
	}
	if res.Content[0].Type != "text" {
		t.Fatalf("expected text segment, got %s", res.Content[0].Type)
	}
	return res.Content[0].Text
}

func TestInvoke_UnknownCapability(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	for _, tc := range []struct {
		kind Kind
		name string
	}{
		{KindTool, "no_such_tool"},
		{KindPrompt, "no_such_prompt"},
		{KindResource, "bogus://uri"},
	} {
		_, err := r.Invoke(ctx, tc.kind, tc.name, nil)
		if err == nil {
			t.Errorf("Invoke(%s, %s) succeeded, want unknown-capability error", tc.kind, tc.name)
			continue
		}
		var unknown *UnknownCapabilityError
		if !errors.As(err, &unknown) {
			t.Errorf("Invoke(%s, %s) error = %T, want UnknownCapabilityError", tc.kind, tc.name, err)
			continue
		}
		if unknown.Kind != tc.kind || unknown.Name != tc.name {
			t.Errorf("error carries %s/%s, want %s/%s", unknown.Kind, unknown.Name, tc.kind, tc.name)
		}
	}
}

// A hard failure on one request must not affect the next.
func TestInvoke_RecoversAfterHardFailure(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	if _, err := r.Invoke(ctx, KindTool, "nope", nil); err == nil {
		t.Fatal("expected hard failure")
	}
	res, err := r.Invoke(ctx, KindTool, "list_tasks", nil)
	if err != nil {
		t.Fatalf("follow-up invoke failed: %v", err)
	}
	if !strings.HasPrefix(text(t, res), "Current Tasks:") {
		t.Error("follow-up invoke returned unexpected content")
	}
}

func TestAddTaskTool(t *testing.T) {
	r := newTestRegistry(t)

	res, err := r.Invoke(context.Background(), KindTool, "add_task", Args{"title": "Test MCP integration"})
	if err != nil {
		t.Fatalf("add_task failed: %v", err)
	}
	want := "Task 'Test MCP integration' added with ID 4"
	if got := text(t, res); got != want {
		t.Errorf("add_task = %q, want %q", got, want)
	}
}

// Argument validation is the transport's job. The registry trusts its
// input, so a missing required argument still runs the handler.
func TestToolHandlers_DoNotValidateRequiredArgs(t *testing.T) {
	r := newTestRegistry(t)

	res, err := r.Invoke(context.Background(), KindTool, "add_task", Args{})
	if err != nil {
		t.Fatalf("add_task without args failed: %v", err)
	}
	if got := text(t, res); got != "Task '' added with ID 4" {
		t.Errorf("add_task without args = %q", got)
	}
}

func TestListTasksTool(t *testing.T) {
	r := newTestRegistry(t)

	res, err := r.Invoke(context.Background(), KindTool, "list_tasks", nil)
	if err != nil {
		t.Fatalf("list_tasks failed: %v", err)
	}
	out := text(t, res)
	if !strings.Contains(out, "⏳ [1] Learn MCP basics (created: 2025-08-15)") {
		t.Errorf("missing pending line in %q", out)
	}
	if !strings.Contains(out, "✅ [2] Build a simple tool (created: 2025-08-14)") {
		t.Errorf("missing completed line in %q", out)
	}
}

func TestCompleteTaskTool(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	res, err := r.Invoke(ctx, KindTool, "complete_task", Args{"task_id": float64(1)})
	if err != nil {
		t.Fatalf("complete_task failed: %v", err)
	}
	if got := text(t, res); got != "Task 'Learn MCP basics' marked as completed!" {
		t.Errorf("complete_task = %q", got)
	}

	// Missing id is a soft failure: a text message, not an error.
	res, err = r.Invoke(ctx, KindTool, "complete_task", Args{"task_id": 99})
	if err != nil {
		t.Fatalf("complete_task on missing id returned hard error: %v", err)
	}
	if got := text(t, res); got != "Task with ID 99 not found." {
		t.Errorf("complete_task missing = %q", got)
	}
}

func TestWeatherTool(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	res, err := r.Invoke(ctx, KindTool, "get_weather", Args{"city": "London"})
	if err != nil {
		t.Fatalf("get_weather failed: %v", err)
	}
	want := "Weather in London:\n🌡️ Temperature: 62°F\n🌤️ Condition: Rainy\n💧 Humidity: 90%"
	if got := text(t, res); got != want {
		t.Errorf("get_weather = %q, want %q", got, want)
	}

	// Unknown cities fall back to the default entry.
	res, err = r.Invoke(ctx, KindTool, "get_weather", Args{"city": "Reykjavik"})
	if err != nil {
		t.Fatalf("get_weather failed: %v", err)
	}
	out := text(t, res)
	if !strings.Contains(out, "Weather in Reykjavik:") || !strings.Contains(out, "72°F") {
		t.Errorf("default weather = %q", out)
	}
}

func TestCalculateTool(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	tests := []struct {
		expr string
		want string
	}{
		{"2 + 2", "2 + 2 = 4"},
		{"15 + 25 * 2", "15 + 25 * 2 = 65"},
		{"10 / 4", "10 / 4 = 2.5"},
		{"import os", "Invalid expression. Only basic math operations allowed."},
		{"__builtins__", "Invalid expression. Only basic math operations allowed."},
		{"1 / 0", "Calculation error: division by zero"},
		{"(1 + 2", "Calculation error: missing closing parenthesis"},
	}
	for _, tt := range tests {
		res, err := r.Invoke(ctx, KindTool, "calculate", Args{"expression": tt.expr})
		if err != nil {
			t.Errorf("calculate(%q) hard error: %v", tt.expr, err)
			continue
		}
		if got := text(t, res); got != tt.want {
			t.Errorf("calculate(%q) = %q, want %q", tt.expr, got, tt.want)
		}
	}
}

func TestListTools_Order(t *testing.T) {
	r := newTestRegistry(t)

	var names []string
	for _, d := range r.ListTools() {
		names = append(names, d.Name)
	}
	want := []string{"add_task", "list_tasks", "complete_task", "get_weather", "calculate"}
	if len(names) != len(want) {
		t.Fatalf("ListTools = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ListTools[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestTaskDatabaseResource(t *testing.T) {
	r := newTestRegistry(t)

	res, err := r.Invoke(context.Background(), KindResource, "tasks://database", nil)
	if err != nil {
		t.Fatalf("tasks://database failed: %v", err)
	}
	var tasks []store.Task
	if err := json.Unmarshal([]byte(text(t, res)), &tasks); err != nil {
		t.Fatalf("resource content is not valid JSON: %v", err)
	}
	if len(tasks) != 3 {
		t.Errorf("expected 3 tasks, got %d", len(tasks))
	}
}

func TestFileResource(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	path := r.Notes().Path("mcp_basics.md")
	res, err := r.Invoke(ctx, KindResource, "file://"+path, nil)
	if err != nil {
		t.Fatalf("file resource failed: %v", err)
	}
	if !strings.Contains(text(t, res), "# MCP Basics") {
		t.Error("file resource missing note content")
	}

	// Missing files are soft failures reported as text.
	missing := r.Notes().Path("nope.md")
	res, err = r.Invoke(ctx, KindResource, "file://"+missing, nil)
	if err != nil {
		t.Fatalf("missing file returned hard error: %v", err)
	}
	if got := text(t, res); got != "File not found: "+missing {
		t.Errorf("missing file = %q", got)
	}
}

func TestSystemInfoResource(t *testing.T) {
	r := newTestRegistry(t)
	r.now = func() time.Time {
		return time.Date(2025, 8, 16, 9, 30, 0, 0, time.UTC)
	}

	res, err := r.Invoke(context.Background(), KindResource, "system://info", nil)
	if err != nil {
		t.Fatalf("system://info failed: %v", err)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(text(t, res)), &info); err != nil {
		t.Fatalf("system info is not valid JSON: %v", err)
	}
	if info["server_name"] != "mcp-learning-server" {
		t.Errorf("server_name = %s", info["server_name"])
	}
	if info["platform"] != runtime.GOOS {
		t.Errorf("platform = %s, want %s", info["platform"], runtime.GOOS)
	}
	if !strings.HasPrefix(info["current_time"], "2025-08-16T09:30:00") {
		t.Errorf("current_time = %s", info["current_time"])
	}
	if info["working_directory"] == "" {
		t.Error("working_directory should be set")
	}
}

func TestListResources_DynamicNotes(t *testing.T) {
	r := newTestRegistry(t)

	before, err := r.ListResources()
	if err != nil {
		t.Fatalf("ListResources failed: %v", err)
	}
	// tasks://database, two seed notes, system://info
	if len(before) != 4 {
		t.Fatalf("expected 4 resources, got %d", len(before))
	}
	if before[0].URI != "tasks://database" {
		t.Errorf("first resource = %s", before[0].URI)
	}
	if before[len(before)-1].URI != "system://info" {
		t.Errorf("last resource = %s", before[len(before)-1].URI)
	}

	if err := r.Notes().Write("demo_notes.md", "# Demo"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	after, err := r.ListResources()
	if err != nil {
		t.Fatalf("ListResources failed: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("expected listing to grow by one, before=%d after=%d", len(before), len(after))
	}
	found := false
	for _, d := range after {
		if d.URI == "file://"+r.Notes().Path("demo_notes.md") {
			found = true
			if d.Name != "Note: demo_notes" {
				t.Errorf("note name = %s", d.Name)
			}
			if d.Description != "Learning note about demo notes" {
				t.Errorf("note description = %s", d.Description)
			}
		}
	}
	if !found {
		t.Error("new note missing from resource listing")
	}
}
