package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/kokistudios/playground/internal/calc"
	"github.com/kokistudios/playground/internal/store"
)

// cityWeather is the canned weather table. Lookups are demonstration
// data, not a live feed.
type cityWeather struct {
	Temperature string
	Condition   string
	Humidity    string
}

var weatherByCity = map[string]cityWeather{
	"San Francisco": {"68°F", "Foggy", "85%"},
	"New York":      {"75°F", "Sunny", "60%"},
	"London":        {"62°F", "Rainy", "90%"},
}

var defaultWeather = cityWeather{"72°F", "Unknown", "70%"}

func (r *Registry) registerTools() {
	r.addTool(Descriptor{
		Name:        "add_task",
		Description: "Add a new task to the task list",
		Args: []Arg{
			{Name: "title", Type: "string", Description: "The task title", Required: true},
			{Name: "description", Type: "string", Description: "Optional task description"},
		},
	}, r.addTaskTool)

	r.addTool(Descriptor{
		Name:        "list_tasks",
		Description: "List all tasks with their status",
	}, r.listTasksTool)

	r.addTool(Descriptor{
		Name:        "complete_task",
		Description: "Mark a task as completed",
		Args: []Arg{
			{Name: "task_id", Type: "integer", Description: "The ID of the task to complete", Required: true},
		},
	}, r.completeTaskTool)

	r.addTool(Descriptor{
		Name:        "get_weather",
		Description: "Get current weather information (simulated)",
		Args: []Arg{
			{Name: "city", Type: "string", Description: "The city name", Required: true},
		},
	}, r.weatherTool)

	r.addTool(Descriptor{
		Name:        "calculate",
		Description: "Perform basic mathematical calculations",
		Args: []Arg{
			{Name: "expression", Type: "string", Description: "Mathematical expression to evaluate", Required: true},
		},
	}, r.calculateTool)
}

func (r *Registry) addTaskTool(ctx context.Context, args Args) (Result, error) {
	title := args.String("title", "")
	description := args.String("description", "")
	t := r.tasks.Add(title, description)
	return Text(fmt.Sprintf("Task '%s' added with ID %d", t.Title, t.ID)), nil
}

func (r *Registry) listTasksTool(ctx context.Context, args Args) (Result, error) {
	return Text(r.tasks.RenderTaskList()), nil
}

func (r *Registry) completeTaskTool(ctx context.Context, args Args) (Result, error) {
	id, _ := args.Int("task_id")
	t, err := r.tasks.Complete(id)
	if err != nil {
		var nf *store.NotFoundError
		if errors.As(err, &nf) {
			return Text(fmt.Sprintf("Task with ID %d not found.", id)), nil
		}
		return Result{}, err
	}
	return Text(fmt.Sprintf("Task '%s' marked as completed!", t.Title)), nil
}

func (r *Registry) weatherTool(ctx context.Context, args Args) (Result, error) {
	city := args.String("city", "")
	w, ok := weatherByCity[city]
	if !ok {
		w = defaultWeather
	}
	text := fmt.Sprintf("Weather in %s:\n🌡️ Temperature: %s\n🌤️ Condition: %s\n💧 Humidity: %s",
		city, w.Temperature, w.Condition, w.Humidity)
	return Text(text), nil
}

func (r *Registry) calculateTool(ctx context.Context, args Args) (Result, error) {
	expr := args.String("expression", "")
	if !calc.Allowed(expr) {
		return Text("Invalid expression. Only basic math operations allowed."), nil
	}
	v, err := calc.Eval(expr)
	if err != nil {
		return Text(fmt.Sprintf("Calculation error: %s", err)), nil
	}
	return Text(fmt.Sprintf("%s = %s", expr, calc.FormatResult(v))), nil
}
