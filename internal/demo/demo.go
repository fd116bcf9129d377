// Package demo walks through the playground's capabilities without a
// connected MCP client. It drives the same registry the server exposes,
// so everything printed here is exactly what a client would receive.
package demo

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kokistudios/playground/internal/registry"
	"github.com/kokistudios/playground/internal/ui"
)

const demoNote = `# MCP Learning Notes

Key concepts learned today:
- Tools: Functions AI can call
- Resources: Data AI can read
- Prompts: Templates for interactions

Next steps: Build more complex integrations!`

// Run executes the complete walkthrough: tools, resources, prompts.
func Run(ctx context.Context, reg *registry.Registry) error {
	ui.LogoWithTagline("Model Context Protocol learning playground")
	fmt.Fprintln(os.Stderr, ui.Bold("Model Context Protocol (MCP)")+" enables AI assistants to:")
	fmt.Fprintln(os.Stderr, "• Call tools to perform actions")
	fmt.Fprintln(os.Stderr, "• Read resources to access data")
	fmt.Fprintln(os.Stderr, "• Use prompts for templated interactions")

	if err := tools(ctx, reg); err != nil {
		return err
	}
	if err := resources(ctx, reg); err != nil {
		return err
	}
	if err := prompts(ctx, reg); err != nil {
		return err
	}

	ui.SectionHeader("All three concepts covered")
	ui.Success("Tools - Functions that perform actions")
	ui.Success("Resources - Data sources for reading")
	ui.Success("Prompts - Templates for AI interactions")
	fmt.Fprintln(os.Stderr)
	ui.Info("Next: run 'playground serve' and connect an MCP client")
	return nil
}

// invoke runs one capability and returns its first text segment.
func invoke(ctx context.Context, reg *registry.Registry, kind registry.Kind, name string, args registry.Args) (string, error) {
	res, err := reg.Invoke(ctx, kind, name, args)
	if err != nil {
		return "", fmt.Errorf("invoking %s %s: %w", kind, name, err)
	}
	if len(res.Content) == 0 {
		return "", nil
	}
	return res.Content[0].Text, nil
}

func tools(ctx context.Context, reg *registry.Registry) error {
	ui.SectionHeader("Tools")
	fmt.Fprintln(os.Stderr, ui.Dim("Tools are functions that AI assistants can call to perform actions."))
	fmt.Fprintln(os.Stderr)

	ui.Status("tool: add_task")
	out, err := invoke(ctx, reg, registry.KindTool, "add_task", registry.Args{
		"title": "Test MCP integration",
	})
	if err != nil {
		return err
	}
	ui.Detail("→", out)

	ui.Status("tool: list_tasks")
	out, err = invoke(ctx, reg, registry.KindTool, "list_tasks", nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, indent(out))

	ui.Status("tool: calculate")
	out, err = invoke(ctx, reg, registry.KindTool, "calculate", registry.Args{
		"expression": "15 + 25 * 2",
	})
	if err != nil {
		return err
	}
	ui.Detail("→", out)

	ui.Status("tool: get_weather")
	out, err = invoke(ctx, reg, registry.KindTool, "get_weather", registry.Args{
		"city": "San Francisco",
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, indent(out))

	return nil
}

func resources(ctx context.Context, reg *registry.Registry) error {
	ui.SectionHeader("Resources")
	fmt.Fprintln(os.Stderr, ui.Dim("Resources are data sources that AI assistants can read from."))
	fmt.Fprintln(os.Stderr)

	ui.Status("resource: tasks://database")
	out, err := invoke(ctx, reg, registry.KindResource, "tasks://database", nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, indent(preview(out, 300)))

	before, err := reg.ListResources()
	if err != nil {
		return err
	}

	ui.Status("resource: file:// notes")
	if err := reg.Notes().Write("demo_notes.md", demoNote); err != nil {
		return fmt.Errorf("writing demo note: %w", err)
	}
	ui.Logger.Info("note written", "path", reg.Notes().Path("demo_notes.md"))
	ui.RenderMarkdown(demoNote)

	// The registry re-scans the notes directory on every listing, so the
	// note written above shows up without any re-registration.
	after, err := reg.ListResources()
	if err != nil {
		return err
	}
	ui.Detail("resources before", fmt.Sprintf("%d", len(before)))
	ui.Detail("resources after", fmt.Sprintf("%d", len(after)))

	ui.Status("resource: system://info")
	out, err = invoke(ctx, reg, registry.KindResource, "system://info", nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, indent(out))

	return nil
}

func prompts(ctx context.Context, reg *registry.Registry) error {
	ui.SectionHeader("Prompts")
	fmt.Fprintln(os.Stderr, ui.Dim("Prompts are templates that help AI assistants generate responses."))
	fmt.Fprintln(os.Stderr)

	ui.Status("prompt: task_summary")
	res, err := reg.Invoke(ctx, registry.KindPrompt, "task_summary", nil)
	if err != nil {
		return err
	}
	ui.Detail("description", res.Description)
	if len(res.Messages) > 0 {
		fmt.Fprintln(os.Stderr, indent(preview(res.Messages[0].Content.Text, 150)))
	}

	ui.Status("prompt: learning_plan")
	res, err = reg.Invoke(ctx, registry.KindPrompt, "learning_plan", registry.Args{
		"skill_level": "beginner",
		"focus_area":  "tools",
	})
	if err != nil {
		return err
	}
	ui.Detail("description", res.Description)
	if len(res.Messages) > 0 {
		fmt.Fprintln(os.Stderr, indent(preview(res.Messages[0].Content.Text, 150)))
	}

	return nil
}

// preview truncates s to at most n bytes with an ellipsis.
func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// indent prefixes every line of s with two spaces.
func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
