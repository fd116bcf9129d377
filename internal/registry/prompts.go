package registry

import (
	"context"
	"fmt"
)

func (r *Registry) registerPrompts() {
	r.addPrompt(Descriptor{
		Name:        "task_summary",
		Description: "Generate a summary of current tasks",
		Args: []Arg{
			{Name: "include_completed", Type: "string", Description: "Whether to include completed tasks"},
		},
	}, r.taskSummaryPrompt)

	r.addPrompt(Descriptor{
		Name:        "learning_plan",
		Description: "Create a personalized MCP learning plan",
		Args: []Arg{
			{Name: "skill_level", Type: "string", Description: "Current skill level (beginner, intermediate, advanced)", Required: true},
			{Name: "focus_area", Type: "string", Description: "Specific area to focus on (tools, resources, prompts, etc.)"},
		},
	}, r.learningPlanPrompt)

	r.addPrompt(Descriptor{
		Name:        "explain_concept",
		Description: "Explain an MCP concept in detail",
		Args: []Arg{
			{Name: "concept", Type: "string", Description: "The MCP concept to explain (tools, resources, prompts, servers, clients)", Required: true},
		},
	}, r.explainConceptPrompt)
}

// userPrompt wraps a prompt body in the single-user-message envelope all
// playground prompts share.
func userPrompt(description, text string) Result {
	return Result{
		Description: description,
		Messages: []Message{
			{Role: "user", Content: Segment{Type: "text", Text: text}},
		},
	}
}

func (r *Registry) taskSummaryPrompt(ctx context.Context, args Args) (Result, error) {
	includeCompleted := args.Bool("include_completed", true)

	var promptText string
	var data string
	var err error
	if includeCompleted {
		promptText = "Please provide a comprehensive summary of all tasks (completed and pending)."
		data, err = r.tasks.Snapshot()
	} else {
		promptText = "Please provide a summary of pending tasks only."
		data, err = r.tasks.Pending()
	}
	if err != nil {
		return Result{}, err
	}
	promptText += fmt.Sprintf("\n\nCurrent tasks data:\n%s", data)

	return userPrompt("Task summary prompt with current task data", promptText), nil
}

func (r *Registry) learningPlanPrompt(ctx context.Context, args Args) (Result, error) {
	skillLevel := args.String("skill_level", "")
	focusArea := args.String("focus_area", "general MCP concepts")

	promptText := fmt.Sprintf(`Create a personalized learning plan for MCP (Model Context Protocol) based on the following:

Skill Level: %s
Focus Area: %s

Please provide:
1. Learning objectives appropriate for this skill level
2. Recommended sequence of topics to study
3. Practical exercises to reinforce learning
4. Resources for further reading
5. Expected timeline for mastery

Consider the current MCP server capabilities available in this playground environment.`, skillLevel, focusArea)

	return userPrompt(fmt.Sprintf("Personalized MCP learning plan for %s level", skillLevel), promptText), nil
}

func (r *Registry) explainConceptPrompt(ctx context.Context, args Args) (Result, error) {
	concept := args.String("concept", "")

	promptText := fmt.Sprintf(`Please provide a detailed explanation of the MCP concept: "%s"

Include:
1. Definition and purpose
2. How it works in the MCP architecture
3. Real-world use cases and examples
4. Best practices for implementation
5. Common pitfalls to avoid
6. How it relates to other MCP concepts

Use examples from this MCP learning server where relevant to illustrate the concepts.`, concept)

	return userPrompt(fmt.Sprintf("Detailed explanation of MCP concept: %s", concept), promptText), nil
}
