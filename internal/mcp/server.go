// Package mcp adapts the capability registry to the Model Context
// Protocol. It is a thin shell: requests are decoded into (kind, name,
// arguments) triples, handed to the registry, and the returned envelope
// is converted into SDK types. No capability logic lives here.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kokistudios/playground/internal/registry"
	"github.com/kokistudios/playground/internal/store"
)

// ServerName identifies this server to connected clients.
const ServerName = "mcp-learning-server"

// Server wraps the MCP server with the playground's capability registry.
type Server struct {
	reg    *registry.Registry
	server *mcp.Server
}

// NewServer creates a new playground MCP server over the given registry.
func NewServer(reg *registry.Registry, version string) *Server {
	s := &Server{reg: reg}

	impl := &mcp.Implementation{
		Name:    ServerName,
		Version: version,
	}

	s.server = mcp.NewServer(impl, nil)
	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// Run starts the MCP server on stdio.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// toolResult converts a registry envelope into an SDK tool result.
func toolResult(res registry.Result) *mcp.CallToolResult {
	out := &mcp.CallToolResult{}
	for _, seg := range res.Content {
		out.Content = append(out.Content, &mcp.TextContent{Text: seg.Text})
	}
	return out
}

// invokeTool dispatches one tool call through the registry.
func (s *Server) invokeTool(ctx context.Context, name string, args registry.Args) (*mcp.CallToolResult, any, error) {
	res, err := s.reg.Invoke(ctx, registry.KindTool, name, args)
	if err != nil {
		return nil, nil, err
	}
	return toolResult(res), nil, nil
}

// AddTaskArgs defines the input for add_task.
type AddTaskArgs struct {
	Title       string `json:"title" jsonschema:"The task title"`
	Description string `json:"description,omitempty" jsonschema:"Optional task description"`
}

// ListTasksArgs defines the input for list_tasks (no arguments needed).
type ListTasksArgs struct{}

// CompleteTaskArgs defines the input for complete_task.
type CompleteTaskArgs struct {
	TaskID int `json:"task_id" jsonschema:"The ID of the task to complete"`
}

// WeatherArgs defines the input for get_weather.
type WeatherArgs struct {
	City string `json:"city" jsonschema:"The city name"`
}

// CalculateArgs defines the input for calculate.
type CalculateArgs struct {
	Expression string `json:"expression" jsonschema:"Mathematical expression to evaluate"`
}

// registerTools adds all playground tools to the MCP server. Schema
// validation of required fields happens in the SDK before the handler
// runs; the registry never re-checks them.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_task",
		Description: "Add a new task to the task list",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AddTaskArgs) (*mcp.CallToolResult, any, error) {
		return s.invokeTool(ctx, "add_task", registry.Args{
			"title":       args.Title,
			"description": args.Description,
		})
	})

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List all tasks with their status",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ListTasksArgs) (*mcp.CallToolResult, any, error) {
		return s.invokeTool(ctx, "list_tasks", nil)
	})

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "complete_task",
		Description: "Mark a task as completed",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args CompleteTaskArgs) (*mcp.CallToolResult, any, error) {
		return s.invokeTool(ctx, "complete_task", registry.Args{
			"task_id": args.TaskID,
		})
	})

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_weather",
		Description: "Get current weather information (simulated)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args WeatherArgs) (*mcp.CallToolResult, any, error) {
		return s.invokeTool(ctx, "get_weather", registry.Args{
			"city": args.City,
		})
	})

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "calculate",
		Description: "Perform basic mathematical calculations",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args CalculateArgs) (*mcp.CallToolResult, any, error) {
		return s.invokeTool(ctx, "calculate", registry.Args{
			"expression": args.Expression,
		})
	})
}

// readResource dispatches a resource read through the registry and wraps
// the envelope for the SDK.
func (s *Server) readResource(ctx context.Context, uri, mimeType string) (*mcp.ReadResourceResult, error) {
	res, err := s.reg.Invoke(ctx, registry.KindResource, uri, nil)
	if err != nil {
		return nil, err
	}
	out := &mcp.ReadResourceResult{}
	for _, seg := range res.Content {
		out.Contents = append(out.Contents, &mcp.ResourceContents{
			URI:      uri,
			MIMEType: mimeType,
			Text:     seg.Text,
		})
	}
	return out, nil
}

// registerResources adds the task database, the seed notes, a template
// for arbitrary note files, and system info. The SDK answers
// resources/list from this static registration, so over the wire a note
// created after startup is readable through the file:// template but is
// not enumerated. Only registry.ListResources, which the CLI and demo
// use, re-scans the notes directory per call.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		Name:        "Task Database",
		Description: "Current task list with completion status",
		MIMEType:    "application/json",
		URI:         "tasks://database",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return s.readResource(ctx, req.Params.URI, "application/json")
	})

	for _, name := range store.SeedNoteNames() {
		stem := store.Stem(name)
		s.server.AddResource(&mcp.Resource{
			Name:        fmt.Sprintf("Note: %s", stem),
			Description: fmt.Sprintf("Learning note about %s", store.Title(name)),
			MIMEType:    "text/markdown",
			URI:         fmt.Sprintf("file://%s", s.reg.Notes().Path(name)),
		}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			return s.readResource(ctx, req.Params.URI, "text/markdown")
		})
	}

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "Note Files",
		Description: "Markdown notes in the playground notes directory",
		MIMEType:    "text/markdown",
		URITemplate: "file://{+path}",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return s.readResource(ctx, req.Params.URI, "text/markdown")
	})

	s.server.AddResource(&mcp.Resource{
		Name:        "System Information",
		Description: "Current system date and time information",
		MIMEType:    "application/json",
		URI:         "system://info",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return s.readResource(ctx, req.Params.URI, "application/json")
	})
}

// registerPrompts adds the three playground prompts.
func (s *Server) registerPrompts() {
	for _, desc := range s.reg.ListPrompts() {
		p := &mcp.Prompt{
			Name:        desc.Name,
			Description: desc.Description,
		}
		for _, a := range desc.Args {
			p.Arguments = append(p.Arguments, &mcp.PromptArgument{
				Name:        a.Name,
				Description: a.Description,
				Required:    a.Required,
			})
		}

		name := desc.Name
		s.server.AddPrompt(p, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			args := registry.Args{}
			for k, v := range req.Params.Arguments {
				args[k] = v
			}
			res, err := s.reg.Invoke(ctx, registry.KindPrompt, name, args)
			if err != nil {
				return nil, err
			}
			out := &mcp.GetPromptResult{Description: res.Description}
			for _, m := range res.Messages {
				out.Messages = append(out.Messages, &mcp.PromptMessage{
					Role:    mcp.Role(m.Role),
					Content: &mcp.TextContent{Text: m.Content.Text},
				})
			}
			return out, nil
		})
	}
}
