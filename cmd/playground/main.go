package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kokistudios/playground/internal/demo"
	playmcp "github.com/kokistudios/playground/internal/mcp"
	"github.com/kokistudios/playground/internal/registry"
	"github.com/kokistudios/playground/internal/store"
	"github.com/kokistudios/playground/internal/ui"
)

// Set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func buildVersion() string {
	if commit == "none" {
		return version
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

func main() {
	var noColor bool

	rootCmd := &cobra.Command{
		Use:   "playground",
		Short: "playground — an MCP learning server",
		Long:  "A local MCP server and CLI for learning the Model Context Protocol: tools, resources, and prompts over a small task list and notes directory.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ui.Init(noColor)
		},
	}

	rootCmd.Version = buildVersion()
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	// Command groups
	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Core Commands:"},
		&cobra.Group{ID: "data", Title: "Data Commands:"},
		&cobra.Group{ID: "config", Title: "Configuration:"},
	)

	initC := initCmd()
	initC.GroupID = "core"
	serveC := serveCmd()
	serveC.GroupID = "core"
	demoC := demoCmd()
	demoC.GroupID = "core"
	doctorC := doctorCmd()
	doctorC.GroupID = "core"
	capabilitiesC := capabilitiesCmd()
	capabilitiesC.GroupID = "core"

	taskC := taskCmd()
	taskC.GroupID = "data"
	noteC := noteCmd()
	noteC.GroupID = "data"

	configC := configCmd()
	configC.GroupID = "config"

	rootCmd.AddCommand(initC)
	rootCmd.AddCommand(serveC)
	rootCmd.AddCommand(demoC)
	rootCmd.AddCommand(taskC)
	rootCmd.AddCommand(noteC)
	rootCmd.AddCommand(capabilitiesC)
	rootCmd.AddCommand(doctorC)
	rootCmd.AddCommand(configC)
	rootCmd.AddCommand(completionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadStore() (*store.Store, error) {
	s, err := store.Load(store.Home())
	if err != nil {
		return nil, fmt.Errorf("playground not initialized — run 'playground init' first: %w", err)
	}
	return s, nil
}

// loadRegistry builds the capability registry over the configured notes
// directory and a freshly seeded task store. Tasks live in memory for
// the life of the process.
func loadRegistry() (*registry.Registry, error) {
	s, err := loadStore()
	if err != nil {
		return nil, err
	}
	tasks := store.NewTaskStore()
	notes := store.NewNotes(s.NotesDir())
	return registry.New(tasks, notes, playmcp.ServerName), nil
}

func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Initialize PLAYGROUND_HOME directory structure",
		Long:    "Create the PLAYGROUND_HOME directory (~/.playground by default) with the notes directory, seed notes, and config.yaml. Run this once before using any other command.",
		Example: "  playground init\n  playground init --force",
		RunE: func(cmd *cobra.Command, args []string) error {
			home := store.Home()

			if _, err := os.Stat(home); err == nil && !force {
				proceed, err := ui.Confirm(fmt.Sprintf("%s already exists. Reinitialize and restore seed notes?", home))
				if err != nil {
					return err
				}
				if !proceed {
					ui.Info("Cancelled.")
					return nil
				}
				force = true
			}

			if err := store.Init(home, force); err != nil {
				return err
			}
			ui.Success("playground initialized")
			ui.Detail("Home:", home)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Reinitialize even if PLAYGROUND_HOME already exists")
	return cmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long:  "Start the playground as a Model Context Protocol (MCP) server over stdio. Connect any MCP-compatible client to call its tools, read its resources, and fetch its prompts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			server := playmcp.NewServer(reg, version)
			ui.Logger.Info("starting MCP server on stdio", "server", playmcp.ServerName, "version", buildVersion())
			if err := server.Run(context.Background()); err != nil {
				ui.Logger.Error("server stopped", "err", err)
				return err
			}
			ui.Logger.Info("server stopped")
			return nil
		},
	}
}

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through tools, resources, and prompts without a client",
		Long:  "Run a guided demonstration of every playground capability. The demo drives the same registry the MCP server exposes, so the output matches what a connected client would see.",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			return demo.Run(context.Background(), reg)
		},
	}
}

func taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Exercise the task tools",
		Long:  "Run the task tools (add_task, list_tasks, complete_task) against a seeded in-memory task store. Tasks do not persist between invocations; the store exists to demonstrate tool semantics.",
	}
	cmd.AddCommand(taskAddCmd())
	cmd.AddCommand(taskListCmd())
	cmd.AddCommand(taskCompleteCmd())
	return cmd
}

// invokeTool runs one tool through the registry and prints its text.
func invokeTool(name string, args registry.Args) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	res, err := reg.Invoke(context.Background(), registry.KindTool, name, args)
	if err != nil {
		return err
	}
	for _, seg := range res.Content {
		fmt.Println(seg.Text)
	}
	return nil
}

func taskAddCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:     "add <title>",
		Short:   "Add a task and show the tool response",
		Example: "  playground task add \"Read the MCP spec\"\n  playground task add \"Wire a client\" -d \"Use the stdio transport\"",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return invokeTool("add_task", registry.Args{
				"title":       args[0],
				"description": description,
			})
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Optional task description")
	return cmd
}

func taskListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the seeded tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invokeTool("list_tasks", nil)
		},
	}
}

func taskCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("task id must be an integer: %s", args[0])
			}
			return invokeTool("complete_task", registry.Args{"task_id": id})
		},
	}
}

func noteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage the notes directory",
		Long:  "List, show, and add markdown notes. Every note is exposed to MCP clients as a file:// resource; notes added here appear in the next resource listing without restarting the server.",
	}
	cmd.AddCommand(noteListCmd())
	cmd.AddCommand(noteShowCmd())
	cmd.AddCommand(noteAddCmd())
	return cmd
}

func noteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notes and their resource URIs",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			notes := store.NewNotes(s.NotesDir())
			names, err := notes.List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				ui.EmptyState("No notes found. Use 'playground note add' to create one.")
				return nil
			}
			var rows [][]string
			for _, name := range names {
				rows = append(rows, []string{name, fmt.Sprintf("file://%s", notes.Path(name))})
			}
			ui.Table([]string{"NOTE", "URI"}, rows)
			return nil
		},
	}
}

func noteShowCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Render a note to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			notes := store.NewNotes(s.NotesDir())
			content, err := notes.Read(args[0])
			if err != nil {
				return err
			}
			if raw {
				fmt.Print(content)
				return nil
			}
			ui.RenderMarkdown(content)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown without rendering")
	return cmd
}

func noteAddCmd() *cobra.Command {
	var content string
	cmd := &cobra.Command{
		Use:     "add <name>",
		Short:   "Create a markdown note",
		Example: "  playground note add ideas --content \"# Ideas\\n\\n- try resource templates\"",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			notes := store.NewNotes(s.NotesDir())
			if err := notes.Write(args[0], content); err != nil {
				return err
			}
			ui.Success(fmt.Sprintf("Note created: %s", args[0]))
			ui.Detail("Path:", notes.Path(args[0]))
			return nil
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "Note content (markdown)")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func capabilitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "List every tool, resource, and prompt the server exposes",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}

			ui.SectionHeader("Tools")
			var rows [][]string
			for _, d := range reg.ListTools() {
				rows = append(rows, []string{d.Name, d.Description})
			}
			ui.Table([]string{"NAME", "DESCRIPTION"}, rows)

			resources, err := reg.ListResources()
			if err != nil {
				return err
			}
			ui.SectionHeader("Resources")
			rows = nil
			for _, d := range resources {
				rows = append(rows, []string{d.URI, d.Name, d.MIMEType})
			}
			ui.Table([]string{"URI", "NAME", "MIME"}, rows)

			ui.SectionHeader("Prompts")
			rows = nil
			for _, d := range reg.ListPrompts() {
				required := ""
				for _, a := range d.Args {
					if a.Required {
						if required != "" {
							required += ", "
						}
						required += a.Name
					}
				}
				rows = append(rows, []string{d.Name, d.Description, required})
			}
			ui.Table([]string{"NAME", "DESCRIPTION", "REQUIRED ARGS"}, rows)
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and edit playground configuration",
	}
	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configSetCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(s.Config)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

func configSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set <key> <value>",
		Short:   "Set a configuration value",
		Long:    "Set a playground configuration value. Valid keys: server.name, notes.dir.",
		Example: "  playground config set server.name my-mcp-server\n  playground config set notes.dir /tmp/notes",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			if err := s.SetConfigValue(args[0], args[1]); err != nil {
				return err
			}
			ui.Success(fmt.Sprintf("Set %s = %s", args[0], args[1]))
			return nil
		},
	}
}

func doctorCmd() *cobra.Command {
	var fix bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check health of the playground store",
		RunE: func(cmd *cobra.Command, args []string) error {
			home := store.Home()

			if _, err := store.Load(home); err != nil {
				return fmt.Errorf("playground not initialized — run 'playground init' first: %w", err)
			}

			if fix {
				ui.CommandBanner("DOCTOR", "repair mode")
				fixed := store.FixIssues(home)
				for _, f := range fixed {
					fmt.Fprintf(os.Stderr, " %s %s\n", ui.Green("[FIXED]"), f)
				}
				if len(fixed) == 0 {
					ui.EmptyState("Nothing to fix.")
				} else {
					ui.Logger.Info("repairs applied", "count", len(fixed))
				}
			} else {
				ui.CommandBanner("DOCTOR", "health check")
			}

			issues := store.CheckHealth(home)
			if len(issues) == 0 {
				ui.Success("Everything looks good")
				return nil
			}

			hasError := false
			for _, issue := range issues {
				if issue.Severity == "error" {
					fmt.Fprintf(os.Stderr, " %s  %s\n", ui.Red("[ERR]"), issue.Message)
					hasError = true
				} else {
					fmt.Fprintf(os.Stderr, " %s %s\n", ui.Yellow("[WARN]"), issue.Message)
				}
			}

			if hasError {
				os.Exit(2)
			}
			os.Exit(1)
			return nil
		},
	}
	cmd.Flags().BoolVar(&fix, "fix", false, "Repair issues and restore missing seed notes")
	return cmd
}

func completionCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "completion [bash|zsh|fish]",
		Short:     "Generate shell completion scripts",
		Long:      "Generate shell completion scripts for bash, zsh, or fish. Output the script to stdout for sourcing in your shell profile.",
		Example:   "  playground completion bash > ~/.bashrc.d/playground\n  playground completion zsh > ~/.zfunc/_playground\n  playground completion fish > ~/.config/fish/completions/playground.fish",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			default:
				return fmt.Errorf("unsupported shell: %s (use bash, zsh, or fish)", args[0])
			}
		},
	}
}
