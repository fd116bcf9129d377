package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// seedNotes are the sample documents written into a fresh notes directory.
var seedNotes = map[string]string{
	"mcp_basics.md": `# MCP Basics

Model Context Protocol (MCP) is a standard for connecting AI assistants to external data sources.

## Key Concepts:
- **Tools**: Functions that AI can call to perform actions
- **Resources**: Data sources that AI can read from
- **Prompts**: Templates for AI interactions

## Benefits:
- Standardized interface
- Secure connections
- Real-time data access
`,
	"learning_goals.md": `# Learning Goals

## Today's Goals:
1. Understand MCP architecture
2. Create tools for task management
3. Implement resource reading
4. Build custom prompts

## Next Steps:
- Connect to external APIs
- Add file system operations
- Implement database connections
`,
}

// SeedNoteNames returns the seed note filenames in a stable order.
func SeedNoteNames() []string {
	names := make([]string, 0, len(seedNotes))
	for name := range seedNotes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SeedNotes writes all seed notes into dir, overwriting existing copies.
func SeedNotes(dir string) error {
	for name := range seedNotes {
		if err := SeedNote(dir, name); err != nil {
			return err
		}
	}
	return nil
}

// SeedNote writes a single seed note into dir.
func SeedNote(dir, name string) error {
	content, ok := seedNotes[name]
	if !ok {
		return fmt.Errorf("unknown seed note: %s", name)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to seed note %s: %w", name, err)
	}
	return nil
}

// Notes provides access to the markdown files in the notes directory.
// The directory is the only state; every listing re-scans it, so files
// that appear between calls are discovered.
type Notes struct {
	Dir string
}

// NewNotes returns a Notes rooted at dir.
func NewNotes(dir string) *Notes {
	return &Notes{Dir: dir}
}

// List returns the markdown note filenames currently in the directory,
// in lexical order. The scan happens on every call by design.
func (n *Notes) List() ([]string, error) {
	entries, err := os.ReadDir(n.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read notes directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the contents of the named note. A missing or non-regular
// file is a NotFoundError, as is any read failure.
func (n *Notes) Read(name string) (string, error) {
	return ReadFileResource(filepath.Join(n.Dir, name))
}

// Write stores a note under the given name, creating or replacing it.
func (n *Notes) Write(name, content string) error {
	if filepath.Ext(name) != ".md" {
		name += ".md"
	}
	if err := os.WriteFile(filepath.Join(n.Dir, name), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write note %s: %w", name, err)
	}
	return nil
}

// Path returns the absolute path of a note file.
func (n *Notes) Path(name string) string {
	return filepath.Join(n.Dir, name)
}

// Title derives a human-readable title from a note filename:
// "mcp_basics.md" becomes "mcp basics".
func Title(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ReplaceAll(stem, "_", " ")
}

// Stem returns the filename without its extension.
func Stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ReadFileResource reads an arbitrary path for the file:// resource rule.
// The path is used verbatim, with no sanitization and no traversal
// protection. Anything that is not a readable regular file is a
// NotFoundError.
func ReadFileResource(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", &NotFoundError{Kind: "note", Key: path}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &NotFoundError{Kind: "note", Key: path}
	}
	return string(data), nil
}
