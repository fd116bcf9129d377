// Package registry holds the capability registry and dispatcher at the
// heart of the playground: three name-addressed mappings (tools,
// resources, prompts) over a shared task store and notes directory.
//
// The transport layer is a collaborator, not part of this package. It
// delivers already-parsed (kind, name, arguments) triples to Invoke and
// serializes the returned envelope. Argument schemas are declared in the
// capability descriptors but enforced upstream; handlers here never
// validate required fields.
package registry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kokistudios/playground/internal/store"
)

// Kind distinguishes the three capability mappings.
type Kind string

const (
	KindTool     Kind = "tool"
	KindResource Kind = "resource"
	KindPrompt   Kind = "prompt"
)

// Args is the decoded argument mapping for a single invocation.
type Args map[string]any

// String returns the named argument as a string, or fallback when absent.
func (a Args) String(key, fallback string) string {
	v, ok := a[key]
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	return s
}

// Int returns the named argument as an int. JSON decoding delivers
// numbers as float64, so both forms are accepted.
func (a Args) Int(key string) (int, bool) {
	switch v := a[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// Bool interprets the named argument as a boolean, accepting the bool
// type and the string "true" compared case-insensitively (prompt
// arguments arrive as text).
func (a Args) Bool(key string, fallback bool) bool {
	switch v := a[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	}
	return fallback
}

// Segment is one piece of result content, tagged with a content type.
// Every capability in the playground currently produces "text" segments.
type Segment struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Message is a role-tagged segment produced by prompt capabilities.
type Message struct {
	Role    string  `json:"role"`
	Content Segment `json:"content"`
}

// Result is the uniform envelope returned by every successful invocation.
// Tools and resources populate Content; prompts populate Description and
// Messages. Soft failures (unknown task id, missing note, rejected
// calculator input) are ordinary Results whose text explains the problem.
type Result struct {
	Description string    `json:"description,omitempty"`
	Content     []Segment `json:"content,omitempty"`
	Messages    []Message `json:"messages,omitempty"`
}

// Text builds a single-segment text result.
func Text(s string) Result {
	return Result{Content: []Segment{{Type: "text", Text: s}}}
}

// UnknownCapabilityError is the hard failure for a name or URI no mapping
// knows. It is distinct from a handler-level NotFound, which is reported
// as ordinary text: an unknown capability is the transport's problem to
// surface, a missing record is the caller's.
type UnknownCapabilityError struct {
	Kind Kind
	Name string
}

func (e *UnknownCapabilityError) Error() string {
	return fmt.Sprintf("unknown %s: %s", e.Kind, e.Name)
}

// Arg describes one declared argument of a capability.
type Arg struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Descriptor is the static description of a capability: its name (or URI
// for resources), what it does, and its argument schema. Descriptors are
// built once and never mutated; they exist for enumeration responses.
type Descriptor struct {
	Name        string `json:"name"`
	URI         string `json:"uri,omitempty"`
	Description string `json:"description"`
	MIMEType    string `json:"mime_type,omitempty"`
	Args        []Arg  `json:"args,omitempty"`
}

// handler runs one capability against the registry's stores.
type handler func(ctx context.Context, args Args) (Result, error)

// capability pairs a descriptor with its handler.
type capability struct {
	desc Descriptor
	run  handler
}

// Registry is the process-wide capability table. It is populated once at
// construction and immutable afterwards; only the underlying task store
// and notes directory change between calls.
type Registry struct {
	serverName string
	tasks      *store.TaskStore
	notes      *store.Notes

	tools       []capability
	toolIndex   map[string]int
	prompts     []capability
	promptIndex map[string]int

	// resources holds the literal-URI capabilities; the file:// prefix
	// rule is applied in Invoke after exact matching fails.
	resources     []capability
	resourceIndex map[string]int

	now func() time.Time
}

// New builds a registry over the given stores. serverName appears in the
// system info resource.
func New(tasks *store.TaskStore, notes *store.Notes, serverName string) *Registry {
	r := &Registry{
		serverName:    serverName,
		tasks:         tasks,
		notes:         notes,
		toolIndex:     make(map[string]int),
		promptIndex:   make(map[string]int),
		resourceIndex: make(map[string]int),
		now:           time.Now,
	}
	r.registerTools()
	r.registerResources()
	r.registerPrompts()
	return r
}

// Tasks exposes the underlying task store (for the CLI and demo).
func (r *Registry) Tasks() *store.TaskStore { return r.tasks }

// Notes exposes the underlying notes directory.
func (r *Registry) Notes() *store.Notes { return r.notes }

func (r *Registry) addTool(desc Descriptor, run handler) {
	r.toolIndex[desc.Name] = len(r.tools)
	r.tools = append(r.tools, capability{desc: desc, run: run})
}

func (r *Registry) addPrompt(desc Descriptor, run handler) {
	r.promptIndex[desc.Name] = len(r.prompts)
	r.prompts = append(r.prompts, capability{desc: desc, run: run})
}

func (r *Registry) addResource(desc Descriptor, run handler) {
	r.resourceIndex[desc.URI] = len(r.resources)
	r.resources = append(r.resources, capability{desc: desc, run: run})
}

// ListTools enumerates tool descriptors in definition order.
func (r *Registry) ListTools() []Descriptor {
	out := make([]Descriptor, 0, len(r.tools))
	for _, c := range r.tools {
		out = append(out, c.desc)
	}
	return out
}

// ListPrompts enumerates prompt descriptors in definition order.
func (r *Registry) ListPrompts() []Descriptor {
	out := make([]Descriptor, 0, len(r.prompts))
	for _, c := range r.prompts {
		out = append(out, c.desc)
	}
	return out
}

// Invoke resolves and runs a capability. Tools and prompts resolve by
// exact name; resources resolve by exact URI first, then by the file://
// prefix rule. An unresolvable name returns an UnknownCapabilityError;
// handler errors pass through unchanged.
func (r *Registry) Invoke(ctx context.Context, kind Kind, name string, args Args) (Result, error) {
	if args == nil {
		args = Args{}
	}
	switch kind {
	case KindTool:
		if i, ok := r.toolIndex[name]; ok {
			return r.tools[i].run(ctx, args)
		}
	case KindPrompt:
		if i, ok := r.promptIndex[name]; ok {
			return r.prompts[i].run(ctx, args)
		}
	case KindResource:
		return r.invokeResource(ctx, name, args)
	}
	return Result{}, &UnknownCapabilityError{Kind: kind, Name: name}
}
