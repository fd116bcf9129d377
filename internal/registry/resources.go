package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/kokistudios/playground/internal/store"
)

const (
	taskDatabaseURI = "tasks://database"
	systemInfoURI   = "system://info"
)

func (r *Registry) registerResources() {
	r.addResource(Descriptor{
		Name:        "Task Database",
		URI:         taskDatabaseURI,
		Description: "Current task list with completion status",
		MIMEType:    "application/json",
	}, r.taskDatabaseResource)

	r.addResource(Descriptor{
		Name:        "System Information",
		URI:         systemInfoURI,
		Description: "Current system date and time information",
		MIMEType:    "application/json",
	}, r.systemInfoResource)
}

// ListResources enumerates resource descriptors: the task database, one
// descriptor per markdown note currently on disk, then system info. The
// notes directory is scanned on every call, so notes written after
// startup appear without re-registration.
func (r *Registry) ListResources() ([]Descriptor, error) {
	out := []Descriptor{r.resources[r.resourceIndex[taskDatabaseURI]].desc}

	names, err := r.notes.List()
	if err != nil {
		return nil, fmt.Errorf("scanning notes: %w", err)
	}
	for _, name := range names {
		stem := store.Stem(name)
		out = append(out, Descriptor{
			Name:        fmt.Sprintf("Note: %s", stem),
			URI:         fmt.Sprintf("file://%s", r.notes.Path(name)),
			Description: fmt.Sprintf("Learning note about %s", store.Title(name)),
			MIMEType:    "text/markdown",
		})
	}

	out = append(out, r.resources[r.resourceIndex[systemInfoURI]].desc)
	return out, nil
}

// invokeResource resolves a resource read: exact URI match first, then
// the file:// prefix rule. Anything else is an unknown capability.
func (r *Registry) invokeResource(ctx context.Context, uri string, args Args) (Result, error) {
	if i, ok := r.resourceIndex[uri]; ok {
		return r.resources[i].run(ctx, args)
	}
	if strings.HasPrefix(uri, "file://") {
		return r.fileResource(uri[7:])
	}
	return Result{}, &UnknownCapabilityError{Kind: KindResource, Name: uri}
}

func (r *Registry) taskDatabaseResource(ctx context.Context, args Args) (Result, error) {
	data, err := r.tasks.Snapshot()
	if err != nil {
		return Result{}, err
	}
	return Text(data), nil
}

// fileResource reads the path carried in a file:// URI. The path is used
// verbatim; a missing or non-regular file is a soft failure reported as
// text, not an error to the transport.
func (r *Registry) fileResource(path string) (Result, error) {
	content, err := store.ReadFileResource(path)
	if err != nil {
		var nf *store.NotFoundError
		if errors.As(err, &nf) {
			return Text(fmt.Sprintf("File not found: %s", path)), nil
		}
		return Result{}, err
	}
	return Text(content), nil
}

func (r *Registry) systemInfoResource(ctx context.Context, args Args) (Result, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	info := map[string]string{
		"current_time":      r.now().Format("2006-01-02T15:04:05.000000"),
		"server_name":       r.serverName,
		"platform":          runtime.GOOS,
		"working_directory": wd,
	}
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return Result{}, err
	}
	return Text(string(data)), nil
}
