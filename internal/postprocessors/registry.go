package postprocessors

import (
	"fmt"

	"github.com/blackink-studio/inkwell/internal/core/ports/driven"
)

// BuilderFunc creates a PostProcessor from the settings found under the
// processor's key in the studio config, such as chunker.chunk_size.
type BuilderFunc func(cfg map[string]any) (driven.PostProcessor, error)

// Registry maps processor names to builders so the ingest pipeline can be
// assembled from config keys instead of hard-wired constructors.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates an empty registry. RegisterDefaults fills in the
// processors that ship with the assistant.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a builder under the given name. The name should match the
// processor's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build constructs the named processor with the given config, or errors
// when no builder is registered under that name.
func (r *Registry) Build(name string, cfg map[string]any) (driven.PostProcessor, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown processor: %s", name)
	}
	return builder(cfg)
}

// Has returns true if a processor with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered processor names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	return names
}
