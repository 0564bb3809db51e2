package registry

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/toolmesh/toolmesh/pkg/tool"
)

// Registry is the concurrent directory mapping tool names to erased
// handles. Registration is rare (typically startup); lookups run from
// many concurrent invocations. The lock guards single map accesses
// only and is never held across a tool's Execute.
type Registry struct {
	mu      sync.RWMutex
	tools   map[string]tool.Handle
	enabled map[string]bool
	log     zerolog.Logger
}

// ToolInfo is the introspection record advertised to callers, e.g. as
// a function-calling specification for a language model.
type ToolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		tools:   make(map[string]tool.Handle),
		enabled: make(map[string]bool),
		log:     zerolog.Nop(),
	}
}

// SetLogger attaches a logger for registration events.
func (r *Registry) SetLogger(log zerolog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = log
}

// Register inserts a handle under its metadata name. A duplicate name
// is rejected with AlreadyExists and leaves the first registration
// intact; a reader never observes a partially inserted entry.
func (r *Registry) Register(h tool.Handle) error {
	meta := h.Metadata()
	if meta.Name == "" {
		return tool.NewInvalidParameters("", "tool name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[meta.Name]; exists {
		return tool.NewAlreadyExists(meta.Name)
	}

	r.tools[meta.Name] = h
	r.enabled[meta.Name] = meta.Enabled

	r.log.Info().
		Str("tool", meta.Name).
		Str("version", meta.Version).
		Bool("enabled", meta.Enabled).
		Msg("Tool registered")

	return nil
}

// Unregister removes a tool. Removing an absent name reports NotFound.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; !exists {
		return tool.NewNotFound(name)
	}
	delete(r.tools, name)
	delete(r.enabled, name)

	r.log.Info().Str("tool", name).Msg("Tool unregistered")
	return nil
}

// Lookup returns the handle for name. Disabled tools remain
// lookupable; the executor is responsible for refusing them.
func (r *Registry) Lookup(name string) (tool.Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.tools[name]
	return h, ok
}

// Has reports whether name is registered, enabled or not.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Enabled reports whether name is registered and currently enabled.
func (r *Registry) Enabled(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled[name]
}

// SetEnabled toggles a tool's availability without re-registering it.
// Reports NotFound for unregistered names.
func (r *Registry) SetEnabled(name string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; !exists {
		return tool.NewNotFound(name)
	}
	r.enabled[name] = enabled

	r.log.Info().Str("tool", name).Bool("enabled", enabled).Msg("Tool availability changed")
	return nil
}

// Metadata returns a tool's metadata with its current enabled state.
func (r *Registry) Metadata(name string) (tool.Metadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.tools[name]
	if !ok {
		return tool.Metadata{}, false
	}
	meta := h.Metadata()
	meta.Enabled = r.enabled[name]
	return meta, true
}

// InputSchema returns the schema document for name.
func (r *Registry) InputSchema(name string) (map[string]any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.tools[name]
	if !ok {
		return nil, false
	}
	return h.InputSchema(), true
}

// Names returns all registered tool names, sorted for stable output.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// FindByTag returns the names of tools carrying the given tag.
func (r *Registry) FindByTag(tag string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name, h := range r.tools {
		if h.Metadata().HasTag(tag) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// EnabledNames returns the names of currently enabled tools.
func (r *Registry) EnabledNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name := range r.tools {
		if r.enabled[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ListTools returns the introspection records for all enabled tools.
func (r *Registry) ListTools() []ToolInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]ToolInfo, 0, len(r.tools))
	for name, h := range r.tools {
		if !r.enabled[name] {
			continue
		}
		meta := h.Metadata()
		infos = append(infos, ToolInfo{
			Name:        meta.Name,
			Description: meta.Description,
			InputSchema: meta.InputSchema,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
