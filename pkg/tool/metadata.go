package tool

// Metadata describes a registered tool independent of execution.
// Name is the unique registry key; InputSchema is generated once when
// the handle is built and never mutated afterwards.
type Metadata struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Version     string         `json:"version"`
	Author      string         `json:"author,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Enabled     bool           `json:"enabled"`
	InputType   string         `json:"input_type,omitempty"`
	OutputType  string         `json:"output_type,omitempty"`
	InputSchema map[string]any `json:"input_schema,omitempty"`
}

// HasTag reports whether the metadata carries the given tag.
func (m Metadata) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Option customizes metadata at handle construction time.
type Option func(*Metadata)

// WithVersion overrides the default "1.0.0" version.
func WithVersion(version string) Option {
	return func(m *Metadata) { m.Version = version }
}

// WithAuthor records the tool author.
func WithAuthor(author string) Option {
	return func(m *Metadata) { m.Author = author }
}

// WithTags appends categorization tags.
func WithTags(tags ...string) Option {
	return func(m *Metadata) { m.Tags = append(m.Tags, tags...) }
}

// Disabled registers the tool excluded from default listings. It stays
// lookupable by exact name until re-enabled through the registry.
func Disabled() Option {
	return func(m *Metadata) { m.Enabled = false }
}

// NewMetadata builds metadata with the standard defaults: version
// "1.0.0" and enabled. Tool implementations are expected to construct
// their metadata through this rather than a struct literal so the
// defaults hold.
func NewMetadata(name, description string, opts ...Option) Metadata {
	m := Metadata{
		Name:        name,
		Description: description,
		Version:     "1.0.0",
		Enabled:     true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}
