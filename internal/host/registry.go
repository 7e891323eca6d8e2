package host

import (
	"context"
	"maps"
	"slices"

	"bennypowers.dev/classwrap/internal/parser"
)

// PrintOptions are the host formatter settings a printer receives
type PrintOptions struct {
	// Filepath is the path of the document, if known
	Filepath       string
	Parser         string
	PrintWidth     int
	TabWidth       int
	UseTabs        bool
	SingleQuote    bool
	JSXSingleQuote bool
}

// ParseFunc parses text into a tree the class-name walkers understand
type ParseFunc func(ctx context.Context, text string) (*parser.Tree, error)

// PrintFunc formats text. It fails when the text does not parse.
type PrintFunc func(ctx context.Context, text string, opts PrintOptions) (string, error)

// Capability is a parser and printer for one parser name
type Capability struct {
	Name     string
	Language parser.Language
	Parse    ParseFunc
	Print    PrintFunc
}

// Registry maps parser names to capabilities. It is resolved once per
// format invocation and not modified afterwards.
type Registry struct {
	caps map[string]Capability
}

// NewRegistry creates a registry holding caps
func NewRegistry(caps ...Capability) *Registry {
	r := &Registry{caps: make(map[string]Capability, len(caps))}
	for _, c := range caps {
		r.Register(c)
	}
	return r
}

// Register adds or replaces a capability
func (r *Registry) Register(c Capability) {
	r.caps[c.Name] = c
}

// Resolve returns the capability for a parser name
func (r *Registry) Resolve(name string) (Capability, error) {
	c, ok := r.caps[name]
	if !ok {
		return Capability{}, NewMissingCapabilityError(name, r.Names())
	}
	return c, nil
}

// Names returns the registered parser names, sorted
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.caps))
}

// WithPrinter returns a copy of the registry whose capabilities all print
// with printer. Parsing is unchanged.
func (r *Registry) WithPrinter(printer PrintFunc) *Registry {
	out := NewRegistry()
	for name, c := range r.caps {
		c.Print = printer
		out.caps[name] = c
	}
	return out
}
