package common

import "bennypowers.dev/classwrap/internal/collections"

var (
	// DefaultAttributes are always recognized as class-name attributes
	DefaultAttributes = []string{"class", "className"}
	// DefaultFunctions are always recognized as class-name functions
	DefaultFunctions = []string{"classNames"}
)

// Matcher decides which attribute and function names hold class names.
// Matching is exact and case-sensitive.
type Matcher struct {
	attributes collections.Set[string]
	functions  collections.Set[string]
}

// NewMatcher creates a matcher for the default names plus the given custom ones
func NewMatcher(customAttributes, customFunctions []string) *Matcher {
	return &Matcher{
		attributes: collections.NewSet(DefaultAttributes...).Union(collections.NewSet(customAttributes...)),
		functions:  collections.NewSet(DefaultFunctions...).Union(collections.NewSet(customFunctions...)),
	}
}

// Attribute reports whether name is a class-name attribute
func (m *Matcher) Attribute(name string) bool {
	return m.attributes.Has(name)
}

// Function reports whether callee names a class-name function. The whole
// callee text must match, so a member call such as utils.cn is recognized
// only when "utils.cn" itself is configured.
func (m *Matcher) Function(callee string) bool {
	return m.functions.Has(callee)
}

// Attributes returns the recognized attribute names, sorted
func (m *Matcher) Attributes() []string {
	return collections.Sorted(m.attributes)
}

// Functions returns the recognized function names, sorted
func (m *Matcher) Functions() []string {
	return collections.Sorted(m.functions)
}
