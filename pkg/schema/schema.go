// Package schema holds the well-known property mapping of a metadata store.
//
// The store itself is schema-free: every record is a bag of statements.
// What turns statements into addressable, searchable subjects is a small
// set of reserved property identifiers: which property carries the
// identifier, which one the display label, which one the parent relation,
// and which property stems receive full-text highlight output. That
// mapping is injected into the engine at construction; it is never global
// state.
package schema

import "strconv"

// Default well-known property identifiers. Deployments with their own
// vocabulary override them through NewMapping.
const (
	DefaultIdentifierProperty = "system.record.id"
	DefaultLabelProperty      = "system.record.label"
	DefaultParentProperty     = "system.record.parent"
	// DefaultAnyIdentifierProperty is the reserved pseudo-property: a term
	// addressing it matches a value against every identifier-typed
	// statement of a subject (any alias).
	DefaultAnyIdentifierProperty = "system.record.anyid"

	DefaultMatchValueStem    = "system.search.matchValue"
	DefaultMatchPropertyStem = "system.search.matchProperty"
	DefaultMatchQueryStem    = "system.search.matchQuery"
)

// Mapping is the immutable well-known property configuration of one store.
type Mapping struct {
	identifier    string
	label         string
	parent        string
	anyIdentifier string

	matchValueStem    string
	matchPropertyStem string
	matchQueryStem    string
}

// MappingParams configures NewMapping. Zero-valued fields fall back to the
// defaults above.
type MappingParams struct {
	IdentifierProperty    string
	LabelProperty         string
	ParentProperty        string
	AnyIdentifierProperty string

	MatchValueStem    string
	MatchPropertyStem string
	MatchQueryStem    string
}

// NewMapping builds an immutable mapping from params.
func NewMapping(params MappingParams) *Mapping {
	m := &Mapping{
		identifier:        params.IdentifierProperty,
		label:             params.LabelProperty,
		parent:            params.ParentProperty,
		anyIdentifier:     params.AnyIdentifierProperty,
		matchValueStem:    params.MatchValueStem,
		matchPropertyStem: params.MatchPropertyStem,
		matchQueryStem:    params.MatchQueryStem,
	}
	if m.identifier == "" {
		m.identifier = DefaultIdentifierProperty
	}
	if m.label == "" {
		m.label = DefaultLabelProperty
	}
	if m.parent == "" {
		m.parent = DefaultParentProperty
	}
	if m.anyIdentifier == "" {
		m.anyIdentifier = DefaultAnyIdentifierProperty
	}
	if m.matchValueStem == "" {
		m.matchValueStem = DefaultMatchValueStem
	}
	if m.matchPropertyStem == "" {
		m.matchPropertyStem = DefaultMatchPropertyStem
	}
	if m.matchQueryStem == "" {
		m.matchQueryStem = DefaultMatchQueryStem
	}
	return m
}

// DefaultMapping returns a mapping carrying only the default vocabulary.
func DefaultMapping() *Mapping {
	return NewMapping(MappingParams{})
}

// IdentifierProperty is the property whose statements identify a subject.
func (m *Mapping) IdentifierProperty() string { return m.identifier }

// LabelProperty is the property carrying a subject's display label.
func (m *Mapping) LabelProperty() string { return m.label }

// ParentProperty is the default relation property for ancestor and
// descendant traversal.
func (m *Mapping) ParentProperty() string { return m.parent }

// AnyIdentifierProperty is the reserved any-alias pseudo-property.
func (m *Mapping) AnyIdentifierProperty() string { return m.anyIdentifier }

// IsAnyIdentifier reports whether property denotes the any-alias meaning.
func (m *Mapping) IsAnyIdentifier(property string) bool {
	return property == m.anyIdentifier
}

// MatchValueProperty names the highlight fragment output property of the
// 1-based indexed full-text term.
func (m *Mapping) MatchValueProperty(index int) string {
	return indexed(m.matchValueStem, index)
}

// MatchPropertyProperty names the matched-property output property.
func (m *Mapping) MatchPropertyProperty(index int) string {
	return indexed(m.matchPropertyStem, index)
}

// MatchQueryProperty names the matched-query output property.
func (m *Mapping) MatchQueryProperty(index int) string {
	return indexed(m.matchQueryStem, index)
}

func indexed(stem string, index int) string {
	return stem + strconv.Itoa(index)
}
