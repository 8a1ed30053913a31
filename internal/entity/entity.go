// Package entity defines the signature metadata handed to the docstring
// engine for every documentable source construct. The scanner builds these
// from source text; the engine treats them as immutable.
package entity

import "github.com/samber/oops"

// Kind identifies what sort of construct an entity is. It drives the
// heading level and label used when rendering.
type Kind string

const (
	KindModule       Kind = "module"
	KindClass        Kind = "class"
	KindConstructor  Kind = "constructor"
	KindProperty     Kind = "property"
	KindMethod       Kind = "method"
	KindStaticMethod Kind = "staticmethod"
	KindFunction     Kind = "function"
)

// Parameter is one formal parameter of a callable entity, as declared in
// the signature. DeclaredType and DefaultValue are empty when the source
// carries no annotation or default. HasDefault distinguishes an absent
// default from a literal empty one.
type Parameter struct {
	Name         string
	DeclaredType string
	DefaultValue string
	HasDefault   bool
}

// Metadata describes one entity's signature. LineStart/LineEnd are 1-based
// and zero when the body range is unknown (for example a property whose
// range the scanner could not establish).
type Metadata struct {
	Kind          Kind
	Name          string
	QualifiedName string
	Parameters    []Parameter
	ReturnType    string
	IsGenerator   bool
	SourceFile    string
	LineStart     int
	LineEnd       int
}

// Validate reports whether the metadata is structurally usable. A missing
// name is the one hard failure the engine recognizes; everything else is
// rendered best effort.
func (m *Metadata) Validate() error {
	if m == nil {
		return oops.
			Code("INVALID_METADATA").
			Errorf("entity metadata is nil")
	}

	if m.Name == "" {
		return oops.
			Code("INVALID_METADATA").
			With("file", m.SourceFile).
			With("kind", string(m.Kind)).
			Errorf("entity has no name")
	}

	return nil
}

// Param returns the parameter with the given name, or nil.
func (m *Metadata) Param(name string) *Parameter {
	for i := range m.Parameters {
		if m.Parameters[i].Name == name {
			return &m.Parameters[i]
		}
	}

	return nil
}
