// Package names defines the four disjoint lexical namespaces of the
// language: value names, type-variable names, type-constructor/class
// names, and record-label/data-constructor names. Each namespace is a
// distinct Go type wrapping an opaque identifier string, so a name from
// one namespace can never be silently used where another is expected.
//
// Equality between names within the same namespace is structural
// (ordinary Go string equality); ordering is lexicographic, used only to
// produce deterministic output (sorted diagnostics, stable iteration
// over sets) rather than to carry any semantic weight.
package names

// ValueName identifies a value binding: a function, a local variable, or
// a class member (method) name.
type ValueName string

// TypeVarName identifies a universally/existentially quantified type
// variable.
type TypeVarName string

// TypeConName identifies a type constructor or a class name; source
// syntax shares one namespace between the two, matching spec.md §3.
type TypeConName string

// LabelName identifies a record label or a data constructor; each use
// site disambiguates by context (field selection vs. pattern match),
// but both draw from this single wrapped-string namespace.
type LabelName string

// Arrow is the reserved TypeConName for the built-in function type
// constructor, `TApp(pos, "->", [in; out])` in spec.md §3.
const Arrow TypeConName = "->"

func (n ValueName) Less(other ValueName) bool   { return n < other }
func (n TypeVarName) Less(other TypeVarName) bool { return n < other }
func (n TypeConName) Less(other TypeConName) bool { return n < other }
func (n LabelName) Less(other LabelName) bool   { return n < other }
