// Package typeenv implements the Environment component of spec.md
// §4.2: the typing context threading bindings from value names to
// schemes, types to kinds, data constructors to schemes, labels to
// record types, class names to class info, and the instance index.
//
// Every bind_* operation returns a *new* Environment value whose
// backing maps share structure with the receiver, using
// github.com/benbjohnson/immutable's persistent hash-array-mapped-trie
// Map — the teacher's one genuine third-party dependency. This is a
// deliberate upgrade over the teacher's own TypeEnv (type_env.go), which
// documents itself as unsafe for concurrent use because each scope
// mutates a plain Go map in place and chains parents by pointer;
// spec.md §3 requires environments to be immutable values sharing
// substructure, which only a persistent structure actually guarantees.
package typeenv

import (
	"github.com/benbjohnson/immutable"

	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/internal/classgraph"
	"github.com/nguyentito/mpri13/kinds"
	"github.com/nguyentito/mpri13/names"
	"github.com/nguyentito/mpri13/types"
)

// ClassInfo records everything known about a declared class.
type ClassInfo struct {
	Name               names.TypeConName
	Param              names.TypeVarName
	Supers             []names.TypeConName
	Members            map[names.LabelName]types.Type
	IsConstructorClass bool
}

// InstanceInfo records everything known about a declared instance.
type InstanceInfo struct {
	Class   names.TypeConName
	Head    names.TypeConName
	Params  []names.TypeVarName
	Context []types.ClassPredicate
}

// RecordDecl records a declared record type's type parameters and
// fields, keyed by the record's own TypeConName, so the generator can
// recover every field's declared type (instantiated at the occurrence)
// from just the first label used at a construction or access site
// (spec.md §4.4).
type RecordDecl struct {
	Quantifiers []names.TypeVarName
	Fields      []names.LabelName
	FieldTypes  map[names.LabelName]types.Type
}

// instanceKey is the lookup key for the instance index: one instance
// per (class, head-constructor) pair, matching §4.2's
// "bind_instance must reject overlapping instances (same class + same
// head constructor already present)".
type instanceKey struct {
	Class names.TypeConName
	Head  names.TypeConName
}

// Environment is an immutable typing context. The zero value is not
// usable; construct one with New.
type Environment struct {
	values       *immutable.Map // names.ValueName -> types.TyScheme
	typeKinds    *immutable.Map // names.TypeConName -> kindedType
	labels       *immutable.Map // names.LabelName -> names.TypeConName (the owning record type)
	recordDecls  *immutable.Map // names.TypeConName -> *RecordDecl
	constructors *immutable.Map // names.LabelName -> types.TyScheme (data constructor's own sub-namespace)
	classes      *immutable.Map // names.TypeConName -> *ClassInfo
	instances    *immutable.Map // instanceKey -> *InstanceInfo
}

type kindedType struct {
	Kind kinds.Kind
	Def  types.Type // nil for abstract/built-in type constructors
}

// New returns the empty environment.
func New() Environment {
	return Environment{
		values:       immutable.NewMap(valueNameHasher{}),
		typeKinds:    immutable.NewMap(typeConNameHasher{}),
		labels:       immutable.NewMap(labelNameHasher{}),
		recordDecls:  immutable.NewMap(typeConNameHasher{}),
		constructors: immutable.NewMap(labelNameHasher{}),
		classes:      immutable.NewMap(typeConNameHasher{}),
		instances:    immutable.NewMap(instanceKeyHasher{}),
	}
}

// Lookup returns the scheme bound to name, or UnboundIdentifier.
func (e Environment) Lookup(name names.ValueName) (types.TyScheme, error) {
	v, ok := e.values.Get(name)
	if !ok {
		return types.TyScheme{}, clserr.New(clserr.UnboundIdentifier, clserr.NoPos, "unbound identifier %q", name)
	}
	return v.(types.TyScheme), nil
}

// BindScheme returns a new environment extending name with a possibly
// polymorphic, possibly constrained scheme.
func (e Environment) BindScheme(name names.ValueName, qs []names.TypeVarName, preds []types.ClassPredicate, t types.Type) Environment {
	e.values = e.values.Set(name, types.TyScheme{Quantifiers: qs, Predicates: preds, Body: t})
	return e
}

// BindSimple is BindScheme with no quantifiers and no predicates
// (spec.md §4.2).
func (e Environment) BindSimple(name names.ValueName, t types.Type) Environment {
	return e.BindScheme(name, nil, nil, t)
}

// LookupTypeKind returns the kind of a declared type constructor, or
// UnboundTypeVariable if it is not a type-constructor name. (The error
// kind name in spec.md §4.2/§7 is shared between unbound type variables
// and unbound type constructors; callers that need to distinguish
// should check the name's expected namespace before calling.)
func (e Environment) LookupTypeKind(name names.TypeConName) (kinds.Kind, error) {
	v, ok := e.typeKinds.Get(name)
	if !ok {
		return nil, clserr.New(clserr.UnboundTypeVariable, clserr.NoPos, "unbound type constructor %q", name)
	}
	return v.(kindedType).Kind, nil
}

// LookupTypeDef returns the underlying definition of a declared type
// constructor, if any (nil for abstract/built-in constructors).
func (e Environment) LookupTypeDef(name names.TypeConName) (types.Type, bool) {
	v, ok := e.typeKinds.Get(name)
	if !ok {
		return nil, false
	}
	return v.(kindedType).Def, true
}

// BindType returns a new environment declaring a type constructor's
// kind and (optional) definition.
func (e Environment) BindType(name names.TypeConName, k kinds.Kind, def types.Type) Environment {
	e.typeKinds = e.typeKinds.Set(name, kindedType{Kind: k, Def: def})
	return e
}

// LookupLabelOwner returns the record type which declares label, or
// UnboundLabel.
func (e Environment) LookupLabelOwner(label names.LabelName) (names.TypeConName, error) {
	v, ok := e.labels.Get(label)
	if !ok {
		return "", clserr.New(clserr.UnboundLabel, clserr.NoPos, "unbound label %q", label)
	}
	return v.(names.TypeConName), nil
}

// LookupRecordDecl returns the declared shape of a record type.
func (e Environment) LookupRecordDecl(owner names.TypeConName) (*RecordDecl, error) {
	v, ok := e.recordDecls.Get(owner)
	if !ok {
		return nil, clserr.New(clserr.RecordExpected, clserr.NoPos, "%q is not a record type", owner)
	}
	return v.(*RecordDecl), nil
}

// BindRecordType returns a new environment declaring a record type:
// owner's type parameters and the declared type of each of its fields.
// Every field's label is also indexed so a bare label (at a
// construction or access site) can recover its owning record type
// (spec.md §4.4).
func (e Environment) BindRecordType(owner names.TypeConName, quantifiers []names.TypeVarName, fields []names.LabelName, fieldTypes map[names.LabelName]types.Type) Environment {
	e.recordDecls = e.recordDecls.Set(owner, &RecordDecl{Quantifiers: quantifiers, Fields: fields, FieldTypes: fieldTypes})
	for _, label := range fields {
		e.labels = e.labels.Set(label, owner)
	}
	return e
}

// LookupDataConstructor returns the scheme of a declared data
// constructor (the scheme's body is the nested arrow chain from its
// field types to the saturated algebraic type it builds), or
// UnboundLabel. Data constructors and record labels share the
// LabelName namespace but are indexed separately (spec.md §3).
func (e Environment) LookupDataConstructor(name names.LabelName) (types.TyScheme, error) {
	v, ok := e.constructors.Get(name)
	if !ok {
		return types.TyScheme{}, clserr.New(clserr.UnboundLabel, clserr.NoPos, "unbound data constructor %q", name)
	}
	return v.(types.TyScheme), nil
}

// BindDataConstructor returns a new environment declaring a data
// constructor's scheme.
func (e Environment) BindDataConstructor(name names.LabelName, scheme types.TyScheme) Environment {
	e.constructors = e.constructors.Set(name, scheme)
	return e
}

// LookupClass returns the declared info for class, or UnboundClass.
func (e Environment) LookupClass(class names.TypeConName) (*ClassInfo, error) {
	v, ok := e.classes.Get(class)
	if !ok {
		return nil, clserr.New(clserr.UnboundClass, clserr.NoPos, "unbound class %q", class)
	}
	return v.(*ClassInfo), nil
}

// BindClass returns a new environment declaring a class.
func (e Environment) BindClass(info *ClassInfo) Environment {
	e.classes = e.classes.Set(info.Name, info)
	return e
}

// LookupInstance returns the instance declared for (class, head), if
// any.
func (e Environment) LookupInstance(class, head names.TypeConName) (*InstanceInfo, bool) {
	v, ok := e.instances.Get(instanceKey{Class: class, Head: head})
	if !ok {
		return nil, false
	}
	return v.(*InstanceInfo), true
}

// BindInstance returns a new environment declaring an instance. It
// rejects overlapping instances: the same class and head constructor
// already present (spec.md §4.2's policy).
func (e Environment) BindInstance(info *InstanceInfo) (Environment, error) {
	key := instanceKey{Class: info.Class, Head: info.Head}
	if _, exists := e.instances.Get(key); exists {
		return e, clserr.New(clserr.OverlappingInstances, clserr.NoPos,
			"overlapping instance of class %q for %q", info.Class, info.Head)
	}
	e.instances = e.instances.Set(key, info)
	return e, nil
}

// IsSuperclass reports whether k1 is a (reflexive-transitive) superclass
// of k2. The superclass DAG is materialized lazily, one class at a
// time, into a classgraph.Graph and queried by reachability — the class
// table itself is never walked eagerly, matching spec.md §9's guidance
// to compute is_superclass by on-demand graph walk rather than by
// owning cyclic references.
func (e Environment) IsSuperclass(k1, k2 names.TypeConName) bool {
	g := classgraph.New()
	seen := map[names.TypeConName]struct{}{}
	var expand func(names.TypeConName)
	expand = func(c names.TypeConName) {
		if _, visited := seen[c]; visited {
			return
		}
		seen[c] = struct{}{}
		info, err := e.LookupClass(c)
		if err != nil {
			return
		}
		for _, super := range info.Supers {
			g.AddEdge(c, super)
			expand(super)
		}
	}
	expand(k2)
	return g.Reachable(k2, k1)
}
