package implicit

import (
	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/names"
	"github.com/nguyentito/mpri13/types"
)

// Program is an ordered sequence of blocks (spec.md §3).
type Program []Block

// Block is the base for every top-level declaration group.
type Block interface {
	BlockName() string
	blockNode()
}

var (
	_ Block = (*TypeDefinitions)(nil)
	_ Block = (*Definition)(nil)
	_ Block = (*ClassDefinition)(nil)
	_ Block = (*InstanceDefinitions)(nil)
)

// TypeDefinitions is a mutually-recursive group of type declarations,
// algebraic or record.
type TypeDefinitions struct {
	Pos   clserr.Pos
	Types []TypeDecl
}

func (*TypeDefinitions) blockNode()        {}
func (*TypeDefinitions) BlockName() string { return "TypeDefinitions" }

// TypeDecl is one member of a TypeDefinitions group.
type TypeDecl struct {
	Pos        clserr.Pos
	Name       names.TypeConName
	Params     []names.TypeVarName
	Algebraic  []ConstructorDecl // non-nil for algebraic types
	Record     []FieldDecl       // non-nil for record types
}

// ConstructorDecl declares one data constructor of an algebraic type.
type ConstructorDecl struct {
	Pos    clserr.Pos
	Name   names.LabelName
	Fields []types.Type
}

// FieldDecl declares one field of a record type.
type FieldDecl struct {
	Pos   clserr.Pos
	Label names.LabelName
	Type  types.Type
}

// Definition is a (possibly recursive) group of value bindings.
type Definition struct {
	Pos      clserr.Pos
	Bindings []ValueDef
	Rec      bool
}

func (*Definition) blockNode()        {}
func (*Definition) BlockName() string { return "Definition" }

// ValueDef is ValueDef(qs, preds, binding, e) from spec.md §4.4: an
// optionally-annotated value binding. Scheme is nil when the binding is
// implicitly typed (no `::` annotation at all); when non-nil its
// Quantifiers/Predicates may still be empty (a plain `:: τ` ascription).
type ValueDef struct {
	Pos     clserr.Pos
	Name    names.ValueName
	Scheme  *types.TyScheme // nil if implicitly typed
	Body    Expr
}

// ClassDefinition declares a type class (spec.md §3).
type ClassDefinition struct {
	Pos                clserr.Pos
	Name               names.TypeConName
	Param              names.TypeVarName
	Supers             []names.TypeConName
	Members            []ClassMember
	IsConstructorClass bool
}

func (*ClassDefinition) blockNode()        {}
func (*ClassDefinition) BlockName() string { return "ClassDefinition" }

// ClassMember is one member declaration within a class.
type ClassMember struct {
	Pos   clserr.Pos
	Label names.LabelName
	Type  types.Type
}

// InstanceDefinitions is a mutually-recursive group of instances.
type InstanceDefinitions struct {
	Pos       clserr.Pos
	Instances []InstanceDef
}

func (*InstanceDefinitions) blockNode()        {}
func (*InstanceDefinitions) BlockName() string { return "InstanceDefinitions" }

// InstanceDef declares one instance: `instance Class (Head p1 ... pn) | ctx { members }`.
type InstanceDef struct {
	Pos     clserr.Pos
	Class   names.TypeConName
	Head    names.TypeConName
	Params  []names.TypeVarName
	Context []types.ClassPredicate
	Members []FieldBinding
}
