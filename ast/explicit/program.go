package explicit

import (
	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/names"
	"github.com/nguyentito/mpri13/types"
)

// Program is an ordered sequence of blocks. A program produced by the
// Elaborator (spec.md §4.5) contains no ClassDefinition or
// InstanceDefinitions blocks.
type Program []Block

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

type TypeDefinitions struct {
	Pos   clserr.Pos
	Types []TypeDecl
}

func (*TypeDefinitions) blockNode()        {}
func (*TypeDefinitions) BlockName() string { return "TypeDefinitions" }

type TypeDecl struct {
	Pos       clserr.Pos
	Name      names.TypeConName
	Params    []names.TypeVarName
	Algebraic []ConstructorDecl
	Record    []FieldDecl
}

type ConstructorDecl struct {
	Pos    clserr.Pos
	Name   names.LabelName
	Fields []types.Type
}

type FieldDecl struct {
	Pos   clserr.Pos
	Label names.LabelName
	Type  types.Type
}

// Definition is a (possibly recursive) group of fully-typed value
// bindings.
type Definition struct {
	Pos      clserr.Pos
	Bindings []ValueDef
	Rec      bool
}

func (*Definition) blockNode()        {}
func (*Definition) BlockName() string { return "Definition" }

// ValueDef is an explicitly-typed value binding: the scheme is always
// present (possibly mono, i.e. no quantifiers and no predicates).
type ValueDef struct {
	Pos    clserr.Pos
	Name   names.ValueName
	Scheme types.TyScheme
	Body   Expr
}

// ClassDefinition declares a type class. Present only before
// elaboration; the Elaborator's output program contains none.
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

type ClassMember struct {
	Pos   clserr.Pos
	Label names.LabelName
	Type  types.Type
}

// InstanceDefinitions is a mutually-recursive group of instances.
// Present only before elaboration.
type InstanceDefinitions struct {
	Pos       clserr.Pos
	Instances []InstanceDef
}

func (*InstanceDefinitions) blockNode()        {}
func (*InstanceDefinitions) BlockName() string { return "InstanceDefinitions" }

type InstanceDef struct {
	Pos     clserr.Pos
	Class   names.TypeConName
	Head    names.TypeConName
	Params  []names.TypeVarName
	Context []types.ClassPredicate
	Members []FieldBinding
}

// IsClassFree reports whether p contains no ClassDefinition or
// InstanceDefinitions block (spec.md §4.8, §6's Printer contract).
func (p Program) IsClassFree() bool {
	for _, b := range p {
		switch b.(type) {
		case *ClassDefinition, *InstanceDefinitions:
			return false
		}
	}
	return true
}
