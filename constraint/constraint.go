// Package constraint implements the ConstraintLanguage of spec.md §4.3:
// the intermediate language of typing constraints, plus the external
// solver's contract. The solver itself is deliberately external — this
// package only pins down the shape it must consume and produce.
//
// The closed-sum-over-pointer-structs shape mirrors types.Type and
// ast' expression sums elsewhere in this module, grounded on the
// teacher's own preference (ast.Expr, types.Type) for a tagged
// interface over an open class hierarchy (spec.md §9's "Dynamic
// dispatch over AST variants" guidance).
package constraint

import (
	"github.com/nguyentito/mpri13/ast/explicit"
	"github.com/nguyentito/mpri13/ast/implicit"
	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/names"
	"github.com/nguyentito/mpri13/types"
)

// Constraint is the base for every constraint node.
type Constraint interface {
	constraintNode()
}

var (
	_ Constraint = True{}
	_ Constraint = Equal{}
	_ Constraint = InstanceOf{}
	_ Constraint = Conj(nil)
	_ Constraint = (*Exists)(nil)
	_ Constraint = (*Let)(nil)
)

// True is the trivially satisfied constraint.
type True struct{}

func (True) constraintNode() {}

// Equal is `t =?= t' @ pos`.
type Equal struct {
	Pos      clserr.Pos
	Left     types.Type
	Right    types.Type
}

func (Equal) constraintNode() {}

// InstanceOf is `Name <? t @ pos`: the named scheme can be instantiated
// to a type which equals (or is itself further constrained to unify
// with, per the external solver's discipline) t.
type InstanceOf struct {
	Pos  clserr.Pos
	Name names.ValueName
	Type types.Type
}

func (InstanceOf) constraintNode() {}

// Conj is a conjunction of constraints.
type Conj []Constraint

func (Conj) constraintNode() {}

// And builds a Conj, flattening nested Conj/True constraints so the
// resulting tree stays as small as generation allows.
func And(cs ...Constraint) Constraint {
	var flat []Constraint
	for _, c := range cs {
		switch c := c.(type) {
		case True:
			continue
		case Conj:
			flat = append(flat, c...)
		default:
			flat = append(flat, c)
		}
	}
	switch len(flat) {
	case 0:
		return True{}
	case 1:
		return flat[0]
	default:
		return Conj(flat)
	}
}

// Exists is existential quantification of flexible variables: `∃vars. c`.
type Exists struct {
	Vars []names.TypeVarName
	Body Constraint
}

func (*Exists) constraintNode() {}

// SchemeConstraint is one scheme bound by a Let: rigid and flexible
// quantifiers, a context of predicates, the inner constraint solved to
// produce the scheme, and a header mapping names to the types the outer
// constraint may reference while this scheme is in scope (spec.md
// §4.3).
type SchemeConstraint struct {
	Name       names.ValueName
	Rigid      []names.TypeVarName
	Flexible   []names.TypeVarName
	Predicates []types.ClassPredicate
	Inner      Constraint
	HeaderType types.Type
}

// Let binds a group of (possibly mutually visible) schemes before
// checking an outer constraint against them.
type Let struct {
	Schemes []SchemeConstraint
	Outer   Constraint
}

func (*Let) constraintNode() {}

// Solution is what a successful Solve call returns: a substitution over
// the flexible variables introduced during generation, plus a Deriver
// which materializes the Explicit AST from an Implicit one once the
// substitution is known (spec.md §6).
type Solution struct {
	Substitution types.Substitution
	Derive       Deriver
}

// Deriver materializes an Explicit AST from the corresponding Implicit
// AST once the solver's substitution is known, filling in every type
// application and annotation the Implicit tree left as "to be
// inferred" (spec.md §6). DeriveValueName and DeriveType expose the
// same per-occurrence information a hand-rolled deriver would need to
// rebuild one expression node at a time; DeriveProgram is the whole-tree
// entry point classy.Compile actually calls.
type Deriver interface {
	DeriveValueName(names.ValueName) (types.TyScheme, []types.Type)
	DeriveType(pos clserr.Pos, placeholder names.TypeVarName) types.Type
	DeriveProgram(prog implicit.Program, substitution types.Substitution) (explicit.Program, error)
}

// Solver is the external contract of spec.md §6: consume a root
// constraint and produce either a solution or a typed error. The error
// is a plain error value: of the solver failures (an unsatisfiable
// equation, a failed generalization, unresolved overloading) only
// UnresolvedOverloading has its own clserr.Kind. Generation relies only
// on this interface, never on a concrete solver implementation.
type Solver interface {
	Solve(root Constraint) (Solution, error)
}
