package generate

import (
	"fmt"

	"github.com/nguyentito/mpri13/ast/implicit"
	"github.com/nguyentito/mpri13/constraint"
	"github.com/nguyentito/mpri13/names"
	"github.com/nguyentito/mpri13/typeenv"
	"github.com/nguyentito/mpri13/types"
)

// isValueForm reports whether e is a syntactic value (spec.md §4.4's
// value restriction): a variable, a lambda, a primitive, or a
// constructor/record/ascription/existential-intro built entirely out of
// value forms. Anything else (an application, a match, a record
// access) must not be generalized by the solver even when no explicit
// scheme forces it to stay monomorphic.
func isValueForm(e implicit.Expr) bool {
	switch e := e.(type) {
	case *implicit.Var, *implicit.Lambda, *implicit.Primitive:
		return true
	case *implicit.Ascription:
		return isValueForm(e.Expr)
	case *implicit.ExistentialIntro:
		return isValueForm(e.Body)
	case *implicit.DataCon:
		for _, a := range e.Args {
			if !isValueForm(a) {
				return false
			}
		}
		return true
	case *implicit.RecordCon:
		for _, f := range e.Fields {
			if !isValueForm(f.Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// genBindingConstraint generates the SchemeConstraint for a single
// ValueDef. An explicitly-typed binding (def.Scheme != nil) checks its
// body against the fixed scheme's body and is never further
// generalized by the solver (Flexible stays empty; Rigid names the
// scheme's own quantifiers, which the solver must treat as opaque
// skolems rather than as candidates for unification). An implicitly
// typed binding over a value form lists every fresh variable the body
// introduced as Flexible, so the solver is free to generalize over
// whichever of them remain after solving; an implicitly typed binding
// over a non-value form lists none, leaving it monomorphic even though
// nothing else pins its type down — spec.md §4.4's value restriction.
func (g *Generator) genBindingConstraint(env typeenv.Environment, def implicit.ValueDef) (constraint.SchemeConstraint, error) {
	start := g.fresh
	_, bodyVarType := g.freshType(def.Pos)

	var rigid []names.TypeVarName
	var preds []types.ClassPredicate
	headerType := bodyVarType

	if def.Scheme != nil {
		rigid = def.Scheme.Quantifiers
		preds = def.Scheme.Predicates
		headerType = def.Scheme.Body
	}

	bodyC, err := g.GenExpr(env, def.Body, bodyVarType)
	if err != nil {
		return constraint.SchemeConstraint{}, err
	}

	inner := bodyC
	if def.Scheme != nil {
		inner = constraint.And(bodyC, constraint.Equal{Pos: def.Pos, Left: bodyVarType, Right: def.Scheme.Body})
	}

	var flexible []names.TypeVarName
	if def.Scheme == nil && isValueForm(def.Body) {
		flexible = make([]names.TypeVarName, 0, g.fresh-start)
		for i := start + 1; i <= g.fresh; i++ {
			flexible = append(flexible, names.TypeVarName(fmt.Sprintf("$t%d", i)))
		}
	}

	return constraint.SchemeConstraint{
		Name:       def.Name,
		Rigid:      rigid,
		Flexible:   flexible,
		Predicates: preds,
		Inner:      inner,
		HeaderType: headerType,
	}, nil
}

// GenDefinitionGroup generates the Let for a (possibly mutually
// recursive) group of value bindings, wrapping continuation as its
// outermost Outer constraint (spec.md §4.4).
//
// A non-recursive group needs only one Let layer: no binding can see
// any sibling, so each is generated against env unmodified.
//
// A recursive group needs two nested Let layers, mirroring the
// teacher's own two-pass treatment of recursive groups
// (inference_context.go's fixed/generalized split): an outer layer
// binds every name at a fresh monomorphic "fixed" header (or, for an
// explicitly-typed sibling, its own fixed scheme body) so uses of one
// binding inside another's body type-check against a concrete type
// instead of raising UnboundIdentifier; an inner layer re-binds each
// name at its real, possibly-generalized scheme, shadowing the fixed
// one for continuation and for nothing else (the bodies were already
// generated against the fixed layer).
func (g *Generator) GenDefinitionGroup(env typeenv.Environment, def *implicit.Definition, continuation constraint.Constraint) (constraint.Constraint, error) {
	if !def.Rec {
		schemes := make([]constraint.SchemeConstraint, len(def.Bindings))
		for i, vd := range def.Bindings {
			sc, err := g.genBindingConstraint(env, vd)
			if err != nil {
				return nil, err
			}
			schemes[i] = sc
		}
		return &constraint.Let{Schemes: schemes, Outer: continuation}, nil
	}

	fixedSchemes := make([]constraint.SchemeConstraint, len(def.Bindings))
	for i, vd := range def.Bindings {
		header := vd.Scheme
		var headerType types.Type
		if header != nil {
			headerType = header.Body
		} else {
			_, t := g.freshType(vd.Pos)
			headerType = t
		}
		fixedSchemes[i] = constraint.SchemeConstraint{Name: vd.Name, Inner: constraint.True{}, HeaderType: headerType}
	}

	innerSchemes := make([]constraint.SchemeConstraint, len(def.Bindings))
	for i, vd := range def.Bindings {
		sc, err := g.genBindingConstraint(env, vd)
		if err != nil {
			return nil, err
		}
		innerSchemes[i] = sc
	}

	inner := &constraint.Let{Schemes: innerSchemes, Outer: continuation}
	return &constraint.Let{Schemes: fixedSchemes, Outer: inner}, nil
}
