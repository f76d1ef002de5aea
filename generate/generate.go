// Package generate implements the ConstraintGenerator of spec.md §4.4:
// a walk of an Implicit expression (and its pattern fragments, and
// whole Definition groups) that produces a constraint.Constraint tree
// for the external constraint.Solver to discharge. The only state it
// changes is the Generator's fresh-variable counter. Generation never
// resolves an ordinary value-name occurrence itself — that is always
// deferred to the solver through a constraint.Let header and a
// constraint.InstanceOf leaf — but it does consult a static
// typeenv.Environment directly for the handful of things no local
// binding can ever shadow: data-constructor arities and record shapes.
package generate

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/nguyentito/mpri13/ast/implicit"
	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/constraint"
	"github.com/nguyentito/mpri13/names"
	"github.com/nguyentito/mpri13/typeenv"
	"github.com/nguyentito/mpri13/types"
)

// Generator hands out fresh type-variable names and walks Implicit
// trees into constraints. The zero value is ready to use and is what
// New returns. A Generator is not safe for concurrent use: its counter is
// a plain field, mutated on every fresh variable request, mirroring
// the teacher's own single-threaded inference_context.go counter.
type Generator struct {
	fresh int
}

// New returns a Generator whose fresh-variable counter starts at zero.
func New() *Generator { return &Generator{} }

// FreshVar returns a type-variable name guaranteed distinct from every
// other name this Generator has handed out.
func (g *Generator) FreshVar() names.TypeVarName {
	g.fresh++
	return names.TypeVarName(fmt.Sprintf("$t%d", g.fresh))
}

func (g *Generator) freshType(pos clserr.Pos) (names.TypeVarName, types.Type) {
	name := g.FreshVar()
	return name, &types.TVar{Pos: pos, Name: name}
}

func sortedValueNames(gamma map[names.ValueName]types.Type) []names.ValueName {
	out := maps.Keys(gamma)
	slices.SortFunc(out, func(a, b names.ValueName) bool { return a < b })
	return out
}

// GenExpr generates the constraint `[[e : expected]]` (spec.md §4.4).
func (g *Generator) GenExpr(env typeenv.Environment, e implicit.Expr, expected types.Type) (constraint.Constraint, error) {
	switch e := e.(type) {
	case *implicit.Var:
		return constraint.InstanceOf{Pos: e.Pos, Name: e.Name, Type: expected}, nil

	case *implicit.Primitive:
		return constraint.Equal{Pos: e.Pos, Left: expected, Right: e.Type}, nil

	case *implicit.Lambda:
		return g.genLambda(env, e, expected)

	case *implicit.App:
		return g.genApp(env, e, expected)

	case *implicit.Ascription:
		return g.genAscription(env, e, expected)

	case *implicit.ExistentialIntro:
		inner, err := g.GenExpr(env, e.Body, expected)
		if err != nil {
			return nil, err
		}
		return &constraint.Exists{Vars: e.Vars, Body: inner}, nil

	case *implicit.DataCon:
		return g.genDataCon(env, e, expected)

	case *implicit.RecordCon:
		return g.genRecordCon(env, e, expected)

	case *implicit.RecordAccess:
		return g.genRecordAccess(env, e, expected)

	case *implicit.MatchExpr:
		return g.genMatch(env, e, expected)

	default:
		return nil, clserr.New(clserr.IncompatibleTypes, e.Position(), "generator: unknown expression form %q", e.ExprName())
	}
}

func (g *Generator) genLambda(env typeenv.Environment, e *implicit.Lambda, expected types.Type) (constraint.Constraint, error) {
	var paramType types.Type
	var existVars []names.TypeVarName
	if e.Annotation != nil {
		paramType = e.Annotation
	} else {
		name, t := g.freshType(e.Pos)
		paramType = t
		existVars = append(existVars, name)
	}
	resName, resType := g.freshType(e.Pos)
	existVars = append(existVars, resName)

	inner, err := g.GenExpr(env, e.Body, resType)
	if err != nil {
		return nil, err
	}

	header := constraint.SchemeConstraint{Name: e.Param, Inner: constraint.True{}, HeaderType: paramType}
	body := constraint.And(
		&constraint.Let{Schemes: []constraint.SchemeConstraint{header}, Outer: inner},
		constraint.Equal{Pos: e.Pos, Left: expected, Right: types.NTyArrow(e.Pos, []types.Type{paramType}, resType)},
	)
	return &constraint.Exists{Vars: existVars, Body: body}, nil
}

func (g *Generator) genApp(env typeenv.Environment, e *implicit.App, expected types.Type) (constraint.Constraint, error) {
	argName, argType := g.freshType(e.Pos)
	funC, err := g.GenExpr(env, e.Fun, types.NTyArrow(e.Pos, []types.Type{argType}, expected))
	if err != nil {
		return nil, err
	}
	argC, err := g.GenExpr(env, e.Arg, argType)
	if err != nil {
		return nil, err
	}
	return &constraint.Exists{Vars: []names.TypeVarName{argName}, Body: constraint.And(funC, argC)}, nil
}

func (g *Generator) genAscription(env typeenv.Environment, e *implicit.Ascription, expected types.Type) (constraint.Constraint, error) {
	inner, err := g.GenExpr(env, e.Expr, e.Type)
	if err != nil {
		return nil, err
	}
	return constraint.And(constraint.Equal{Pos: e.Pos, Left: expected, Right: e.Type}, inner), nil
}

// genDataCon builds a nested arrow chain from fresh argument variables
// to expected and emits instance-of on the constructor name, exactly as
// for an ordinary Var occurrence — a data constructor is, from the
// constraint language's point of view, just another name with a scheme
// the solver instantiates (spec.md §4.4). Arity is checked eagerly here
// because it can never depend on solving anything: it is fixed the
// moment the type declaration was bound.
func (g *Generator) genDataCon(env typeenv.Environment, e *implicit.DataCon, expected types.Type) (constraint.Constraint, error) {
	scheme, err := env.LookupDataConstructor(e.Name)
	if err != nil {
		return nil, err
	}
	inputs, _ := types.DestructNTyArrow(scheme.Body)
	arity := len(inputs)
	if len(e.Args) < arity {
		return nil, clserr.New(clserr.PartialDataConstructorApplication, e.Pos,
			"constructor %q expects %d argument(s), got %d", e.Name, arity, len(e.Args))
	}
	if len(e.Args) > arity {
		return nil, clserr.New(clserr.InvalidDataConstructorApplication, e.Pos,
			"constructor %q expects %d argument(s), got %d", e.Name, arity, len(e.Args))
	}

	argVars := make([]names.TypeVarName, arity)
	argTypes := make([]types.Type, arity)
	cs := make([]constraint.Constraint, 0, arity+1)
	for i, arg := range e.Args {
		name, t := g.freshType(arg.Position())
		argVars[i] = name
		argTypes[i] = t
		c, err := g.GenExpr(env, arg, t)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	// names.ValueName(e.Name) crosses from the LabelName namespace into
	// the ValueName namespace deliberately: data constructors are typed
	// like ordinary functions once generation reaches instance-of, and
	// the solver/ledger need only one namespace to key that obligation.
	cs = append(cs, constraint.InstanceOf{Pos: e.Pos, Name: names.ValueName(e.Name), Type: types.NTyArrow(e.Pos, argTypes, expected)})
	return &constraint.Exists{Vars: argVars, Body: constraint.And(cs...)}, nil
}

func (g *Generator) genRecordCon(env typeenv.Environment, e *implicit.RecordCon, expected types.Type) (constraint.Constraint, error) {
	if len(e.Fields) == 0 {
		return nil, clserr.New(clserr.InvalidRecordInstantiation, e.Pos, "empty record construction")
	}
	seen := map[names.LabelName]struct{}{}
	for _, f := range e.Fields {
		if _, dup := seen[f.Label]; dup {
			return nil, clserr.New(clserr.MultipleLabels, e.Pos, "label %q given more than once", f.Label)
		}
		seen[f.Label] = struct{}{}
	}

	owner, err := env.LookupLabelOwner(e.Fields[0].Label)
	if err != nil {
		return nil, err
	}
	decl, err := env.LookupRecordDecl(owner)
	if err != nil {
		return nil, err
	}

	sigma := make(types.Substitution, len(decl.Quantifiers))
	existVars := make([]names.TypeVarName, len(decl.Quantifiers))
	args := make([]types.Type, len(decl.Quantifiers))
	for i, q := range decl.Quantifiers {
		name, t := g.freshType(e.Pos)
		sigma[q] = t
		existVars[i] = name
		args[i] = t
	}
	recordType := &types.TApp{Pos: e.Pos, Con: owner, Args: args}

	cs := make([]constraint.Constraint, 0, len(e.Fields)+1)
	for _, f := range e.Fields {
		declared, ok := decl.FieldTypes[f.Label]
		if !ok {
			return nil, clserr.New(clserr.LabelDoesNotBelong, e.Pos, "label %q does not belong to record type %q", f.Label, owner)
		}
		c, err := g.GenExpr(env, f.Value, types.Substitute(sigma, declared))
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	if len(e.Fields) != len(decl.Fields) {
		return nil, clserr.New(clserr.InvalidRecordInstantiation, e.Pos,
			"record type %q requires %d field(s), got %d", owner, len(decl.Fields), len(e.Fields))
	}
	cs = append(cs, constraint.Equal{Pos: e.Pos, Left: expected, Right: recordType})
	return &constraint.Exists{Vars: existVars, Body: constraint.And(cs...)}, nil
}

func (g *Generator) genRecordAccess(env typeenv.Environment, e *implicit.RecordAccess, expected types.Type) (constraint.Constraint, error) {
	owner, err := env.LookupLabelOwner(e.Label)
	if err != nil {
		return nil, err
	}
	decl, err := env.LookupRecordDecl(owner)
	if err != nil {
		return nil, err
	}
	declared, ok := decl.FieldTypes[e.Label]
	if !ok {
		return nil, clserr.New(clserr.LabelDoesNotBelong, e.Pos, "label %q does not belong to record type %q", e.Label, owner)
	}

	sigma := make(types.Substitution, len(decl.Quantifiers))
	existVars := make([]names.TypeVarName, len(decl.Quantifiers))
	args := make([]types.Type, len(decl.Quantifiers))
	for i, q := range decl.Quantifiers {
		name, t := g.freshType(e.Pos)
		sigma[q] = t
		existVars[i] = name
		args[i] = t
	}
	recordType := &types.TApp{Pos: e.Pos, Con: owner, Args: args}
	labelType := types.Substitute(sigma, declared)

	inner, err := g.GenExpr(env, e.Expr, recordType)
	if err != nil {
		return nil, err
	}
	return &constraint.Exists{Vars: existVars, Body: constraint.And(inner, constraint.Equal{Pos: e.Pos, Left: expected, Right: labelType})}, nil
}

func (g *Generator) genMatch(env typeenv.Environment, e *implicit.MatchExpr, expected types.Type) (constraint.Constraint, error) {
	scrutName, scrutType := g.freshType(e.Pos)
	scrutC, err := g.GenExpr(env, e.Scrutinee, scrutType)
	if err != nil {
		return nil, err
	}

	branchCs := make([]constraint.Constraint, len(e.Branches))
	for i, br := range e.Branches {
		frag, err := g.GenPattern(env, br.Pattern, scrutType)
		if err != nil {
			return nil, err
		}
		bodyC, err := g.GenExpr(env, br.Body, expected)
		if err != nil {
			return nil, err
		}
		names_ := sortedValueNames(frag.Gamma)
		schemes := make([]constraint.SchemeConstraint, len(names_))
		for j, name := range names_ {
			schemes[j] = constraint.SchemeConstraint{Name: name, Inner: constraint.True{}, HeaderType: frag.Gamma[name]}
		}
		branchBody := constraint.And(frag.Constraint, &constraint.Let{Schemes: schemes, Outer: bodyC})
		branchCs[i] = &constraint.Exists{Vars: frag.Vars, Body: branchBody}
	}
	return &constraint.Exists{Vars: []names.TypeVarName{scrutName}, Body: constraint.And(scrutC, constraint.And(branchCs...))}, nil
}
