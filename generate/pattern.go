package generate

import (
	"github.com/nguyentito/mpri13/ast/implicit"
	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/constraint"
	"github.com/nguyentito/mpri13/names"
	"github.com/nguyentito/mpri13/typeenv"
	"github.com/nguyentito/mpri13/types"
)

// Fragment is the result of generating a pattern against an expected
// scrutinee type (spec.md §4.4): the bindings it introduces (Gamma),
// the fresh existential variables its own shape required (Vars), and
// the constraint the match itself imposes — equating a literal's type,
// or deferring a data constructor's field types to the solver via
// instance-of, exactly as in expression position.
type Fragment struct {
	Gamma      map[names.ValueName]types.Type
	Vars       []names.TypeVarName
	Constraint constraint.Constraint
}

func emptyFragment() Fragment {
	return Fragment{Gamma: map[names.ValueName]types.Type{}, Constraint: constraint.True{}}
}

// mergeDisjoint merges b into a, raising NonLinearPattern (invariant
// I6) the moment the same value name would be bound twice by one
// pattern.
func mergeDisjoint(pos clserr.Pos, a, b map[names.ValueName]types.Type) (map[names.ValueName]types.Type, error) {
	out := make(map[names.ValueName]types.Type, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if _, dup := out[k]; dup {
			return nil, clserr.New(clserr.NonLinearPattern, pos, "variable %q bound more than once in pattern", k)
		}
		out[k] = v
	}
	return out, nil
}

func sameNameSet(names_ []names.ValueName, gamma map[names.ValueName]types.Type) bool {
	if len(names_) != len(gamma) {
		return false
	}
	for _, n := range names_ {
		if _, ok := gamma[n]; !ok {
			return false
		}
	}
	return true
}

// GenPattern generates the Fragment for pattern p matched against a
// scrutinee of type expected (spec.md §4.4).
func (g *Generator) GenPattern(env typeenv.Environment, p implicit.Pattern, expected types.Type) (Fragment, error) {
	switch p := p.(type) {
	case *implicit.PWildcard:
		return emptyFragment(), nil

	case *implicit.PPrimitive:
		return Fragment{
			Gamma:      map[names.ValueName]types.Type{},
			Constraint: constraint.Equal{Pos: p.Pos, Left: expected, Right: p.Type},
		}, nil

	case *implicit.PVar:
		return Fragment{
			Gamma:      map[names.ValueName]types.Type{p.Name: expected},
			Constraint: constraint.True{},
		}, nil

	case *implicit.PTyped:
		inner, err := g.GenPattern(env, p.Pattern, p.Type)
		if err != nil {
			return Fragment{}, err
		}
		inner.Constraint = constraint.And(inner.Constraint, constraint.Equal{Pos: p.Pos, Left: expected, Right: p.Type})
		return inner, nil

	case *implicit.PAlias:
		inner, err := g.GenPattern(env, p.Pattern, expected)
		if err != nil {
			return Fragment{}, err
		}
		if _, dup := inner.Gamma[p.Alias]; dup {
			return Fragment{}, clserr.New(clserr.NonLinearPattern, p.Pos, "variable %q bound more than once in pattern", p.Alias)
		}
		inner.Gamma[p.Alias] = expected
		return inner, nil

	case *implicit.PConjunction:
		return g.genPConjunction(env, p, expected)

	case *implicit.PDisjunction:
		return g.genPDisjunction(env, p, expected)

	case *implicit.PData:
		return g.genPData(env, p, expected)

	default:
		return Fragment{}, clserr.New(clserr.IncompatibleTypes, p.Position(), "generator: unknown pattern form %q", p.PatternName())
	}
}

// genPConjunction matches every part against the same scrutinee type,
// requiring their binding sets to be pairwise disjoint (invariant I6).
func (g *Generator) genPConjunction(env typeenv.Environment, p *implicit.PConjunction, expected types.Type) (Fragment, error) {
	merged := map[names.ValueName]types.Type{}
	var vars []names.TypeVarName
	cs := make([]constraint.Constraint, 0, len(p.Parts))
	for _, part := range p.Parts {
		frag, err := g.GenPattern(env, part, expected)
		if err != nil {
			return Fragment{}, err
		}
		var err2 error
		merged, err2 = mergeDisjoint(p.Pos, merged, frag.Gamma)
		if err2 != nil {
			return Fragment{}, err2
		}
		vars = append(vars, frag.Vars...)
		cs = append(cs, frag.Constraint)
	}
	return Fragment{Gamma: merged, Vars: vars, Constraint: constraint.And(cs...)}, nil
}

// genPDisjunction requires every alternative to bind the same names
// (invariant I6, PatternsMustBindSameVariables otherwise). Since the
// alternatives may reach the shared binding types through different
// structural paths — each contributing its own existentials — a set of
// shared fresh variables is introduced once for the whole disjunction,
// and each alternative's own (locally existential) binding type is
// equated to the corresponding shared variable.
func (g *Generator) genPDisjunction(env typeenv.Environment, p *implicit.PDisjunction, expected types.Type) (Fragment, error) {
	if len(p.Alternatives) == 0 {
		return Fragment{}, clserr.New(clserr.InvalidDisjunctionPattern, p.Pos, "or-pattern has no alternatives")
	}
	frags := make([]Fragment, len(p.Alternatives))
	for i, alt := range p.Alternatives {
		f, err := g.GenPattern(env, alt, expected)
		if err != nil {
			return Fragment{}, err
		}
		frags[i] = f
	}

	canonical := sortedValueNames(frags[0].Gamma)
	for _, f := range frags[1:] {
		if !sameNameSet(canonical, f.Gamma) {
			return Fragment{}, clserr.New(clserr.PatternsMustBindSameVariables, p.Pos,
				"every alternative of an or-pattern must bind the same variables")
		}
	}

	shared := make(map[names.ValueName]types.Type, len(canonical))
	sharedVars := make([]names.TypeVarName, len(canonical))
	for i, name := range canonical {
		vname, vtype := g.freshType(p.Pos)
		shared[name] = vtype
		sharedVars[i] = vname
	}

	altCs := make([]constraint.Constraint, len(frags))
	for i, f := range frags {
		eqs := make([]constraint.Constraint, 0, len(f.Gamma))
		for name, t := range f.Gamma {
			eqs = append(eqs, constraint.Equal{Pos: p.Pos, Left: shared[name], Right: t})
		}
		altCs[i] = &constraint.Exists{Vars: f.Vars, Body: constraint.And(f.Constraint, constraint.And(eqs...))}
	}

	return Fragment{Gamma: shared, Vars: sharedVars, Constraint: constraint.And(altCs...)}, nil
}

// genPData mirrors genDataCon: a nested arrow chain from fresh argument
// variables to expected, deferred to the solver as instance-of on the
// constructor name, with arity checked eagerly since it never depends
// on solving anything.
func (g *Generator) genPData(env typeenv.Environment, p *implicit.PData, expected types.Type) (Fragment, error) {
	scheme, err := env.LookupDataConstructor(p.Name)
	if err != nil {
		return Fragment{}, err
	}
	inputs, _ := types.DestructNTyArrow(scheme.Body)
	arity := len(inputs)
	if len(p.Args) < arity {
		return Fragment{}, clserr.New(clserr.NotEnoughPatternArgts, p.Pos,
			"constructor %q expects %d argument(s), got %d", p.Name, arity, len(p.Args))
	}
	if len(p.Args) > arity {
		return Fragment{}, clserr.New(clserr.InvalidDataConstructorApplication, p.Pos,
			"constructor %q expects %d argument(s), got %d", p.Name, arity, len(p.Args))
	}

	argTypes := make([]types.Type, arity)
	gamma := map[names.ValueName]types.Type{}
	var existVars []names.TypeVarName
	cs := make([]constraint.Constraint, 0, arity+1)
	for i, argPat := range p.Args {
		vname, vtype := g.freshType(p.Pos)
		argTypes[i] = vtype
		existVars = append(existVars, vname)
		frag, err := g.GenPattern(env, argPat, vtype)
		if err != nil {
			return Fragment{}, err
		}
		var err2 error
		gamma, err2 = mergeDisjoint(p.Pos, gamma, frag.Gamma)
		if err2 != nil {
			return Fragment{}, err2
		}
		existVars = append(existVars, frag.Vars...)
		cs = append(cs, frag.Constraint)
	}
	cs = append(cs, constraint.InstanceOf{Pos: p.Pos, Name: names.ValueName(p.Name), Type: types.NTyArrow(p.Pos, argTypes, expected)})
	return Fragment{Gamma: gamma, Vars: existVars, Constraint: constraint.And(cs...)}, nil
}
