package generate

import (
	"github.com/nguyentito/mpri13/ast/implicit"
	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/constraint"
	"github.com/nguyentito/mpri13/kinds"
	"github.com/nguyentito/mpri13/names"
	"github.com/nguyentito/mpri13/typeenv"
	"github.com/nguyentito/mpri13/types"
)

// blockWrap wraps a continuation constraint with whatever a single block
// contributes (a Let over the block's own bindings, typically), closing
// over the Environment snapshot that was current when the block was
// processed.
type blockWrap func(continuation constraint.Constraint) (constraint.Constraint, error)

// GenProgram walks an entire Implicit program (spec.md §2 item 6) and
// produces the single root constraint whose satisfiability is
// equivalent to the program being well-typed, plus the final
// Environment (every TypeDefinitions/ClassDefinition/InstanceDefinitions
// block's declarations folded in, for the solver's deriver and for the
// later Elaborator pass to reuse).
//
// TypeDefinitions, ClassDefinition, and InstanceDefinitions blocks
// extend the Environment directly (bind_type / bind_label / bind_class /
// bind_instance, spec.md §4.2); Definition blocks and a
// ClassDefinition's member schemes contribute a Let layer wrapping every
// block that follows — mirroring how a Lambda or Match branch
// introduces its own local Let header (generate.go/pattern.go), just at
// program scope instead of expression scope. An InstanceDefinitions
// group's member-body obligations are instead conjoined with the
// constraint of every block that follows, with no Let of their own.
func (g *Generator) GenProgram(env typeenv.Environment, prog implicit.Program) (constraint.Constraint, typeenv.Environment, error) {
	var wraps []blockWrap

	for _, block := range prog {
		switch b := block.(type) {
		case *implicit.TypeDefinitions:
			for _, td := range b.Types {
				var err error
				env, err = bindTypeDecl(env, td)
				if err != nil {
					return nil, env, err
				}
			}

		case *implicit.ClassDefinition:
			var err error
			env, err = g.declareClass(env, b)
			if err != nil {
				return nil, env, err
			}
			members := b.Members
			param := b.Param
			className := b.Name
			wraps = append(wraps, func(cont constraint.Constraint) (constraint.Constraint, error) {
				schemes := make([]constraint.SchemeConstraint, len(members))
				for i, m := range members {
					schemes[i] = constraint.SchemeConstraint{
						Name:       names.ValueName(m.Label),
						Rigid:      []names.TypeVarName{param},
						Predicates: []types.ClassPredicate{{Class: className, Variable: param}},
						Inner:      constraint.True{},
						HeaderType: m.Type,
					}
				}
				return &constraint.Let{Schemes: schemes, Outer: cont}, nil
			})

		case *implicit.InstanceDefinitions:
			var err error
			env, err = g.declareInstances(env, b)
			if err != nil {
				return nil, env, err
			}
			snapshot := env
			insts := b.Instances
			wraps = append(wraps, func(cont constraint.Constraint) (constraint.Constraint, error) {
				return g.genInstanceMemberChecks(snapshot, insts, cont)
			})

		case *implicit.Definition:
			def := b
			snapshot := env
			wraps = append(wraps, func(cont constraint.Constraint) (constraint.Constraint, error) {
				return g.GenDefinitionGroup(snapshot, def, cont)
			})

		default:
			return nil, env, clserr.New(clserr.IncompatibleTypes, clserr.NoPos, "generator: unknown block form %q", b.BlockName())
		}
	}

	result := constraint.Constraint(constraint.True{})
	for i := len(wraps) - 1; i >= 0; i-- {
		var err error
		result, err = wraps[i](result)
		if err != nil {
			return nil, env, err
		}
	}
	return result, env, nil
}

// declareClass folds a ClassDefinition's own declarations into env:
// invariant I3 (superclass antichain) and I4 (the class parameter must
// occur free in every member's type, unless IsConstructorClass bypasses
// the check per spec.md §9's higher-kinded-class open question) are
// checked before the class is installed.
func (g *Generator) declareClass(env typeenv.Environment, b *implicit.ClassDefinition) (typeenv.Environment, error) {
	for i, si := range b.Supers {
		for j, sj := range b.Supers {
			if i == j {
				continue
			}
			if env.IsSuperclass(si, sj) {
				return env, clserr.New(clserr.TheseTwoClassesMustNotBeInTheSameContext, b.Pos,
					"%q is already a superclass of %q; both listed as superclasses of %q", si, sj, b.Name)
			}
		}
	}
	members := make(map[names.LabelName]types.Type, len(b.Members))
	for _, m := range b.Members {
		if !b.IsConstructorClass {
			if _, free := types.FreeVars(m.Type)[b.Param]; !free {
				return env, clserr.New(clserr.InvalidOverloading, m.Pos,
					"class parameter %q does not occur in the type of member %q", b.Param, m.Label)
			}
		}
		members[m.Label] = m.Type
	}
	return env.BindClass(&typeenv.ClassInfo{
		Name:               b.Name,
		Param:              b.Param,
		Supers:             append([]names.TypeConName(nil), b.Supers...),
		Members:            members,
		IsConstructorClass: b.IsConstructorClass,
	}), nil
}

// declareInstances folds a mutually-recursive InstanceDefinitions group
// into env: each instance's context must be canonical (I3) and must
// reference only its own parameter list, and the (class, head) pair
// must not already have an instance (spec.md §4.2's overlap policy).
func (g *Generator) declareInstances(env typeenv.Environment, b *implicit.InstanceDefinitions) (typeenv.Environment, error) {
	for _, inst := range b.Instances {
		if err := env.CheckCorrectContext(inst.Params, inst.Context); err != nil {
			return env, err
		}
		var err error
		env, err = env.BindInstance(&typeenv.InstanceInfo{
			Class:   inst.Class,
			Head:    inst.Head,
			Params:  inst.Params,
			Context: inst.Context,
		})
		if err != nil {
			return env, err
		}
	}
	return env, nil
}

// genInstanceMemberChecks generates the typing obligation for every
// member body of every instance in a (mutually visible) group: the body
// must check against the class's declared member type, with the class
// parameter substituted by the instance's own head application
// (spec.md §4.4/§4.5).
func (g *Generator) genInstanceMemberChecks(env typeenv.Environment, insts []implicit.InstanceDef, cont constraint.Constraint) (constraint.Constraint, error) {
	cs := make([]constraint.Constraint, 0, len(insts))
	for _, inst := range insts {
		classInfo, err := env.LookupClass(inst.Class)
		if err != nil {
			return nil, err
		}
		headArgs := make([]types.Type, len(inst.Params))
		for i, p := range inst.Params {
			headArgs[i] = &types.TVar{Pos: inst.Pos, Name: p}
		}
		headType := &types.TApp{Pos: inst.Pos, Con: inst.Head, Args: headArgs}
		sigma := types.Substitution{classInfo.Param: headType}

		for _, m := range inst.Members {
			declared, ok := classInfo.Members[m.Label]
			if !ok {
				return nil, clserr.New(clserr.LabelDoesNotBelong, inst.Pos,
					"%q is not a member of class %q", m.Label, inst.Class)
			}
			memberType := types.Substitute(sigma, declared)
			c, err := g.GenExpr(env, m.Value, memberType)
			if err != nil {
				return nil, err
			}
			cs = append(cs, c)
		}
	}
	return constraint.And(append(cs, cont)...), nil
}

// bindTypeDecl folds one declared type (algebraic or record) into env:
// its own kind, any data-constructor schemes it introduces, and (for a
// record) the field-label index the generator needs to resolve a record
// construction or access from just its first label (spec.md §4.4).
func bindTypeDecl(env typeenv.Environment, td implicit.TypeDecl) (typeenv.Environment, error) {
	env = env.BindType(td.Name, kinds.OfArity(len(td.Params)), nil)

	selfArgs := make([]types.Type, len(td.Params))
	for i, p := range td.Params {
		selfArgs[i] = &types.TVar{Pos: td.Pos, Name: p}
	}
	self := &types.TApp{Pos: td.Pos, Con: td.Name, Args: selfArgs}

	for _, ctor := range td.Algebraic {
		scheme := types.TyScheme{
			Quantifiers: td.Params,
			Body:        types.NTyArrow(ctor.Pos, ctor.Fields, self),
		}
		env = env.BindDataConstructor(ctor.Name, scheme)
	}

	if td.Record != nil {
		fields := make([]names.LabelName, len(td.Record))
		fieldTypes := make(map[names.LabelName]types.Type, len(td.Record))
		for i, f := range td.Record {
			fields[i] = f.Label
			fieldTypes[f.Label] = f.Type
		}
		env = env.BindRecordType(td.Name, td.Params, fields, fieldTypes)
	}

	return env, nil
}
