package typeenv

import (
	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/kinds"
	"github.com/nguyentito/mpri13/names"
	"github.com/nguyentito/mpri13/types"
)

// CheckWfType checks that t is well-kinded against an expected kind
// within e (spec.md §4.7).
func (e Environment) CheckWfType(t types.Type, expected kinds.Kind) error {
	k, err := e.kindOf(t)
	if err != nil {
		return err
	}
	return e.CheckEquivalentKind(t, k, expected)
}

func (e Environment) kindOf(t types.Type) (kinds.Kind, error) {
	switch t := t.(type) {
	case *types.TVar:
		// A bare type-variable occurrence is well-kinded at Star by
		// convention in this first-order system: kind polymorphism is
		// out of scope (spec.md §1 Non-goals).
		return kinds.Star{}, nil
	case *types.TApp:
		if t.Con == names.Arrow {
			return kinds.Star{}, nil
		}
		k, err := e.LookupTypeKind(t.Con)
		if err != nil {
			return nil, err
		}
		return e.CheckTypeConstructorApplication(t.Con, k, t.Args)
	default:
		return nil, clserr.New(clserr.IllKindedType, t.Position(), "not a type")
	}
}

// CheckTypeConstructorApplication checks arity and per-argument kinds
// for a type-constructor application, returning the resulting kind
// (Star if the constructor is now saturated).
func (e Environment) CheckTypeConstructorApplication(con names.TypeConName, conKind kinds.Kind, args []types.Type) (kinds.Kind, error) {
	k := conKind
	for _, arg := range args {
		a, ok := k.(kinds.Arrow)
		if !ok {
			return nil, clserr.New(clserr.IllKindedType, arg.Position(),
				"too many arguments applied to type constructor %q", con)
		}
		if err := e.CheckWfType(arg, a.Arg); err != nil {
			return nil, err
		}
		k = a.Res
	}
	return k, nil
}

// CheckEquivalentKind raises IncompatibleKinds if got and want differ.
func (e Environment) CheckEquivalentKind(t types.Type, got, want kinds.Kind) error {
	if !kinds.Equal(got, want) {
		return clserr.New(clserr.IncompatibleKinds, t.Position(),
			"expected kind %s, got %s", want, got)
	}
	return nil
}

// CheckEqualTypes raises IncompatibleTypes if t1 and t2 are not
// α-equivalent.
func CheckEqualTypes(t1, t2 types.Type) error {
	if !types.Equivalent(t1, t2) {
		return clserr.New(clserr.IncompatibleTypes, t1.Position(),
			"expected type %s, got %s", types.String(t2), types.String(t1))
	}
	return nil
}

// CheckCorrectContext checks that every predicate's variable is among
// the scheme's quantifiers, every named class exists, and the context
// is canonical (invariant I3): no two predicates name classes where one
// is a superclass of the other.
func (e Environment) CheckCorrectContext(quantifiers []names.TypeVarName, preds []types.ClassPredicate) error {
	bound := map[names.TypeVarName]struct{}{}
	for _, q := range quantifiers {
		bound[q] = struct{}{}
	}
	for _, p := range preds {
		if _, ok := bound[p.Variable]; !ok {
			return clserr.New(clserr.UnboundTypeVariable, clserr.NoPos,
				"predicate variable %q is not quantified", p.Variable)
		}
		if _, err := e.LookupClass(p.Class); err != nil {
			return err
		}
	}
	for i := range preds {
		for j := range preds {
			if i == j || preds[i].Variable != preds[j].Variable {
				continue
			}
			if e.IsSuperclass(preds[i].Class, preds[j].Class) && preds[i].Class != preds[j].Class {
				return clserr.New(clserr.TheseTwoClassesMustNotBeInTheSameContext, clserr.NoPos,
					"%q is a superclass of %q; both constrain %q", preds[i].Class, preds[j].Class, preds[i].Variable)
			}
		}
	}
	return nil
}
