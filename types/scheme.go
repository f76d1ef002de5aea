package types

import (
	"github.com/nguyentito/mpri13/names"
)

// ClassPredicate constrains a type-scheme's variable to types which
// implement the named class: `[k α]`. Predicates reference only the
// scheme's own quantifiers (spec.md §3).
type ClassPredicate struct {
	Class    names.TypeConName
	Variable names.TypeVarName
}

// TyScheme is a universally quantified, possibly-constrained type:
// ∀ Quantifiers. Predicates ⇒ Body.
type TyScheme struct {
	Quantifiers []names.TypeVarName
	Predicates  []ClassPredicate
	Body        Type
}

// MonoScheme lifts a plain type into a scheme with no quantifiers and no
// predicates — spec.md §4.2's `bind_simple`.
func MonoScheme(t Type) TyScheme {
	return TyScheme{Body: t}
}

// IsMono reports whether the scheme binds no quantifiers and carries no
// predicates.
func (s TyScheme) IsMono() bool { return len(s.Quantifiers) == 0 && len(s.Predicates) == 0 }

// Instantiate produces a fresh copy of the scheme's body (and its
// predicates reindexed onto the fresh variables) by substituting each
// quantifier for a type supplied by freshVar. This realizes the
// "instance-of" half of the `Name <? t` constraint from spec.md §4.3:
// the caller decides what "fresh" means — a brand-new flexible type
// variable, or a concrete instantiation type.
func (s TyScheme) Instantiate(freshVar func(names.TypeVarName) Type) (Type, []ClassPredicate) {
	sigma := make(Substitution, len(s.Quantifiers))
	for _, q := range s.Quantifiers {
		sigma[q] = freshVar(q)
	}
	body := Substitute(sigma, s.Body)
	preds := make([]ClassPredicate, len(s.Predicates))
	for i, p := range s.Predicates {
		v, ok := sigma[p.Variable].(*TVar)
		if ok {
			preds[i] = ClassPredicate{Class: p.Class, Variable: v.Name}
		} else {
			// The quantified variable was instantiated to a non-variable
			// type; a ClassPredicate can only name a variable, so the
			// predicate is returned unchanged, still naming the original
			// quantifier.
			preds[i] = p
		}
	}
	return body, preds
}

// WellFormed checks invariant I2 (spec.md §3): every predicate in the
// scheme binds a variable that the scheme itself quantifies.
func (s TyScheme) WellFormed() bool {
	bound := map[names.TypeVarName]struct{}{}
	for _, q := range s.Quantifiers {
		bound[q] = struct{}{}
	}
	for _, p := range s.Predicates {
		if _, ok := bound[p.Variable]; !ok {
			return false
		}
	}
	return true
}
