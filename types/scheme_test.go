package types

import (
	"testing"

	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/names"
)

func TestMonoSchemeIsMono(t *testing.T) {
	s := MonoScheme(tcon("int"))
	if !s.IsMono() {
		t.Fatalf("expected a monoscheme to report IsMono")
	}
}

func TestSchemeWellFormed(t *testing.T) {
	ok := TyScheme{
		Quantifiers: []names.TypeVarName{"a"},
		Predicates:  []ClassPredicate{{Class: "Eq", Variable: "a"}},
		Body:        tvar("a"),
	}
	if !ok.WellFormed() {
		t.Fatalf("expected a predicate over a quantified variable to be well-formed")
	}

	bad := TyScheme{
		Quantifiers: []names.TypeVarName{"a"},
		Predicates:  []ClassPredicate{{Class: "Eq", Variable: "b"}},
		Body:        tvar("a"),
	}
	if bad.WellFormed() {
		t.Fatalf("expected a predicate over an unquantified variable to violate invariant I2")
	}
}

func TestInstantiate(t *testing.T) {
	scheme := TyScheme{
		Quantifiers: []names.TypeVarName{"a"},
		Predicates:  []ClassPredicate{{Class: "Eq", Variable: "a"}},
		Body:        NTyArrow(clserr.NoPos, []Type{tvar("a")}, tvar("a")),
	}
	fresh := tcon("int")
	body, preds := scheme.Instantiate(func(names.TypeVarName) Type { return fresh })

	want := NTyArrow(clserr.NoPos, []Type{fresh}, fresh)
	if !Equivalent(body, want) {
		t.Fatalf("expected instantiated body %s, got %s", String(want), String(body))
	}
	if len(preds) != 1 || preds[0].Class != "Eq" {
		t.Fatalf("expected predicate to survive instantiation, got %v", preds)
	}
	// Instantiating to a concrete (non-variable) type collapses the
	// predicate's own variable field to whatever the original quantifier
	// named, since there is no fresh type variable to rename it to.
	if preds[0].Variable != "a" {
		t.Fatalf("expected predicate variable to remain %q when instantiated to a concrete type, got %q", "a", preds[0].Variable)
	}
}

func TestInstantiateToFreshVariable(t *testing.T) {
	scheme := TyScheme{
		Quantifiers: []names.TypeVarName{"a"},
		Predicates:  []ClassPredicate{{Class: "Eq", Variable: "a"}},
		Body:        tvar("a"),
	}
	body, preds := scheme.Instantiate(func(names.TypeVarName) Type { return tvar("$t1") })
	if !Equivalent(body, tvar("$t1")) {
		t.Fatalf("expected body to be renamed to $t1, got %s", String(body))
	}
	if preds[0].Variable != "$t1" {
		t.Fatalf("expected predicate to follow the fresh variable, got %q", preds[0].Variable)
	}
}
