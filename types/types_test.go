package types

import (
	"testing"

	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/names"
)

func tvar(n string) *TVar { return &TVar{Name: names.TypeVarName(n)} }

func tcon(c string, args ...Type) *TApp {
	return &TApp{Con: names.TypeConName(c), Args: args}
}

func TestNTyArrowAndDestruct(t *testing.T) {
	a, b, c := tcon("int"), tcon("bool"), tcon("unit")
	arrow := NTyArrow(clserr.NoPos, []Type{a, b}, c)

	gotArg, gotRes, ok := DestructTyArrow(arrow)
	if !ok {
		t.Fatalf("expected an arrow type")
	}
	if !Equivalent(gotArg, a) {
		t.Fatalf("expected first input %s, got %s", String(a), String(gotArg))
	}
	if _, _, ok := DestructTyArrow(gotRes); !ok {
		t.Fatalf("expected the result of the outer arrow to itself be an arrow")
	}

	inputs, result := DestructNTyArrow(arrow)
	if len(inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %d", len(inputs))
	}
	if !Equivalent(inputs[0], a) || !Equivalent(inputs[1], b) {
		t.Fatalf("unexpected inputs: %v", inputs)
	}
	if !Equivalent(result, c) {
		t.Fatalf("expected final result %s, got %s", String(c), String(result))
	}
}

func TestEquivalentUpToRenaming(t *testing.T) {
	t1 := NTyArrow(clserr.NoPos, []Type{tvar("a")}, tvar("a"))
	t2 := NTyArrow(clserr.NoPos, []Type{tvar("b")}, tvar("b"))
	if !Equivalent(t1, t2) {
		t.Fatalf("expected %s and %s to be alpha-equivalent", String(t1), String(t2))
	}

	t3 := NTyArrow(clserr.NoPos, []Type{tvar("a")}, tvar("b"))
	if Equivalent(t1, t3) {
		t.Fatalf("did not expect %s and %s to be alpha-equivalent", String(t1), String(t3))
	}
}

func TestEquivalentRejectsMismatchedConstructors(t *testing.T) {
	if Equivalent(tcon("int"), tcon("bool")) {
		t.Fatalf("int should not be equivalent to bool")
	}
	if Equivalent(tcon("list", tcon("int")), tcon("list")) {
		t.Fatalf("arities must match")
	}
}

func TestSubstitute(t *testing.T) {
	body := NTyArrow(clserr.NoPos, []Type{tvar("a")}, tcon("list", tvar("a")))
	sigma := Substitution{names.TypeVarName("a"): tcon("int")}
	got := Substitute(sigma, body)
	want := NTyArrow(clserr.NoPos, []Type{tcon("int")}, tcon("list", tcon("int")))
	if !Equivalent(got, want) {
		t.Fatalf("expected %s, got %s", String(want), String(got))
	}
}

func TestSubstituteIsCaptureUnaware(t *testing.T) {
	// First-order types have no binders, so substituting `a` with a type
	// that itself mentions `b` never needs any capture-avoidance.
	sigma := Substitution{names.TypeVarName("a"): tvar("b")}
	got := Substitute(sigma, NTyArrow(clserr.NoPos, []Type{tvar("a")}, tvar("b")))
	want := NTyArrow(clserr.NoPos, []Type{tvar("b")}, tvar("b"))
	if !Equivalent(got, want) {
		t.Fatalf("expected %s, got %s", String(want), String(got))
	}
}

func TestFreeVars(t *testing.T) {
	typ := NTyArrow(clserr.NoPos, []Type{tvar("a")}, tcon("pair", tvar("a"), tvar("b")))
	free := FreeVars(typ)
	if len(free) != 2 {
		t.Fatalf("expected 2 free variables, got %d", len(free))
	}
	for _, n := range []names.TypeVarName{"a", "b"} {
		if _, ok := free[n]; !ok {
			t.Errorf("expected %q to be free", n)
		}
	}
}

func TestTypeConstructors(t *testing.T) {
	typ := tcon("either", tcon("int"), tcon("list", tcon("bool")))
	cons := TypeConstructors(typ)
	for _, n := range []names.TypeConName{"either", "int", "list", "bool"} {
		if _, ok := cons[n]; !ok {
			t.Errorf("expected %q among type constructors", n)
		}
	}
}

func TestSortedTypeVarNames(t *testing.T) {
	set := map[names.TypeVarName]struct{}{"c": {}, "a": {}, "b": {}}
	got := SortedTypeVarNames(set)
	want := []names.TypeVarName{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected sorted order %v, got %v", want, got)
		}
	}
}
