package generate

import (
	"testing"

	"github.com/nguyentito/mpri13/ast/implicit"
	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/constraint"
	"github.com/nguyentito/mpri13/names"
	"github.com/nguyentito/mpri13/typeenv"
	"github.com/nguyentito/mpri13/types"
)

func TestIsValueForm(t *testing.T) {
	if !isValueForm(&implicit.Lambda{Param: "x", Body: &implicit.Var{Name: "x"}}) {
		t.Fatalf("expected a lambda to be a value form")
	}
	if isValueForm(&implicit.App{Fun: &implicit.Var{Name: "f"}, Arg: &implicit.Var{Name: "x"}}) {
		t.Fatalf("did not expect an application to be a value form")
	}
	if !isValueForm(&implicit.DataCon{Name: "Some", Args: []implicit.Expr{&implicit.Primitive{Type: intType()}}}) {
		t.Fatalf("expected a data constructor over value forms to be a value form")
	}
	if isValueForm(&implicit.DataCon{Name: "Some", Args: []implicit.Expr{
		&implicit.App{Fun: &implicit.Var{Name: "f"}, Arg: &implicit.Var{Name: "x"}},
	}}) {
		t.Fatalf("did not expect a data constructor applied to a non-value form to be a value form")
	}
}

// TestGenBindingConstraintValueRestriction covers the value restriction
// (spec.md §4.4): an implicitly-typed non-value-form binding (here, an
// application) gets no Flexible variables, so the solver cannot
// generalize it even though nothing else pins its type down.
func TestGenBindingConstraintValueRestriction(t *testing.T) {
	g := New()
	env := typeenv.New()
	def := implicit.ValueDef{
		Name: "r",
		Body: &implicit.App{Fun: &implicit.Var{Name: "f"}, Arg: &implicit.Var{Name: "x"}},
	}
	sc, err := g.genBindingConstraint(env, def)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sc.Flexible) != 0 {
		t.Fatalf("expected no flexible variables for a non-value-form binding, got %v", sc.Flexible)
	}
}

func TestGenBindingConstraintGeneralizesValueForms(t *testing.T) {
	g := New()
	env := typeenv.New()
	def := implicit.ValueDef{
		Name: "id",
		Body: &implicit.Lambda{Param: "x", Body: &implicit.Var{Name: "x"}},
	}
	sc, err := g.genBindingConstraint(env, def)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sc.Flexible) == 0 {
		t.Fatalf("expected flexible variables for a value-form binding")
	}
}

func TestGenBindingConstraintExplicitSchemeStaysRigid(t *testing.T) {
	g := New()
	env := typeenv.New()
	scheme := &types.TyScheme{
		Quantifiers: []names.TypeVarName{"a"},
		Body:        types.NTyArrow(clserr.NoPos, []types.Type{tvar("a")}, tvar("a")),
	}
	valueDef := implicit.ValueDef{
		Name:   "id",
		Scheme: scheme,
		Body:   &implicit.Lambda{Param: "x", Body: &implicit.Var{Name: "x"}},
	}
	sc, err := g.genBindingConstraint(env, valueDef)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sc.Flexible) != 0 {
		t.Fatalf("expected an explicitly-typed binding to never be generalized further, got %v", sc.Flexible)
	}
	if len(sc.Rigid) != 1 || sc.Rigid[0] != "a" {
		t.Fatalf("expected rigid quantifier a, got %v", sc.Rigid)
	}
}

func TestGenDefinitionGroupNonRecursive(t *testing.T) {
	g := New()
	env := typeenv.New()
	group := &implicit.Definition{
		Bindings: []implicit.ValueDef{
			{Name: "x", Body: &implicit.Primitive{Type: intType()}},
		},
	}
	c, err := g.GenDefinitionGroup(env, group, constraint.True{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	let, ok := c.(*constraint.Let)
	if !ok {
		t.Fatalf("expected a single *Let, got %T", c)
	}
	if len(let.Schemes) != 1 || let.Schemes[0].Name != "x" {
		t.Fatalf("unexpected schemes: %v", let.Schemes)
	}
}

// TestGenDefinitionGroupRecursive covers B4: a recursive group is
// wrapped in two nested Let layers so each binding's body can see every
// sibling (including itself) at a fixed, concrete type.
func TestGenDefinitionGroupRecursive(t *testing.T) {
	g := New()
	env := typeenv.New()
	group := &implicit.Definition{
		Rec: true,
		Bindings: []implicit.ValueDef{
			{Name: "even", Body: &implicit.Var{Name: "odd"}},
			{Name: "odd", Body: &implicit.Var{Name: "even"}},
		},
	}
	c, err := g.GenDefinitionGroup(env, group, constraint.True{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outer, ok := c.(*constraint.Let)
	if !ok {
		t.Fatalf("expected the outer layer to be a *Let, got %T", c)
	}
	inner, ok := outer.Outer.(*constraint.Let)
	if !ok {
		t.Fatalf("expected the inner layer to also be a *Let, got %T", outer.Outer)
	}
	if len(outer.Schemes) != 2 || len(inner.Schemes) != 2 {
		t.Fatalf("expected both layers to carry both bindings, got %d/%d", len(outer.Schemes), len(inner.Schemes))
	}
}
