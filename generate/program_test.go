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

func TestBindTypeDeclAlgebraic(t *testing.T) {
	td := implicit.TypeDecl{
		Name:   "option",
		Params: []names.TypeVarName{"a"},
		Algebraic: []implicit.ConstructorDecl{
			{Name: "None", Fields: nil},
			{Name: "Some", Fields: []types.Type{tvar("a")}},
		},
	}
	env, err := bindTypeDecl(typeenv.New(), td)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := env.LookupDataConstructor("Some"); err != nil {
		t.Fatalf("expected Some to be bound: %v", err)
	}
	if _, err := env.LookupDataConstructor("None"); err != nil {
		t.Fatalf("expected None to be bound: %v", err)
	}
	if _, err := env.LookupTypeKind("option"); err != nil {
		t.Fatalf("expected option to be bound as a type constructor: %v", err)
	}
}

func TestBindTypeDeclRecord(t *testing.T) {
	td := implicit.TypeDecl{
		Name:   "Point",
		Params: []names.TypeVarName{"a"},
		Record: []implicit.FieldDecl{
			{Label: "x", Type: tvar("a")},
			{Label: "y", Type: tvar("a")},
		},
	}
	env, err := bindTypeDecl(typeenv.New(), td)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	owner, err := env.LookupLabelOwner("x")
	if err != nil || owner != "Point" {
		t.Fatalf("expected x to resolve to Point, got %q, %v", owner, err)
	}
}

// TestDeclareClassRejectsRelatedSupers covers I3/B3 at the declaration
// stage: a class cannot list two superclasses where one is transitively
// a superclass of the other.
func TestDeclareClassRejectsRelatedSupers(t *testing.T) {
	g := New()
	env := typeenv.New()
	env = env.BindClass(&typeenv.ClassInfo{Name: "Eq", Param: "a"})
	env = env.BindClass(&typeenv.ClassInfo{Name: "Ord", Param: "a", Supers: []names.TypeConName{"Eq"}})

	classDef := &implicit.ClassDefinition{
		Name:   "Weird",
		Param:  "a",
		Supers: []names.TypeConName{"Eq", "Ord"},
		Members: []implicit.ClassMember{
			{Label: "weird", Type: tvar("a")},
		},
	}
	_, err := g.declareClass(env, classDef)
	if !clserr.Is(err, clserr.TheseTwoClassesMustNotBeInTheSameContext) {
		t.Fatalf("expected TheseTwoClassesMustNotBeInTheSameContext, got %v", err)
	}
}

// TestDeclareClassRejectsMemberWithoutParam covers invariant I4: a
// non-constructor class's member type must mention the class parameter.
func TestDeclareClassRejectsMemberWithoutParam(t *testing.T) {
	g := New()
	env := typeenv.New()
	classDef := &implicit.ClassDefinition{
		Name:  "Bogus",
		Param: "a",
		Members: []implicit.ClassMember{
			{Label: "constant", Type: tcon("int")},
		},
	}
	_, err := g.declareClass(env, classDef)
	if !clserr.Is(err, clserr.InvalidOverloading) {
		t.Fatalf("expected InvalidOverloading, got %v", err)
	}
}

func TestDeclareClassAllowsConstructorClassBypass(t *testing.T) {
	g := New()
	env := typeenv.New()
	classDef := &implicit.ClassDefinition{
		Name:               "Functor",
		Param:              "f",
		IsConstructorClass: true,
		Members: []implicit.ClassMember{
			{Label: "fmap", Type: tcon("int")},
		},
	}
	if _, err := g.declareClass(env, classDef); err != nil {
		t.Fatalf("expected the constructor-class bypass to allow this, got %v", err)
	}
}

func TestDeclareInstancesRejectsOverlap(t *testing.T) {
	g := New()
	env := typeenv.New()
	env = env.BindClass(&typeenv.ClassInfo{Name: "Eq", Param: "a"})

	block := &implicit.InstanceDefinitions{Instances: []implicit.InstanceDef{
		{Class: "Eq", Head: "int"},
		{Class: "Eq", Head: "int"},
	}}
	_, err := g.declareInstances(env, block)
	if !clserr.Is(err, clserr.OverlappingInstances) {
		t.Fatalf("expected OverlappingInstances, got %v", err)
	}
}

// TestGenProgramWholeFlow covers a minimal end-to-end program: a class
// declaration followed by a value binding that uses the class member,
// verifying GenProgram wraps everything in a Let chain without error.
func TestGenProgramWholeFlow(t *testing.T) {
	g := New()
	env := typeenv.New()
	prog := implicit.Program{
		&implicit.ClassDefinition{
			Name:  "Eq",
			Param: "a",
			Members: []implicit.ClassMember{
				{Label: "eq", Type: types.NTyArrow(clserr.NoPos, []types.Type{tvar("a"), tvar("a")}, tcon("bool"))},
			},
		},
		&implicit.Definition{
			Bindings: []implicit.ValueDef{
				{Name: "same", Body: &implicit.Var{Name: "eq"}},
			},
		},
	}
	root, finalEnv, err := g.GenProgram(env, prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root == nil {
		t.Fatalf("expected a non-nil root constraint")
	}
	if _, err := finalEnv.LookupClass("Eq"); err != nil {
		t.Fatalf("expected Eq to be bound in the final environment: %v", err)
	}
	if _, ok := root.(*constraint.Let); !ok {
		t.Fatalf("expected the program's root to be a *Let, got %T", root)
	}
}
