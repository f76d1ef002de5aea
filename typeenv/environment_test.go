package typeenv

import (
	"testing"

	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/kinds"
	"github.com/nguyentito/mpri13/names"
	"github.com/nguyentito/mpri13/types"
)

func TestBindSimpleAndLookup(t *testing.T) {
	env := New()
	env = env.BindSimple("x", &types.TApp{Con: "int"})

	scheme, err := env.Lookup("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !scheme.IsMono() {
		t.Fatalf("expected BindSimple to produce a monoscheme")
	}
}

func TestLookupUnbound(t *testing.T) {
	env := New()
	if _, err := env.Lookup("nope"); !clserr.Is(err, clserr.UnboundIdentifier) {
		t.Fatalf("expected UnboundIdentifier, got %v", err)
	}
}

func TestEnvironmentIsImmutable(t *testing.T) {
	base := New()
	extended := base.BindSimple("x", &types.TApp{Con: "int"})

	if _, err := base.Lookup("x"); !clserr.Is(err, clserr.UnboundIdentifier) {
		t.Fatalf("expected the base environment to remain unaffected by extending a copy")
	}
	if _, err := extended.Lookup("x"); err != nil {
		t.Fatalf("expected the extended environment to see its own binding: %v", err)
	}
}

func TestBindInstanceRejectsOverlap(t *testing.T) {
	env := New()
	info := &InstanceInfo{Class: "Eq", Head: "int"}
	env, err := env.BindInstance(info)
	if err != nil {
		t.Fatalf("unexpected error on first bind: %v", err)
	}
	if _, err := env.BindInstance(info); !clserr.Is(err, clserr.OverlappingInstances) {
		t.Fatalf("expected OverlappingInstances on the second bind, got %v", err)
	}
}

func TestLookupInstance(t *testing.T) {
	env := New()
	info := &InstanceInfo{Class: "Eq", Head: "int"}
	env, _ = env.BindInstance(info)

	got, ok := env.LookupInstance("Eq", "int")
	if !ok {
		t.Fatalf("expected to find the bound instance")
	}
	if got.Head != "int" {
		t.Fatalf("unexpected instance: %+v", got)
	}
	if _, ok := env.LookupInstance("Eq", "bool"); ok {
		t.Fatalf("did not expect an instance for a different head")
	}
}

// TestIsSuperclass covers P4/S2/S3: Ord extends Eq.
func TestIsSuperclass(t *testing.T) {
	env := New()
	env = env.BindClass(&ClassInfo{Name: "Eq", Param: "a"})
	env = env.BindClass(&ClassInfo{Name: "Ord", Param: "a", Supers: []names.TypeConName{"Eq"}})

	if !env.IsSuperclass("Eq", "Ord") {
		t.Fatalf("expected Eq to be a superclass of Ord")
	}
	if env.IsSuperclass("Ord", "Eq") {
		t.Fatalf("did not expect Ord to be a superclass of Eq")
	}
	if !env.IsSuperclass("Eq", "Eq") {
		t.Fatalf("expected is_superclass to be reflexive")
	}
}

// TestCheckCorrectContextRejectsRelatedClasses covers B3: {Eq a, Ord a}
// where Ord extends Eq is not canonical (invariant I3).
func TestCheckCorrectContextRejectsRelatedClasses(t *testing.T) {
	env := New()
	env = env.BindClass(&ClassInfo{Name: "Eq", Param: "a"})
	env = env.BindClass(&ClassInfo{Name: "Ord", Param: "a", Supers: []names.TypeConName{"Eq"}})

	ctx := []types.ClassPredicate{{Class: "Eq", Variable: "a"}, {Class: "Ord", Variable: "a"}}
	err := env.CheckCorrectContext([]names.TypeVarName{"a"}, ctx)
	if !clserr.Is(err, clserr.TheseTwoClassesMustNotBeInTheSameContext) {
		t.Fatalf("expected TheseTwoClassesMustNotBeInTheSameContext, got %v", err)
	}
}

func TestCheckCorrectContextAcceptsUnrelatedClasses(t *testing.T) {
	env := New()
	env = env.BindClass(&ClassInfo{Name: "Eq", Param: "a"})
	env = env.BindClass(&ClassInfo{Name: "Show", Param: "a"})

	ctx := []types.ClassPredicate{{Class: "Eq", Variable: "a"}, {Class: "Show", Variable: "a"}}
	if err := env.CheckCorrectContext([]names.TypeVarName{"a"}, ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckCorrectContextRejectsUnquantifiedVariable(t *testing.T) {
	env := New()
	env = env.BindClass(&ClassInfo{Name: "Eq", Param: "a"})
	ctx := []types.ClassPredicate{{Class: "Eq", Variable: "b"}}
	err := env.CheckCorrectContext(nil, ctx)
	if !clserr.Is(err, clserr.UnboundTypeVariable) {
		t.Fatalf("expected UnboundTypeVariable, got %v", err)
	}
}

func TestCheckWfType(t *testing.T) {
	env := New()
	env = env.BindType("list", kinds.OfArity(1), nil)
	env = env.BindType("int", kinds.Star{}, nil)

	listInt := &types.TApp{Con: "list", Args: []types.Type{&types.TApp{Con: "int"}}}
	if err := env.CheckWfType(listInt, kinds.Star{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tooManyArgs := &types.TApp{Con: "int", Args: []types.Type{&types.TApp{Con: "int"}}}
	if err := env.CheckWfType(tooManyArgs, kinds.Star{}); !clserr.Is(err, clserr.IllKindedType) {
		t.Fatalf("expected IllKindedType, got %v", err)
	}
}

func TestBindRecordTypeIndexesLabels(t *testing.T) {
	env := New()
	fieldTypes := map[names.LabelName]types.Type{"eq": &types.TApp{Con: "bool"}}
	env = env.BindRecordType("Eq_Dict", []names.TypeVarName{"a"}, []names.LabelName{"eq"}, fieldTypes)

	owner, err := env.LookupLabelOwner("eq")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner != "Eq_Dict" {
		t.Fatalf("expected owner Eq_Dict, got %q", owner)
	}

	decl, err := env.LookupRecordDecl(owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decl.Fields) != 1 || decl.Fields[0] != "eq" {
		t.Fatalf("unexpected record decl: %+v", decl)
	}
}
