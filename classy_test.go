package classy

import (
	"testing"

	"github.com/nguyentito/mpri13/ast/explicit"
	"github.com/nguyentito/mpri13/ast/implicit"
	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/constraint"
	"github.com/nguyentito/mpri13/names"
	"github.com/nguyentito/mpri13/types"
)

// fakeDeriver stands in for an external solver's deriver: it ignores
// the solution's substitution entirely and rebuilds a trivially-typed
// Explicit program, just enough shape to exercise classy.Compile's
// wiring without depending on any real unification algorithm.
type fakeDeriver struct{}

func (fakeDeriver) DeriveValueName(names.ValueName) (types.TyScheme, []types.Type) {
	return types.TyScheme{}, nil
}

func (fakeDeriver) DeriveType(pos clserr.Pos, placeholder names.TypeVarName) types.Type {
	return &types.TApp{Pos: pos, Con: "int"}
}

func (fakeDeriver) DeriveProgram(prog implicit.Program, substitution types.Substitution) (explicit.Program, error) {
	var out explicit.Program
	for _, block := range prog {
		def, ok := block.(*implicit.Definition)
		if !ok {
			continue
		}
		bindings := make([]explicit.ValueDef, len(def.Bindings))
		for i, vd := range def.Bindings {
			prim := vd.Body.(*implicit.Primitive)
			bindings[i] = explicit.ValueDef{
				Pos:    vd.Pos,
				Name:   vd.Name,
				Scheme: types.MonoScheme(prim.Type),
				Body:   &explicit.Primitive{Pos: prim.Pos, Repr: prim.Repr, Inferred: prim.Type},
			}
		}
		out = append(out, &explicit.Definition{Pos: def.Pos, Bindings: bindings, Rec: def.Rec})
	}
	return out, nil
}

type fakeSolver struct{}

func (fakeSolver) Solve(root constraint.Constraint) (constraint.Solution, error) {
	return constraint.Solution{Substitution: types.Substitution{}, Derive: fakeDeriver{}}, nil
}

func TestCompileEndToEnd(t *testing.T) {
	prog := implicit.Program{
		&implicit.Definition{
			Bindings: []implicit.ValueDef{
				{Name: "answer", Body: &implicit.Primitive{Type: &types.TApp{Con: "int"}, Repr: "42"}},
			},
		},
	}
	out, err := Compile(prog, fakeSolver{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.IsClassFree() {
		t.Fatalf("expected the compiled program to be class-free")
	}
	def, ok := out[0].(*explicit.Definition)
	if !ok {
		t.Fatalf("expected a Definition block, got %T", out[0])
	}
	if def.Bindings[0].Name != "answer" {
		t.Fatalf("unexpected binding name: %q", def.Bindings[0].Name)
	}
}

type recordingPrinter struct{ received explicit.Program }

func (p *recordingPrinter) Print(prog explicit.Program) ([]byte, error) {
	p.received = prog
	return []byte("printed"), nil
}

func TestCompileAndPrintDelegatesToPrinter(t *testing.T) {
	prog := implicit.Program{
		&implicit.Definition{
			Bindings: []implicit.ValueDef{
				{Name: "answer", Body: &implicit.Primitive{Type: &types.TApp{Con: "int"}, Repr: "42"}},
			},
		},
	}
	printer := &recordingPrinter{}
	bytes, err := CompileAndPrint(prog, fakeSolver{}, printer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(bytes) != "printed" {
		t.Fatalf("expected the printer's output to be returned verbatim, got %q", bytes)
	}
	if printer.received == nil {
		t.Fatalf("expected the printer to have received the compiled program")
	}
}
