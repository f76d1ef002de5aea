// Package types implements the first-order type-term language, type
// schemes, class predicates, substitution, and α-equivalence of
// spec.md §3/§4.1. Unlike the teacher's higher-order, row-polymorphic
// type system (records, variants, scoped labels, mutable type
// variables linked in place by a solver), this system is deliberately
// first-order: a type is either a variable or a saturated application
// of a type constructor to a (possibly empty) list of argument types.
// There is no in-place unification mutation here — that belongs to the
// external solver (spec.md §6); this package only ever builds, walks,
// and substitutes into immutable term trees.
package types

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/names"
)

// Type is the base interface for first-order type terms.
type Type interface {
	TypeName() string
	Position() clserr.Pos
}

// TVar is a reference to a type variable.
type TVar struct {
	Pos  clserr.Pos
	Name names.TypeVarName
}

func (t *TVar) TypeName() string     { return "TVar" }
func (t *TVar) Position() clserr.Pos { return t.Pos }

// TApp applies a type constructor to a (possibly empty) list of
// argument types. The built-in arrow type is TApp(pos, "->", [in, out]).
type TApp struct {
	Pos  clserr.Pos
	Con  names.TypeConName
	Args []Type
}

func (t *TApp) TypeName() string     { return "TApp" }
func (t *TApp) Position() clserr.Pos { return t.Pos }

// NTyArrow folds a list of input types into nested arrows ending in
// result: ntyarrow([a, b], c) = a -> (b -> c).
func NTyArrow(pos clserr.Pos, inputs []Type, result Type) Type {
	t := result
	for i := len(inputs) - 1; i >= 0; i-- {
		t = &TApp{Pos: pos, Con: names.Arrow, Args: []Type{inputs[i], t}}
	}
	return t
}

// DestructTyArrow splits `a -> b` into (a, b, true); it returns
// (nil, nil, false) if t is not an arrow type.
func DestructTyArrow(t Type) (arg, res Type, ok bool) {
	app, isApp := t.(*TApp)
	if !isApp || app.Con != names.Arrow || len(app.Args) != 2 {
		return nil, nil, false
	}
	return app.Args[0], app.Args[1], true
}

// DestructNTyArrow is the left inverse of NTyArrow: it collects every
// leading input arrow, returning the list of input types and the final
// (non-arrow, or unconsumed) result type.
func DestructNTyArrow(t Type) (inputs []Type, result Type) {
	for {
		arg, res, ok := DestructTyArrow(t)
		if !ok {
			return inputs, t
		}
		inputs = append(inputs, arg)
		t = res
	}
}

// Equivalent reports α-equivalence between two types: equal up to
// consistent renaming of type variables, ignoring positions.
func Equivalent(t1, t2 Type) bool {
	return equivalent(t1, t2, map[names.TypeVarName]names.TypeVarName{}, map[names.TypeVarName]names.TypeVarName{})
}

func equivalent(t1, t2 Type, fwd, bwd map[names.TypeVarName]names.TypeVarName) bool {
	switch a := t1.(type) {
	case *TVar:
		b, ok := t2.(*TVar)
		if !ok {
			return false
		}
		if mapped, seen := fwd[a.Name]; seen {
			return mapped == b.Name
		}
		if mapped, seen := bwd[b.Name]; seen {
			return mapped == a.Name
		}
		fwd[a.Name] = b.Name
		bwd[b.Name] = a.Name
		return true
	case *TApp:
		b, ok := t2.(*TApp)
		if !ok || a.Con != b.Con || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !equivalent(a.Args[i], b.Args[i], fwd, bwd) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Substitution maps type-variable names to replacement types.
type Substitution map[names.TypeVarName]Type

// Substitute applies σ to t. Substitution is capture-unaware: types are
// first-order terms with no binders inside them, so there is nothing to
// avoid capturing (spec.md §4.1).
func Substitute(sigma Substitution, t Type) Type {
	switch t := t.(type) {
	case *TVar:
		if repl, ok := sigma[t.Name]; ok {
			return repl
		}
		return t
	case *TApp:
		if len(t.Args) == 0 {
			return t
		}
		args := make([]Type, len(t.Args))
		changed := false
		for i, a := range t.Args {
			args[i] = Substitute(sigma, a)
			if args[i] != a {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return &TApp{Pos: t.Pos, Con: t.Con, Args: args}
	default:
		return t
	}
}

// FreeVars returns the set of TypeVarName occurring at a leaf of t.
func FreeVars(t Type) map[names.TypeVarName]struct{} {
	out := map[names.TypeVarName]struct{}{}
	freeVars(t, out)
	return out
}

func freeVars(t Type, out map[names.TypeVarName]struct{}) {
	switch t := t.(type) {
	case *TVar:
		out[t.Name] = struct{}{}
	case *TApp:
		for _, a := range t.Args {
			freeVars(a, out)
		}
	}
}

// TypeConstructors returns the set of TypeConName occurring at any
// non-leaf node of t.
func TypeConstructors(t Type) map[names.TypeConName]struct{} {
	out := map[names.TypeConName]struct{}{}
	typeConstructors(t, out)
	return out
}

func typeConstructors(t Type, out map[names.TypeConName]struct{}) {
	switch t := t.(type) {
	case *TApp:
		out[t.Con] = struct{}{}
		for _, a := range t.Args {
			typeConstructors(a, out)
		}
	}
}

// SortedTypeVarNames returns names sorted for deterministic output,
// following the teacher's convention of sorting identifier sets before
// printing (types/printing.go) rather than relying on Go's randomized
// map order.
func SortedTypeVarNames(set map[names.TypeVarName]struct{}) []names.TypeVarName {
	out := maps.Keys(set)
	slices.SortFunc(out, func(a, b names.TypeVarName) bool { return a < b })
	return out
}

// String renders t for diagnostics.
func String(t Type) string {
	switch t := t.(type) {
	case *TVar:
		return string(t.Name)
	case *TApp:
		if t.Con == names.Arrow && len(t.Args) == 2 {
			return fmt.Sprintf("(%s -> %s)", String(t.Args[0]), String(t.Args[1]))
		}
		if len(t.Args) == 0 {
			return string(t.Con)
		}
		s := string(t.Con)
		for _, a := range t.Args {
			s += " " + String(a)
		}
		return s
	default:
		return "?"
	}
}
