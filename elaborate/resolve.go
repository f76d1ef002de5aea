package elaborate

import (
	"github.com/nguyentito/mpri13/ast/explicit"
	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/names"
	"github.com/nguyentito/mpri13/types"
)

// resolveDict builds the dictionary expression satisfying class at
// type t, given the ambient dictionaries currently in scope (spec.md
// §4.5's resolution rule):
//
//   - a rigid type variable resolves to the ambient dictionary bound to
//     exactly that variable, possibly projected down through one or
//     more superclass fields when the ambient dictionary in scope is
//     for a strict subclass of the one requested;
//   - a constructed type resolves by looking up the declared instance
//     for (class, head constructor) and recursively resolving its own
//     context against the same ambient dictionaries.
//
// Anything else raises UnresolvedOverloading.
func (el *Elaborator) resolveDict(ambient map[predicateKey]explicit.Expr, class names.TypeConName, t types.Type, pos clserr.Pos) (explicit.Expr, error) {
	switch t := t.(type) {
	case *types.TVar:
		if d, ok := ambient[predicateKey{Class: class, Variable: t.Name}]; ok {
			return d, nil
		}
		for key, expr := range ambient {
			if key.Variable != t.Name {
				continue
			}
			if el.env.IsSuperclass(class, key.Class) {
				return el.projectSuper(expr, key.Class, class, t, pos)
			}
		}
		return nil, clserr.New(clserr.UnresolvedOverloading, pos,
			"no dictionary in scope for class %q at variable %q", class, t.Name)

	case *types.TApp:
		inst, ok := el.env.LookupInstance(class, t.Con)
		if !ok {
			return nil, clserr.New(clserr.UnresolvedOverloading, pos,
				"no instance of class %q for %q", class, t.Con)
		}
		sigma := make(types.Substitution, len(inst.Params))
		for i, p := range inst.Params {
			if i < len(t.Args) {
				sigma[p] = t.Args[i]
			}
		}
		argDicts := make([]explicit.Expr, len(inst.Context))
		argDictTypes := make([]types.Type, len(inst.Context))
		for i, pred := range inst.Context {
			ct := types.Substitute(sigma, &types.TVar{Pos: pos, Name: pred.Variable})
			d, err := el.resolveDict(ambient, pred.Class, ct, pos)
			if err != nil {
				return nil, err
			}
			argDicts[i] = d
			argDictTypes[i] = &types.TApp{Pos: pos, Con: dictTypeName(pred.Class), Args: []types.Type{ct}}
		}
		finalDictType := &types.TApp{Pos: pos, Con: dictTypeName(class), Args: []types.Type{t}}
		var result explicit.Expr = &explicit.Var{
			Pos:      pos,
			Name:     dictConstructorName(class, t.Con),
			Inferred: types.NTyArrow(pos, argDictTypes, finalDictType),
		}
		for i, d := range argDicts {
			result = &explicit.App{
				Pos:      pos,
				Fun:      result,
				Arg:      d,
				Inferred: types.NTyArrow(pos, argDictTypes[i+1:], finalDictType),
			}
		}
		return result, nil

	default:
		return nil, clserr.New(clserr.UnresolvedOverloading, pos, "cannot resolve a dictionary for class %q", class)
	}
}

// projectSuper rewrites a dictionary expression known to satisfy sub at
// type t into one satisfying its (reflexive-transitive) superclass
// super, by walking the chain of "superclass_field_..." record-access
// fields along the shortest path from sub to super in the class graph.
func (el *Elaborator) projectSuper(expr explicit.Expr, sub, super names.TypeConName, t types.Type, pos clserr.Pos) (explicit.Expr, error) {
	if sub == super {
		return expr, nil
	}
	path, ok := el.findSuperPath(sub, super)
	if !ok {
		return nil, clserr.New(clserr.UnresolvedOverloading, pos, "%q is not a superclass of %q", super, sub)
	}
	result := expr
	current := sub
	for _, step := range path {
		result = &explicit.RecordAccess{
			Pos:      pos,
			Expr:     result,
			Label:    superField(current, step),
			Inferred: &types.TApp{Pos: pos, Con: dictTypeName(step), Args: []types.Type{t}},
		}
		current = step
	}
	return result, nil
}

// findSuperPath returns the sequence of classes visited after sub on
// the shortest chain of direct-superclass edges from sub to target,
// via breadth-first search over the declared class table.
func (el *Elaborator) findSuperPath(sub, target names.TypeConName) ([]names.TypeConName, bool) {
	type step struct {
		class names.TypeConName
		via    []names.TypeConName
	}
	seen := map[names.TypeConName]struct{}{sub: {}}
	queue := []step{{class: sub, via: nil}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.class == target {
			return cur.via, true
		}
		info, err := el.env.LookupClass(cur.class)
		if err != nil {
			continue
		}
		for _, super := range info.Supers {
			if _, visited := seen[super]; visited {
				continue
			}
			seen[super] = struct{}{}
			queue = append(queue, step{class: super, via: append(append([]names.TypeConName(nil), cur.via...), super)})
		}
	}
	return nil, false
}
