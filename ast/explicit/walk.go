package explicit

// WalkExpr visits every sub-expression of e in pre-order. It is
// grounded directly on the teacher's ast/walk.go: a closed switch over
// the expression sum, visiting the node itself before descending into
// its children.
func WalkExpr(e Expr, f func(Expr)) {
	switch e := e.(type) {
	case *Var, *Primitive:
		f(e)

	case *App:
		f(e)
		WalkExpr(e.Fun, f)
		WalkExpr(e.Arg, f)

	case *Lambda:
		f(e)
		WalkExpr(e.Body, f)

	case *DataCon:
		f(e)
		for _, a := range e.Args {
			WalkExpr(a, f)
		}

	case *RecordCon:
		f(e)
		for _, field := range e.Fields {
			WalkExpr(field.Value, f)
		}

	case *RecordAccess:
		f(e)
		WalkExpr(e.Expr, f)

	case *MatchExpr:
		f(e)
		WalkExpr(e.Scrutinee, f)
		for _, br := range e.Branches {
			WalkExpr(br.Body, f)
		}

	case *DictAbs:
		f(e)
		WalkExpr(e.Body, f)

	case *DictApp:
		f(e)
		WalkExpr(e.Fun, f)
		for _, d := range e.Dicts {
			WalkExpr(d, f)
		}

	case nil:

	default:
		panic("unknown expression type: " + e.ExprName())
	}
}

// MapExpr applies f to every sub-expression of e, bottom-up, rebuilding
// the tree with the (possibly rewritten) results. This is the
// structural-recursion workhorse used by the Elaborator to rewrite
// every overloaded Var occurrence into a DictApp (spec.md §4.5),
// generalized from the teacher's ast/copy.go deep-copy walker into a
// transforming walker.
func MapExpr(e Expr, f func(Expr) Expr) Expr {
	if e == nil {
		return f(e)
	}
	switch e := e.(type) {
	case *Var, *Primitive:
		return f(e)

	case *App:
		return f(&App{Pos: e.Pos, Fun: MapExpr(e.Fun, f), Arg: MapExpr(e.Arg, f), Inferred: e.Inferred})

	case *Lambda:
		return f(&Lambda{Pos: e.Pos, Param: e.Param, Annotation: e.Annotation, Body: MapExpr(e.Body, f), Inferred: e.Inferred})

	case *DataCon:
		args := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = MapExpr(a, f)
		}
		return f(&DataCon{Pos: e.Pos, Name: e.Name, Args: args, Inferred: e.Inferred})

	case *RecordCon:
		fields := make([]FieldBinding, len(e.Fields))
		for i, field := range e.Fields {
			fields[i] = FieldBinding{Label: field.Label, Value: MapExpr(field.Value, f)}
		}
		return f(&RecordCon{Pos: e.Pos, Name: e.Name, Fields: fields, Inferred: e.Inferred})

	case *RecordAccess:
		return f(&RecordAccess{Pos: e.Pos, Expr: MapExpr(e.Expr, f), Label: e.Label, Inferred: e.Inferred})

	case *MatchExpr:
		branches := make([]Branch, len(e.Branches))
		for i, br := range e.Branches {
			branches[i] = Branch{Pattern: br.Pattern, Body: MapExpr(br.Body, f)}
		}
		return f(&MatchExpr{Pos: e.Pos, Scrutinee: MapExpr(e.Scrutinee, f), Branches: branches, Inferred: e.Inferred})

	case *DictAbs:
		return f(&DictAbs{Pos: e.Pos, Param: e.Param, DictType: e.DictType, Body: MapExpr(e.Body, f), Inferred: e.Inferred})

	case *DictApp:
		dicts := make([]Expr, len(e.Dicts))
		for i, d := range e.Dicts {
			dicts[i] = MapExpr(d, f)
		}
		return f(&DictApp{Pos: e.Pos, Fun: MapExpr(e.Fun, f), Dicts: dicts, Inferred: e.Inferred})

	default:
		panic("unknown expression type: " + e.ExprName())
	}
}
