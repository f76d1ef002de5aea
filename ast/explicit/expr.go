// Package explicit is the Explicit variant of the program tree
// (spec.md §3): all type annotations and type applications are present.
// It is produced by the solver's deriver (spec.md §6) from an Implicit
// program plus a solution, consumed by the Elaborator, and re-emitted
// (with classes and instances compiled away) for the external printer.
//
// Every expression node carries its own inferred Type, assigned once
// during construction and read thereafter — the same
// Type()/SetType()-on-construction idiom the teacher uses throughout
// ast/expressions.go, adapted here to the first-order Type term
// language of this spec instead of the teacher's row-polymorphic one.
package explicit

import (
	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/names"
	"github.com/nguyentito/mpri13/types"
)

// Expr is the base for every Explicit expression node.
type Expr interface {
	ExprName() string
	Position() clserr.Pos
	Type() types.Type
	exprNode()
}

var (
	_ Expr = (*Var)(nil)
	_ Expr = (*Lambda)(nil)
	_ Expr = (*App)(nil)
	_ Expr = (*MatchExpr)(nil)
	_ Expr = (*DataCon)(nil)
	_ Expr = (*Primitive)(nil)
	_ Expr = (*RecordCon)(nil)
	_ Expr = (*RecordAccess)(nil)
	_ Expr = (*DictAbs)(nil)
	_ Expr = (*DictApp)(nil)
)

// Var is a use of a value-namespace identifier with an explicit list of
// type applications, one per quantifier of the name's scheme: `x @ [τ1...τm]`.
type Var struct {
	Pos      clserr.Pos
	Name     names.ValueName
	TypeArgs []types.Type
	Inferred types.Type
}

func (*Var) exprNode()              {}
func (*Var) ExprName() string       { return "Var" }
func (e *Var) Position() clserr.Pos { return e.Pos }
func (e *Var) Type() types.Type     { return e.Inferred }

// Lambda: `λ(x : τ). e'`, with a mandatory parameter annotation.
type Lambda struct {
	Pos        clserr.Pos
	Param      names.ValueName
	Annotation types.Type
	Body       Expr
	Inferred   types.Type
}

func (*Lambda) exprNode()              {}
func (*Lambda) ExprName() string       { return "Lambda" }
func (e *Lambda) Position() clserr.Pos { return e.Pos }
func (e *Lambda) Type() types.Type     { return e.Inferred }

// App is function application: `e1 e2`.
type App struct {
	Pos      clserr.Pos
	Fun      Expr
	Arg      Expr
	Inferred types.Type
}

func (*App) exprNode()              {}
func (*App) ExprName() string       { return "App" }
func (e *App) Position() clserr.Pos { return e.Pos }
func (e *App) Type() types.Type     { return e.Inferred }

// DataCon is a fully-applied data constructor use.
type DataCon struct {
	Pos      clserr.Pos
	Name     names.LabelName
	Args     []Expr
	Inferred types.Type
}

func (*DataCon) exprNode()              {}
func (*DataCon) ExprName() string       { return "DataCon" }
func (e *DataCon) Position() clserr.Pos { return e.Pos }
func (e *DataCon) Type() types.Type     { return e.Inferred }

// Primitive is a literal of a built-in type.
type Primitive struct {
	Pos      clserr.Pos
	Repr     string
	Inferred types.Type
}

func (*Primitive) exprNode()              {}
func (*Primitive) ExprName() string       { return "Primitive" }
func (e *Primitive) Position() clserr.Pos { return e.Pos }
func (e *Primitive) Type() types.Type     { return e.Inferred }

// RecordCon constructs a record value. Name is the advisory, unused
// record-name token preserved verbatim from source syntax (spec.md §9).
type RecordCon struct {
	Pos      clserr.Pos
	Name     names.TypeConName
	Fields   []FieldBinding
	Inferred types.Type
}

func (*RecordCon) exprNode()              {}
func (*RecordCon) ExprName() string       { return "RecordCon" }
func (e *RecordCon) Position() clserr.Pos { return e.Pos }
func (e *RecordCon) Type() types.Type     { return e.Inferred }

// FieldBinding pairs a record label with the expression bound to it.
type FieldBinding struct {
	Label names.LabelName
	Value Expr
}

// RecordAccess selects a labeled field: `e.label`.
type RecordAccess struct {
	Pos      clserr.Pos
	Expr     Expr
	Label    names.LabelName
	Inferred types.Type
}

func (*RecordAccess) exprNode()              {}
func (*RecordAccess) ExprName() string       { return "RecordAccess" }
func (e *RecordAccess) Position() clserr.Pos { return e.Pos }
func (e *RecordAccess) Type() types.Type     { return e.Inferred }

// MatchExpr is a pattern-matching case expression.
type MatchExpr struct {
	Pos       clserr.Pos
	Scrutinee Expr
	Branches  []Branch
	Inferred  types.Type
}

func (*MatchExpr) exprNode()              {}
func (*MatchExpr) ExprName() string       { return "MatchExpr" }
func (e *MatchExpr) Position() clserr.Pos { return e.Pos }
func (e *MatchExpr) Type() types.Type     { return e.Inferred }

// Branch pairs a pattern with the expression it guards.
type Branch struct {
	Pattern Pattern
	Body    Expr
}

// DictAbs is a dictionary abstraction introduced by elaboration:
// `λ(d : class_type_<k>(α)). e'`, i.e. a Lambda whose parameter stands
// for a class dictionary rather than a user-level value. It is kept
// distinct from Lambda so the printer/back-end can, if it chooses,
// render dictionary parameters differently without the elaborator
// needing to thread that decision back through ordinary Lambda.
type DictAbs struct {
	Pos      clserr.Pos
	Param    names.ValueName
	DictType types.Type
	Body     Expr
	Inferred types.Type
}

func (*DictAbs) exprNode()              {}
func (*DictAbs) ExprName() string       { return "DictAbs" }
func (e *DictAbs) Position() clserr.Pos { return e.Pos }
func (e *DictAbs) Type() types.Type     { return e.Inferred }

// DictApp applies an overloaded symbol's elaborated accessor to the
// dictionary arguments resolved for its class predicates, in predicate
// order: `(eq d) x y` elaborates to DictApp{Fun: Var{eq}, Dicts: [d]}
// before ordinary App nodes apply the remaining value arguments.
type DictApp struct {
	Pos      clserr.Pos
	Fun      Expr
	Dicts    []Expr
	Inferred types.Type
}

func (*DictApp) exprNode()              {}
func (*DictApp) ExprName() string       { return "DictApp" }
func (e *DictApp) Position() clserr.Pos { return e.Pos }
func (e *DictApp) Type() types.Type     { return e.Inferred }
