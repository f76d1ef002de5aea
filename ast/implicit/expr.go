// Package implicit is the Implicit variant of the program tree
// (spec.md §3): binding annotations are optional and type applications
// are inferred. It is produced by the external parser (spec.md §6) and
// consumed by the ConstraintGenerator.
//
// The closed-interface-over-pointer-structs shape mirrors the teacher's
// ast.Expr sum (ast/expressions.go): one interface, one unexported
// marker method per node, and exhaustive switches everywhere the tree
// is walked (generate, typed by clserr.NoPos when position information
// is unavailable).
package implicit

import (
	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/names"
	"github.com/nguyentito/mpri13/types"
)

// Expr is the base for every Implicit expression node.
type Expr interface {
	ExprName() string
	Position() clserr.Pos
	exprNode()
}

var (
	_ Expr = (*Var)(nil)
	_ Expr = (*Lambda)(nil)
	_ Expr = (*App)(nil)
	_ Expr = (*Ascription)(nil)
	_ Expr = (*ExistentialIntro)(nil)
	_ Expr = (*MatchExpr)(nil)
	_ Expr = (*DataCon)(nil)
	_ Expr = (*Primitive)(nil)
	_ Expr = (*RecordCon)(nil)
	_ Expr = (*RecordAccess)(nil)
)

// Var is a use of a value-namespace identifier; it may be an ordinary
// binding or an overloaded class member — the generator does not know
// which until it looks the name up in the Environment.
type Var struct {
	Pos  clserr.Pos
	Name names.ValueName
}

func (*Var) exprNode()             {}
func (*Var) ExprName() string      { return "Var" }
func (e *Var) Position() clserr.Pos { return e.Pos }

// Lambda: `λ(x : ?a). e'`. Annotation is nil when the argument's type is
// to be inferred.
type Lambda struct {
	Pos        clserr.Pos
	Param      names.ValueName
	Annotation types.Type // optional
	Body       Expr
}

func (*Lambda) exprNode()             {}
func (*Lambda) ExprName() string      { return "Lambda" }
func (e *Lambda) Position() clserr.Pos { return e.Pos }

// App is function application: `e1 e2`.
type App struct {
	Pos  clserr.Pos
	Fun  Expr
	Arg  Expr
}

func (*App) exprNode()             {}
func (*App) ExprName() string      { return "App" }
func (e *App) Position() clserr.Pos { return e.Pos }

// Ascription is an explicit type constraint: `e :: τ`.
type Ascription struct {
	Pos  clserr.Pos
	Expr Expr
	Type types.Type
}

func (*Ascription) exprNode()             {}
func (*Ascription) ExprName() string      { return "Ascription" }
func (e *Ascription) Position() clserr.Pos { return e.Pos }

// ExistentialIntro introduces fresh existentially-quantified flexible
// variables before its body is checked.
type ExistentialIntro struct {
	Pos  clserr.Pos
	Vars []names.TypeVarName
	Body Expr
}

func (*ExistentialIntro) exprNode()             {}
func (*ExistentialIntro) ExprName() string      { return "ExistentialIntro" }
func (e *ExistentialIntro) Position() clserr.Pos { return e.Pos }

// DataCon is a (possibly partial, which is rejected) application of a
// data constructor to arguments.
type DataCon struct {
	Pos  clserr.Pos
	Name names.LabelName
	Args []Expr
}

func (*DataCon) exprNode()             {}
func (*DataCon) ExprName() string      { return "DataCon" }
func (e *DataCon) Position() clserr.Pos { return e.Pos }

// Primitive is a literal of a built-in type (int, bool, ...).
type Primitive struct {
	Pos  clserr.Pos
	Type types.Type
	Repr string
}

func (*Primitive) exprNode()             {}
func (*Primitive) ExprName() string      { return "Primitive" }
func (e *Primitive) Position() clserr.Pos { return e.Pos }

// RecordCon constructs a record value. Name is the advisory, unused
// record-name token carried from source syntax (spec.md §9): type
// determination relies solely on the first field's label.
type RecordCon struct {
	Pos    clserr.Pos
	Name   names.TypeConName
	Fields []FieldBinding
}

func (*RecordCon) exprNode()             {}
func (*RecordCon) ExprName() string      { return "RecordCon" }
func (e *RecordCon) Position() clserr.Pos { return e.Pos }

// FieldBinding pairs a record label with the expression bound to it.
type FieldBinding struct {
	Label names.LabelName
	Value Expr
}

// RecordAccess selects a labeled field: `e.label`.
type RecordAccess struct {
	Pos   clserr.Pos
	Expr  Expr
	Label names.LabelName
}

func (*RecordAccess) exprNode()             {}
func (*RecordAccess) ExprName() string      { return "RecordAccess" }
func (e *RecordAccess) Position() clserr.Pos { return e.Pos }

// MatchExpr is a pattern-matching case expression.
type MatchExpr struct {
	Pos       clserr.Pos
	Scrutinee Expr
	Branches  []Branch
}

func (*MatchExpr) exprNode()             {}
func (*MatchExpr) ExprName() string      { return "MatchExpr" }
func (e *MatchExpr) Position() clserr.Pos { return e.Pos }

// Branch pairs a pattern with the expression it guards.
type Branch struct {
	Pattern Pattern
	Body    Expr
}
