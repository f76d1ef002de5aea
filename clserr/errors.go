// Package clserr defines the structured, positioned errors raised by the
// typing pipeline. There is no recovery: the first error raised by any
// stage aborts the run and crosses stage boundaries unchanged.
package clserr

import "fmt"

// Pos is a source position. Line and Column are 1-based; a Pos with
// Line == 0 is NoPos, the sentinel used when no syntactic position is
// available (for example inside generated dictionary bindings).
type Pos struct {
	Line   int
	Column int
}

// NoPos is the `undefined_position` sentinel from spec.md §7.
var NoPos = Pos{}

func (p Pos) IsValid() bool { return p.Line != 0 }

func (p Pos) String() string {
	if !p.IsValid() {
		return "<no position>"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Kind is the closed taxonomy of error kinds from spec.md §7.
type Kind int

const (
	UnboundIdentifier Kind = iota
	UnboundTypeVariable
	UnboundClass
	UnboundLabel
	IllKindedType
	IncompatibleKinds
	IncompatibleTypes
	ApplicationToNonFunctional
	RecordExpected
	LabelDoesNotBelong
	MultipleLabels
	InvalidRecordInstantiation
	InvalidDataConstructorApplication
	PartialDataConstructorApplication
	NotEnoughPatternArgts
	InvalidDisjunctionPattern
	NonLinearPattern
	PatternsMustBindSameVariables
	OnlyLetsCanIntroduceTypeAbstraction
	InvalidNumberOfTypeAbstraction
	SameNameInTypeAbstractionAndScheme
	ValueRestriction
	InvalidOverloading
	OverloadedSymbolCannotBeBound
	TheseTwoClassesMustNotBeInTheSameContext
	UnresolvedOverloading
	OverlappingInstances
)

var kindNames = [...]string{
	"UnboundIdentifier",
	"UnboundTypeVariable",
	"UnboundClass",
	"UnboundLabel",
	"IllKindedType",
	"IncompatibleKinds",
	"IncompatibleTypes",
	"ApplicationToNonFunctional",
	"RecordExpected",
	"LabelDoesNotBelong",
	"MultipleLabels",
	"InvalidRecordInstantiation",
	"InvalidDataConstructorApplication",
	"PartialDataConstructorApplication",
	"NotEnoughPatternArgts",
	"InvalidDisjunctionPattern",
	"NonLinearPattern",
	"PatternsMustBindSameVariables",
	"OnlyLetsCanIntroduceTypeAbstraction",
	"InvalidNumberOfTypeAbstraction",
	"SameNameInTypeAbstractionAndScheme",
	"ValueRestriction",
	"InvalidOverloading",
	"OverloadedSymbolCannotBeBound",
	"TheseTwoClassesMustNotBeInTheSameContext",
	"UnresolvedOverloading",
	"OverlappingInstances",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "UnknownError"
	}
	return kindNames[k]
}

// Error is the single error type raised by every stage of the pipeline.
type Error struct {
	Kind    Kind
	Pos     Pos
	Message string
	Cause   error
}

// New builds a positioned error with a formatted message.
func New(kind Kind, pos Pos, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a positioned error which carries an underlying cause.
func Wrap(kind Kind, pos Pos, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	ce, ok := err.(*Error)
	return ok && ce.Kind == kind
}
