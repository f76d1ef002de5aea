package implicit

import (
	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/names"
	"github.com/nguyentito/mpri13/types"
)

// Pattern is the base for every pattern node (spec.md §4.4 "Pattern
// fragments").
type Pattern interface {
	PatternName() string
	Position() clserr.Pos
	patternNode()
}

var (
	_ Pattern = (*PWildcard)(nil)
	_ Pattern = (*PPrimitive)(nil)
	_ Pattern = (*PVar)(nil)
	_ Pattern = (*PDisjunction)(nil)
	_ Pattern = (*PConjunction)(nil)
	_ Pattern = (*PAlias)(nil)
	_ Pattern = (*PTyped)(nil)
	_ Pattern = (*PData)(nil)
)

// PWildcard matches anything, binding nothing: `_`.
type PWildcard struct{ Pos clserr.Pos }

func (*PWildcard) patternNode()              {}
func (*PWildcard) PatternName() string       { return "PWildcard" }
func (p *PWildcard) Position() clserr.Pos    { return p.Pos }

// PPrimitive matches a literal value exactly.
type PPrimitive struct {
	Pos  clserr.Pos
	Type types.Type
	Repr string
}

func (*PPrimitive) patternNode()           {}
func (*PPrimitive) PatternName() string    { return "PPrimitive" }
func (p *PPrimitive) Position() clserr.Pos { return p.Pos }

// PVar binds the scrutinee to a fresh name.
type PVar struct {
	Pos  clserr.Pos
	Name names.ValueName
}

func (*PVar) patternNode()           {}
func (*PVar) PatternName() string    { return "PVar" }
func (p *PVar) Position() clserr.Pos { return p.Pos }

// PDisjunction is an or-pattern: `p1 | p2 | ...`. Every alternative must
// bind the same variable names at the same types (invariant I6).
type PDisjunction struct {
	Pos          clserr.Pos
	Alternatives []Pattern
}

func (*PDisjunction) patternNode()           {}
func (*PDisjunction) PatternName() string    { return "PDisjunction" }
func (p *PDisjunction) Position() clserr.Pos { return p.Pos }

// PConjunction is a tuple/and-pattern combining independent
// sub-patterns whose binding sets must be pairwise disjoint (else
// NonLinearPattern, invariant I6).
type PConjunction struct {
	Pos   clserr.Pos
	Parts []Pattern
}

func (*PConjunction) patternNode()           {}
func (*PConjunction) PatternName() string    { return "PConjunction" }
func (p *PConjunction) Position() clserr.Pos { return p.Pos }

// PAlias binds a name to the whole value matched by a sub-pattern:
// `x @ p`.
type PAlias struct {
	Pos     clserr.Pos
	Alias   names.ValueName
	Pattern Pattern
}

func (*PAlias) patternNode()           {}
func (*PAlias) PatternName() string    { return "PAlias" }
func (p *PAlias) Position() clserr.Pos { return p.Pos }

// PTyped adds an explicit type equality constraint to a sub-pattern:
// `(p : τ)`.
type PTyped struct {
	Pos     clserr.Pos
	Pattern Pattern
	Type    types.Type
}

func (*PTyped) patternNode()           {}
func (*PTyped) PatternName() string    { return "PTyped" }
func (p *PTyped) Position() clserr.Pos { return p.Pos }

// PData matches a data constructor applied to argument patterns.
type PData struct {
	Pos  clserr.Pos
	Name names.LabelName
	Args []Pattern
}

func (*PData) patternNode()           {}
func (*PData) PatternName() string    { return "PData" }
func (p *PData) Position() clserr.Pos { return p.Pos }
