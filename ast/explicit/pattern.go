package explicit

import (
	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/names"
	"github.com/nguyentito/mpri13/types"
)

// Pattern is the base for every pattern node, fully typed.
type Pattern interface {
	PatternName() string
	Position() clserr.Pos
	Type() types.Type
	patternNode()
}

var (
	_ Pattern = (*PWildcard)(nil)
	_ Pattern = (*PPrimitive)(nil)
	_ Pattern = (*PVar)(nil)
	_ Pattern = (*PDisjunction)(nil)
	_ Pattern = (*PConjunction)(nil)
	_ Pattern = (*PAlias)(nil)
	_ Pattern = (*PData)(nil)
)

type PWildcard struct {
	Pos      clserr.Pos
	Inferred types.Type
}

func (*PWildcard) patternNode()           {}
func (*PWildcard) PatternName() string    { return "PWildcard" }
func (p *PWildcard) Position() clserr.Pos { return p.Pos }
func (p *PWildcard) Type() types.Type     { return p.Inferred }

type PPrimitive struct {
	Pos      clserr.Pos
	Repr     string
	Inferred types.Type
}

func (*PPrimitive) patternNode()           {}
func (*PPrimitive) PatternName() string    { return "PPrimitive" }
func (p *PPrimitive) Position() clserr.Pos { return p.Pos }
func (p *PPrimitive) Type() types.Type     { return p.Inferred }

type PVar struct {
	Pos      clserr.Pos
	Name     names.ValueName
	Inferred types.Type
}

func (*PVar) patternNode()           {}
func (*PVar) PatternName() string    { return "PVar" }
func (p *PVar) Position() clserr.Pos { return p.Pos }
func (p *PVar) Type() types.Type     { return p.Inferred }

type PDisjunction struct {
	Pos          clserr.Pos
	Alternatives []Pattern
	Inferred     types.Type
}

func (*PDisjunction) patternNode()           {}
func (*PDisjunction) PatternName() string    { return "PDisjunction" }
func (p *PDisjunction) Position() clserr.Pos { return p.Pos }
func (p *PDisjunction) Type() types.Type     { return p.Inferred }

type PConjunction struct {
	Pos      clserr.Pos
	Parts    []Pattern
	Inferred types.Type
}

func (*PConjunction) patternNode()           {}
func (*PConjunction) PatternName() string    { return "PConjunction" }
func (p *PConjunction) Position() clserr.Pos { return p.Pos }
func (p *PConjunction) Type() types.Type     { return p.Inferred }

type PAlias struct {
	Pos      clserr.Pos
	Alias    names.ValueName
	Pattern  Pattern
	Inferred types.Type
}

func (*PAlias) patternNode()           {}
func (*PAlias) PatternName() string    { return "PAlias" }
func (p *PAlias) Position() clserr.Pos { return p.Pos }
func (p *PAlias) Type() types.Type     { return p.Inferred }

type PData struct {
	Pos      clserr.Pos
	Name     names.LabelName
	Args     []Pattern
	Inferred types.Type
}

func (*PData) patternNode()           {}
func (*PData) PatternName() string    { return "PData" }
func (p *PData) Position() clserr.Pos { return p.Pos }
func (p *PData) Type() types.Type     { return p.Inferred }
