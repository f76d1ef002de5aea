// Package ledger implements the NamespaceLedger of spec.md §4.6: a
// process-scoped, monotone registry of which value names are overloaded
// (class members) vs ordinary, consulted by the Elaborator to reject
// illegal rebindings. Entries may be added but never changed in mode
// (spec.md §3's Lifecycles): once a name is recorded as normal or
// overloaded, it stays that way for the remainder of the run.
package ledger

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/names"
)

// Mode is whether a value name is bound as an ordinary identifier or as
// a class member.
type Mode int

const (
	Normal Mode = iota
	Overloaded
)

// Ledger is the process-scoped registry. It is owned by the elaboration
// driver and reset per compilation run (spec.md §9), so unlike
// Environment it is mutated in place rather than threaded as an
// immutable value.
type Ledger struct {
	modes map[names.ValueName]Mode
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{modes: make(map[names.ValueName]Mode)}
}

// BindScheme records x's mode given whether its scheme carries any
// class predicates, rejecting a use that contradicts an earlier
// recording of the same name (invariant I5 / spec.md §4.6).
func (l *Ledger) BindScheme(x names.ValueName, hasPredicates bool) error {
	want := Normal
	if hasPredicates {
		want = Overloaded
	}
	if existing, seen := l.modes[x]; seen && existing != want {
		return clserr.New(clserr.OverloadedSymbolCannotBeBound, clserr.NoPos,
			"%q is used both as an overloaded class member and as an ordinary binding", x)
	}
	l.modes[x] = want
	return nil
}

// BindSimple always asserts Normal mode (spec.md §4.6).
func (l *Ledger) BindSimple(x names.ValueName) error {
	return l.BindScheme(x, false)
}

// Lookup returns the recorded mode for x, if any.
func (l *Ledger) Lookup(x names.ValueName) (Mode, bool) {
	m, ok := l.modes[x]
	return m, ok
}

// Overloaded returns every name currently recorded as overloaded,
// sorted for deterministic diagnostics. Sorting a map's keys before
// reporting them follows the same convention as types.SortedTypeVarNames:
// Go map iteration order is randomized, and diagnostics/golden-file
// tests need stable output.
func (l *Ledger) Overloaded() []names.ValueName {
	out := make([]names.ValueName, 0, len(l.modes))
	for n, m := range l.modes {
		if m == Overloaded {
			out = append(out, n)
		}
	}
	slices.SortFunc(out, func(a, b names.ValueName) bool { return a < b })
	return out
}

// Names returns every name recorded in the ledger, regardless of mode,
// sorted for deterministic diagnostics.
func (l *Ledger) Names() []names.ValueName {
	out := maps.Keys(l.modes)
	slices.SortFunc(out, func(a, b names.ValueName) bool { return a < b })
	return out
}

// Reset clears the ledger, matching spec.md §9's "Reset per compilation
// run" guidance for this process-scoped state.
func (l *Ledger) Reset() {
	l.modes = make(map[names.ValueName]Mode)
}
