// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package classy wires the nine components of spec.md §2 into the
// two-stage pipeline of spec.md §1: constraint-based inference over an
// Implicit program, followed by dictionary-passing elaboration of the
// resulting Explicit program. A host compiler supplies the three
// external collaborators (spec.md §6) as Parser, Solver, and Printer;
// this package owns none of them.
package classy

import (
	"github.com/nguyentito/mpri13/ast/explicit"
	"github.com/nguyentito/mpri13/ast/implicit"
	"github.com/nguyentito/mpri13/clserr"
	"github.com/nguyentito/mpri13/constraint"
	"github.com/nguyentito/mpri13/elaborate"
	"github.com/nguyentito/mpri13/generate"
	"github.com/nguyentito/mpri13/ledger"
	"github.com/nguyentito/mpri13/typeenv"
)

// Parser produces an Implicit AST from source text. Out of scope for
// this module (spec.md §1); a host compiler supplies a concrete
// implementation.
type Parser interface {
	Parse(source []byte) (implicit.Program, error)
}

// Solver discharges a root constraint, returning either a substitution
// plus a deriver or a typed error (spec.md §4.3/§6). The unification
// algorithm itself is deliberately external to this module.
type Solver interface {
	Solve(root constraint.Constraint) (constraint.Solution, error)
}

// Printer renders a class-free Explicit program. Out of scope for this
// module (spec.md §1); a host compiler supplies a concrete pretty
// printer.
type Printer interface {
	Print(p explicit.Program) ([]byte, error)
}

// Compile runs the full pipeline over an already-parsed Implicit
// program (spec.md §6): constraint generation against a fresh
// Environment, solving via solver, and dictionary-passing elaboration
// of the resulting Explicit program. The returned program contains no
// ClassDefinition or InstanceDefinitions block.
func Compile(prog implicit.Program, solver Solver) (explicit.Program, error) {
	gen := generate.New()
	env := typeenv.New()

	root, declEnv, err := gen.GenProgram(env, prog)
	if err != nil {
		return nil, err
	}

	solution, err := solver.Solve(root)
	if err != nil {
		return nil, err
	}

	explicitProg, err := derive(prog, solution)
	if err != nil {
		return nil, err
	}

	el := elaborate.New(declEnv, ledger.New())
	return el.Elaborate(explicitProg)
}

// CompileAndPrint runs Compile and, on success, passes the resulting
// class-free program to printer. Printing itself is a thin pass-through
// to the supplied Printer (spec.md §6): no pretty-printer is
// implemented in this module, per spec.md's explicit non-goal.
func CompileAndPrint(prog implicit.Program, solver Solver, printer Printer) ([]byte, error) {
	out, err := Compile(prog, solver)
	if err != nil {
		return nil, err
	}
	return printer.Print(out)
}

// derive materializes the Explicit program from the Implicit one using
// the solution's Deriver (spec.md §6): the deriver fills in every type
// application and annotation the Implicit tree left as "to be
// inferred". Deriving the whole tree here (rather than per-expression
// inside generate or elaborate) keeps that responsibility where spec.md
// §6 places it — entirely on the solver's side of the contract.
func derive(prog implicit.Program, solution constraint.Solution) (explicit.Program, error) {
	if solution.Derive == nil {
		return nil, clserr.New(clserr.IncompatibleTypes, clserr.NoPos, "solver returned no deriver")
	}
	return solution.Derive.DeriveProgram(prog, solution.Substitution)
}
