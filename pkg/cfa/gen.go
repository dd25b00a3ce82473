// Copyright The Petrel Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cfa

import (
	log "github.com/sirupsen/logrus"

	"github.com/petrel-lang/petrel/pkg/ast"
)

// Generate walks a labeled term and emits the 0-CFA constraints governing
// which abstract values flow to which labels.  Builtin applications are
// assumed to be fully applied at their syntactic point of use; the then and
// else branches of an if application are assumed to be thunks.
func Generate(bmap BindingMap, term ast.Term) []Constraint {
	g := &generator{}
	// The label standing for the sample checkpoint, if it is in scope.
	g.sampleLabel, g.hasSample = bmap["sample"]
	// Collect the closure of every abstraction in the program.
	g.collectFuns(term)
	//
	g.walk(term)
	//
	log.Debugf("generated %d constraints over %d abstractions", len(g.constraints), len(g.funs))
	//
	return g.constraints
}

type generator struct {
	// Closures of every abstraction in the program.  Applications and
	// fixpoints range over these, since any abstraction may flow to them.
	funs []Fun
	// Label bound to the name "sample", when present.
	sampleLabel uint
	hasSample   bool
	// Emitted constraints.
	constraints []Constraint
}

func (g *generator) emit(c Constraint) {
	g.constraints = append(g.constraints, c)
}

// Collect the Fun value of every abstraction in a given term.
func (g *generator) collectFuns(term ast.Term) {
	switch t := term.(type) {
	case *ast.Lam:
		g.funs = append(g.funs, Fun{
			Outer: t.Attrs.Label,
			Inner: t.Body.Attr().Label,
			Param: t.Attrs.VarLabel,
		})
		//
		g.collectFuns(t.Body)
	case *ast.App:
		g.collectFuns(t.Fn)
		g.collectFuns(t.Arg)
	case *ast.Utest:
		g.collectFuns(t.Lhs)
		g.collectFuns(t.Rhs)
		g.collectFuns(t.Next)
	default:
		// Nothing else binds.
	}
}

func (g *generator) walk(term ast.Term) {
	switch t := term.(type) {
	case *ast.App:
		g.walkApp(t)
	case *ast.Var:
		// Whatever flows to the binding site flows to the occurrence.
		g.emit(Subset{t.Attrs.VarLabel, t.Attrs.Label})
	case *ast.Lam:
		g.emit(Direct{Fun{t.Attrs.Label, t.Body.Attr().Label, t.Attrs.VarLabel}, t.Attrs.Label})
		//
		g.walk(t.Body)
	case *ast.Utest:
		g.walk(t.Lhs)
		g.walk(t.Rhs)
		g.walk(t.Next)
	case *ast.Const, *ast.IfExp, *ast.Fix, *ast.Rec, *ast.Proj, *ast.Nop:
		// No flow.
	default:
		ast.Fatalf(ast.Structural, "unsupported term %s in constraint generation", ast.String(term))
	}
}

// Emit constraints for an application node.  The specific builtin shapes are
// recognised on the node's application spine, so that each case is a
// head-and-arity check; anything else is a general application.
func (g *generator) walkApp(t *ast.App) {
	var (
		head, args = ast.Spine(t)
		l          = t.Attrs.Label
	)
	//
	switch h := head.(type) {
	case *ast.Const:
		arity := h.Value.Arity()
		// Fully applied operators propagate their operands' taint to the
		// application itself.
		if arity == 2 && len(args) == 2 {
			g.emit(Subset{args[0].Attr().Label, l})
			g.emit(Subset{args[1].Attr().Label, l})
			g.walk(args[0])
			g.walk(args[1])
			//
			return
		} else if arity == 1 && len(args) == 1 {
			g.emit(Subset{args[0].Attr().Label, l})
			g.walk(args[0])
			//
			return
		}
	case *ast.IfExp:
		// The branches are thunks: their bodies flow to the if's result.
		if len(args) == 3 {
			thenT, okThen := args[1].(*ast.Lam)
			elseT, okElse := args[2].(*ast.Lam)
			//
			if okThen && okElse {
				g.emit(Subset{thenT.Body.Attr().Label, l})
				g.emit(Subset{elseT.Body.Attr().Label, l})
				g.walk(args[0])
				g.walk(thenT.Body)
				g.walk(elseT.Body)
				//
				return
			}
		}
	case *ast.Var:
		// A sample call introduces the stochastic taint.
		if g.hasSample && h.Attrs.VarLabel == g.sampleLabel && len(args) == 1 {
			g.emit(Direct{Stoch{}, l})
			g.walk(args[0])
			//
			return
		}
	case *ast.Fix:
		// The fixed function's body flows both back into its own parameter
		// and out to the application.
		if len(args) == 1 {
			p := args[0].Attr().Label
			//
			for _, fun := range g.funs {
				g.emit(Conditional{fun, p, fun.Inner, fun.Param})
				g.emit(Conditional{fun, p, fun.Inner, l})
			}
			//
			g.walk(args[0])
			//
			return
		}
	}
	// General application: any abstraction flowing to the function position
	// receives the argument and yields its body.
	var (
		p1 = t.Fn.Attr().Label
		p2 = t.Arg.Attr().Label
	)
	//
	for _, fun := range g.funs {
		g.emit(Conditional{fun, p1, p2, fun.Param})
		g.emit(Conditional{fun, p1, fun.Inner, l})
	}
	//
	g.walk(t.Fn)
	g.walk(t.Arg)
}
