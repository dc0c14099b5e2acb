// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ppwalk performs the single pre-order traversal that ties the
// macro environment, the expander, and the expression evaluator together:
// it mutates the environment on #define/#undef, expands Text nodes,
// resolves Conditional nodes to their selected branch, and removes
// directives unless a preservation policy says to keep them.
package ppwalk

import (
	"fmt"

	"github.com/06wj/glsl-parser/ppast"
	"github.com/06wj/glsl-parser/ppenv"
	"github.com/06wj/glsl-parser/ppeval"
	"github.com/06wj/glsl-parser/ppexpand"
)

// Policy decides, per node, whether a directive should be kept in the
// output tree after its environment/selection effect has been applied.
// path is the chain of ancestor nodes from the Program root down to (but
// not including) node, outermost first; most policies ignore it.
type Policy func(node ppast.Node, path []ppast.Node) bool

// Options configures one preprocessAst call.
type Options struct {
	// Defines seeds the environment with object-like macros before the
	// walk begins.
	Defines map[string]string

	// Preserve decides whether a directive survives in the output. A nil
	// Preserve removes every directive it applies to.
	Preserve Policy

	// StopOnError fails the walk with the message of the first #error
	// directive encountered, instead of silently dropping it.
	StopOnError bool

	// GrammarSource is a diagnostic label for syntax errors; it is a
	// parser-collaborator concern and unused by the walker itself, but
	// threaded through so callers can report it alongside walk errors.
	GrammarSource string
}

func keep(opts Options, node ppast.Node, path []ppast.Node) bool {
	if opts.Preserve == nil {
		return false
	}
	return opts.Preserve(node, path)
}

// PreprocessAST mutates prog in place: it updates the macro environment on
// #define/#undef, resolves each Conditional to its selected branch,
// macro-expands every Text node, and removes directives that are not
// preserved. It returns prog.
func PreprocessAST(prog *ppast.Program, opts Options) (*ppast.Program, error) {
	env := ppenv.New()
	for name, body := range opts.Defines {
		env.Define(ppenv.Macro{Name: name, Body: body})
	}

	nodes, err := walkNodes(prog.Nodes, nil, env, opts)
	if err != nil {
		return nil, err
	}
	prog.Nodes = nodes
	return prog, nil
}

// walkNodes visits a sequence of sibling nodes in order, threading the
// single shared environment through, and returns the sequence that should
// replace it in the parent (directives removed, conditionals resolved to
// their selected body, text expanded).
func walkNodes(nodes []ppast.Node, path []ppast.Node, env *ppenv.Environment, opts Options) ([]ppast.Node, error) {
	var out []ppast.Node
	for _, n := range nodes {
		replacement, err := walkNode(n, path, env, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, replacement...)
	}
	return out, nil
}

// walkNode visits one node and returns the (possibly empty, possibly
// multi-element) sequence of nodes that should take its place.
func walkNode(n ppast.Node, path []ppast.Node, env *ppenv.Environment, opts Options) ([]ppast.Node, error) {
	switch n := n.(type) {
	case *ppast.Define:
		env.Define(ppenv.Macro{Name: n.Name, Body: n.Body})
		if keep(opts, n, path) {
			return []ppast.Node{n}, nil
		}
		return nil, nil

	case *ppast.DefineArguments:
		env.Define(ppenv.Macro{Name: n.Name, Body: n.Body, Params: n.Params, IsFunction: true})
		if keep(opts, n, path) {
			return []ppast.Node{n}, nil
		}
		return nil, nil

	case *ppast.Undef:
		env.Undef(n.Name)
		if keep(opts, n, path) {
			return []ppast.Node{n}, nil
		}
		return nil, nil

	case *ppast.Text:
		expanded, err := ppexpand.Expand(n.Value, env)
		if err != nil {
			return nil, err
		}
		n.Value = expanded
		return []ppast.Node{n}, nil

	case *ppast.Conditional:
		return walkConditional(n, path, env, opts)

	case *ppast.ErrorDirective:
		if opts.StopOnError {
			return nil, fmt.Errorf("%s", n.Message)
		}
		if keep(opts, n, path) {
			return []ppast.Node{n}, nil
		}
		return nil, nil

	case *ppast.Pragma:
		if keep(opts, n, path) {
			return []ppast.Node{n}, nil
		}
		return nil, nil

	case *ppast.Version:
		if keep(opts, n, path) {
			return []ppast.Node{n}, nil
		}
		return nil, nil

	case *ppast.Extension:
		if keep(opts, n, path) {
			return []ppast.Node{n}, nil
		}
		return nil, nil

	case *ppast.Line:
		if keep(opts, n, path) {
			return []ppast.Node{n}, nil
		}
		return nil, nil
	}
	return []ppast.Node{n}, nil
}

// evalCondition expands and evaluates a single #if/#elif expression
// against env, per 4.5.1 step 1-2: Identifier operands are macro-expanded,
// UnaryDefined operands are left as bare names.
func evalCondition(expr ppast.Expr, env *ppenv.Environment) (bool, error) {
	expanded, err := ppeval.ExpandIdentifiers(expr, env)
	if err != nil {
		return false, err
	}
	val, err := ppeval.Eval(expanded, env)
	if err != nil {
		return false, err
	}
	return val.Truthy(), nil
}

// walkConditional implements 4.5.1. When the conditional is preserved it is
// left entirely untouched (its nested bodies are not walked - preserving a
// conditional preserves its unresolved shape). Otherwise exactly one arm's
// body is selected, recursively walked, and spliced in place of the
// conditional; the environment established while walking that body
// persists into the nodes that follow.
func walkConditional(n *ppast.Conditional, path []ppast.Node, env *ppenv.Environment, opts Options) ([]ppast.Node, error) {
	if keep(opts, n, path) {
		return []ppast.Node{n}, nil
	}

	childPath := append(append([]ppast.Node{}, path...), n)

	var selected []ppast.Node
	matched := false

	switch ifPart := n.IfPart.(type) {
	case *ppast.If:
		ok, err := evalCondition(ifPart.Expression, env)
		if err != nil {
			return nil, err
		}
		if ok {
			selected, matched = ifPart.Body, true
		}
	case *ppast.IfDef:
		if env.Has(ifPart.Identifier) {
			selected, matched = ifPart.Body, true
		}
	case *ppast.IfNDef:
		if !env.Has(ifPart.Identifier) {
			selected, matched = ifPart.Body, true
		}
	}

	if !matched {
		for _, ei := range n.ElseIfParts {
			ok, err := evalCondition(ei.Expression, env)
			if err != nil {
				return nil, err
			}
			if ok {
				selected, matched = ei.Body, true
				break
			}
		}
	}

	if !matched && n.ElsePart != nil {
		selected, matched = n.ElsePart.Body, true
	}

	if !matched {
		return nil, nil
	}

	return walkNodes(selected, childPath, env, opts)
}
