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

/*
Package ppast defines the abstract syntax tree walked by the preprocessor.

A Program is a flat sequence of Nodes: Text for raw source between
directives, and one node type per directive kind. Conditional is the only
node with nested structure - each of its arms carries its own body sequence.

Every directive node carries Raw, the verbatim source text the parser
consumed for it. Render returns Raw for directive nodes and the (possibly
macro-expanded) Text for Text nodes; this is what lets the walker mutate the
tree in place and have the final source regenerated by simple concatenation,
without a separate whitespace-preserving pass.
*/
package ppast

// Node is the tagged union of top-level AST members: Text or one directive
// kind. Render returns the text this node currently contributes to the
// output.
type Node interface {
	Render() string
}

// Text is raw source text between directives.
type Text struct {
	Value string
}

func (n *Text) Render() string { return n.Value }

// Define is an object-like macro definition: `#define NAME body`.
type Define struct {
	Name string
	Body string
	Raw  string
}

func (n *Define) Render() string { return n.Raw }

// DefineArguments is a function-like macro definition:
// `#define NAME(p1, p2) body`.
type DefineArguments struct {
	Name   string
	Params []string
	Body   string
	Raw    string
}

func (n *DefineArguments) Render() string { return n.Raw }

// Undef is `#undef NAME`.
type Undef struct {
	Name string
	Raw  string
}

func (n *Undef) Render() string { return n.Raw }

// ErrorDirective is `#error message`.
type ErrorDirective struct {
	Message string
	Raw     string
}

func (n *ErrorDirective) Render() string { return n.Raw }

// Pragma is `#pragma ...`.
type Pragma struct {
	Text string
	Raw  string
}

func (n *Pragma) Render() string { return n.Raw }

// Version is `#version ...`.
type Version struct {
	Text string
	Raw  string
}

func (n *Version) Render() string { return n.Raw }

// Extension is `#extension ...`.
type Extension struct {
	Text string
	Raw  string
}

func (n *Extension) Render() string { return n.Raw }

// Line is `#line ...`.
type Line struct {
	Text string
	Raw  string
}

func (n *Line) Render() string { return n.Raw }

// If is the `#if expression` arm of a Conditional.
type If struct {
	Expression Expr
	Body       []Node
	Raw        string
}

// IfDef is the `#ifdef identifier` arm of a Conditional.
type IfDef struct {
	Identifier string
	Body       []Node
	Raw        string
}

// IfNDef is the `#ifndef identifier` arm of a Conditional.
type IfNDef struct {
	Identifier string
	Body       []Node
	Raw        string
}

// IfPart is the union of the three forms the leading arm of a Conditional
// can take.
type IfPart interface {
	isIfPart()
}

func (*If) isIfPart()     {}
func (*IfDef) isIfPart()  {}
func (*IfNDef) isIfPart() {}

// ElseIf is one `#elif expression` arm.
type ElseIf struct {
	Expression Expr
	Body       []Node
	Raw        string
}

// Else is the trailing `#else` arm, if present.
type Else struct {
	Body []Node
	Raw  string
}

// Conditional is the full `#if.../#elif.../#else/#endif` structure. Raw
// spans the entire construct, from the opening directive through the
// matching `#endif`, and is only used when the conditional as a whole is
// preserved - otherwise the walker replaces it with the selected arm's
// (already walked) Body, and Conditional itself never reaches the
// generator.
type Conditional struct {
	IfPart      IfPart
	ElseIfParts []*ElseIf
	ElsePart    *Else
	Raw         string
}

func (n *Conditional) Render() string { return n.Raw }

// Program is the full parsed source: a flat sequence of top-level nodes.
type Program struct {
	Nodes []Node
}

// Source renders the program back to text by concatenating each surviving
// node's Render(). Nodes removed by the walker (unpreserved directives,
// conditionals whose selected body has been spliced in already) are simply
// absent from Nodes by the time Source is called.
func (p *Program) Source() string {
	var total int
	for _, n := range p.Nodes {
		total += len(n.Render())
	}
	buf := make([]byte, 0, total)
	for _, n := range p.Nodes {
		buf = append(buf, n.Render()...)
	}
	return string(buf)
}
