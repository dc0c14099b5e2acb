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

package ppparse

import (
	"fmt"

	"github.com/06wj/glsl-parser/ppast"
)

// binPrec gives each binary operator a precedence level; higher binds
// tighter. Mirrors the operator table a C-like grammar would carry, scoped
// to the operators #if/#elif expressions support.
var binPrec = map[string]int{
	"||": 1,
	"&&": 2,
	"|":  3,
	"^":  4,
	"&":  5,
	"==": 6,
	"!=": 6,
	"<":  7,
	">":  7,
	"<=": 7,
	">=": 7,
	"<<": 8,
	">>": 8,
	"+":  9,
	"-":  9,
	"*":  10,
	"/":  10,
	"%":  10,
}

type exprParser struct {
	toks []token
	pos  int
}

func (p *exprParser) peek() *token {
	if p.pos < len(p.toks) {
		return &p.toks[p.pos]
	}
	return nil
}

func (p *exprParser) next() *token {
	t := p.peek()
	if t != nil {
		p.pos++
	}
	return t
}

// ParseExpression parses the body of a #if/#elif directive into an
// expression tree, using precedence climbing over the binary operators and
// recursive descent for unary operators, defined(), and grouping.
func ParseExpression(s string) (ppast.Expr, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("empty #if/#elif expression")
	}
	p := &exprParser{toks: toks}
	expr, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("unexpected trailing token %q in expression", p.toks[p.pos].text)
	}
	return expr, nil
}

func (p *exprParser) parseBinary(minPrec int) (ppast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t == nil || t.kind != tokOp {
			break
		}
		prec, ok := binPrec[t.text]
		if !ok || prec < minPrec {
			break
		}
		p.next()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ppast.Binary{Left: left, Operator: t.text, Right: right}
	}
	return left, nil
}

func (p *exprParser) parseUnary() (ppast.Expr, error) {
	t := p.peek()
	if t != nil && t.kind == tokOp && (t.text == "+" || t.text == "-" || t.text == "!" || t.text == "~") {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ppast.Unary{Operator: t.text, Expression: operand}, nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (ppast.Expr, error) {
	t := p.next()
	if t == nil {
		return nil, fmt.Errorf("unexpected end of expression")
	}

	switch t.kind {
	case tokInt:
		return &ppast.IntConstant{Token: t.text}, nil

	case tokLParen:
		inner, err := p.parseBinary(1)
		if err != nil {
			return nil, err
		}
		closing := p.next()
		if closing == nil || closing.kind != tokRParen {
			return nil, fmt.Errorf("expected ')' in expression")
		}
		return &ppast.Group{Expression: inner}, nil

	case tokIdent:
		if t.text == "defined" {
			return p.parseDefined()
		}
		return &ppast.Identifier{Name: t.text}, nil
	}
	return nil, fmt.Errorf("unexpected token %q in expression", t.text)
}

// parseDefined parses both defined(X) and the parenthesis-free defined X
// form, in each case taking the bare identifier without macro-expanding it.
func (p *exprParser) parseDefined() (ppast.Expr, error) {
	if n := p.peek(); n != nil && n.kind == tokLParen {
		p.next()
		id := p.next()
		if id == nil || id.kind != tokIdent {
			return nil, fmt.Errorf("expected identifier in defined()")
		}
		closing := p.next()
		if closing == nil || closing.kind != tokRParen {
			return nil, fmt.Errorf("expected ')' after defined(")
		}
		return &ppast.UnaryDefined{Identifier: id.text}, nil
	}
	id := p.next()
	if id == nil || id.kind != tokIdent {
		return nil, fmt.Errorf("expected identifier after defined")
	}
	return &ppast.UnaryDefined{Identifier: id.text}, nil
}
