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

// Package ppeval folds #if/#elif expression ASTs to a value under the
// current macro environment, after selectively macro-expanding identifier
// operands.
package ppeval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/06wj/glsl-parser/ppast"
	"github.com/06wj/glsl-parser/ppenv"
	"github.com/06wj/glsl-parser/ppexpand"
)

type evalError string

func (e evalError) Error() string { return string(e) }

func makeError(format string, args ...interface{}) evalError {
	return evalError(fmt.Sprintf(format, args...))
}

// ExpandIdentifiers macro-expands every Identifier operand of e against env,
// leaving defined(...) operands untouched. The walker calls this before
// Eval, per spec: "#if"/"#elif" expressions see identifiers expanded, but
// defined() must see the bare name.
func ExpandIdentifiers(e ppast.Expr, env ppenv.Lookup) (ppast.Expr, error) {
	var firstErr error
	rewritten := ppast.RewriteIdentifiers(e, func(name string) string {
		expanded, err := ppexpand.Expand(name, env)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return expanded
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return rewritten, nil
}

// Value is the result of evaluating an expression. Number/IsNumber hold the
// base-10 integer parse, if any; Text holds the raw (already macro-expanded)
// string otherwise, used only for the truthiness of a bare, non-numeric
// identifier.
type Value struct {
	Number   int64
	IsNumber bool
	Text     string
}

func intValue(n int64) Value { return Value{Number: n, IsNumber: true} }

func boolValue(b bool) Value {
	if b {
		return intValue(1)
	}
	return intValue(0)
}

// Truthy implements spec's truthiness rule: non-zero integer or non-empty
// string is true; 0, empty, and "false" are false.
func (v Value) Truthy() bool {
	if v.IsNumber {
		return v.Number != 0
	}
	return v.Text != "" && v.Text != "false"
}

// Int returns the integer interpretation of v. An identifier that did not
// parse as an integer evaluates as 0 in arithmetic contexts - undefined
// identifiers reaching arithmetic are treated this way, matching most C
// preprocessors (see DESIGN.md for the Open Question this resolves).
func (v Value) Int() int64 {
	if v.IsNumber {
		return v.Number
	}
	return 0
}

// Eval evaluates an #if/#elif expression tree under env. Identifier nodes
// must already have been expanded with ExpandIdentifiers.
func Eval(e ppast.Expr, env ppenv.Lookup) (val Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	return eval(e, env), nil
}

func eval(e ppast.Expr, env ppenv.Lookup) Value {
	switch e := e.(type) {
	case *ppast.IntConstant:
		n, err := strconv.ParseInt(e.Token, 10, 64)
		if err != nil {
			panic(makeError("Preprocessing error: invalid integer constant '%s'", e.Token))
		}
		return intValue(n)

	case *ppast.Identifier:
		text := strings.TrimSpace(e.Name)
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return intValue(n)
		}
		return Value{Text: text}

	case *ppast.UnaryDefined:
		return boolValue(env.Has(e.Identifier))

	case *ppast.Group:
		return eval(e.Expression, env)

	case *ppast.Unary:
		v := eval(e.Expression, env)
		switch e.Operator {
		case "+":
			return intValue(v.Int())
		case "-":
			return intValue(-v.Int())
		case "!":
			return boolValue(!v.Truthy())
		case "~":
			return intValue(^v.Int())
		default:
			panic(makeError("Preprocessing error: Unknown unary operator %s", e.Operator))
		}

	case *ppast.Binary:
		return evalBinary(e, env)
	}
	panic(fmt.Errorf("No evaluate() evaluator for %T", e))
}

func evalBinary(e *ppast.Binary, env ppenv.Lookup) Value {
	switch e.Operator {
	case "&&":
		if !eval(e.Left, env).Truthy() {
			return boolValue(false)
		}
		return boolValue(eval(e.Right, env).Truthy())
	case "||":
		if eval(e.Left, env).Truthy() {
			return boolValue(true)
		}
		return boolValue(eval(e.Right, env).Truthy())
	}

	l, r := eval(e.Left, env).Int(), eval(e.Right, env).Int()
	switch e.Operator {
	case "*":
		return intValue(l * r)
	case "/":
		if r == 0 {
			panic(makeError("Preprocessing error: division by zero"))
		}
		return intValue(l / r)
	case "%":
		if r == 0 {
			panic(makeError("Preprocessing error: division by zero"))
		}
		return intValue(l % r)
	case "+":
		return intValue(l + r)
	case "-":
		return intValue(l - r)
	case "<<":
		return intValue(l << uint(r))
	case ">>":
		return intValue(l >> uint(r))
	case "<":
		return boolValue(l < r)
	case ">":
		return boolValue(l > r)
	case "<=":
		return boolValue(l <= r)
	case ">=":
		return boolValue(l >= r)
	case "==":
		return boolValue(l == r)
	case "!=":
		return boolValue(l != r)
	case "&":
		return intValue(l & r)
	case "^":
		return intValue(l ^ r)
	case "|":
		return intValue(l | r)
	default:
		panic(makeError("Preprocessing error: Unknown binary operator %s", e.Operator))
	}
}
