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

package ppast

// RewriteIdentifiers returns a copy of e with every Identifier node replaced
// by the result of calling rewrite on its Name. UnaryDefined subtrees are
// left untouched entirely - defined(X) must see the bare name X, never an
// expansion of it. This is the one tree transform the preprocessor needs
// over expressions, used to macro-expand #if/#elif operands before
// evaluation.
func RewriteIdentifiers(e Expr, rewrite func(name string) string) Expr {
	switch e := e.(type) {
	case *IntConstant:
		return e
	case *UnaryDefined:
		return e
	case *Identifier:
		return &Identifier{Name: rewrite(e.Name)}
	case *Group:
		return &Group{Expression: RewriteIdentifiers(e.Expression, rewrite)}
	case *Unary:
		return &Unary{Operator: e.Operator, Expression: RewriteIdentifiers(e.Expression, rewrite)}
	case *Binary:
		return &Binary{
			Left:     RewriteIdentifiers(e.Left, rewrite),
			Operator: e.Operator,
			Right:    RewriteIdentifiers(e.Right, rewrite),
		}
	}
	return e
}
