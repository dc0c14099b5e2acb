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
	"strings"
)

type tokenKind int

const (
	tokInt tokenKind = iota
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
}

// multiCharOps must be tried longest-first so that e.g. "<=" is not split
// into "<" followed by a stray "=".
var multiCharOps = []string{"<<", ">>", "<=", ">=", "==", "!=", "&&", "||"}

const singleCharOps = "+-*/%<>!~&^|"

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// tokenize lexes a #if/#elif expression body into a flat token stream.
func tokenize(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++

		case c == '(':
			toks = append(toks, token{tokLParen, "("})
			i++

		case c == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++

		case isDigit(c):
			j := i
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			toks = append(toks, token{tokInt, s[i:j]})
			i = j

		case isIdentStart(c):
			j := i
			for j < len(s) && isIdentPart(s[j]) {
				j++
			}
			toks = append(toks, token{tokIdent, s[i:j]})
			i = j

		default:
			matched := ""
			for _, op := range multiCharOps {
				if strings.HasPrefix(s[i:], op) {
					matched = op
					break
				}
			}
			if matched != "" {
				toks = append(toks, token{tokOp, matched})
				i += len(matched)
				continue
			}
			if strings.IndexByte(singleCharOps, c) >= 0 {
				toks = append(toks, token{tokOp, string(c)})
				i++
				continue
			}
			return nil, fmt.Errorf("unexpected character %q in expression", c)
		}
	}
	return toks, nil
}
