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

// Package ppexpand implements macro expansion over raw text: object-like
// substitution, function-like argument scanning and substitution, token
// pasting, and the self-reference rule that keeps both forms of recursion
// terminating. It operates on text, not a token stream - the preprocessor
// never fully tokenizes program text, per spec.
package ppexpand

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/06wj/glsl-parser/ppenv"
)

// pasteRe matches the token-pasting operator together with its surrounding
// whitespace, per spec: collapsing `\s+##\s+` to nothing is what glues two
// adjacent tokens into one.
var pasteRe = regexp.MustCompile(`\s+##\s+`)

// glue collapses token-pasting operators introduced by a substitution.
func glue(s string) string {
	return pasteRe.ReplaceAllString(s, "")
}

func wordBoundary(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
}

// Expand replaces every occurrence of every macro in env throughout text,
// in the environment's definition order. Within one macro's pass, every
// occurrence is replaced before moving on to the next macro, per spec.
func Expand(text string, env ppenv.Lookup) (string, error) {
	for _, name := range env.Names() {
		m, ok := env.Get(name)
		if !ok {
			continue
		}
		var err error
		if m.IsFunction {
			text, err = expandFunctionMacro(text, m, env)
		} else {
			text, err = expandObjectMacro(text, m, env)
		}
		if err != nil {
			return "", err
		}
	}
	return text, nil
}

// expandObjectMacro implements spec 4.3.1: every word-boundary occurrence of
// m.Name is replaced by the (recursively expanded) body, with m itself
// hidden from that recursive expansion so it is never re-expanded within
// its own expansion.
func expandObjectMacro(text string, m ppenv.Macro, env ppenv.Lookup) (string, error) {
	re := wordBoundary(m.Name)
	if !re.MatchString(text) {
		return text, nil
	}
	body, err := Expand(m.Body, ppenv.Without(env, m.Name))
	if err != nil {
		return "", err
	}
	text = re.ReplaceAllLiteralString(text, body)
	return glue(text), nil
}

// expandFunctionMacro implements spec 4.3.2: locate each call to m.Name,
// scan balanced-paren arguments, substitute the pre-expanded actuals into
// the body, then rescan the result with m hidden so self-reference
// terminates. The scan resumes after the replaced call in the *original*
// text, so a macro whose own expansion invokes itself again is never
// re-expanded - only the rescan above (with m hidden) ever sees it.
func expandFunctionMacro(text string, m ppenv.Macro, env ppenv.Lookup) (string, error) {
	callRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(m.Name) + `\b[ \t]*\(`)

	var out strings.Builder
	cursor := 0
	for {
		loc := callRe.FindStringIndex(text[cursor:])
		if loc == nil {
			out.WriteString(text[cursor:])
			break
		}
		matchStart := cursor + loc[0]
		openParen := cursor + loc[1] - 1

		out.WriteString(text[cursor:matchStart])

		args, end, err := scanArguments(text, openParen+1)
		if err != nil {
			return "", fmt.Errorf("%s unterminated macro invocation", text[matchStart:openParen+1])
		}

		if len(args) == 1 && strings.TrimSpace(args[0]) == "" {
			args = nil
		}

		if len(args) > len(m.Params) {
			return "", fmt.Errorf("'%s': Too many arguments for macro", m.Name)
		}
		if len(args) < len(m.Params) {
			return "", fmt.Errorf("'%s': Not enough arguments for macro", m.Name)
		}

		actuals := make([]string, len(args))
		for i, a := range args {
			expanded, err := Expand(strings.TrimSpace(a), env)
			if err != nil {
				return "", err
			}
			actuals[i] = expanded
		}

		substituted := substituteParams(m.Body, m.Params, actuals)
		substituted = glue(substituted)

		expanded, err := Expand(substituted, ppenv.Without(env, m.Name))
		if err != nil {
			return "", err
		}

		out.WriteString(expanded)
		cursor = end
	}
	return out.String(), nil
}

// substituteParams replaces every word-boundary occurrence of a parameter
// name in body with its corresponding actual, in a single pass so that an
// actual argument's text is never itself treated as a further substitution
// target.
func substituteParams(body string, params, actuals []string) string {
	if len(params) == 0 {
		return body
	}
	alt := make([]string, len(params))
	for i, p := range params {
		alt[i] = regexp.QuoteMeta(p)
	}
	re := regexp.MustCompile(`\b(` + strings.Join(alt, "|") + `)\b`)
	return re.ReplaceAllStringFunc(body, func(match string) string {
		for i, p := range params {
			if p == match {
				return actuals[i]
			}
		}
		return match
	})
}

// scanArguments walks text starting just after a macro call's opening
// paren (pos), tracking paren depth, and returns the raw argument
// substrings, plus the index just past the matching closing paren. A
// top-level comma ends an argument; the paren transitioning from depth 0
// to -1 ends the call.
func scanArguments(text string, pos int) (args []string, end int, err error) {
	depth := 0
	var cur strings.Builder
	i := pos
	for i < len(text) {
		c := text[i]
		switch {
		case c == '(':
			depth++
			cur.WriteByte(c)
		case c == ')':
			if depth == 0 {
				args = append(args, cur.String())
				return args, i + 1, nil
			}
			depth--
			cur.WriteByte(c)
		case c == ',' && depth == 0:
			args = append(args, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
		i++
	}
	return nil, 0, fmt.Errorf("unterminated macro invocation")
}
