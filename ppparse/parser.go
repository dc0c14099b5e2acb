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
Package ppparse is the grammar collaborator: it turns preprocessed-for-
comments, unescaped source text into the ppast.Program the walker consumes.

The scanner is line-oriented rather than a full tokenizer: a directive is
recognized by a line (after optional leading whitespace) starting with '#',
everything else is Text. This mirrors how line-based C preprocessors are
usually hand-rolled, and is sufficient here because the preprocessor never
tokenizes program text - only directive lines have grammar.
*/
package ppparse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/06wj/glsl-parser/ppast"
)

var directiveRe = regexp.MustCompile(`^([ \t]*#[ \t]*)(define|undef|ifdef|ifndef|elif|else|endif|error|pragma|version|extension|line|if)\b(.*)$`)

// funcMacroRe recognizes the no-space-before-paren rule that makes a
// #define function-like: the name must be immediately followed by '('.
var funcMacroRe = regexp.MustCompile(`^(\w+)\(([^)]*)\)(.*)$`)
var objMacroRe = regexp.MustCompile(`^(\w+)(.*)$`)

// Parse builds a Program from src. src should already have had comments
// stripped and escaped newlines joined by the caller.
func Parse(src string) (*ppast.Program, error) {
	lines := strings.SplitAfter(src, "\n")
	// SplitAfter on a string ending in "\n" produces a trailing empty
	// element; drop it so it is not mistaken for an extra blank line.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	p := &parser{lines: lines}
	nodes, err := p.parseNodes(false)
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.lines) {
		return nil, fmt.Errorf("unexpected directive %q with no matching #if", strings.TrimSpace(p.lines[p.pos]))
	}
	return &ppast.Program{Nodes: nodes}, nil
}

type parser struct {
	lines []string
	pos   int
}

func matchDirective(line string) (kind, rest string, ok bool) {
	trimmed := strings.TrimRight(line, "\n")
	m := directiveRe.FindStringSubmatch(trimmed)
	if m == nil {
		return "", "", false
	}
	return m[2], strings.TrimSpace(m[3]), true
}

// parseNodes consumes sibling nodes until end of input or, when
// stopAtBranch is set, until a line starting a #elif/#else/#endif is
// reached (that line is left unconsumed for the caller - parseConditional
// - to interpret).
func (p *parser) parseNodes(stopAtBranch bool) ([]ppast.Node, error) {
	var nodes []ppast.Node
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, &ppast.Text{Value: text.String()})
			text.Reset()
		}
	}

	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		kind, rest, ok := matchDirective(line)
		if !ok {
			text.WriteString(line)
			p.pos++
			continue
		}

		if stopAtBranch && (kind == "elif" || kind == "else" || kind == "endif") {
			flush()
			return nodes, nil
		}

		switch kind {
		case "define":
			flush()
			node, err := parseDefine(line, rest)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
			p.pos++

		case "undef":
			flush()
			nodes = append(nodes, &ppast.Undef{Name: rest, Raw: line})
			p.pos++

		case "if", "ifdef", "ifndef":
			flush()
			cond, err := p.parseConditional()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, cond)

		case "elif", "else", "endif":
			return nil, fmt.Errorf("%q with no matching #if", strings.TrimSpace(line))

		case "error":
			flush()
			nodes = append(nodes, &ppast.ErrorDirective{Message: rest, Raw: line})
			p.pos++

		case "pragma":
			flush()
			nodes = append(nodes, &ppast.Pragma{Text: rest, Raw: line})
			p.pos++

		case "version":
			flush()
			nodes = append(nodes, &ppast.Version{Text: rest, Raw: line})
			p.pos++

		case "extension":
			flush()
			nodes = append(nodes, &ppast.Extension{Text: rest, Raw: line})
			p.pos++

		case "line":
			flush()
			nodes = append(nodes, &ppast.Line{Text: rest, Raw: line})
			p.pos++
		}
	}

	flush()
	return nodes, nil
}

func parseDefine(line, rest string) (ppast.Node, error) {
	if m := funcMacroRe.FindStringSubmatch(rest); m != nil {
		name, rawParams, body := m[1], m[2], strings.TrimSpace(m[3])
		var params []string
		if strings.TrimSpace(rawParams) != "" {
			for _, param := range strings.Split(rawParams, ",") {
				params = append(params, strings.TrimSpace(param))
			}
		}
		return &ppast.DefineArguments{Name: name, Params: params, Body: body, Raw: line}, nil
	}

	m := objMacroRe.FindStringSubmatch(rest)
	if m == nil {
		return nil, fmt.Errorf("malformed #define: %q", strings.TrimSpace(line))
	}
	return &ppast.Define{Name: m[1], Body: strings.TrimSpace(m[2]), Raw: line}, nil
}

// parseConditional parses a full #if.../#elif.../#else/#endif construct.
// p.pos must be positioned at the opening if/ifdef/ifndef line on entry; on
// return it is positioned just past the matching #endif line.
func (p *parser) parseConditional() (*ppast.Conditional, error) {
	start := p.pos
	openKind, openRest, _ := matchDirective(p.lines[p.pos])
	openLine := p.lines[p.pos]
	p.pos++

	body, err := p.parseNodes(true)
	if err != nil {
		return nil, err
	}

	var ifPart ppast.IfPart
	switch openKind {
	case "if":
		expr, err := ParseExpression(openRest)
		if err != nil {
			return nil, err
		}
		ifPart = &ppast.If{Expression: expr, Body: body, Raw: openLine}
	case "ifdef":
		ifPart = &ppast.IfDef{Identifier: openRest, Body: body, Raw: openLine}
	case "ifndef":
		ifPart = &ppast.IfNDef{Identifier: openRest, Body: body, Raw: openLine}
	}

	var elseIfParts []*ppast.ElseIf
	for p.pos < len(p.lines) {
		kind, rest, _ := matchDirective(p.lines[p.pos])
		if kind != "elif" {
			break
		}
		elifLine := p.lines[p.pos]
		p.pos++
		elifBody, err := p.parseNodes(true)
		if err != nil {
			return nil, err
		}
		expr, err := ParseExpression(rest)
		if err != nil {
			return nil, err
		}
		elseIfParts = append(elseIfParts, &ppast.ElseIf{Expression: expr, Body: elifBody, Raw: elifLine})
	}

	var elsePart *ppast.Else
	if p.pos < len(p.lines) {
		if kind, _, _ := matchDirective(p.lines[p.pos]); kind == "else" {
			elseLine := p.lines[p.pos]
			p.pos++
			elseBody, err := p.parseNodes(true)
			if err != nil {
				return nil, err
			}
			elsePart = &ppast.Else{Body: elseBody, Raw: elseLine}
		}
	}

	if p.pos >= len(p.lines) {
		return nil, fmt.Errorf("unterminated #if: missing #endif for %q", strings.TrimSpace(openLine))
	}
	if kind, _, _ := matchDirective(p.lines[p.pos]); kind != "endif" {
		return nil, fmt.Errorf("unterminated #if: missing #endif for %q", strings.TrimSpace(openLine))
	}
	p.pos++

	raw := strings.Join(p.lines[start:p.pos], "")
	return &ppast.Conditional{IfPart: ifPart, ElseIfParts: elseIfParts, ElsePart: elsePart, Raw: raw}, nil
}
