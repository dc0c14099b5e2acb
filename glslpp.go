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
Package glslpp is a source-to-source preprocessor for a C-like shading
language: comments and escaped newlines are stripped, directives
(#define, #undef, #if/#ifdef/#ifndef/#elif/#else/#endif, #error, #pragma,
#version, #extension, #line) are parsed and interpreted, macros are
expanded throughout the remaining text, and conditional-compilation
branches are resolved, producing preprocessed source.

The only sub-packages expected to be imported directly by callers that need
finer control are ppast, for the AST node definitions, and ppwalk, for the
Options/Policy types that configure the directive walk.
*/
package glslpp

import (
	"github.com/pkg/errors"

	"github.com/06wj/glsl-parser/internal/comments"
	"github.com/06wj/glsl-parser/internal/unescape"
	"github.com/06wj/glsl-parser/ppast"
	"github.com/06wj/glsl-parser/ppparse"
	"github.com/06wj/glsl-parser/ppwalk"
)

// Options configures a Preprocess call; it is ppwalk.Options plus the
// comment-handling switch from the external interface.
type Options struct {
	// Defines seeds the environment with object-like macros before the walk.
	Defines map[string]string

	// Preserve decides whether a directive survives in the output.
	Preserve ppwalk.Policy

	// StopOnError fails the walk with the message of the first #error
	// directive encountered, instead of silently dropping it.
	StopOnError bool

	// PreserveComments, if false (the default), causes Preprocess to strip
	// comments itself before parsing. If true, the caller is asserting
	// comments have already been removed (or are meant to survive as part
	// of Text nodes); PreprocessAST never touches them either way.
	PreserveComments bool

	// GrammarSource is a diagnostic label attached to parse errors.
	GrammarSource string
}

func (o Options) walkOptions() ppwalk.Options {
	return ppwalk.Options{
		Defines:       o.Defines,
		Preserve:      o.Preserve,
		StopOnError:   o.StopOnError,
		GrammarSource: o.GrammarSource,
	}
}

// PreprocessComments strips // and /* */ comments from src. It is exposed
// separately because callers with PreserveComments set run their own
// comment pass, or none, before calling ParseAST/PreprocessAST.
func PreprocessComments(src string) string { return comments.Strip(src) }

// UnescapeSource removes backslash-newline line continuations from src.
func UnescapeSource(src string) string { return unescape.Source(src) }

// ParseAST runs the grammar collaborator over already comment-stripped,
// unescaped source, producing the Program the walker consumes.
func ParseAST(src string) (*ppast.Program, error) {
	prog, err := ppparse.Parse(src)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}
	return prog, nil
}

// PreprocessAST walks prog in place, expanding macros and resolving
// conditionals under opts, and returns it.
func PreprocessAST(prog *ppast.Program, opts Options) (*ppast.Program, error) {
	prog, err := ppwalk.PreprocessAST(prog, opts.walkOptions())
	if err != nil {
		return nil, errors.Wrap(err, "preprocess")
	}
	return prog, nil
}

// Preprocess runs the full pipeline over raw source text: optional comment
// stripping, newline unescaping, parsing, directive walking, and rendering
// back to text.
func Preprocess(src string, opts Options) (string, error) {
	if !opts.PreserveComments {
		src = PreprocessComments(src)
	}
	src = UnescapeSource(src)

	prog, err := ParseAST(src)
	if err != nil {
		if opts.GrammarSource != "" {
			err = errors.Wrap(err, opts.GrammarSource)
		}
		return "", err
	}

	if _, err := PreprocessAST(prog, opts); err != nil {
		return "", err
	}

	return prog.Source(), nil
}
