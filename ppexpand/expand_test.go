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

package ppexpand

import (
	"testing"

	"github.com/06wj/glsl-parser/ppenv"
)

func newEnv(macros ...ppenv.Macro) *ppenv.Environment {
	env := ppenv.New()
	for _, m := range macros {
		env.Define(m)
	}
	return env
}

func TestExpandObjectMacroChain(t *testing.T) {
	env := newEnv(
		ppenv.Macro{Name: "X", Body: "Y"},
		ppenv.Macro{Name: "Y", Body: "Z"},
	)
	got, err := Expand("X", env)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if got != "Z" {
		t.Errorf("Expand(X) = %q, want %q", got, "Z")
	}
}

func TestExpandLeavesUnrelatedIdentifierAlone(t *testing.T) {
	env := newEnv(ppenv.Macro{Name: "X", Body: ""})
	got, err := Expand("Y", env)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if got != "Y" {
		t.Errorf("Expand(Y) = %q, want %q", got, "Y")
	}
}

func TestExpandEmptyBody(t *testing.T) {
	env := newEnv(ppenv.Macro{Name: "X", Body: ""})
	got, err := Expand("before X after", env)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if got != "before  after" {
		t.Errorf("Expand = %q, want %q", got, "before  after")
	}
}

func TestExpandWordBoundary(t *testing.T) {
	env := newEnv(ppenv.Macro{Name: "X", Body: "q"})
	got, err := Expand("XX X Xy yX", env)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if got != "XX q Xy yX" {
		t.Errorf("Expand = %q, want %q", got, "XX q Xy yX")
	}
}

func TestExpandFunctionMacroSelfReferenceTerminates(t *testing.T) {
	env := newEnv(ppenv.Macro{Name: "foo", Body: "foo()", IsFunction: true})
	got, err := Expand("foo()", env)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if got != "foo()" {
		t.Errorf("Expand(foo()) = %q, want %q", got, "foo()")
	}
}

func TestExpandFunctionMacroTokenPaste(t *testing.T) {
	env := newEnv(ppenv.Macro{
		Name:       "COMMAND",
		Params:     []string{"NAME"},
		Body:       "{ NAME, NAME ## _command ## x ## y }",
		IsFunction: true,
	})
	got, err := Expand("COMMAND(x)", env)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	want := "{ x, x_commandxy }"
	if got != want {
		t.Errorf("Expand = %q, want %q", got, want)
	}
}

func TestExpandFunctionMacroNestedParens(t *testing.T) {
	env := newEnv(ppenv.Macro{
		Name:       "foo",
		Params:     []string{"a", "b"},
		Body:       "a + b",
		IsFunction: true,
	})
	got, err := Expand("foo(x + y, (z-t))", env)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	want := "x + y + (z-t)"
	if got != want {
		t.Errorf("Expand = %q, want %q", got, want)
	}
}

func TestExpandFunctionMacroTooManyArguments(t *testing.T) {
	env := newEnv(ppenv.Macro{
		Name:       "foo",
		Params:     []string{"a", "b"},
		Body:       "a + b",
		IsFunction: true,
	})
	_, err := Expand("foo(1,2,3)", env)
	if err == nil {
		t.Fatal("Expand did not return an error")
	}
	want := "'foo': Too many arguments for macro"
	if err.Error() != want {
		t.Errorf("err = %q, want %q", err.Error(), want)
	}
}

func TestExpandFunctionMacroNotEnoughArguments(t *testing.T) {
	env := newEnv(ppenv.Macro{
		Name:       "foo",
		Params:     []string{"a", "b"},
		Body:       "a + b",
		IsFunction: true,
	})
	_, err := Expand("foo(1)", env)
	if err == nil {
		t.Fatal("Expand did not return an error")
	}
	want := "'foo': Not enough arguments for macro"
	if err.Error() != want {
		t.Errorf("err = %q, want %q", err.Error(), want)
	}
}

func TestExpandFunctionMacroUnterminated(t *testing.T) {
	env := newEnv(ppenv.Macro{Name: "foo", Params: []string{"a"}, Body: "a", IsFunction: true})
	_, err := Expand("foo(1", env)
	if err == nil {
		t.Fatal("Expand did not return an error")
	}
	want := "foo( unterminated macro invocation"
	if err.Error() != want {
		t.Errorf("err = %q, want %q", err.Error(), want)
	}
}

func TestExpandFunctionMacroZeroArgs(t *testing.T) {
	env := newEnv(ppenv.Macro{Name: "foo", Params: nil, Body: "bar", IsFunction: true})
	got, err := Expand("foo()", env)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if got != "bar" {
		t.Errorf("Expand(foo()) = %q, want %q", got, "bar")
	}
}

func TestGlueRequiresSurroundingWhitespace(t *testing.T) {
	got := glue("a ## b")
	if got != "ab" {
		t.Errorf("glue(a ## b) = %q, want %q", got, "ab")
	}
	got = glue("a##b")
	if got != "a##b" {
		t.Errorf("glue(a##b) = %q, want %q (no whitespace means no paste)", got, "a##b")
	}
}
