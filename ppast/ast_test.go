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

import "testing"

func TestProgramSourceConcatenatesNodes(t *testing.T) {
	prog := &Program{Nodes: []Node{
		&Text{Value: "before "},
		&Define{Name: "X", Body: "1", Raw: "#define X 1\n"},
		&Text{Value: "after"},
	}}
	got := prog.Source()
	want := "before #define X 1\nafter"
	if got != want {
		t.Errorf("Source() = %q, want %q", got, want)
	}
}

func TestRewriteIdentifiersSkipsDefinedOperand(t *testing.T) {
	expr := &Binary{
		Left:     &Identifier{Name: "A"},
		Operator: "&&",
		Right:    &UnaryDefined{Identifier: "B"},
	}
	rewritten := RewriteIdentifiers(expr, func(name string) string {
		return "expanded_" + name
	})
	bin := rewritten.(*Binary)
	if bin.Left.(*Identifier).Name != "expanded_A" {
		t.Errorf("Left = %+v, want expanded", bin.Left)
	}
	if bin.Right.(*UnaryDefined).Identifier != "B" {
		t.Errorf("Right.Identifier = %q, want unexpanded %q", bin.Right.(*UnaryDefined).Identifier, "B")
	}
}

func TestRewriteIdentifiersRecursesThroughGroupsAndUnary(t *testing.T) {
	expr := &Unary{
		Operator: "!",
		Expression: &Group{
			Expression: &Identifier{Name: "A"},
		},
	}
	rewritten := RewriteIdentifiers(expr, func(name string) string { return name + "_x" })
	un := rewritten.(*Unary)
	grp := un.Expression.(*Group)
	id := grp.Expression.(*Identifier)
	if id.Name != "A_x" {
		t.Errorf("Name = %q, want %q", id.Name, "A_x")
	}
}
