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

package ppenv

import (
	"reflect"
	"testing"
)

func TestDefineAndGet(t *testing.T) {
	e := New()
	e.Define(Macro{Name: "X", Body: "1"})
	m, ok := e.Get("X")
	if !ok || m.Body != "1" {
		t.Errorf("Get(X) = %+v, %v, want {Body:1}, true", m, ok)
	}
}

func TestDefineOverwritesKeepsOrder(t *testing.T) {
	e := New()
	e.Define(Macro{Name: "X", Body: "1"})
	e.Define(Macro{Name: "Y", Body: "2"})
	e.Define(Macro{Name: "X", Body: "3"})

	if got, want := e.Names(), []string{"X", "Y"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	m, _ := e.Get("X")
	if m.Body != "3" {
		t.Errorf("Get(X).Body = %q, want %q", m.Body, "3")
	}
}

func TestUndef(t *testing.T) {
	e := New()
	e.Define(Macro{Name: "X", Body: "1"})
	e.Undef("X")
	if e.Has("X") {
		t.Error("Has(X) = true after Undef, want false")
	}
	if got, want := e.Names(), []string{}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want empty", got)
	}
}

func TestUndefThenRedefineAppearsOnce(t *testing.T) {
	e := New()
	e.Define(Macro{Name: "X", Body: "1"})
	e.Define(Macro{Name: "Y", Body: "2"})
	e.Undef("X")
	e.Define(Macro{Name: "X", Body: "3"})

	if got, want := e.Names(), []string{"Y", "X"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v (X redefined once, appended after Y)", got, want)
	}
}

func TestWithoutHidesOnlyOneName(t *testing.T) {
	e := New()
	e.Define(Macro{Name: "X", Body: "1"})
	e.Define(Macro{Name: "Y", Body: "2"})

	v := Without(e, "X")
	if v.Has("X") {
		t.Error("view.Has(X) = true, want false")
	}
	if !v.Has("Y") {
		t.Error("view.Has(Y) = false, want true")
	}
	if got, want := v.Names(), []string{"Y"}; !reflect.DeepEqual(got, want) {
		t.Errorf("view.Names() = %v, want %v", got, want)
	}

	// The underlying environment is untouched by the view.
	if !e.Has("X") {
		t.Error("Without mutated the base environment")
	}
}

func TestWithoutChainsForMutualRecursion(t *testing.T) {
	e := New()
	e.Define(Macro{Name: "A", Body: "1"})
	e.Define(Macro{Name: "B", Body: "2"})

	v1 := Without(e, "A")
	v2 := Without(v1, "B")

	if v2.Has("A") || v2.Has("B") {
		t.Error("chained view should hide both A and B")
	}
	if got, want := v2.Names(), []string{}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want empty", got)
	}
}
