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

// Package ppenv holds the macro environment: the ordered name -> macro
// mapping mutated by the directive walker in source order, and the
// read-only "without" view used to enforce the self-reference rule during
// expansion.
package ppenv

// Macro is an object-like or function-like macro definition. A macro is
// function-like when IsFunction is set; Params may then be nil (a
// function-like macro with zero parameters).
type Macro struct {
	Name       string
	Body       string
	Params     []string
	IsFunction bool
}

// Lookup is the read-only view of an environment presented to the macro
// expander and the expression evaluator. *Environment implements it
// directly; Without returns a lightweight overlay also implementing it.
type Lookup interface {
	Has(name string) bool
	Get(name string) (Macro, bool)
	// Names returns the macro names currently visible through this view,
	// in the root environment's definition order: overwriting a name keeps
	// its place, while a name defined again after Undef moves to the end.
	Names() []string
}

// Environment is the ordered mapping of macro name to definition. It is
// mutated in place by the directive walker as #define/#undef directives
// are encountered, in source order.
type Environment struct {
	order  []string
	macros map[string]Macro
}

// New returns an empty environment.
func New() *Environment {
	return &Environment{macros: make(map[string]Macro)}
}

// Define adds or overwrites the macro named m.Name.
func (e *Environment) Define(m Macro) {
	if _, ok := e.macros[m.Name]; !ok {
		e.order = append(e.order, m.Name)
	}
	e.macros[m.Name] = m
}

// Undef removes name from the environment, if present. It also drops name
// from order so a later re-Define of the same name appends it exactly
// once, rather than leaving a stale entry that would make Names (and so
// Expand's per-macro pass) see the name twice.
func (e *Environment) Undef(name string) {
	delete(e.macros, name)
	for i, n := range e.order {
		if n == name {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Has reports whether name is currently defined.
func (e *Environment) Has(name string) bool {
	_, ok := e.macros[name]
	return ok
}

// Get returns the macro definition for name, if any.
func (e *Environment) Get(name string) (Macro, bool) {
	m, ok := e.macros[name]
	return m, ok
}

// Names returns the currently-defined macro names in definition order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.order))
	for _, n := range e.order {
		if _, ok := e.macros[n]; ok {
			names = append(names, n)
		}
	}
	return names
}

// view is a cheap, non-copying overlay on top of a Lookup that hides one
// name. Expanding a macro's body recurses with base.Without(name) so the
// macro is never re-expanded within its own expansion; hiding a second name
// while already hiding the first (mutual recursion) just chains another
// view rather than allocating a fresh copy of the environment, per the
// design note that "without" should be implemented cheaply.
type view struct {
	base   Lookup
	hidden string
}

// Without returns a view of l with name hidden: Has and Get report name as
// undefined, Names omits it, everything else is delegated to l.
func Without(l Lookup, name string) Lookup {
	return &view{base: l, hidden: name}
}

func (v *view) Has(name string) bool {
	if name == v.hidden {
		return false
	}
	return v.base.Has(name)
}

func (v *view) Get(name string) (Macro, bool) {
	if name == v.hidden {
		return Macro{}, false
	}
	return v.base.Get(name)
}

func (v *view) Names() []string {
	all := v.base.Names()
	out := make([]string, 0, len(all))
	for _, n := range all {
		if n != v.hidden {
			out = append(out, n)
		}
	}
	return out
}
