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

package unescape

import "testing"

func TestSourceJoinsEscapedLines(t *testing.T) {
	got := Source("a\\\nb")
	if got != "ab" {
		t.Errorf("Source = %q, want %q", got, "ab")
	}
}

func TestSourceLeavesOrdinaryNewlinesAlone(t *testing.T) {
	got := Source("a\nb")
	if got != "a\nb" {
		t.Errorf("Source = %q, want %q", got, "a\nb")
	}
}

func TestSourceHandlesCarriageReturn(t *testing.T) {
	got := Source("a\\\rb")
	if got != "ab" {
		t.Errorf("Source = %q, want %q", got, "ab")
	}
}

func TestHasEscapes(t *testing.T) {
	if !HasEscapes("a\\\nb") {
		t.Error("HasEscapes = false, want true")
	}
	if HasEscapes("a\nb") {
		t.Error("HasEscapes = true, want false")
	}
}
