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

// Package unescape removes backslash-newline line continuations before a
// source text is parsed.
package unescape

import "strings"

// Source removes every occurrence of a backslash immediately followed by
// \n or \r, joining the escaped line onto the next.
func Source(src string) string {
	var out strings.Builder
	out.Grow(len(src))

	for i := 0; i < len(src); i++ {
		if src[i] == '\\' && i+1 < len(src) && (src[i+1] == '\n' || src[i+1] == '\r') {
			i++
			continue
		}
		out.WriteByte(src[i])
	}
	return out.String()
}

// HasEscapes reports whether src contains any backslash-newline sequence,
// useful for callers deciding whether to bother re-running Source.
func HasEscapes(src string) bool {
	return strings.Contains(src, "\\\n") || strings.Contains(src, "\\\r")
}
