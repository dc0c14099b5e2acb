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

// Package comments strips // and /* */ comments from source text before it
// reaches the parser, preserving line numbers.
package comments

import "strings"

// Strip removes comments from src. Line comments are replaced up to (but
// not including) the terminating newline. Block comments that open and
// close on the same line become a single space; block comments spanning
// multiple lines are dropped but every newline inside is kept so that
// downstream line numbers do not shift. Comments do not nest - the first
// opening token found wins.
func Strip(src string) string {
	var out strings.Builder
	out.Grow(len(src))

	i := 0
	for i < len(src) {
		switch {
		case hasPrefixAt(src, i, "//"):
			j := i + 2
			for j < len(src) && src[j] != '\n' {
				j++
			}
			i = j

		case hasPrefixAt(src, i, "/*"):
			j := i + 2
			sawNewline := false
			for j < len(src) && !hasPrefixAt(src, j, "*/") {
				if src[j] == '\n' {
					out.WriteByte('\n')
					sawNewline = true
				}
				j++
			}
			if j < len(src) {
				j += 2
			}
			if !sawNewline {
				out.WriteByte(' ')
			}
			i = j

		default:
			out.WriteByte(src[i])
			i++
		}
	}
	return out.String()
}

func hasPrefixAt(s string, i int, prefix string) bool {
	return i+len(prefix) <= len(s) && s[i:i+len(prefix)] == prefix
}
