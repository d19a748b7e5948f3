// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package naming splits brand names into word tokens and renders them in
// every casing style the rename engine knows about.
package naming

import (
	"strings"
	"unicode"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrInvalidName is returned when a name is empty.
	ErrInvalidName = errors.Base("invalid name")
	// ErrEmptyTokenSequence is returned when a name has no word tokens.
	ErrEmptyTokenSequence = errors.Base("name has no word tokens")
)

// 🔪 Tokenize splits name into lowercase word tokens.
//
// Boundaries are a lowercase letter or digit followed by an uppercase
// letter, any run of '_' or '-', and any run of whitespace. A name made
// only of separators yields an empty sequence and no error.
func Tokenize(name string) ([]string, error) {
	if name == "" {
		return nil, errors.WithStack(ErrInvalidName)
	}

	tokens := []string{}
	var current strings.Builder
	var prev rune

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	for i, r := range name {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		default:
			if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
				flush()
			}
			current.WriteRune(r)
		}
		prev = r
	}
	flush()

	return tokens, nil
}
