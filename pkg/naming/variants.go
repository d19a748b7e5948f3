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

package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// 🎨 Style identifies one casing rendering of a name
type Style string

const (
	StyleOriginal       Style = "original"
	StyleTitleCase      Style = "titleCase"
	StylePascalCase     Style = "pascalCase"
	StyleCamelCase      Style = "camelCase"
	StyleKebabCase      Style = "kebabCase"
	StyleSnakeCase      Style = "snakeCase"
	StyleUpperSnakeCase Style = "upperSnakeCase"
	StyleUpperFlat      Style = "upperFlat"
	StyleFlatLower      Style = "flatLower"
)

// Styles lists every style in registration order. Planning relies on this
// order when two styles render to the same string, so the derived styles
// come first and the unmodified input is registered last.
var Styles = []Style{
	StyleTitleCase,
	StylePascalCase,
	StyleCamelCase,
	StyleKebabCase,
	StyleSnakeCase,
	StyleUpperSnakeCase,
	StyleUpperFlat,
	StyleFlatLower,
	StyleOriginal,
}

// Description returns a human readable label for diagnostics.
func (s Style) Description() string {
	switch s {
	case StyleOriginal:
		return "original display name"
	case StyleTitleCase:
		return "Title Case"
	case StylePascalCase:
		return "PascalCase"
	case StyleCamelCase:
		return "camelCase"
	case StyleKebabCase:
		return "kebab-case"
	case StyleSnakeCase:
		return "snake_case"
	case StyleUpperSnakeCase:
		return "UPPER_SNAKE_CASE"
	case StyleUpperFlat:
		return "UPPERFLAT"
	case StyleFlatLower:
		return "flatlower"
	default:
		return string(s)
	}
}

// Variant is a single rendering of a name.
type Variant struct {
	Style Style
	Value string
}

// 📚 VariantSet holds every rendering of one name
type VariantSet struct {
	Tokens []string

	Original       string
	TitleCase      string
	PascalCase     string
	CamelCase      string
	KebabCase      string
	SnakeCase      string
	UpperSnakeCase string
	UpperFlat      string
	FlatLower      string
}

// 🏭 BuildVariants tokenizes name and derives every casing variant.
func BuildVariants(name string) (VariantSet, error) {
	tokens, err := Tokenize(name)
	if err != nil {
		return VariantSet{}, errors.Errorf("tokenizing %q: %w", name, err)
	}
	if len(tokens) == 0 {
		return VariantSet{}, errors.Errorf("tokenizing %q: %w", name, ErrEmptyTokenSequence)
	}
	return FromTokens(name, tokens), nil
}

// FromTokens derives a VariantSet from an already tokenized name. original is
// carried through unmodified.
func FromTokens(original string, tokens []string) VariantSet {
	lower := make([]string, len(tokens))
	upper := make([]string, len(tokens))
	capitalized := make([]string, len(tokens))
	for i, t := range tokens {
		lower[i] = strings.ToLower(t)
		upper[i] = strings.ToUpper(t)
		capitalized[i] = Capitalize(t)
	}

	camel := lower[0] + strings.Join(capitalized[1:], "")

	return VariantSet{
		Tokens:         append([]string(nil), lower...),
		Original:       original,
		TitleCase:      strings.Join(capitalized, " "),
		PascalCase:     strings.Join(capitalized, ""),
		CamelCase:      camel,
		KebabCase:      strings.Join(lower, "-"),
		SnakeCase:      strings.Join(lower, "_"),
		UpperSnakeCase: strings.Join(upper, "_"),
		UpperFlat:      strings.Join(upper, ""),
		FlatLower:      strings.Join(lower, ""),
	}
}

// Capitalize upper-cases the first rune of s and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// Get returns the value rendered for style.
func (v VariantSet) Get(style Style) string {
	switch style {
	case StyleOriginal:
		return v.Original
	case StyleTitleCase:
		return v.TitleCase
	case StylePascalCase:
		return v.PascalCase
	case StyleCamelCase:
		return v.CamelCase
	case StyleKebabCase:
		return v.KebabCase
	case StyleSnakeCase:
		return v.SnakeCase
	case StyleUpperSnakeCase:
		return v.UpperSnakeCase
	case StyleUpperFlat:
		return v.UpperFlat
	case StyleFlatLower:
		return v.FlatLower
	default:
		return ""
	}
}

// Fields returns every variant in registration order, duplicates included.
func (v VariantSet) Fields() []Variant {
	out := make([]Variant, 0, len(Styles))
	for _, s := range Styles {
		out = append(out, Variant{Style: s, Value: v.Get(s)})
	}
	return out
}

// Values returns the distinct non-empty rendered strings in registration order.
func (v VariantSet) Values() []string {
	seen := make(map[string]struct{}, len(Styles))
	out := make([]string, 0, len(Styles))
	for _, f := range v.Fields() {
		if f.Value == "" {
			continue
		}
		if _, ok := seen[f.Value]; ok {
			continue
		}
		seen[f.Value] = struct{}{}
		out = append(out, f.Value)
	}
	return out
}
