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

// Package plan pairs the casing variants of two names into an ordered list
// of literal replacements.
package plan

import (
	"sort"

	"github.com/walteh/rebrand/pkg/naming"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Pair is a single literal replacement
type Pair struct {
	From        string
	To          string
	Description string
}

// Plan is an ordered list of pairs. From values are unique and sorted by
// descending length.
type Plan []Pair

// 📦 Result is a plan together with the variants it was built from
type Result struct {
	Pairs Plan
	From  naming.VariantSet
	To    naming.VariantSet
}

// Patterns returns the legacy strings that must be absent after a rewrite.
func (r *Result) Patterns() []string {
	return r.From.Values()
}

// 🏗️ Build derives the replacement plan that renames from to to.
//
// One candidate pair is produced per style, in naming.Styles order. Pairs
// with an empty From or From == To are dropped. When two styles render the
// same From, the first registered one wins. The survivors are sorted by
// descending From length; ties keep registration order.
func Build(from, to string) (*Result, error) {
	fromSet, err := naming.BuildVariants(from)
	if err != nil {
		return nil, errors.Errorf("building variants for from name: %w", err)
	}
	toSet, err := naming.BuildVariants(to)
	if err != nil {
		return nil, errors.Errorf("building variants for to name: %w", err)
	}

	return &Result{
		Pairs: FromVariants(fromSet, toSet),
		From:  fromSet,
		To:    toSet,
	}, nil
}

// FromVariants builds the ordered plan for two already derived variant sets.
func FromVariants(from, to naming.VariantSet) Plan {
	seen := make(map[string]struct{}, len(naming.Styles))
	pairs := make(Plan, 0, len(naming.Styles))

	for _, style := range naming.Styles {
		f, t := from.Get(style), to.Get(style)
		if f == "" || f == t {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		pairs = append(pairs, Pair{From: f, To: t, Description: style.Description()})
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return len(pairs[i].From) > len(pairs[j].From)
	})

	return pairs
}
