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

package text

import (
	"strings"

	"github.com/walteh/rebrand/pkg/plan"
)

// SequentialReplacer applies each pair in plan order to the output of the
// previous pair.
//
// A pair can match text inserted by an earlier pair's To. Longest-first
// ordering makes this unlikely for brand names but does not rule it out;
// SinglePassReplacer does not have this problem.
type SequentialReplacer struct{}

// NewSequentialReplacer creates a new SequentialReplacer
func NewSequentialReplacer() *SequentialReplacer {
	return &SequentialReplacer{}
}

// Apply implements Replacer.Apply
func (r *SequentialReplacer) Apply(content string, p plan.Plan) Result {
	result := Result{Original: content}

	current := content
	for _, pair := range p {
		// ReplaceAll with an empty old string would insert between every rune
		if pair.From == "" {
			continue
		}

		n := strings.Count(current, pair.From)
		if n == 0 {
			continue
		}

		current = strings.ReplaceAll(current, pair.From, pair.To)
		result.ReplacementsMade += n
	}

	result.Updated = current
	return result
}
