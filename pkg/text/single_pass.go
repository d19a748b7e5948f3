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

// SinglePassReplacer scans the original content once, left to right. At each
// position the first pair in plan order whose From matches is substituted
// and the scan resumes after the match, so every input byte is consumed at
// most once and replacement output is never rescanned.
type SinglePassReplacer struct{}

// NewSinglePassReplacer creates a new SinglePassReplacer
func NewSinglePassReplacer() *SinglePassReplacer {
	return &SinglePassReplacer{}
}

// Apply implements Replacer.Apply
func (r *SinglePassReplacer) Apply(content string, p plan.Plan) Result {
	result := Result{Original: content, Updated: content}

	pairs := make([]plan.Pair, 0, len(p))
	var firstBytes [256]bool
	for _, pair := range p {
		if pair.From == "" {
			continue
		}
		pairs = append(pairs, pair)
		firstBytes[pair.From[0]] = true
	}
	if len(pairs) == 0 || content == "" {
		return result
	}

	var b strings.Builder
	b.Grow(len(content))

	last := 0 // start of the pending unmatched run
	for i := 0; i < len(content); {
		if !firstBytes[content[i]] {
			i++
			continue
		}

		matched := false
		for _, pair := range pairs {
			if strings.HasPrefix(content[i:], pair.From) {
				b.WriteString(content[last:i])
				b.WriteString(pair.To)
				i += len(pair.From)
				last = i
				result.ReplacementsMade++
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}

	if result.ReplacementsMade == 0 {
		return result
	}

	b.WriteString(content[last:])
	result.Updated = b.String()
	return result
}
