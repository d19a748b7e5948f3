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

// Package text applies replacement plans to text and audits text for
// leftover patterns.
package text

import (
	"strings"

	"github.com/walteh/rebrand/pkg/plan"
	"gitlab.com/tozd/go/errors"
)

// Mode selects a replacement strategy.
type Mode string

const (
	// ModeSinglePass matches every pattern in one scan over the input.
	ModeSinglePass Mode = "single-pass"
	// ModeSequential applies each pair to the output of the previous one.
	ModeSequential Mode = "sequential"
)

// ParseMode converts a user supplied string into a Mode. An empty string
// selects ModeSinglePass.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSinglePass:
		return ModeSinglePass, nil
	case ModeSequential:
		return ModeSequential, nil
	default:
		return "", errors.Errorf("unknown replace mode %q (want %q or %q)", s, ModeSinglePass, ModeSequential)
	}
}

// 📄 Result contains the outcome of applying a plan to one block of text
type Result struct {
	// Original is the content before replacements
	Original string

	// Updated is the content after replacements
	Updated string

	// ReplacementsMade is the number of substitutions across all pairs
	ReplacementsMade int
}

// Changed reports whether the content differs after replacement.
func (r Result) Changed() bool {
	return r.Original != r.Updated
}

// 🔄 Replacer applies a replacement plan to text.
//
// Implementations are pure: the same content and plan always produce the
// same Result, and no input causes an error.
type Replacer interface {
	Apply(content string, p plan.Plan) Result
}

// 🏭 NewReplacer returns the Replacer for mode
func NewReplacer(mode Mode) (Replacer, error) {
	switch mode {
	case ModeSinglePass, "":
		return NewSinglePassReplacer(), nil
	case ModeSequential:
		return NewSequentialReplacer(), nil
	default:
		return nil, errors.Errorf("unknown replace mode %q", mode)
	}
}
