// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package diffview renders a readable diff between two JSON documents, used
// to preview an edit before it is submitted.
package diffview

import (
	"encoding/json"
	"fmt"

	gojsondiff "github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Render compares two JSON objects and returns an ascii diff plus whether
// anything actually changed.
func Render(before, after []byte, color bool) (string, bool, error) {
	diff, err := gojsondiff.New().Compare(before, after)
	if err != nil {
		return "", false, fmt.Errorf("failed to compare documents: %w", err)
	}

	if !diff.Modified() {
		return "", false, nil
	}

	var left map[string]interface{}
	if err := json.Unmarshal(before, &left); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal left document: %w", err)
	}

	text, err := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       color,
	}).Format(diff)
	if err != nil {
		return "", false, fmt.Errorf("failed to format diff: %w", err)
	}

	return text, true, nil
}
