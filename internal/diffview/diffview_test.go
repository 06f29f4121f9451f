// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package diffview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	before := []byte(`{"title":"old title","content":"body"}`)
	after := []byte(`{"title":"new title","content":"body"}`)

	text, changed, err := Render(before, after, false)
	assert.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, text, "old title")
	assert.Contains(t, text, "new title")
}

func TestRender_NoChange(t *testing.T) {
	doc := []byte(`{"title":"same","content":"body"}`)

	text, changed, err := Render(doc, doc, false)
	assert.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, text)
}

func TestRender_BadJSON(t *testing.T) {
	_, _, err := Render([]byte(`{`), []byte(`{}`), false)
	assert.Error(t, err)
}
