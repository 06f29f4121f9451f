// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"title": "zebra", "id": 3.0, "author": "ann"},
		{"title": "alpha", "id": 1.0, "author": "bob"},
		{"title": "beta", "id": 2.0, "author": "ann"},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{
			name:      "ascending by title",
			spec:      "title",
			wantOrder: []string{"alpha", "beta", "zebra"},
		},
		{
			name:      "descending by title",
			spec:      "-title",
			wantOrder: []string{"zebra", "beta", "alpha"},
		},
		{
			name:      "ascending by id",
			spec:      "id",
			wantOrder: []string{"alpha", "beta", "zebra"},
		},
		{
			name:      "descending by id",
			spec:      "-id",
			wantOrder: []string{"zebra", "beta", "alpha"},
		},
		{
			name:      "case sensitive",
			spec:      "!title",
			wantOrder: []string{"alpha", "beta", "zebra"},
		},
		{
			name:      "multiple fields",
			spec:      "author,id",
			wantOrder: []string{"beta", "zebra", "alpha"},
		},
		{
			name:      "empty spec",
			spec:      "",
			wantOrder: []string{"zebra", "alpha", "beta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, expectedTitle := range tt.wantOrder {
				assert.Equal(t, expectedTitle, data[i]["title"], "at index %d", i)
			}
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{
			name:  "string",
			value: "hello",
			want:  "hello",
		},
		{
			name:  "int",
			value: 42,
			want:  "42",
		},
		{
			name:  "float64",
			value: 42.7,
			want:  "43",
		},
		{
			name:  "bool true",
			value: true,
			want:  "true",
		},
		{
			name:  "nil default",
			value: nil,
			want:  "",
		},
		{
			name:     "nil custom",
			value:    nil,
			emptyVal: "-",
			want:     "-",
		},
		{
			name:  "slice",
			value: []string{"a", "b"},
			want:  `["a","b"]`,
		},
		{
			name:  "zero value int",
			value: 0,
			want:  "",
		},
		{
			name:     "zero value with custom empty",
			value:    0,
			emptyVal: "N/A",
			want:     "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTag(t *testing.T) {
	tests := []struct {
		name string
		h    string
		s    string
		want Tag
	}{
		{
			name: "simple attr",
			s:    "title",
			want: Tag{Name: "title"},
		},
		{
			name: "omitempty stripped",
			s:    "email,omitempty",
			want: Tag{Name: "email"},
		},
		{
			name: "with holder",
			h:    "author",
			s:    "username",
			want: Tag{Name: "author.username"},
		},
		{
			name: "skipped field",
			s:    "-",
			want: Tag{},
		},
		{
			name: "empty string",
			s:    "",
			want: Tag{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTag(tt.h, tt.s)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDumpSchemaWalker(t *testing.T) {
	type Author struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
	}

	type Entry struct {
		Title    string  `json:"title"`
		Author   *Author `json:"author,omitempty"`
		Internal string  `json:"-"`
		Untagged string
	}

	tags := DumpSchemaWalker("", reflect.TypeOf(Entry{}), 0)

	var names []string
	for _, tag := range tags {
		names = append(names, tag.Name)
	}

	assert.Contains(t, names, "title")
	assert.Contains(t, names, "author")
	// Pointer-to-struct fields are walked one level deep.
	assert.Contains(t, names, "author.username")
	assert.Contains(t, names, "author.id")
	// Skipped and untagged fields never show up.
	assert.NotContains(t, names, "-")
	assert.NotContains(t, names, "Untagged")
}
