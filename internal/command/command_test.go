// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v3"

	"github.com/staranto/blogctlgo/internal/api"
)

func TestPostPatch(t *testing.T) {
	patch, dirty := postPatch("new title", "", true, false)
	assert.True(t, dirty)
	assert.NotNil(t, patch.Title)
	assert.Equal(t, "new title", *patch.Title)
	assert.Nil(t, patch.Content)

	patch, dirty = postPatch("", "new body", false, true)
	assert.True(t, dirty)
	assert.Nil(t, patch.Title)
	assert.Equal(t, "new body", *patch.Content)

	_, dirty = postPatch("", "", false, false)
	assert.False(t, dirty)

	// An explicitly set empty title still travels.
	patch, dirty = postPatch("", "", true, false)
	assert.True(t, dirty)
	assert.Equal(t, "", *patch.Title)
}

func TestUserPatch(t *testing.T) {
	update, dirty := userPatch("gumby", "", true, false)
	assert.True(t, dirty)
	assert.Equal(t, "gumby", *update.Username)
	assert.Nil(t, update.Email)

	_, dirty = userPatch("", "", false, false)
	assert.False(t, dirty)
}

func TestApplyPatch(t *testing.T) {
	post := api.Post{ID: 7, Title: "old", Content: "body"}

	title := "new"
	got := applyPatch(post, api.PostUpdate{Title: &title})
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "body", got.Content)
	assert.Equal(t, 7, got.ID)

	// The original is untouched.
	assert.Equal(t, "old", post.Title)
}

func TestFriendlyAPI_Transport(t *testing.T) {
	err := &api.TransportError{Err: errors.New("dial tcp: connection refused")}

	got := FriendlyAPI(err, "http://localhost:8000", "list posts")
	assert.ErrorContains(t, got, "could not reach http://localhost:8000")
	// The raw dial error is noise at this level.
	assert.NotContains(t, got.Error(), "dial tcp")
}

func TestFriendlyAPI_Application(t *testing.T) {
	err := &api.Error{StatusCode: 403, Message: "You can only update your own posts!"}

	got := FriendlyAPI(err, "http://localhost:8000", "update post 7")
	assert.ErrorContains(t, got, "You can only update your own posts!")
	assert.ErrorContains(t, got, "update post 7")
}

func TestFriendlyAPI_Nil(t *testing.T) {
	assert.NoError(t, FriendlyAPI(nil, "http://localhost:8000", "noop"))
}

func TestOutputValidator(t *testing.T) {
	for _, v := range []string{"text", "json", "raw", "yaml"} {
		assert.NoError(t, OutputValidator(v))
	}
	assert.Error(t, OutputValidator("xml"))
}

func TestMustBePositiveValidator(t *testing.T) {
	assert.NoError(t, MustBePositiveValidator(1))
	assert.Error(t, MustBePositiveValidator(0))
	assert.Error(t, MustBePositiveValidator(-3))
}

func TestNewGlobalFlags_IncludesLocal(t *testing.T) {
	names := make(map[string]bool)
	for _, f := range NewGlobalFlags("pq") {
		for _, n := range f.Names() {
			names[n] = true
		}
	}

	// The output pipeline keys the local-time transform off this flag.
	assert.True(t, names["local"])
	for _, n := range []string{"attrs", "color", "filter", "output", "sort", "titles"} {
		assert.True(t, names[n], n)
	}
}

func TestGetMeta_Zero(t *testing.T) {
	m := GetMeta(nil)
	assert.Empty(t, m.Args)
}

func TestBuildAttrsDefaults(t *testing.T) {
	al := BuildAttrs(&cli.Command{}, "id", "title", "author.username:author")
	assert.Equal(t, 3, len(al))
	assert.Equal(t, "author", al[2].OutputKey)
}
