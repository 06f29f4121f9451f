// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentUser(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/users/me", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"username":"ann","email":"ann@example.com"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithToken("abc"))
	user, err := c.CurrentUser(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "ann", user.Username)
}

func TestCurrentUser_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithToken("expired"))
	user, err := c.CurrentUser(context.Background())
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	var apiErr *Error
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Could not validate credentials", apiErr.Message)
	assert.False(t, IsTransport(err))
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "ann", r.PostForm.Get("username"))
		assert.Equal(t, "hunter22", r.PostForm.Get("password"))
		_, _ = w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	token, err := c.Login(context.Background(), "ann", "hunter22")
	assert.NoError(t, err)
	assert.Equal(t, "tok-1", token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
}

func TestUpdatePost_ExcludesIdentifier(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/posts/7", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"id":7,"title":"new title","content":"body","user_id":1}`))
	}))
	defer srv.Close()

	title := "new title"
	c := NewClient(srv.URL, WithToken("abc"))
	post, err := c.UpdatePost(context.Background(), 7, PostUpdate{Title: &title})
	assert.NoError(t, err)
	assert.Equal(t, "new title", post.Title)

	// Only the provided field travels; no id, no nil content.
	assert.Equal(t, map[string]any{"title": "new title"}, gotBody)
}

func TestCreatePost_CarriesAuthor(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/posts", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":9,"title":"Hello","content":"First.","user_id":4}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithToken("abc"))
	post, err := c.CreatePost(context.Background(), PostCreate{
		Title:   "Hello",
		Content: "First.",
		UserID:  4,
	})
	assert.NoError(t, err)
	assert.Equal(t, 9, post.ID)

	// The server requires the author in the body; user_id must travel even
	// when it is redundant with the bearer token.
	assert.Equal(t, map[string]any{
		"title":   "Hello",
		"content": "First.",
		"user_id": float64(4),
	}, gotBody)
}

func TestUpdatePost_ApplicationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail":"Not your post"}`))
	}))
	defer srv.Close()

	title := "x"
	c := NewClient(srv.URL, WithToken("abc"))
	_, err := c.UpdatePost(context.Background(), 7, PostUpdate{Title: &title})

	var apiErr *Error
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Not your post", apiErr.Message)
}

func TestDeletePost(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    bool
		wantErrMsg string
	}{
		{
			name:   "no content success",
			status: http.StatusNoContent,
		},
		{
			name:       "not found",
			status:     http.StatusNotFound,
			body:       `{"message":"not found"}`,
			wantErr:    true,
			wantErrMsg: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, WithToken("abc"))
			err := c.DeletePost(context.Background(), 3)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var apiErr *Error
			assert.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.wantErrMsg, apiErr.Message)
			// The "message" key works as well as FastAPI's "detail".
			assert.True(t, errors.Is(err, ErrNotFound))
		})
	}
}

func TestTransportFailure(t *testing.T) {
	// A server that is immediately closed produces a connection error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, WithToken("abc"))
	_, err := c.Posts(context.Background())
	assert.Error(t, err)
	assert.True(t, IsTransport(err))

	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, defaultHost, c.BaseURL())

	c = NewClient("https://blog.example.com/")
	assert.Equal(t, "https://blog.example.com", c.BaseURL())
}
