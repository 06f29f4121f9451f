// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
)

// Posts lists all posts, newest first, authors included.
func (c *Client) Posts(ctx context.Context) ([]*Post, error) {
	var posts []*Post
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UserPosts lists the posts authored by one user.
func (c *Client) UserPosts(ctx context.Context, userID int) ([]*Post, error) {
	var posts []*Post
	path := fmt.Sprintf("/api/users/%d/posts", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Post returns a single post by id.
func (c *Client) Post(ctx context.Context, id int) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost creates a post owned by the token's user.
func (c *Client) CreatePost(ctx context.Context, create PostCreate) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodPost, "/api/posts", create, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost applies a partial update. Only the fields set in update travel
// in the body; the identifier stays on the URL.
func (c *Client) UpdatePost(ctx context.Context, id int, update PostUpdate) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/posts/%d", id), update, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post. The server answers 204 with no body on success.
func (c *Client) DeletePost(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), nil, nil)
}
