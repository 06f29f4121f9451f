// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Login exchanges credentials for a bearer token via the OAuth2 password
// grant endpoint. The token is not installed on the client; callers decide
// where it lives.
func (c *Client) Login(ctx context.Context, username, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var token Token
	if err := c.doForm(ctx, "/api/users/token", form, &token); err != nil {
		return nil, err
	}

	return &token, nil
}

// Register creates a new account and returns the created profile.
func (c *Client) Register(ctx context.Context, create UserCreate) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/api/users", create, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser returns the profile of the token's owner.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateCurrentUser applies a partial profile update.
func (c *Client) UpdateCurrentUser(ctx context.Context, update UserUpdate) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPatch, "/api/users/me", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// User returns another user's public profile.
func (c *Client) User(ctx context.Context, id int) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
