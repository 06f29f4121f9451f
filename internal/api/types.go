// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import "time"

// User is the public profile shape returned by the API. Email is only present
// on the caller's own profile.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	ImageFile string `json:"image_file,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
}

// UserCreate is the registration payload.
type UserCreate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate is a partial profile update. Nil fields are omitted from the
// request body.
type UserUpdate struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	ImageFile *string `json:"image_file,omitempty"`
}

// Token is the response of the password-grant login endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Post is a blog post with its author eagerly included.
type Post struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	UserID     int       `json:"user_id"`
	DatePosted time.Time `json:"date_posted"`
	Author     *User     `json:"author,omitempty"`
}

// PostCreate is the payload for creating a post. The server validates all
// three fields, author included, even though the token already identifies
// the caller.
type PostCreate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  int    `json:"user_id"`
}

// PostUpdate is a partial post update. The post identifier is never part of
// the body; it rides on the URL only.
type PostUpdate struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}
