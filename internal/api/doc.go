// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package api implements the typed HTTP client for the blog platform REST
// API: authentication, users, and posts.
package api
