// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package session owns the persisted bearer token and the in-memory cached
// profile of the authenticated user, coalescing concurrent lookups so at most
// one who-am-I request is in flight at a time.
package session
