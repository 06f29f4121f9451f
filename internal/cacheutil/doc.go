// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cacheutil provides the hashed-key file cache used to avoid
// re-fetching read-only API responses.
package cacheutil
