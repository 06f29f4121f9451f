// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package version carries the build version string, overridden at link time.
package version

// Version is stamped by the release workflow via -ldflags.
var Version = "dev"
