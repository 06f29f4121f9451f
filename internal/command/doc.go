// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package command wires the blogctl subcommands, their flags, and the shared
// query/output plumbing.
package command
