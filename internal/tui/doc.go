// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package tui implements the small interactive pieces of blogctl: the login
// form, confirmation dialogs, and styled notices.
package tui
