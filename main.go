// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/staranto/blogctlgo/internal/cacheutil"
	"github.com/staranto/blogctlgo/internal/command"
	mylog "github.com/staranto/blogctlgo/internal/log"
	"github.com/staranto/blogctlgo/internal/tui"
	"github.com/staranto/blogctlgo/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	// Best-effort: pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		// Non-fatal: print to stderr and continue.
		fmt.Fprintln(os.Stderr, err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		tui.Error(os.Stderr, "%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		tui.Error(os.Stderr, "%v", err)
		return 2
	}

	return 0
}
