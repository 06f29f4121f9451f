// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/blogctlgo/internal/cacheutil"
	"github.com/staranto/blogctlgo/internal/config"
	"github.com/staranto/blogctlgo/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	// Save the CWD at startup and then defer restoring it so we're tidy.
	sd, _ := os.Getwd()
	defer func() {
		if err := os.Chdir(sd); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to restore directory: %v\n", err)
		}
	}()

	// The arg[1] immediately following the binary (arg[0]) is the blogctl
	// subcommand and also represents the namespace key to be used when retrieving
	// config values. arg[1] could be -h/--help, so ignore it if it appears to be
	// a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, _ := config.Load(ns)
	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	// Expire stale cache entries on the way in.
	if hours, err := config.GetInt("cache.clean", 0); err == nil && hours > 0 {
		_ = cacheutil.Purge(hours)
	}

	app := &cli.Command{
		Name:  "blogctl",
		Usage: "Blog Control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "blogctl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		SignupCommandBuilder(app, meta),
		LoginCommandBuilder(app, meta),
		LogoutCommandBuilder(app, meta),
		UqCommandBuilder(app, meta),
		UeCommandBuilder(app, meta),
		PqCommandBuilder(app, meta),
		PnCommandBuilder(app, meta),
		PeCommandBuilder(app, meta),
		PdCommandBuilder(app, meta),
		CompletionCommandBuilder(app, meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
