// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/blogctlgo/internal/meta"
	"github.com/staranto/blogctlgo/internal/tui"
)

// LogoutCommandAction drops the stored token and the cached profile, then
// points the user back at the site root. The token is gone even if it was
// never there to begin with.
func LogoutCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "logout") {
		return nil
	}

	client, sess, err := InitSession(cmd)
	if err != nil {
		return err
	}

	if err := sess.Logout(); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}

	tui.Success(os.Stdout, "Logged out.")
	fmt.Fprintln(os.Stdout, client.BaseURL())

	return nil
}

// LogoutCommandBuilder constructs the cli.Command for "logout".
func LogoutCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "logout",
		Usage:     "log out of the blog",
		UsageText: "blogctl logout",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewHostFlag("logout", meta.Config.Source),
			tldrFlag,
		},
		Action: LogoutCommandAction,
	}
}
