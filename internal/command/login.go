// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/blogctlgo/internal/meta"
	"github.com/staranto/blogctlgo/internal/tui"
)

// LoginCommandAction is the action handler for the "login" subcommand. It
// collects credentials, exchanges them for a bearer token, and persists the
// token for the other commands.
func LoginCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "login") {
		return nil
	}

	client, sess, err := InitSession(cmd)
	if err != nil {
		return err
	}

	username, password, err := tui.Credentials(cmd.String("username"))
	if err != nil {
		return err
	}

	token, err := client.Login(ctx, username, password)
	if err != nil {
		return FriendlyAPI(err, client.BaseURL(), "log in")
	}

	if err := sess.SetToken(token.AccessToken); err != nil {
		return err
	}

	// A new identity invalidates whatever profile was cached before.
	sess.ClearUserCache()

	if user := sess.CurrentUser(ctx); user != nil {
		tui.Success(os.Stdout, "Logged in as %s.", user.Username)
	} else {
		tui.Success(os.Stdout, "Logged in as %s.", username)
	}

	return nil
}

// LoginCommandBuilder constructs the cli.Command for "login".
func LoginCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "login",
		Usage:     "log in to the blog",
		UsageText: "blogctl login [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewHostFlag("login", meta.Config.Source),
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "username to log in with",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("BLOGCTL_USERNAME"),
				),
			},
			tldrFlag,
		},
		Action: LoginCommandAction,
	}
}
