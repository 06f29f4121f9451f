// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/blogctlgo/internal/api"
	"github.com/staranto/blogctlgo/internal/meta"
	"github.com/staranto/blogctlgo/internal/tui"
)

// SignupCommandAction registers a new account and logs it in right away, so
// the next command already has a session.
func SignupCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "signup") {
		return nil
	}

	email := strings.TrimSpace(cmd.String("email"))
	if email == "" {
		return errors.New("an --email is required")
	}

	client, sess, err := InitSession(cmd)
	if err != nil {
		return err
	}

	username, password, err := tui.Credentials(cmd.String("username"))
	if err != nil {
		return err
	}

	user, err := client.Register(ctx, api.UserCreate{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return FriendlyAPI(err, client.BaseURL(), "sign up")
	}

	tui.Success(os.Stdout, "Account %s created.", user.Username)

	// Registration doesn't hand back a token, so log in with the same
	// credentials.
	token, err := client.Login(ctx, username, password)
	if err != nil {
		tui.Warn(os.Stderr, "Account created but login failed. Run `blogctl login`.")
		return nil
	}
	if err := sess.SetToken(token.AccessToken); err != nil {
		return err
	}
	sess.ClearUserCache()

	tui.Success(os.Stdout, "Logged in as %s.", user.Username)
	return nil
}

// SignupCommandBuilder constructs the cli.Command for "signup".
func SignupCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "signup",
		Usage:     "create a new account",
		UsageText: "blogctl signup --email <email> [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewHostFlag("signup", meta.Config.Source),
			&cli.StringFlag{
				Name:  "email",
				Usage: "email address for the new account",
			},
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "username for the new account",
			},
			tldrFlag,
		},
		Action: SignupCommandAction,
	}
}
