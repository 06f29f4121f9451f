// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/blogctlgo/internal/api"
	"github.com/staranto/blogctlgo/internal/meta"
	"github.com/staranto/blogctlgo/internal/tui"
)

// UqCommandAction is the action handler for the "uq" subcommand. It reports
// the authenticated user via the session cache, so repeated lookups within a
// process share a single request.
func UqCommandAction(ctx context.Context, cmd *cli.Command) error {
	client, sess, err := InitSession(cmd)
	if err != nil {
		return err
	}

	runner := &QueryActionRunner[*api.User]{
		CommandName:  "uq",
		SchemaType:   reflect.TypeOf(api.User{}),
		DefaultAttrs: []string{"id", "username", "email"},
		FetchFn: func(ctx context.Context, cmd *cli.Command) (
			[]*api.User,
			error,
		) {
			// --id looks up any user's public profile instead of the session.
			if id := cmd.Int("id"); id > 0 {
				user, err := client.User(ctx, id)
				if err != nil {
					return nil, FriendlyAPI(err, client.BaseURL(), fmt.Sprintf("look up user %d", id))
				}
				return []*api.User{user}, nil
			}

			user := sess.CurrentUser(ctx)
			if user == nil {
				// No session, expired session, or unreachable server. Either
				// way there is nobody to report, and that's not an error.
				tui.Warn(os.Stderr, "Not logged in.")
				return nil, nil
			}
			log.Debugf("current user: %s", user.Username)
			return []*api.User{user}, nil
		},
	}
	return runner.Run(ctx, cmd)
}

// UqCommandBuilder constructs the cli.Command for "uq".
func UqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "uq",
		Usage:     "user query (who am I)",
		UsageText: "blogctl uq [options]",
		Flags: []cli.Flag{
			NewHostFlag("uq", meta.Config.Source),
			NewIDFlag("look up a user by id instead of the session"),
		},
		Action: UqCommandAction,
		Meta:   meta,
	}).Build()
}
