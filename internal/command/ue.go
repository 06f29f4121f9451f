// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"os"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/blogctlgo/internal/api"
	"github.com/staranto/blogctlgo/internal/meta"
	"github.com/staranto/blogctlgo/internal/output"
	"github.com/staranto/blogctlgo/internal/tui"
)

// UeCommandAction is the action handler for the "ue" subcommand. It PATCHes
// the authenticated user's profile with the provided fields only.
func UeCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "ue") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(api.User{})) {
		return nil
	}

	update, dirty := userPatch(
		cmd.String("username"), cmd.String("email"),
		cmd.IsSet("username"), cmd.IsSet("email"),
	)
	if !dirty {
		return errors.New("nothing to change. Provide --username and/or --email")
	}

	client, sess, err := InitSession(cmd)
	if err != nil {
		return err
	}

	if user := sess.CurrentUser(ctx); user == nil {
		return errors.New("not logged in. Run `blogctl login` first")
	}

	user, err := client.UpdateCurrentUser(ctx, update)
	if err != nil {
		return FriendlyAPI(err, client.BaseURL(), "update profile")
	}

	// The cached profile is stale now.
	sess.ClearUserCache()

	tui.Success(os.Stdout, "Profile updated.")

	attrs := BuildAttrs(cmd, "id", "username", "email")
	return output.EmitJSONSlice([]*api.User{user}, attrs, cmd, os.Stdout)
}

// userPatch folds the provided flag values into a sparse profile update.
func userPatch(username, email string, usernameSet, emailSet bool) (api.UserUpdate, bool) {
	var update api.UserUpdate
	if usernameSet {
		update.Username = &username
	}
	if emailSet {
		update.Email = &email
	}
	return update, usernameSet || emailSet
}

// UeCommandBuilder constructs the cli.Command for "ue".
func UeCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "ue",
		Usage:     "user edit",
		UsageText: "blogctl ue [--username <username>] [--email <email>] [options]",
		Flags: []cli.Flag{
			NewHostFlag("ue", meta.Config.Source),
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "replacement username",
			},
			&cli.StringFlag{
				Name:  "email",
				Usage: "replacement email address",
			},
		},
		Action: UeCommandAction,
		Meta:   meta,
	}).Build()
}
