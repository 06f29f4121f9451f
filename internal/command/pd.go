// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/blogctlgo/internal/meta"
	"github.com/staranto/blogctlgo/internal/tui"
)

// PdCommandAction is the action handler for the "pd" subcommand. Deletion is
// confirmed unless --force; on success the user lands back at the site root.
func PdCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "pd") {
		return nil
	}

	id := cmd.Int("id")
	if id < 1 {
		return errors.New("a post --id is required")
	}

	client, sess, err := InitSession(cmd)
	if err != nil {
		return err
	}

	user := sess.CurrentUser(ctx)
	if user == nil {
		return errors.New("not logged in. Run `blogctl login` first")
	}

	if !cmd.Bool("force") {
		proceed, err := tui.Confirm(fmt.Sprintf("Delete post %d? This cannot be undone.", id))
		if err != nil {
			return err
		}
		if !proceed {
			return nil
		}
	}

	if err := client.DeletePost(ctx, id); err != nil {
		return FriendlyAPI(err, client.BaseURL(), fmt.Sprintf("delete post %d", id))
	}

	tui.Success(os.Stdout, "Post %d deleted.", id)
	fmt.Fprintln(os.Stdout, client.BaseURL())

	return nil
}

// PdCommandBuilder constructs the cli.Command for "pd".
func PdCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "pd",
		Usage:     "post delete",
		UsageText: "blogctl pd --id <id> [--force]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewHostFlag("pd", meta.Config.Source),
			NewIDFlag("id of the post to delete"),
			forceFlag,
			tldrFlag,
		},
		Action: PdCommandAction,
	}
}
