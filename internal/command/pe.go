// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/blogctlgo/internal/api"
	"github.com/staranto/blogctlgo/internal/diffview"
	"github.com/staranto/blogctlgo/internal/meta"
	"github.com/staranto/blogctlgo/internal/tui"
)

// PeCommandAction is the action handler for the "pe" subcommand. It PATCHes
// only the fields the user provided; --diff previews the change against the
// server's current copy and asks before submitting.
func PeCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "pe") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(api.Post{})) {
		return nil
	}

	id := cmd.Int("id")
	if id < 1 {
		return errors.New("a post --id is required")
	}

	patch, dirty := postPatch(
		cmd.String("title"), cmd.String("content"),
		cmd.IsSet("title"), cmd.IsSet("content"),
	)
	if !dirty {
		return errors.New("nothing to change. Provide --title and/or --content")
	}

	client, sess, err := InitSession(cmd)
	if err != nil {
		return err
	}

	user := sess.CurrentUser(ctx)
	if user == nil {
		return errors.New("not logged in. Run `blogctl login` first")
	}

	if cmd.Bool("diff") {
		proceed, err := previewPatch(ctx, client, cmd, id, patch)
		if err != nil {
			return err
		}
		if !proceed {
			return nil
		}
	}

	post, err := client.UpdatePost(ctx, id, patch)
	if err != nil {
		return FriendlyAPI(err, client.BaseURL(), fmt.Sprintf("update post %d", id))
	}

	tui.Success(os.Stdout, "Post %d updated.", post.ID)

	attrs := BuildAttrs(cmd, "id", "title", "content:content:40", "date_posted:posted:h")
	return emitPost(post, attrs, cmd)
}

// postPatch folds the provided flag values into a sparse update. Only fields
// the user actually set travel on the wire, so an empty --title is an
// explicit (if unwise) request, not an accident.
func postPatch(title, content string, titleSet, contentSet bool) (api.PostUpdate, bool) {
	var patch api.PostUpdate
	if titleSet {
		patch.Title = &title
	}
	if contentSet {
		patch.Content = &content
	}
	return patch, titleSet || contentSet
}

// applyPatch returns a copy of the post with the update folded in, for the
// client-side preview only. The server remains the authority on the result.
func applyPatch(post api.Post, patch api.PostUpdate) api.Post {
	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	return post
}

// previewPatch fetches the current post, renders the would-be change, and
// asks for confirmation. Returns false when there is nothing to do or the
// user backs out.
func previewPatch(
	ctx context.Context,
	client *api.Client,
	cmd *cli.Command,
	id int,
	patch api.PostUpdate,
) (bool, error) {
	current, err := client.Post(ctx, id)
	if err != nil {
		return false, FriendlyAPI(err, client.BaseURL(), fmt.Sprintf("read post %d", id))
	}

	before, err := json.Marshal(current)
	if err != nil {
		return false, fmt.Errorf("failed to marshal post: %w", err)
	}
	after, err := json.Marshal(applyPatch(*current, patch))
	if err != nil {
		return false, fmt.Errorf("failed to marshal patched post: %w", err)
	}

	text, changed, err := diffview.Render(before, after, cmd.Bool("color"))
	if err != nil {
		return false, err
	}
	if !changed {
		tui.Warn(os.Stderr, "No changes to post %d.", id)
		return false, nil
	}

	fmt.Fprint(os.Stdout, text)

	if cmd.Bool("force") {
		return true, nil
	}
	return tui.Confirm(fmt.Sprintf("Submit these changes to post %d?", id))
}

// PeCommandBuilder constructs the cli.Command for "pe".
func PeCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "pe",
		Usage:     "post edit",
		UsageText: "blogctl pe --id <id> [--title <title>] [--content <content>] [options]",
		Flags: []cli.Flag{
			NewHostFlag("pe", meta.Config.Source),
			NewIDFlag("id of the post to edit"),
			&cli.StringFlag{
				Name:  "title",
				Usage: "replacement title",
			},
			&cli.StringFlag{
				Name:  "content",
				Usage: "replacement body",
			},
			&cli.BoolFlag{
				Name:        "diff",
				Usage:       "preview the change and confirm before submitting",
				HideDefault: true,
			},
			forceFlag,
		},
		Action: PeCommandAction,
		Meta:   meta,
	}).Build()
}
