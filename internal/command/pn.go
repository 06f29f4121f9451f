// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/blogctlgo/internal/api"
	"github.com/staranto/blogctlgo/internal/meta"
	"github.com/staranto/blogctlgo/internal/tui"
)

// PnCommandAction is the action handler for the "pn" subcommand. It creates a
// new post from --title and --content (or stdin) and emits the created post.
func PnCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "pn") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(api.Post{})) {
		return nil
	}

	client, sess, err := InitSession(cmd)
	if err != nil {
		return err
	}

	user := sess.CurrentUser(ctx)
	if user == nil {
		return errors.New("not logged in. Run `blogctl login` first")
	}

	title := strings.TrimSpace(cmd.String("title"))
	if title == "" {
		return errors.New("a title is required")
	}

	content := cmd.String("content")
	if content == "" {
		// No --content means the body arrives on stdin, which also covers
		// `blogctl pn --title t < draft.md`.
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read post content: %w", err)
		}
		content = string(raw)
	}
	if strings.TrimSpace(content) == "" {
		return errors.New("post content is empty")
	}

	post, err := client.CreatePost(ctx, api.PostCreate{
		Title:   title,
		Content: content,
		UserID:  user.ID,
	})
	if err != nil {
		return FriendlyAPI(err, client.BaseURL(), "create post")
	}

	tui.Success(os.Stdout, "Created post %d.", post.ID)

	attrs := BuildAttrs(cmd, "id", "title", "author.username:author", "date_posted:posted:h")
	return emitPost(post, attrs, cmd)
}

// PnCommandBuilder constructs the cli.Command for "pn".
func PnCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "pn",
		Usage:     "post new",
		UsageText: "blogctl pn --title <title> [--content <content>] [options]",
		Flags: []cli.Flag{
			NewHostFlag("pn", meta.Config.Source),
			&cli.StringFlag{
				Name:  "title",
				Usage: "title of the new post",
			},
			&cli.StringFlag{
				Name:  "content",
				Usage: "body of the new post. Reads stdin when omitted",
			},
		},
		Action: PnCommandAction,
		Meta:   meta,
	}).Build()
}
