// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/blogctlgo/internal/api"
	"github.com/staranto/blogctlgo/internal/cacheutil"
	"github.com/staranto/blogctlgo/internal/meta"
)

// PqCommandAction is the action handler for the "pq" subcommand. It lists
// posts (all, one by --id, or one author's by --user) and emits output per
// common flags. List responses are cached on disk keyed by the request URL.
func PqCommandAction(ctx context.Context, cmd *cli.Command) error {
	client, sess, err := InitSession(cmd)
	if err != nil {
		return err
	}

	// Reading posts is public, but an authenticated session gives the server
	// a chance to decorate the response for the viewer.
	if token, err := sess.Token(); err == nil && token != "" {
		client.SetToken(token)
	}

	runner := &QueryActionRunner[*api.Post]{
		CommandName:  "pq",
		SchemaType:   reflect.TypeOf(api.Post{}),
		DefaultAttrs: []string{"id", "title", "author.username:author", "date_posted:posted:h"},
		FetchFn: func(ctx context.Context, cmd *cli.Command) (
			[]*api.Post,
			error,
		) {
			posts, key, err := fetchPosts(ctx, client, cmd)
			if err != nil {
				return nil, FriendlyAPI(err, client.BaseURL(), "list posts")
			}

			if limit := cmd.Int("limit"); limit > 0 && len(posts) > limit {
				posts = posts[:limit]
			}

			if key != "" {
				if data, err := json.Marshal(posts); err == nil {
					if err := cacheutil.Write([]string{"pq"}, key, data); err != nil {
						log.WithError(err).Warn("failed to cache posts")
					}
				}
			}

			return posts, nil
		},
	}
	return runner.Run(ctx, cmd)
}

// fetchPosts resolves the flag combination to the right endpoint. The cache
// key is only returned for cacheable (list) requests; a hit is returned
// directly without touching the network.
func fetchPosts(ctx context.Context, client *api.Client, cmd *cli.Command) ([]*api.Post, string, error) {
	if id := cmd.Int("id"); id > 0 {
		post, err := client.Post(ctx, id)
		if err != nil {
			return nil, "", err
		}
		return []*api.Post{post}, "", nil
	}

	var key string
	if user := cmd.Int("user"); user > 0 {
		key = fmt.Sprintf("%s/api/users/%d/posts", client.BaseURL(), user)
	} else {
		key = client.BaseURL() + "/api/posts"
	}

	if entry, ok := cacheutil.Read([]string{"pq"}, key); ok {
		var posts []*api.Post
		if err := json.Unmarshal(entry.Data, &posts); err == nil {
			log.Debugf("cache hit for %s", key)
			return posts, "", nil
		}
		log.Debugf("discarding unreadable cache entry %s", entry.Path)
	}

	var (
		posts []*api.Post
		err   error
	)
	if user := cmd.Int("user"); user > 0 {
		posts, err = client.UserPosts(ctx, user)
	} else {
		posts, err = client.Posts(ctx)
	}

	return posts, key, err
}

// PqCommandBuilder constructs the cli.Command for "pq".
func PqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "pq",
		Usage:     "post query",
		UsageText: "blogctl pq [options]",
		Flags: []cli.Flag{
			NewHostFlag("pq", meta.Config.Source),
			NewIDFlag("show a single post by id"),
			&cli.IntFlag{
				Name:  "user",
				Usage: "limit results to the given author id",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "maximum number of posts to return",
				Sources: cli.NewValueSourceChain(
					yamlSource("pq.limit", meta.Config.Source),
				),
			},
		},
		Action: PqCommandAction,
		Meta:   meta,
	}).Build()
}
