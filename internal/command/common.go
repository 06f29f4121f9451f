// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/blogctlgo/internal/api"
	"github.com/staranto/blogctlgo/internal/attrs"
	"github.com/staranto/blogctlgo/internal/meta"
	"github.com/staranto/blogctlgo/internal/output"
	"github.com/staranto/blogctlgo/internal/session"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr blogctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "blogctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// DumpSchemaIfRequested prints the JSON schema for the provided type when
// --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema("", t)
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// InitSession builds the API client from the --host flag and binds it to the
// on-disk token store.
func InitSession(cmd *cli.Command) (*api.Client, *session.Cache, error) {
	client := api.NewClient(cmd.String("host"))
	log.Debugf("client: %v", client.BaseURL())

	store, err := session.NewStore()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open token store: %w", err)
	}

	return client, session.NewCache(client, store), nil
}

// FriendlyAPI rewrites client errors for human consumption.  A transport
// failure becomes a generic connectivity message so the server's absence
// doesn't read like a server response; an application error carries the
// server's own message through.
func FriendlyAPI(err error, host string, operation string) error {
	if err == nil {
		return nil
	}

	if api.IsTransport(err) {
		return fmt.Errorf("failed to %s: could not reach %s. Check your connection and try again", operation, host)
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("failed to %s: %s", operation, apiErr.Message)
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// emitPost runs a single post through the common output pipeline.
func emitPost(post *api.Post, al attrs.AttrList, cmd *cli.Command) error {
	return output.EmitJSONSlice([]*api.Post{post}, al, cmd, os.Stdout)
}

// QueryCommandBuilder is a helper that constructs a cli.Command for the query
// subcommands (uq, pq) and the mutating post commands, using a consistent
// pattern. The builder automatically wires metadata, adds tldr/schema flags,
// applies global flags, and sets up validators.
type QueryCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      qcb.Name,
		Usage:     qcb.Usage,
		UsageText: qcb.UsageText,
		Metadata: map[string]any{
			"meta": qcb.Meta,
		},
		Flags: append(qcb.Flags, append([]cli.Flag{
			tldrFlag,
			schemaFlag,
		}, NewGlobalFlags(qcb.Name)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: qcb.Action,
	}
}

// QueryActionRunner[T] encapsulates the common query action pattern. It
// handles GetMeta, short-circuit checks, BuildAttrs, schema dumping, and
// output emission, with the data fetch provided by FetchFn.
type QueryActionRunner[T any] struct {
	CommandName  string
	SchemaType   reflect.Type
	DefaultAttrs []string
	FetchFn      func(context.Context, *cli.Command) ([]T, error)
}

// Run executes the query action with the provided context and command.
func (qar *QueryActionRunner[T]) Run(
	ctx context.Context,
	cmd *cli.Command,
) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, qar.CommandName) {
		return nil
	}
	if DumpSchemaIfRequested(cmd, qar.SchemaType) {
		return nil
	}

	attrs := BuildAttrs(cmd, qar.DefaultAttrs...)
	log.Debugf("attrs: %v", attrs)

	results, err := qar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}

	if err := output.EmitJSONSlice(results, attrs, cmd, os.Stdout); err != nil {
		return err
	}
	return nil
}
