// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/semfilter/internal/config"
)

// ActionRunner[T] encapsulates the common action pattern of the row-producing
// subcommands: GetMeta, schema dumping, BuildAttrs, fetching the rows with
// FetchFn and emitting them.
type ActionRunner[T any] struct {
	CommandName  string
	SchemaType   reflect.Type
	DefaultAttrs []string
	FetchFn      func(context.Context, *cli.Command) ([]T, error)
	// PostProcess runs on the filtered dataset before text rendering.
	PostProcess func([]map[string]interface{}) error
}

// Run executes the action with the provided context and command.
func (ar *ActionRunner[T]) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action: command=%s args=%v", ar.CommandName, m.Args)

	config.Config.Namespace = ar.CommandName

	if DumpSchemaIfRequested(cmd, ar.SchemaType) {
		return nil
	}

	attrs := BuildAttrs(cmd, ar.DefaultAttrs...)
	log.Debugf("attrs: %v", attrs)

	results, err := ar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}
	if results == nil {
		results = []T{}
	}

	return EmitRows(results, attrs, cmd, ar.PostProcess)
}

// NewActionRunner creates an ActionRunner with the provided configuration.
func NewActionRunner[T any](
	commandName string,
	defaultAttrs []string,
	fetchFn func(context.Context, *cli.Command) ([]T, error),
) *ActionRunner[T] {
	return &ActionRunner[T]{
		CommandName:  commandName,
		SchemaType:   reflect.TypeOf((*T)(nil)).Elem(),
		DefaultAttrs: defaultAttrs,
		FetchFn:      fetchFn,
	}
}
