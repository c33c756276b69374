// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/semfilter/internal/config"
	"github.com/tfctl/semfilter/internal/meta"
)

// InitApp loads the config file and builds the semfilter command tree. A
// missing config file is not an error; an unreadable one is.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	// The arg[1] immediately following the binary (arg[0]) is the subcommand
	// and also the namespace key used when retrieving config values. arg[1]
	// could be -h/--help, so ignore it if it appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrNoConfig) {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Namespace = ns
	config.Config.Namespace = ns

	return NewApp(meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
	}), nil
}

// NewApp builds the command tree around m.
func NewApp(m meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:  "semfilter",
		Usage: "semantic filter rules for diagram models",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "semfilter version info",
				HideDefault: true,
			},
		},
		// Rule text is passed through --rule verbatim.
		DisableSliceFlagSeparator: true,
	}
	if m.Stdout != nil {
		app.Writer = m.Stdout
	}

	app.Commands = append(app.Commands,
		checkCommandBuilder(m),
		convertCommandBuilder(m),
		diffCommandBuilder(m),
		evalCommandBuilder(m),
		rulesCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app
}
