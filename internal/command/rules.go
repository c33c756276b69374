// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/semfilter/internal/config"
	"github.com/tfctl/semfilter/internal/meta"
	"github.com/tfctl/semfilter/pkg/semfilter"
)

var rulesDefaultAttrs = []string{"name", "default", "rule", "error"}

// rulesCommandAction lists the named rules of the config file. Rules that do
// not compile are listed with their error instead of failing the command.
func rulesCommandAction(ctx context.Context, cmd *cli.Command) error {
	fn := func(_ context.Context, cmd *cli.Command) ([]ruleRow, error) {
		rules, err := config.Rules()
		if err != nil {
			return nil, err
		}

		var opts []semfilter.Option
		if cmd.Bool("permissive") {
			opts = append(opts, semfilter.Permissive())
		}

		rows := make([]ruleRow, 0, len(rules))
		for _, r := range rules {
			row := ruleRow{
				Name:    r.Name,
				Rule:    r.Text,
				Default: r.Default,
				Legacy:  r.IsLegacy(),
			}
			if f, err := r.Filter(opts...); err != nil {
				row.Error = err.Error()
			} else {
				row.Rule = f.Rule
				row.Canonical = f.String()
				row.Kind = f.AST().Kind().String()
			}
			rows = append(rows, row)
		}

		setFooter(cmd, "%d rules in %s", len(rows), config.Config.Source)
		return rows, nil
	}

	return NewActionRunner("rules", rulesDefaultAttrs, fn).Run(ctx, cmd)
}

// rulesCommandBuilder constructs the cli.Command for "rules".
func rulesCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "rules",
		Usage:     "list the configured rules",
		UsageText: "semfilter rules [options]",
		Flags: []cli.Flag{
			NewPermissiveFlag(),
		},
		Action: rulesCommandAction,
		Meta:   meta,
		Rows:   true,
	}).Build()
}
