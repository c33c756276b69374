// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/semfilter/internal/meta"
	"github.com/tfctl/semfilter/pkg/legacy"
	"github.com/tfctl/semfilter/pkg/rule"
)

var convertDefaultAttrs = []string{"name", "rule"}

// convertCommandAction turns a document of legacy rules into rule text. The
// converted text is parsed again so a broken conversion is never printed.
func convertCommandAction(ctx context.Context, cmd *cli.Command) error {
	fn := func(_ context.Context, cmd *cli.Command) ([]ruleRow, error) {
		if cmd.Args().Len() > 1 {
			return nil, fmt.Errorf("convert takes at most one FILE argument, got %d", cmd.Args().Len())
		}
		path := cmd.Args().First()

		data, err := ReadInput(GetMeta(cmd), path)
		if err != nil {
			return nil, err
		}
		rules, err := legacy.DecodeAll(data)
		if err != nil {
			return nil, err
		}

		var opts []legacy.Option
		if cmd.Bool("permissive") {
			opts = append(opts, legacy.Permissive())
		}

		rows := make([]ruleRow, 0, len(rules))
		for _, r := range rules {
			text, err := legacy.Convert(r, opts...)
			if err != nil {
				return nil, fmt.Errorf("rule %q: %w", r.RuleName, err)
			}
			n, err := rule.Parse(text)
			if err != nil {
				return nil, fmt.Errorf("rule %q converted to %q: %w", r.RuleName, text, err)
			}

			row := ruleRow{
				Name:      r.RuleName,
				Rule:      text,
				Canonical: n.String(),
				Kind:      n.Kind().String(),
				Legacy:    true,
			}
			if r.DefaultValue != nil {
				row.Default = *r.DefaultValue
			}
			rows = append(rows, row)
		}

		setFooter(cmd, "%d rules converted", len(rows))
		return rows, nil
	}

	return NewActionRunner("convert", convertDefaultAttrs, fn).Run(ctx, cmd)
}

// convertCommandBuilder constructs the cli.Command for "convert".
func convertCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "convert",
		Usage:     "convert legacy rules to rule text",
		UsageText: "semfilter convert [FILE|-] [options]",
		Flags: []cli.Flag{
			NewPermissiveFlag(),
		},
		Action: convertCommandAction,
		Meta:   meta,
		Rows:   true,
	}).Build()
}
