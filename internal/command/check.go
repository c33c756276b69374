// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/semfilter/internal/meta"
	"github.com/tfctl/semfilter/pkg/rule"
)

var checkDefaultAttrs = []string{"rule", "kind", "canonical", "error"}

// checkCommandAction parses every RULE argument and reports its canonical
// form and kind. It fails when any rule does not parse.
func checkCommandAction(ctx context.Context, cmd *cli.Command) error {
	var failed, total int

	fn := func(_ context.Context, cmd *cli.Command) ([]ruleRow, error) {
		texts := cmd.Args().Slice()
		if len(texts) == 0 {
			return nil, errors.New("check needs at least one RULE argument")
		}

		rows := make([]ruleRow, 0, len(texts))
		for _, text := range texts {
			rows = append(rows, checkRule(text))
			if rows[len(rows)-1].Error != "" {
				failed++
			}
		}
		total = len(texts)

		setFooter(cmd, "%d of %d rules valid", total-failed, total)
		return rows, nil
	}

	if err := NewActionRunner("check", checkDefaultAttrs, fn).Run(ctx, cmd); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d rules failed to parse", failed, total)
	}
	return nil
}

func checkRule(text string) ruleRow {
	row := ruleRow{Rule: text}
	n, err := rule.Parse(text)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	row.Canonical = n.String()
	row.Kind = n.Kind().String()
	return row
}

// checkCommandBuilder constructs the cli.Command for "check".
func checkCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "check",
		Usage:     "parse rules and show their canonical form",
		UsageText: "semfilter check RULE... [options]",
		Action:    checkCommandAction,
		Meta:      meta,
		Rows:      true,
	}).Build()
}
