// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/semfilter/internal/meta"
	"github.com/tfctl/semfilter/pkg/graph"
	"github.com/tfctl/semfilter/pkg/semfilter"
)

var evalDefaultAttrs = []string{"id", "kind", "type", "tags"}

// evalCommandAction applies the selected rules to every tagged element of a
// model and lists the elements that pass all of them.
func evalCommandAction(ctx context.Context, cmd *cli.Command) error {
	all := cmd.Bool("all")

	fn := func(_ context.Context, cmd *cli.Command) ([]elementRow, error) {
		if cmd.Args().Len() != 1 {
			return nil, errors.New("eval needs exactly one MODEL argument, use - for stdin")
		}

		model, err := LoadModel(GetMeta(cmd), cmd.Args().First())
		if err != nil {
			return nil, err
		}
		filters, err := collectFilters(cmd)
		if err != nil {
			return nil, err
		}

		rows, matched, tagged, err := evaluate(model, filters, all)
		if err != nil {
			return nil, err
		}

		setFooter(cmd, "%d of %d tagged elements matched", matched, tagged)
		return rows, nil
	}

	runner := NewActionRunner("eval", evalDefaultAttrs, fn)
	if all {
		runner.DefaultAttrs = append(append([]string{}, evalDefaultAttrs...), "match")
	}
	if cmd.Bool("chop") {
		runner.PostProcess = func(dataset []map[string]interface{}) error {
			chopPrefix(dataset, "id", "parent", "source", "target")
			return nil
		}
	}
	return runner.Run(ctx, cmd)
}

// evaluate returns a row for every tagged element that passes filters, or for
// every tagged element when all is set.
func evaluate(model *graph.Model, filters []*semfilter.Filter, all bool) (rows []elementRow, matched, tagged int, err error) {
	kept, err := semfilter.Apply(model, filters...)
	if err != nil {
		return nil, 0, 0, err
	}

	in := make(map[string]bool, len(kept))
	for _, el := range kept {
		in[el.ID()] = true
	}

	err = model.Walk(func(el graph.Element) error {
		if !graph.Tagged(el) {
			return nil
		}
		tagged++
		if !in[el.ID()] && !all {
			return nil
		}
		row := newElementRow(el)
		row.Match = in[el.ID()]
		rows = append(rows, row)
		return nil
	})

	log.Debugf("model evaluated: filters=%d matched=%d tagged=%d", len(filters), len(kept), tagged)
	return rows, len(kept), tagged, err
}

// evalCommandBuilder constructs the cli.Command for "eval".
func evalCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "eval",
		Usage:     "apply rules to the elements of a model",
		UsageText: "semfilter eval MODEL|- [--rule RULE]... [--legacy FILE]... [--named NAME]... [options]",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "list every tagged element with a match column",
				Value: false,
			},
			&cli.BoolFlag{
				Name:  "chop",
				Usage: "chop the common prefix from dotted element ids",
				Value: false,
			},
		}, NewRuleSourceFlags()...),
		Action: evalCommandAction,
		Meta:   meta,
		Rows:   true,
	}).Build()
}
