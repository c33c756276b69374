// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/semfilter/internal/config"
	"github.com/tfctl/semfilter/internal/differ"
	"github.com/tfctl/semfilter/internal/meta"
	"github.com/tfctl/semfilter/internal/output"
	"github.com/tfctl/semfilter/pkg/semfilter"
)

// diffCommandAction applies exactly two rules to a model and shows how their
// match sets differ.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	config.Config.Namespace = "diff"
	log.Debugf("executing action: command=diff args=%v", GetMeta(cmd).Args)

	if cmd.Args().Len() != 1 {
		return fmt.Errorf("diff needs exactly one MODEL argument, use - for stdin")
	}

	filters, err := collectFilters(cmd)
	if err != nil {
		return err
	}
	if len(filters) != 2 {
		return fmt.Errorf("diff needs exactly two rules, got %d", len(filters))
	}

	model, err := LoadModel(GetMeta(cmd), cmd.Args().First())
	if err != nil {
		return err
	}

	var sets [2][]byte
	for i, f := range filters {
		kept, err := semfilter.Apply(model, f)
		if err != nil {
			return err
		}
		if sets[i], err = differ.MatchSet(kept); err != nil {
			return err
		}
	}

	w := Stdout(cmd)
	changed, err := differ.Diff(w, sets[0], sets[1], output.UseColor(cmd, w))
	if err != nil {
		return err
	}
	if changed && cmd.Bool("exit-code") {
		return fmt.Errorf("match sets of %s and %s differ", filters[0].Name, filters[1].Name)
	}
	return nil
}

// diffCommandBuilder constructs the cli.Command for "diff".
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "diff",
		Usage:     "compare the elements two rules match",
		UsageText: "semfilter diff MODEL|- --rule A --rule B [options]",
		Flags: append([]cli.Flag{
			NewColorFlag(),
			&cli.BoolFlag{
				Name:  "exit-code",
				Usage: "fail when the match sets differ",
				Value: false,
			},
		}, NewRuleSourceFlags()...),
		Action: diffCommandAction,
		Meta:   meta,
	}).Build()
}
