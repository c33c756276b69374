// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewSchemaFlag constructs the --schema flag.
func NewSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the row attributes and exit",
		HideDefault: true,
	}
}

// NewGlobalFlags returns the output flags shared by every row-producing
// command. params[0] is the command namespace and params[1] the config file
// the flags fall back to.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		NewColorFlag(),
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:    "padding",
			Aliases: []string{"p"},
			Usage:   "spaces between text columns",
			Value:   2,
			Validator: func(value int) error {
				return FlagValidators(value, PaddingValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	if len(params) == 2 {
		for _, f := range flags {
			switch f := f.(type) {
			case *cli.StringFlag:
				NameSpacedValueChainFlagFromConfigFile(params[0], params[1], f)
			case *cli.BoolFlag:
				NameSpacedValueChainFlagFromConfigFile(params[0], params[1], f)
			case *cli.IntFlag:
				NameSpacedValueChainFlagFromConfigFile(params[0], params[1], f)
			}
		}
	}

	return
}

// NewColorFlag constructs the --color flag. NO_COLOR and terminal detection
// apply only while it is unset.
func NewColorFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "color",
		Aliases: []string{"c"},
		Usage:   "enable colored text output",
		Value:   false,
	}
}

// NewPermissiveFlag constructs the --permissive flag.
func NewPermissiveFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "permissive",
		Usage: "convert unknown legacy connectives to true instead of failing",
		Value: false,
	}
}

// NewRuleSourceFlags constructs the flags that select the rules eval and diff
// apply. Each may be repeated.
func NewRuleSourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "rule",
			Aliases: []string{"r"},
			Usage:   "rule text to apply, repeatable",
		},
		&cli.StringSliceFlag{
			Name:    "legacy",
			Aliases: []string{"l"},
			Usage:   "file of legacy rules (JSON or YAML) to apply, repeatable",
		},
		&cli.StringSliceFlag{
			Name:    "named",
			Aliases: []string{"n"},
			Usage:   "configured rule to apply by name, repeatable",
		},
		NewPermissiveFlag(),
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile[T any, C any, VC cli.ValueCreator[T, C]](
	ns string,
	path string,
	flag *cli.FlagBase[T, C, VC],
) *cli.FlagBase[T, C, VC] {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
