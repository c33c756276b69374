// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/semfilter/internal/attrs"
	"github.com/tfctl/semfilter/internal/config"
	"github.com/tfctl/semfilter/internal/filters"
	"github.com/tfctl/semfilter/internal/log"
)

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		if value == "" {
			return emptyValue[0]
		}
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		if rv := reflect.ValueOf(value); (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map) && rv.Len() == 0 {
			return emptyValue[0]
		}
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// SliceDiceSpit orchestrates filtering, transforming, sorting and rendering
// of a dataset according to command flags and attribute specifications. The
// optional postProcess callback allows commands to apply custom transformations
// to the filtered dataset before rendering as a table.
func SliceDiceSpit(raw bytes.Buffer,
	al attrs.AttrList,
	cmd *cli.Command,
	parent string,
	w io.Writer,
	postProcess func([]map[string]interface{}) error) error {

	if w == nil {
		w = os.Stdout
	}

	// If raw, just dump it and go home.
	output := cmd.String("output")
	if output == "raw" {
		_, err := w.Write(raw.Bytes())
		return err
	}

	fullDataset := gjson.Parse(raw.String())
	if parent != "" {
		fullDataset = fullDataset.Get(parent)
	}

	fs, err := filters.BuildFilters(cmd.String("filter"))
	if err != nil {
		return err
	}
	dataset, err := filters.FilterDataset(fullDataset, al, fs)
	if err != nil {
		return err
	}

	for _, row := range dataset {
		for _, attr := range al {
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	SortDataset(dataset, cmd.String("sort"))

	switch output {
	case "json":
		out, err := json.Marshal(included(dataset, al))
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml":
		out, err := yaml.Marshal(included(dataset, al))
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		if postProcess != nil {
			if err := postProcess(dataset); err != nil {
				return err
			}
		}
		TableWriter(dataset, al, cmd, w)
	}

	return nil
}

// included strips the columns that are only there for filtering and sorting.
// The result is never nil so an empty match set encodes as [].
func included(dataset []map[string]interface{}, al attrs.AttrList) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(dataset))
	for _, row := range dataset {
		kept := make(map[string]interface{}, len(al))
		for _, attr := range al {
			if attr.Include {
				kept[attr.OutputKey] = row[attr.OutputKey]
			}
		}
		out = append(out, kept)
	}
	return out
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options. Output is written to w. If w is nil, os.Stdout
// is used.
func TableWriter(
	resultSet []map[string]interface{},
	al attrs.AttrList,
	cmd *cli.Command,
	w io.Writer) {

	if w == nil {
		w = os.Stdout
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	// Style sequences are stripped unless color is on.
	out := &colorprofile.Writer{Forward: w, Profile: colorprofile.NoTTY}
	if UseColor(cmd, w) {
		out.Profile = colorprofile.TrueColor
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	if len(resultSet) > 0 {
		var rows [][]string
		for _, result := range resultSet {
			row := make([]string, 0, len(al))
			for _, attr := range al {
				if !attr.Include {
					continue
				}
				row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
			}
			rows = append(rows, row)
		}

		if cmd.Metadata["header"] != nil {
			fmt.Fprintln(out, headerStyle.Render(cmd.Metadata["header"].(string)))
		}

		pad := cmd.Int("padding")
		t := table.New().
			BorderBottom(false).
			BorderTop(false).
			BorderLeft(false).
			BorderRight(false).
			Border(lipgloss.HiddenBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				var style lipgloss.Style
				switch {
				case row == table.HeaderRow:
					style = headerStyle
				case row%2 == 0:
					style = evenRowStyle
				default:
					style = oddRowStyle
				}

				if col > 0 {
					style = style.PaddingLeft(pad)
				}

				return style
			}).
			Headers().
			Rows(rows...)

		if cmd.Bool("titles") {
			var headers []string
			for _, attr := range al {
				if attr.Include {
					headers = append(headers, attr.OutputKey)
				}
			}

			// https://github.com/charmbracelet/lipgloss/issues/261
			t = t.Headers(headers...).BorderHeader(false)
		}
		fmt.Fprintln(out, t)
	}

	// The footer is printed even for an empty result so a count of zero is
	// still reported.
	if cmd.Metadata["footer"] != nil {
		fmt.Fprintln(out, headerStyle.Render(cmd.Metadata["footer"].(string)))
	}
}

// UseColor reports whether table output should be colored. An explicit
// --color (flag or config) wins. Otherwise color is on only when w is a
// terminal and NO_COLOR is unset.
func UseColor(cmd *cli.Command, w io.Writer) bool {
	if cmd.IsSet("color") {
		return cmd.Bool("color")
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	isTerm := term.IsTerminal(int(f.Fd()))
	log.Tracef("color auto: terminal=%v", isTerm)
	return isTerm
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color and brightness so that we can
// make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the user
	// to choose appropriate colors for their theme. If not found, pick a
	// reasonable default based on terminal background.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
