// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package rule

import (
	"embed"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// parseCase is one entry of testdata/parse_cases.yaml.
type parseCase struct {
	Name  string `yaml:"name"`
	Rule  string `yaml:"rule"`
	Want  string `yaml:"want"`
	Error string `yaml:"error"`
	Pos   int    `yaml:"pos"`
}

type parseCases struct {
	Valid   []parseCase `yaml:"valid"`
	Invalid []parseCase `yaml:"invalid"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v interface{}) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func TestParseValid(t *testing.T) {
	var cases parseCases
	require.NoError(t, loadTestData("parse_cases.yaml", &cases))
	require.NotEmpty(t, cases.Valid)

	for _, tt := range cases.Valid {
		t.Run(tt.Name, func(t *testing.T) {
			n, err := Parse(tt.Rule)
			require.NoError(t, err)
			assert.Equal(t, KindBoolean, n.Kind())
			assert.Equal(t, tt.Want, n.String())

			// The printed form parses back to the same tree.
			again, err := Parse(n.String())
			require.NoError(t, err)
			assert.Equal(t, n.String(), again.String())
		})
	}
}

func TestParseInvalid(t *testing.T) {
	var cases parseCases
	require.NoError(t, loadTestData("parse_cases.yaml", &cases))
	require.NotEmpty(t, cases.Invalid)

	for _, tt := range cases.Invalid {
		t.Run(tt.Name, func(t *testing.T) {
			n, err := Parse(tt.Rule)
			require.Error(t, err)
			assert.Nil(t, n)

			var (
				syntaxErr    *SyntaxError
				typeErr      *TypeError
				undefinedErr *UndefinedVariableError
			)
			switch tt.Error {
			case "syntax":
				require.True(t, errors.As(err, &syntaxErr), "got %T: %v", err, err)
				assert.Equal(t, tt.Pos, syntaxErr.Pos, err.Error())
			case "type":
				require.True(t, errors.As(err, &typeErr), "got %T: %v", err, err)
				assert.Equal(t, tt.Pos, typeErr.Pos, err.Error())
			case "undefined":
				require.True(t, errors.As(err, &undefinedErr), "got %T: %v", err, err)
				assert.Equal(t, tt.Pos, undefinedErr.Pos, err.Error())
			default:
				t.Fatalf("unknown error kind %q", tt.Error)
			}
		})
	}
}

func TestParseShape(t *testing.T) {
	n, err := Parse("$[x:children|#isNode] = 3")
	require.NoError(t, err)

	cmp, ok := n.(*Compare)
	require.True(t, ok)
	assert.Equal(t, OpEq, cmp.Op)

	count, ok := cmp.Left.(*Count)
	require.True(t, ok)
	comp, ok := count.List.(*Comprehension)
	require.True(t, ok)
	assert.Equal(t, "x", comp.Var)
	assert.Equal(t, &List{Span: Span{4}, Source: SourceChildren}, comp.Source)
	assert.Equal(t, &TagRef{Span: Span{13}, Name: "isNode"}, comp.Body)
	assert.Equal(t, &NumLit{Span: Span{24}, Value: 3}, cmp.Right)
}

func TestParseListCoercion(t *testing.T) {
	n, err := Parse("children && children > 1")
	require.NoError(t, err)

	and := n.(*Logical)
	require.Len(t, and.Operands, 2)
	assert.IsType(t, &NonEmpty{}, and.Operands[0])
	assert.IsType(t, &Count{}, and.Operands[1].(*Compare).Left)

	n, err = Parse("self = parent")
	require.NoError(t, err)
	assert.IsType(t, &Identity{}, n)

	n, err = Parse("self = 1")
	require.NoError(t, err)
	assert.IsType(t, &Compare{}, n)
}

func TestErrorMessages(t *testing.T) {
	_, err := Parse("(#a")
	assert.EqualError(t, err, "syntax error at 3: unmatched '(' at 0, found end of rule")

	_, err = Parse("#a)")
	assert.EqualError(t, err, "syntax error at 2: unmatched ')'")

	_, err = Parse("true && 1")
	assert.EqualError(t, err, "type error at 8: && wants boolean operands, got numeric")

	_, err = Parse("exists[x:children|#a] && x = self")
	assert.EqualError(t, err, `undefined variable "x" at 25`)

	assert.EqualError(t, &UndefinedVariableError{Pos: -1, Name: "z"}, `undefined variable "z"`)
}

func TestIsKeyword(t *testing.T) {
	for _, w := range []string{"self", "parent", "children", "siblings", "adjacents", "exists", "forall", "true", "false"} {
		assert.True(t, IsKeyword(w), w)
	}
	assert.False(t, IsKeyword("x"))
	assert.False(t, IsKeyword("isNode"))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "3", FormatNumber(3))
	assert.Equal(t, "0.5", FormatNumber(0.5))
	assert.Equal(t, "-2.25", FormatNumber(-2.25))
	assert.Equal(t, "1000000", FormatNumber(1e6))
}
