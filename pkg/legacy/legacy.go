// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package legacy reads semantic filter rules stored in the older object tree
// form and converts them to rule text.
//
// A legacy rule is either a tag leaf {"tag": "name", "num": 3} or a
// connective {"name": "AND", "leftOperand": ..., "rightOperand": ...}. Unary
// connectives use "operand", IFTHENELSE uses "firstOperand", "secondOperand"
// and "thirdOperand". Any rule may carry "ruleName" and "defaultValue".
//
// Conversion is purely textual: the result is handed to rule.Parse which
// infers operand kinds again, so = and != are emitted for both the logical
// and the numeric equality connectives.
package legacy

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Connective names.
const (
	And                   = "AND"
	Or                    = "OR"
	Not                   = "NOT"
	True                  = "TRUE"
	False                 = "FALSE"
	IfThen                = "IFTHEN"
	IfThenElse            = "IFTHENELSE"
	LogicEqual            = "LOGICEQUAL"
	LessThan              = "LESSTHAN"
	GreaterThan           = "GREATERTHAN"
	LessEquals            = "LESSEQUALS"
	GreaterEquals         = "GREATEREQUALS"
	NumericEqual          = "NUMERICEQUAL"
	NumericNotEqual       = "NUMERICNOTEQUAL"
	NumericAddition       = "NUMERICADDITION"
	NumericSubtraction    = "NUMERICSUBTRACTION"
	NumericMultiplication = "NUMERICMULTIPLICATION"
	NumericDivision       = "NUMERICDIVISION"
	Const                 = "CONST"
	Identity              = "IDENTITY"
)

// Rule is one node of a legacy rule tree.
type Rule struct {
	Name string   `json:"name,omitempty" yaml:"name,omitempty"`
	Tag  string   `json:"tag,omitempty" yaml:"tag,omitempty"`
	Num  *float64 `json:"num,omitempty" yaml:"num,omitempty"`

	Operand       *Rule `json:"operand,omitempty" yaml:"operand,omitempty"`
	LeftOperand   *Rule `json:"leftOperand,omitempty" yaml:"leftOperand,omitempty"`
	RightOperand  *Rule `json:"rightOperand,omitempty" yaml:"rightOperand,omitempty"`
	FirstOperand  *Rule `json:"firstOperand,omitempty" yaml:"firstOperand,omitempty"`
	SecondOperand *Rule `json:"secondOperand,omitempty" yaml:"secondOperand,omitempty"`
	ThirdOperand  *Rule `json:"thirdOperand,omitempty" yaml:"thirdOperand,omitempty"`

	RuleName     string `json:"ruleName,omitempty" yaml:"ruleName,omitempty"`
	DefaultValue *bool  `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
}

// IsLeaf reports whether r is a bare tag.
func (r *Rule) IsLeaf() bool {
	return r.Name == "" && r.Tag != ""
}

// Leaf returns a tag leaf.
func Leaf(tag string) *Rule {
	return &Rule{Tag: tag}
}

// Unary returns a connective with a single operand.
func Unary(name string, operand *Rule) *Rule {
	return &Rule{Name: name, Operand: operand}
}

// Binary returns a connective with left and right operands.
func Binary(name string, left, right *Rule) *Rule {
	return &Rule{Name: name, LeftOperand: left, RightOperand: right}
}

// Constant returns a CONST connective.
func Constant(num float64) *Rule {
	return &Rule{Name: Const, Num: &num}
}

// DecodeJSON decodes a legacy rule from JSON.
func DecodeJSON(data []byte) (*Rule, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON legacy rule")
	}
	return Decode(gjson.ParseBytes(data))
}

// DecodeYAML decodes a legacy rule from YAML.
func DecodeYAML(data []byte) (*Rule, error) {
	var r Rule
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("invalid YAML legacy rule: %w", err)
	}
	if err := r.validate("$"); err != nil {
		return nil, err
	}
	return &r, nil
}

// DecodeAll decodes one rule or a list of rules. JSON is tried first when
// the document starts with '{' or '['; anything else is read as YAML.
func DecodeAll(data []byte) ([]*Rule, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty legacy rule document")
	}

	if (trimmed[0] == '{' || trimmed[0] == '[') && gjson.ValidBytes(trimmed) {
		doc := gjson.ParseBytes(trimmed)
		if !doc.IsArray() {
			r, err := Decode(doc)
			if err != nil {
				return nil, err
			}
			return []*Rule{r}, nil
		}

		var rules []*Rule
		for i, v := range doc.Array() {
			r, err := decode(v, fmt.Sprintf("$[%d]", i))
			if err != nil {
				return nil, err
			}
			rules = append(rules, r)
		}
		return rules, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML legacy rule: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, errors.New("empty legacy rule document")
	}

	root := doc.Content[0]
	items := []*yaml.Node{root}
	single := root.Kind != yaml.SequenceNode
	if !single {
		items = root.Content
	}

	rules := make([]*Rule, 0, len(items))
	for i, item := range items {
		path := "$"
		if !single {
			path = fmt.Sprintf("$[%d]", i)
		}
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%s: legacy rule is not an object", path)
		}

		var r Rule
		if err := item.Decode(&r); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if err := r.validate(path); err != nil {
			return nil, err
		}
		rules = append(rules, &r)
	}
	return rules, nil
}

// Decode builds a Rule from an already parsed JSON value, such as one element
// of a larger document.
func Decode(v gjson.Result) (*Rule, error) {
	return decode(v, "$")
}

var operandKeys = []string{
	"operand", "leftOperand", "rightOperand",
	"firstOperand", "secondOperand", "thirdOperand",
}

func decode(v gjson.Result, path string) (*Rule, error) {
	if !v.IsObject() {
		return nil, fmt.Errorf("%s: legacy rule is not an object", path)
	}

	r := &Rule{
		Name:     v.Get("name").String(),
		Tag:      v.Get("tag").String(),
		RuleName: v.Get("ruleName").String(),
	}
	if num := v.Get("num"); num.Exists() && num.Type != gjson.Null {
		if num.Type != gjson.Number {
			return nil, fmt.Errorf("%s: num is not a number", path)
		}
		f := num.Float()
		r.Num = &f
	}
	if dv := v.Get("defaultValue"); dv.IsBool() {
		b := dv.Bool()
		r.DefaultValue = &b
	}

	slots := []**Rule{
		&r.Operand, &r.LeftOperand, &r.RightOperand,
		&r.FirstOperand, &r.SecondOperand, &r.ThirdOperand,
	}
	for i, key := range operandKeys {
		o := v.Get(key)
		if !o.Exists() || o.Type == gjson.Null {
			continue
		}
		child, err := decode(o, path+"."+key)
		if err != nil {
			return nil, err
		}
		*slots[i] = child
	}

	if err := r.validate(path); err != nil {
		return nil, err
	}
	return r, nil
}

// validate checks that every node is either a connective or a tag leaf.
// Operand arity is checked during conversion.
func (r *Rule) validate(path string) error {
	if r.Name == "" && r.Tag == "" {
		return fmt.Errorf("%s: legacy rule has neither name nor tag", path)
	}

	children := map[string]*Rule{
		"operand":       r.Operand,
		"leftOperand":   r.LeftOperand,
		"rightOperand":  r.RightOperand,
		"firstOperand":  r.FirstOperand,
		"secondOperand": r.SecondOperand,
		"thirdOperand":  r.ThirdOperand,
	}
	for _, key := range operandKeys {
		if c := children[key]; c != nil {
			if err := c.validate(path + "." + key); err != nil {
				return err
			}
		}
	}
	return nil
}
