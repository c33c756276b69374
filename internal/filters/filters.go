// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/tfctl/semfilter/internal/attrs"
	"github.com/tfctl/semfilter/internal/driller"
)

// DelimEnvVar overrides the default "," between filter expressions.
const DelimEnvVar = "SEMFILTER_FILTER_DELIM"

// filterRegex splits an expression into key, optional (negated) operator and
// target. Examples: "kind=node", "id!^svc", "depth>".
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a filter specification string into a slice of Filter.
func BuildFilters(spec string) ([]Filter, error) {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters, nil
	}

	delim := ","
	if d, ok := os.LookupEnv(DelimEnvVar); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		key := strings.TrimSpace(parts[1])
		operand := parts[2]

		if key == "" {
			return nil, fmt.Errorf("invalid filter %q: empty key", filterSpec)
		}
		if operand == "" {
			return nil, fmt.Errorf("invalid filter %q: missing operator", filterSpec)
		}

		negate := strings.HasPrefix(operand, "!")
		operand = strings.TrimPrefix(operand, "!")

		if operand == "/" {
			if _, err := regexp.Compile(parts[3]); err != nil {
				return nil, fmt.Errorf("invalid filter %q: %w", filterSpec, err)
			}
		}

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   parts[3],
		})
	}

	log.Debugf("filters built: filters=%v", filters)
	return filters, nil
}

// FilterDataset keeps the candidate rows matching every filter and projects
// each onto attrs. Transforms are left to the caller.
func FilterDataset(candidates gjson.Result, al attrs.AttrList, filters []Filter) ([]map[string]interface{}, error) {
	keys := make([]string, len(filters))
	for i, f := range filters {
		keys[i] = lookupKey(al, f.Key)
		if keys[i] == "" {
			return nil, fmt.Errorf("filter key not found: %s", f.Key)
		}
	}

	//nolint:prealloc
	var results []map[string]interface{}

	for _, candidate := range candidates.Array() {
		if !applyFilters(candidate, keys, filters) {
			continue
		}

		row := make(map[string]interface{}, len(al))
		for _, attr := range al {
			row[attr.OutputKey] = driller.Drill(candidate.Raw, attr.Key).Value()
		}
		results = append(results, row)
	}

	return results, nil
}

// lookupKey returns the JSON key of the attribute whose output key is name.
func lookupKey(al attrs.AttrList, name string) string {
	for _, attr := range al {
		if attr.OutputKey == name {
			return attr.Key
		}
	}
	return ""
}

// applyFilters reports whether candidate matches all filters. keys[i] is the
// resolved JSON key for filters[i].
func applyFilters(candidate gjson.Result, keys []string, filters []Filter) bool {
	for i, filter := range filters {
		value := driller.Drill(candidate.Raw, keys[i]).Value()
		if value == nil {
			// A missing value only satisfies a negated filter.
			if filter.Negate {
				continue
			}
			return false
		}

		var ok bool
		switch v := value.(type) {
		case string:
			ok = checkStringOperand(v, filter)
		case bool:
			ok = checkStringOperand(strconv.FormatBool(v), filter)
		default:
			if num, isNum := toFloat64(v); isNum {
				ok = checkNumericOperand(num, filter)
			} else {
				ok = checkContainsOperand(v, filter)
			}
		}

		if !ok {
			return false
		}
	}

	return true
}

// checkContainsOperand evaluates a membership style filter (operand '@')
// against slice or map values.
func checkContainsOperand(value interface{}, filter Filter) bool {
	if filter.Operand != "@" {
		log.Warnf("unsupported operand for list or map: %s", filter.Operand)
		return false
	}

	switch val := value.(type) {
	case []interface{}:
		for _, item := range val {
			if fmt.Sprint(item) == filter.Value {
				return !filter.Negate
			}
		}
		return filter.Negate
	case map[string]interface{}:
		_, found := val[filter.Value]
		return found == !filter.Negate
	default:
		log.Warnf("unsupported type for contains filtering: %T", value)
		return false
	}
}

// checkNumericOperand compares a numeric value against the filter value.
// A target that is not a number falls back to string semantics.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}

	switch filter.Operand {
	case "=", "~":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
}

// toFloat64 normalizes the numeric types produced by JSON and YAML decoding.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
