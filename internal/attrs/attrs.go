// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/semfilter/internal/log"
)

// lengthRegex finds the length transforms in a spec.
var lengthRegex = regexp.MustCompile(`-?\d+`)

// Attr represents each of the keys to be included in the output. Keys are
// dot paths into an element row, e.g. "kind" or "tag.score".
type Attr struct {
	// The JSON key to extract from the row.
	Key string `yaml:"key" json:"Key"`
	// Should this Attr be included in output or is it just
	// intended for filtering and sorting?
	Include bool `yaml:"include" json:"Include"`
	// The key to use in the output. This is also used as the column title when
	// output=text.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// Transformation spec to apply to the output value.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

// Transform applies the attribute's transform spec to a value and returns the
// transformed result. Numbers only honor the humanize transform (h). Strings
// honor case (l, u) and length transforms.
func (a *Attr) Transform(value interface{}) interface{} {
	if num, ok := value.(float64); ok {
		if strings.Contains(a.TransformSpec, "h") {
			log.Tracef("humanize: value=%v", num)
			return humanize.Commaf(num)
		}
		return value
	}

	result, ok := value.(string)
	if !ok {
		log.Tracef("non-string value: value=%v", value)
		return value
	}

	// We need to know which case transformation appears last. This covers the
	// case where there has been a global case transformation prepended to the
	// attrs transformation and allows the attr's to carry more weight.
	// IOW... --attrs '*::U,id::l' will be lower case.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
		log.Tracef("case lower: result=%s", result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
		log.Tracef("case upper: result=%s", result)
	}

	// Same logic as above re: case. The last length wins so a specific length
	// overrides a global one.
	match := lengthRegex.FindAllString(a.TransformSpec, -1)
	if len(match) == 0 {
		return result
	}

	l, _ := strconv.Atoi(match[len(match)-1])
	abs := int(math.Abs(float64(l)))
	if len(result) <= abs || abs == 0 {
		return result
	}

	if l < 0 {
		// Keep both ends around a ".." marker.
		lr := abs/2 - 1
		if lr < 1 {
			lr = 1
		}
		result = result[:lr] + ".." + result[len(result)-lr:]
		log.Tracef("length middle: result=%s", result)
	} else {
		result = result[:l]
		log.Tracef("length trunc: result=%s", result)
	}

	return result
}

// AttrList is a collection of Attr used to shape output fields.
type AttrList []Attr

// Set parses each spec from --attrs and adds it to the AttrList.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		log.Debugf("early return: value=%s", value)
		return nil
	}

	const (
		jsonIdx = iota
		outputIdx
		transformIdx
	)

	// There are three : delimited fields in each spec. The first is the key to
	// extract from the row. The second is the key to use in the output.
	// The third is the transformation spec to apply to the output value. The
	// latter two are optional. The output key defaults to the last
	// section of the JSON key.
	specs := strings.Split(value, ",")
	log.Debugf("specs split: specs=%v", specs)
specloop:
	for _, spec := range specs {
		attr := Attr{
			Include: true,
		}

		fields := strings.Split(spec, ":")
		if len(fields) > transformIdx+1 {
			return fmt.Errorf("invalid attr %q: too many fields", spec)
		}

		// The first field is the key to extract from the JSON payload. If it
		// begins with a !, it is excluded from the output. A leading . is
		// accepted and ignored since every key starts at the row root.
		attr.Key = strings.TrimSpace(fields[jsonIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		attr.Key = strings.TrimPrefix(attr.Key, ".")

		if attr.Key == "" {
			return fmt.Errorf("invalid attr %q: empty key", spec)
		}
		if attr.Key == "*" {
			attr.Include = false
		}
		log.Tracef("key parsed: key=%s, include=%v", attr.Key, attr.Include)

		if len(fields) == 1 || fields[outputIdx] == "" {
			segments := strings.Split(attr.Key, ".")
			attr.OutputKey = segments[len(segments)-1]
			attr.OutputKey = strings.SplitN(attr.OutputKey, "[", 2)[0]
		} else {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}
		log.Tracef("output set: outputKey=%s", attr.OutputKey)

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}
		log.Tracef("transform set: spec=%s", attr.TransformSpec)

		// If the attr already exists in the list (because it is a default for
		// a command or the user double-entered it), apply the OutputKey, Include
		// and TransformSpec to the existing Attr.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				log.Tracef("existing updated: i=%d", i)
				continue specloop
			}
		}

		*a = append(*a, attr)
		log.Tracef("attr appended: len=%d", len(*a))
	}

	return nil
}

// SetGlobalTransformSpec inserts a global transform spec at the front of all
// attrs in the list.
func (a *AttrList) SetGlobalTransformSpec() {
	spec := ""

	// Find the global transform spec. If there is more than one, take the first.
	for i := range *a {
		if (*a)[i].Key == "*" {
			spec = (*a)[i].TransformSpec
			break
		}
	}

	if spec == "" {
		return
	}
	log.Debugf("global spec: spec=%s", spec)

	for i := range *a {
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}
}

// String returns a string representation of the AttrList. This matches the
// format of the original --attrs flag.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}

	return strings.Join(result, ",")
}

// Type returns the flag type for use with the flag.Value interface.
func (a *AttrList) Type() string { return "list" }
