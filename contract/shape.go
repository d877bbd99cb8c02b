package contract

import (
	"fmt"
	"strconv"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ExpectedShape is a declarative description of a valid response.
//
// Field names in FieldTypes and FieldRanges are paths as understood by Lookup, so
// "products[0].quantity" is allowed. RequiredKeys are always top-level keys.
type ExpectedShape struct {
	AcceptableStatuses StatusSet
	RequiredKeys       []string
	ExactKeys          bool
	FieldTypes         map[string]ldvalue.ValueType
	FieldRanges        map[string]Range
}

// HasBodyContract is true if the shape says anything about the body beyond the status.
func (s ExpectedShape) HasBodyContract() bool {
	return len(s.RequiredKeys) != 0 || len(s.FieldTypes) != 0 || len(s.FieldRanges) != 0
}

// Range is an inclusive numeric range with optional bounds.
type Range struct {
	Min *float64
	Max *float64
}

func AtLeast(min float64) Range { return Range{Min: &min} }

func AtMost(max float64) Range { return Range{Max: &max} }

func Between(min, max float64) Range { return Range{Min: &min, Max: &max} }

// Contains reports whether n is within the range.
func (r Range) Contains(n float64) bool {
	if r.Min != nil && n < *r.Min {
		return false
	}
	if r.Max != nil && n > *r.Max {
		return false
	}
	return true
}

func (r Range) String() string {
	lo, hi := "-inf", "+inf"
	if r.Min != nil {
		lo = strconv.FormatFloat(*r.Min, 'g', -1, 64)
	}
	if r.Max != nil {
		hi = strconv.FormatFloat(*r.Max, 'g', -1, 64)
	}
	return "[" + lo + ", " + hi + "]"
}

// ParseValueType converts a JSON type name as written in fixture files ("number", "array", ...)
// to an ldvalue.ValueType.
func ParseValueType(name string) (ldvalue.ValueType, error) {
	switch name {
	case "null":
		return ldvalue.NullType, nil
	case "bool", "boolean":
		return ldvalue.BoolType, nil
	case "number":
		return ldvalue.NumberType, nil
	case "string":
		return ldvalue.StringType, nil
	case "array":
		return ldvalue.ArrayType, nil
	case "object":
		return ldvalue.ObjectType, nil
	default:
		return ldvalue.NullType, fmt.Errorf("unknown JSON type %q", name)
	}
}
