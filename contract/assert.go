package contract

import (
	"sort"
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// AssertStatusIn fails with KindUnexpectedStatus if the result's status is not one of the
// acceptable codes.
func AssertStatusIn(result ScenarioResult, acceptable ...int) error {
	set := StatusSet(acceptable)
	if set.Contains(result.Status) {
		return nil
	}
	return failf(KindUnexpectedStatus, "one of "+set.String(), strconv.Itoa(result.Status),
		"unexpected status code")
}

// AssertShape checks that body is a JSON object containing every required key. If the shape
// has ExactKeys set, keys that are not required are also reported.
func AssertShape(body ldvalue.Value, shape ExpectedShape) error {
	if body.Type() != ldvalue.ObjectType {
		return failf(KindShapeMismatch, "object", body.Type().String(), "response body is not a JSON object")
	}
	present := make(map[string]bool)
	for _, k := range body.Keys() {
		present[k] = true
	}
	required := make(map[string]bool)
	var missing, extra []string
	for _, k := range shape.RequiredKeys {
		required[k] = true
		if !present[k] {
			missing = append(missing, k)
		}
	}
	if shape.ExactKeys {
		for k := range present {
			if !required[k] {
				extra = append(extra, k)
			}
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(extra)
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing keys ["+strings.Join(missing, ", ")+"]")
	}
	if len(extra) > 0 {
		parts = append(parts, "unexpected keys ["+strings.Join(extra, ", ")+"]")
	}
	return failf(KindShapeMismatch, "", "", "%s", strings.Join(parts, "; "))
}

// AssertFieldTypes checks the JSON type of every field named in shape.FieldTypes. A missing
// field is a type mismatch against "absent".
func AssertFieldTypes(body ldvalue.Value, shape ExpectedShape) error {
	for _, path := range sortedKeys(shape.FieldTypes) {
		want := shape.FieldTypes[path]
		v, ok := Lookup(body, path)
		if !ok {
			return failf(KindTypeMismatch, want.String(), "absent", "field %q", path)
		}
		if v.Type() != want {
			return failf(KindTypeMismatch, want.String(), v.Type().String(), "field %q", path)
		}
	}
	return nil
}

// AssertFieldRanges checks that every field named in shape.FieldRanges is a number inside its
// range. A present field that is not a number is a type mismatch; an absent one is skipped,
// since presence is the job of AssertShape and AssertFieldTypes.
func AssertFieldRanges(body ldvalue.Value, shape ExpectedShape) error {
	paths := make([]string, 0, len(shape.FieldRanges))
	for p := range shape.FieldRanges {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, path := range paths {
		r := shape.FieldRanges[path]
		v, ok := Lookup(body, path)
		if !ok {
			continue
		}
		if !v.IsNumber() {
			return failf(KindTypeMismatch, "number", v.Type().String(), "field %q", path)
		}
		if !r.Contains(v.Float64Value()) {
			return failf(KindInvariantViolation, r.String(), v.JSONString(), "field %q out of range", path)
		}
	}
	return nil
}

// AssertInvariant fails with KindInvariantViolation if predicate does not hold for body.
func AssertInvariant(body ldvalue.Value, predicate func(ldvalue.Value) bool, description string) error {
	if predicate(body) {
		return nil
	}
	return failf(KindInvariantViolation, "", "", "invariant does not hold: %s", description)
}

// Verify applies a whole shape to a result: status first, then (only for 2xx responses with a
// JSON body) keys, types and ranges. It returns the first failure.
func Verify(result ScenarioResult, shape ExpectedShape) error {
	if len(shape.AcceptableStatuses) != 0 {
		if err := AssertStatusIn(result, shape.AcceptableStatuses...); err != nil {
			return err
		}
	}
	if !result.Successful() || !shape.HasBodyContract() {
		return nil
	}
	if !result.HasBody {
		return failf(KindShapeMismatch, "JSON body", "no JSON body", "successful response had no usable body")
	}
	if len(shape.RequiredKeys) != 0 {
		if err := AssertShape(result.Body, shape); err != nil {
			return err
		}
	}
	if err := AssertFieldTypes(result.Body, shape); err != nil {
		return err
	}
	return AssertFieldRanges(result.Body, shape)
}

func sortedKeys(m map[string]ldvalue.ValueType) []string {
	ret := make([]string, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
