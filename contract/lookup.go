package contract

import (
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Lookup finds the value at a simple path such as "total", "products[0].quantity" or
// "products.0.id" (a leading "$." is accepted and ignored). The second return value is false
// if any segment is missing; a present JSON null is reported as found.
func Lookup(doc ldvalue.Value, path string) (ldvalue.Value, bool) {
	path = strings.TrimPrefix(strings.TrimPrefix(path, "$"), ".")
	if path == "" {
		return doc, true
	}
	current := doc
	for _, seg := range splitPath(path) {
		if idx, err := strconv.Atoi(seg); err == nil && current.Type() == ldvalue.ArrayType {
			if idx < 0 || idx >= current.Count() {
				return ldvalue.Null(), false
			}
			current = current.GetByIndex(idx)
			continue
		}
		if current.Type() != ldvalue.ObjectType || !hasKey(current, seg) {
			return ldvalue.Null(), false
		}
		current = current.GetByKey(seg)
	}
	return current, true
}

// splitPath turns "products[0].quantity" into ["products", "0", "quantity"].
func splitPath(path string) []string {
	path = strings.NewReplacer("[", ".", "]", "").Replace(path)
	var segments []string
	for _, s := range strings.Split(path, ".") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func hasKey(obj ldvalue.Value, key string) bool {
	for _, k := range obj.Keys() {
		if k == key {
			return true
		}
	}
	return false
}
