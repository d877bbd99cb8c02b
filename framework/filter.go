package framework

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

// Filter is a function that can determine whether to run a specific scenario or not.
type Filter func(TestID) bool

// RegexFilters selects scenarios by their full path, such as "cart/errors/missing cart".
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

// AsFilter selects a scenario whose path matches some -run pattern (or there are none) and no
// -skip pattern. Groups are entered regardless; see Context.Run.
func (r RegexFilters) AsFilter(id TestID) bool {
	name := id.String()
	if r.MustNotMatch.AnyMatch(name) {
		return false
	}
	return !r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name)
}

// Defined returns true if any pattern was given.
func (r RegexFilters) Defined() bool {
	return r.MustMatch.IsDefined() || r.MustNotMatch.IsDefined()
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// PrintFilterDescription explains which scenarios this run will skip. The unavailable map
// names whole suites that cannot run, keyed by suite name, with the reason as value.
func PrintFilterDescription(w io.Writer, filters RegexFilters, unavailable map[string]string) {
	if filters.Defined() {
		fmt.Fprintln(w, "Some scenarios will be skipped based on the filter criteria for this run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(w, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(w, "  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Fprintln(w)
	}

	if len(unavailable) > 0 {
		names := make([]string, 0, len(unavailable))
		for name := range unavailable {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintln(w, "Some suites will be skipped:")
		for _, name := range names {
			fmt.Fprintf(w, "  %s: %s\n", name, unavailable[name])
		}
		fmt.Fprintln(w)
	}
}
