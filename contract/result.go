package contract

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ScenarioResult is the outcome of one executed request. It is owned by the scenario that
// executed the request and is only read by assertions.
type ScenarioResult struct {
	Status    int
	Header    http.Header
	Body      ldvalue.Value
	HasBody   bool // false if the response had no body or the body was not valid JSON
	RawBody   []byte
	Duration  time.Duration
	RequestID string
}

// DurationMS returns the request duration in whole milliseconds.
func (r ScenarioResult) DurationMS() int64 {
	return r.Duration.Milliseconds()
}

// Successful is true for 2xx statuses.
func (r ScenarioResult) Successful() bool {
	return r.Status >= 200 && r.Status < 300
}

// StatusSet is a set of acceptable HTTP status codes. An external API whose exact validation
// behavior is unknown is described by the set of plausible outcomes rather than a single code.
type StatusSet []int

// Statuses builds a StatusSet from the given codes.
func Statuses(codes ...int) StatusSet {
	return StatusSet(codes)
}

// StatusRange builds a StatusSet containing every code from lo to hi inclusive.
func StatusRange(lo, hi int) StatusSet {
	ret := make(StatusSet, 0, hi-lo+1)
	for code := lo; code <= hi; code++ {
		ret = append(ret, code)
	}
	return ret
}

// AnyStatus is every status code an HTTP server can legally return.
var AnyStatus = StatusRange(100, 599)

// Contains reports whether code is in the set. An empty set contains nothing.
func (s StatusSet) Contains(code int) bool {
	for _, c := range s {
		if c == code {
			return true
		}
	}
	return false
}

func (s StatusSet) String() string {
	if len(s) > 20 && s.contiguous() {
		sorted := s.sorted()
		return "{" + strconv.Itoa(sorted[0]) + ".." + strconv.Itoa(sorted[len(sorted)-1]) + "}"
	}
	parts := make([]string, 0, len(s))
	for _, c := range s.sorted() {
		parts = append(parts, strconv.Itoa(c))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s StatusSet) sorted() []int {
	ret := append([]int(nil), s...)
	sort.Ints(ret)
	return ret
}

func (s StatusSet) contiguous() bool {
	sorted := s.sorted()
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return false
		}
	}
	return true
}
