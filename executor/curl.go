package executor

import (
	"sort"
	"strings"

	"github.com/alessio/shellescape"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// CurlCommand renders a shell command that repeats a request. Headers are sorted so the output
// is stable.
func CurlCommand(method, url string, headers map[string]string, body ldvalue.Value) string {
	var cmd commandBuilder
	cmd.add("curl", "-sS", "-X", method)
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd.add("-H", name+": "+headers[name])
	}
	if !body.IsNull() {
		cmd.add("--data", body.JSONString())
	}
	cmd.add(url)
	return cmd.String()
}
