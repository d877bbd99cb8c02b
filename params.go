package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/deliveryqa/cart-contract-tests/framework"
)

const (
	suiteCart    = "cart"
	suiteAddress = "address"
	suiteAll     = "all"
)

type commandParams struct {
	filters  framework.RegexFilters
	suite    string
	local    bool
	debug    bool
	debugAll bool
	noColor  bool
}

func (c *commandParams) Read(args []string, errOut io.Writer) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select scenarios to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select scenarios not to run")
	fs.StringVar(&c.suite, "suite", suiteAll, "which suites to run: cart, address or all")
	fs.BoolVar(&c.local, "local", false, "serve the in-process cart double and run the cart suite against it")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed scenarios")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all scenarios")
	fs.BoolVar(&c.noColor, "no-color", false, "disable coloured output")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	switch c.suite {
	case suiteCart, suiteAddress, suiteAll:
	default:
		fmt.Fprintf(errOut, "invalid -suite %q: must be cart, address or all\n", c.suite)
		fs.Usage()
		return false
	}
	return true
}

func (c *commandParams) runs(suite string) bool {
	return c.suite == suiteAll || c.suite == suite
}
