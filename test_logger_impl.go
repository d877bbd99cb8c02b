package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/deliveryqa/cart-contract-tests/framework"
)

var (
	failedLabel    = color.New(color.FgRed, color.Bold).SprintFunc()
	skippedLabel   = color.New(color.FgYellow).SprintFunc()
	toleratedLabel = color.New(color.FgMagenta).SprintFunc()
)

// ConsoleTestLogger prints scenario progress as it happens.
type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestDeviation(id framework.TestID, message string) {
	fmt.Fprintf(c.Out, "  %s %s\n", toleratedLabel("TOLERATED:"), message)
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Fprintf(c.Out, "  %s %s\n", failedLabel("FAILED:"), id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "  %s %s\n", skippedLabel("SKIPPED:"), id)
	} else {
		fmt.Fprintf(c.Out, "  %s %s (%s)\n", skippedLabel("SKIPPED:"), id, reason)
	}
}
