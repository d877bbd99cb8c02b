package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/sebdah/goldie/v2"

	"github.com/deliveryqa/cart-contract-tests/framework"
)

func TestConsoleTestLoggerOutput(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	var buf bytes.Buffer
	logger := &ConsoleTestLogger{Out: &buf, DebugOutputOnFailure: true}
	at := func(ms int) time.Time {
		return time.Date(2026, 10, 17, 9, 30, 0, ms*int(time.Millisecond), time.UTC)
	}

	missing := framework.TestID{Path: []string{"cart", "errors", "missing cart"}}
	logger.TestStarted(missing)
	logger.TestError(missing, errors.New(
		"UnexpectedStatus: status not in acceptable set (expected {404}, got 200)\nrequest was GET /carts/999999"))
	logger.TestFinished(missing, true, framework.CapturedOutput{
		{Time: at(123), Message: "GET http://localhost/carts/999999"},
		{Time: at(456), Message: "response body:\n{\"id\":999999}"},
	})

	injection := framework.TestID{Path: []string{"cart", "advanced", "script injection in title"}}
	logger.TestStarted(injection)
	logger.TestDeviation(injection, "script payload accepted with status 200")
	logger.TestFinished(injection, false, framework.CapturedOutput{
		{Time: at(789), Message: "not shown for passing scenarios"},
	})

	address := framework.TestID{Path: []string{"address"}}
	logger.TestStarted(address)
	logger.TestSkipped(address, "WEBDRIVER_URL is not set")

	basic := framework.TestID{Path: []string{"cart", "basic"}}
	logger.TestStarted(basic)
	logger.TestSkipped(basic, "")

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "console_logger", buf.Bytes())
}
