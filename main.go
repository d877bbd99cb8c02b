package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/deliveryqa/cart-contract-tests/addresstests"
	"github.com/deliveryqa/cart-contract-tests/cartdouble"
	"github.com/deliveryqa/cart-contract-tests/carttests"
	"github.com/deliveryqa/cart-contract-tests/config"
	"github.com/deliveryqa/cart-contract-tests/executor"
	"github.com/deliveryqa/cart-contract-tests/fixtures"
	"github.com/deliveryqa/cart-contract-tests/framework"
	"github.com/deliveryqa/cart-contract-tests/webdriver"
)

const (
	exitFailed      = 1
	exitConfigError = 2
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	var params commandParams
	if !params.Read(args, errOut) {
		return exitConfigError
	}
	if params.noColor {
		color.NoColor = true
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(errOut, "Configuration error: %s\n", err)
		return exitConfigError
	}
	if params.local && params.runs(suiteCart) {
		server := httptest.NewServer(cartdouble.NewRouter())
		defer server.Close()
		cfg = cfg.WithCartBaseURL(server.URL + "/carts")
		fmt.Fprintf(out, "Serving cart double at %s\n", cfg.CartBaseURL)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = framework.WriterLogger(out)
	}
	client := &http.Client{}
	ctx := context.Background()

	var cartEnv *carttests.Environment
	if params.runs(suiteCart) {
		registry, err := fixtures.Default(cfg)
		if err != nil {
			fmt.Fprintf(errOut, "Fixture error: %s\n", err)
			return exitConfigError
		}
		if cfg.PreflightEnabled() {
			if err := framework.AwaitService(ctx, client, cfg.CartBaseURL, cfg.PreflightTimeout, out); err != nil {
				fmt.Fprintf(errOut, "Cart API error: %s\n", err)
				return exitConfigError
			}
		}
		cartEnv = &carttests.Environment{
			Config:   cfg,
			Fixtures: registry,
			Executor: executor.New(cfg, client, mainDebugLogger),
		}
	}

	unavailable := make(map[string]string)
	addressEnv := addresstests.Environment{Config: cfg}
	if params.runs(suiteAddress) {
		if !cfg.BrowserEnabled() {
			unavailable[suiteAddress] = "WEBDRIVER_URL is not set"
		} else {
			if cfg.PreflightEnabled() {
				statusURL := strings.TrimSuffix(cfg.WebDriverURL, "/") + "/status"
				if err := framework.AwaitService(ctx, client, statusURL, cfg.PreflightTimeout, out); err != nil {
					fmt.Fprintf(errOut, "WebDriver error: %s\n", err)
					return exitConfigError
				}
			}
			session, err := webdriver.NewSession(ctx, client, cfg.WebDriverURL, webdriver.Options{
				BrowserName: cfg.BrowserName,
				Headless:    true,
				Logger:      mainDebugLogger,
			})
			if err != nil {
				fmt.Fprintf(errOut, "WebDriver error: %s\n", err)
				return exitConfigError
			}
			defer func() {
				if err := session.Close(context.Background()); err != nil {
					fmt.Fprintf(errOut, "Could not close browser session: %s\n", err)
				}
			}()
			addressEnv.Browser = session
		}
	}

	fmt.Fprintln(out)
	framework.PrintFilterDescription(out, params.filters, unavailable)

	fmt.Fprintln(out, "Running test suite")

	testLogger := &ConsoleTestLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	var all []framework.Results
	if cartEnv != nil {
		all = append(all, carttests.RunTestSuite(*cartEnv, params.filters.AsFilter, testLogger))
	}
	if params.runs(suiteAddress) {
		all = append(all, addresstests.RunTestSuite(addressEnv, params.filters.AsFilter, testLogger))
	}
	results := framework.MergeResults(all...)

	fmt.Fprintln(out)
	framework.PrintResults(out, results)
	if !results.OK() {
		return exitFailed
	}
	return 0
}
