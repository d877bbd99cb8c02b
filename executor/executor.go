// Package executor sends fixture requests to the system under test. HTTP status codes are
// never errors here: every response that arrives is returned for the assertions to judge.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/deliveryqa/cart-contract-tests/config"
	"github.com/deliveryqa/cart-contract-tests/contract"
	"github.com/deliveryqa/cart-contract-tests/fixtures"
	"github.com/deliveryqa/cart-contract-tests/framework"
)

// RequestIDHeader is added to every request so that a failure can be matched with the
// server's logs.
const RequestIDHeader = "X-Request-Id"

// Overrides change one execution of a fixture without touching the fixture itself.
type Overrides struct {
	// Body replaces the fixture's body if it is not null.
	Body ldvalue.Value
	// NoBody sends the request without a body even if the fixture has one.
	NoBody bool
	// Headers are added to, or replace, the fixture's headers.
	Headers map[string]string
	// TimeoutMS replaces the configured request timeout.
	TimeoutMS ldvalue.OptionalInt
	// Vars supply the fixture's remaining URL placeholders.
	Vars map[string]string
}

type Executor struct {
	client      *http.Client
	timeout     time.Duration
	concurrency int
	logger      framework.Logger
}

// New creates an Executor. A nil client means http.DefaultClient; a nil logger discards
// output.
func New(cfg config.Config, client *http.Client, logger framework.Logger) *Executor {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Executor{
		client:      client,
		timeout:     cfg.RequestTimeout,
		concurrency: cfg.BatchConcurrency,
		logger:      logger,
	}
}

// WithLogger returns a copy that logs to logger, normally a scenario's debug logger.
func (e *Executor) WithLogger(logger framework.Logger) *Executor {
	e1 := *e
	e1.logger = logger
	return &e1
}

// Execute sends one request and waits for the whole response. The only errors are a
// fixtures.TemplateError for unresolved placeholders, TimeoutError and TransportError.
func (e *Executor) Execute(ctx context.Context, fixture fixtures.Fixture, overrides Overrides) (contract.ScenarioResult, error) {
	url, err := fixture.Resolve(overrides.Vars)
	if err != nil {
		return contract.ScenarioResult{}, err
	}
	body := requestBody(fixture, overrides)
	headers := requestHeaders(fixture, overrides, body)
	timeout := e.timeout
	if overrides.TimeoutMS.IsDefined() {
		timeout = time.Duration(overrides.TimeoutMS.IntValue()) * time.Millisecond
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if !body.IsNull() {
		reader = strings.NewReader(body.JSONString())
	}
	req, err := http.NewRequestWithContext(reqCtx, fixture.Method, url, reader)
	if err != nil {
		return contract.ScenarioResult{}, &TransportError{Method: fixture.Method, URL: url, Err: err}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	e.logger.Printf("%s %s [%s]", fixture.Method, url, headers[RequestIDHeader])
	e.logger.Printf("reproduce with: %s", CurlCommand(fixture.Method, url, headers, body))

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		return contract.ScenarioResult{}, e.classify(fixture.Method, url, timeout, err)
	}
	raw, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	duration := time.Since(start)
	if err != nil {
		return contract.ScenarioResult{}, e.classify(fixture.Method, url, timeout, err)
	}

	result := contract.ScenarioResult{
		Status:    resp.StatusCode,
		Header:    resp.Header,
		RawBody:   raw,
		Duration:  duration,
		RequestID: headers[RequestIDHeader],
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && json.Valid(trimmed) {
		result.Body = ldvalue.Parse(trimmed)
		result.HasBody = true
	}
	e.logger.Printf("%s %s -> %d in %d ms (%d bytes)", fixture.Method, url, result.Status, result.DurationMS(), len(raw))
	return result, nil
}

func (e *Executor) classify(method, url string, timeout time.Duration, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		e.logger.Printf("%s %s timed out after %s", method, url, timeout)
		return &TimeoutError{Method: method, URL: url, Timeout: timeout, Err: err}
	}
	e.logger.Printf("%s %s failed: %s", method, url, err)
	return &TransportError{Method: method, URL: url, Err: err}
}

func requestBody(fixture fixtures.Fixture, overrides Overrides) ldvalue.Value {
	switch {
	case overrides.NoBody:
		return ldvalue.Null()
	case !overrides.Body.IsNull():
		return overrides.Body
	default:
		return fixture.Body
	}
}

func requestHeaders(fixture fixtures.Fixture, overrides Overrides, body ldvalue.Value) map[string]string {
	headers := map[string]string{
		"Accept":        "application/json",
		RequestIDHeader: uuid.New().String(),
	}
	if !body.IsNull() {
		headers["Content-Type"] = "application/json"
	}
	for k, v := range fixture.Headers {
		headers[k] = v
	}
	for k, v := range overrides.Headers {
		headers[k] = v
	}
	return headers
}
