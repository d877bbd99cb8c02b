package webdriver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/deliveryqa/cart-contract-tests/framework"
)

const elementKey = "element-6066-11e4-a52e-4f735466cecf"

// Options configure a new session.
type Options struct {
	BrowserName string
	// Headless adds the browser-specific flag for running without a display.
	Headless bool
	Logger   framework.Logger
}

// Session is a WebDriver session. It implements Browser.
type Session struct {
	client  *http.Client
	baseURL string
	id      string
	logger  framework.Logger
}

// NewSession asks the WebDriver endpoint at baseURL to start a browser.
func NewSession(ctx context.Context, client *http.Client, baseURL string, opts Options) (*Session, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = framework.NullLogger()
	}
	s := &Session{client: client, baseURL: strings.TrimSuffix(baseURL, "/"), logger: opts.Logger}

	always := ldvalue.ObjectBuild().Set("browserName", ldvalue.String(opts.BrowserName))
	if opts.Headless {
		switch opts.BrowserName {
		case "chrome":
			always.Set("goog:chromeOptions", ldvalue.ObjectBuild().
				Set("args", ldvalue.ArrayOf(ldvalue.String("--headless=new"))).Build())
		case "firefox":
			always.Set("moz:firefoxOptions", ldvalue.ObjectBuild().
				Set("args", ldvalue.ArrayOf(ldvalue.String("-headless"))).Build())
		}
	}
	body := ldvalue.ObjectBuild().Set("capabilities",
		ldvalue.ObjectBuild().Set("alwaysMatch", always.Build()).Build()).Build()

	value, err := s.do(ctx, http.MethodPost, "/session", body)
	if err != nil {
		return nil, fmt.Errorf("start %s session: %w", opts.BrowserName, err)
	}
	s.id = value.GetByKey("sessionId").StringValue()
	if s.id == "" {
		return nil, fmt.Errorf("start %s session: response had no session id", opts.BrowserName)
	}
	s.logger.Printf("started WebDriver session %s", s.id)
	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) path(elems ...string) string {
	return "/session/" + s.id + "/" + strings.Join(elems, "/")
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	_, err := s.do(ctx, http.MethodPost, s.path("url"), ldvalue.ObjectBuild().Set("url", ldvalue.String(url)).Build())
	return err
}

func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	v, err := s.do(ctx, http.MethodGet, s.path("url"), ldvalue.Null())
	return v.StringValue(), err
}

func (s *Session) FindElement(ctx context.Context, by By, selector string) (Element, error) {
	v, err := s.do(ctx, http.MethodPost, s.path("element"), locator(by, selector))
	if err != nil {
		return nil, err
	}
	return s.element(v)
}

func (s *Session) FindElements(ctx context.Context, by By, selector string) ([]Element, error) {
	v, err := s.do(ctx, http.MethodPost, s.path("elements"), locator(by, selector))
	if err != nil {
		return nil, err
	}
	ret := make([]Element, 0, v.Count())
	for i := 0; i < v.Count(); i++ {
		e, err := s.element(v.GetByIndex(i))
		if err != nil {
			return nil, err
		}
		ret = append(ret, e)
	}
	return ret, nil
}

func (s *Session) SetWindowSize(ctx context.Context, width, height int) error {
	_, err := s.do(ctx, http.MethodPost, s.path("window", "rect"), ldvalue.ObjectBuild().
		Set("width", ldvalue.Int(width)).Set("height", ldvalue.Int(height)).Build())
	return err
}

func (s *Session) ExecuteScript(ctx context.Context, script string, args ...ldvalue.Value) (ldvalue.Value, error) {
	return s.do(ctx, http.MethodPost, s.path("execute", "sync"), ldvalue.ObjectBuild().
		Set("script", ldvalue.String(script)).
		Set("args", ldvalue.ArrayOf(args...)).Build())
}

func (s *Session) DeleteAllCookies(ctx context.Context) error {
	_, err := s.do(ctx, http.MethodDelete, s.path("cookie"), ldvalue.Null())
	return err
}

// Close ends the session, which closes the browser.
func (s *Session) Close(ctx context.Context) error {
	_, err := s.do(ctx, http.MethodDelete, "/session/"+s.id, ldvalue.Null())
	return err
}

func (s *Session) element(v ldvalue.Value) (Element, error) {
	id := v.GetByKey(elementKey).StringValue()
	if id == "" {
		return nil, fmt.Errorf("malformed element reference: %s", v.JSONString())
	}
	return &remoteElement{session: s, id: id}, nil
}

func locator(by By, selector string) ldvalue.Value {
	return ldvalue.ObjectBuild().Set("using", ldvalue.String(string(by))).Set("value", ldvalue.String(selector)).Build()
}

// do sends a command and returns the "value" member of the response.
func (s *Session) do(ctx context.Context, method, path string, body ldvalue.Value) (ldvalue.Value, error) {
	var reader io.Reader
	if method == http.MethodPost {
		if body.IsNull() {
			body = ldvalue.ObjectBuild().Build()
		}
		reader = strings.NewReader(body.JSONString())
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return ldvalue.Null(), err
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	s.logger.Printf("WebDriver %s %s", method, path)
	resp, err := s.client.Do(req)
	if err != nil {
		return ldvalue.Null(), err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return ldvalue.Null(), err
	}
	value := ldvalue.Parse(bytes.TrimSpace(data)).GetByKey("value")
	if resp.StatusCode >= 300 {
		e := &Error{
			Status:  resp.StatusCode,
			Code:    value.GetByKey("error").StringValue(),
			Message: value.GetByKey("message").StringValue(),
		}
		if e.Code == "" {
			e.Code = "unknown error"
			e.Message = string(data)
		}
		return ldvalue.Null(), e
	}
	return value, nil
}
