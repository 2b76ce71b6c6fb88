package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/ashokpds15/Myself/pkg/apitypes"
	"github.com/ashokpds15/Myself/pkg/version"
)

// ErrMissingAPIKey is returned before any request is made when no admin key
// was configured.
var ErrMissingAPIKey = errors.New("admin API key is required")

const defaultTimeout = 30 * time.Second

type Client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
}

type Option func(*Client) error

func New(opts ...Option) (*Client, error) {
	c := &Client{
		http: resty.New().
			SetTimeout(defaultTimeout).
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", version.UserAgent("notifyctl")),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.baseURL == "" {
		return nil, errors.New("server is required")
	}
	c.http.SetBaseURL(c.baseURL)
	return c, nil
}

func WithServer(server string) Option {
	return func(c *Client) error {
		if server == "" {
			return errors.New("server is required")
		}
		parsed, err := url.Parse(server)
		if err != nil {
			return fmt.Errorf("invalid server: %w", err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("invalid server %q: scheme and host are required", server)
		}
		c.baseURL = strings.TrimSuffix(parsed.String(), "/")
		return nil
	}
}

func WithAPIKey(key string) Option {
	return func(c *Client) error {
		c.apiKey = key
		return nil
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) error {
		c.http.SetHeader("User-Agent", userAgent)
		return nil
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout <= 0 {
			return fmt.Errorf("invalid timeout %s", timeout)
		}
		c.http.SetTimeout(timeout)
		return nil
	}
}

// WithLogger turns on resty request/response debug output written to log.
// The admin key is redacted from every line.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) error {
		c.http.SetLogger(redactingLogger{log: log}).SetDebug(true)
		return nil
	}
}

// redactingLogger adapts a SugaredLogger to resty.Logger.
type redactingLogger struct {
	log *zap.SugaredLogger
}

func (l redactingLogger) Errorf(format string, v ...interface{}) {
	l.log.Error(apitypes.RedactAPIKey(fmt.Sprintf(format, v...)))
}

func (l redactingLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn(apitypes.RedactAPIKey(fmt.Sprintf(format, v...)))
}

func (l redactingLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug(apitypes.RedactAPIKey(fmt.Sprintf(format, v...)))
}

// AutoNotifyLatest asks the backend to announce the newest blog post.
func (c *Client) AutoNotifyLatest(ctx context.Context) (apitypes.AutoNotifyResponse, error) {
	var out apitypes.AutoNotifyResponse
	err := c.do(ctx, http.MethodPost, "/api/auto-notify-latest-blog", nil, &out)
	return out, err
}

func (c *Client) Notify(ctx context.Context, req apitypes.NotifyRequest) (apitypes.NotifyResponse, error) {
	var out apitypes.NotifyResponse
	err := c.do(ctx, http.MethodPost, "/api/notify-subscribers", req, &out)
	return out, err
}

func (c *Client) ListSubscribers(ctx context.Context) ([]string, error) {
	var out apitypes.SubscribersResponse
	if err := c.do(ctx, http.MethodGet, "/api/subscribers", nil, &out); err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(out.Subscribers))
	for _, s := range out.Subscribers {
		emails = append(emails, s.Email)
	}
	return emails, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	req := c.http.R().
		SetContext(ctx).
		SetQueryParam(apitypes.APIKeyParam, c.apiKey).
		SetError(&apitypes.Error{})
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	if resp.IsError() {
		return decodeError(resp)
	}
	return nil
}

func decodeError(resp *resty.Response) error {
	msg := ""
	if apiErr, ok := resp.Error().(*apitypes.Error); ok && apiErr != nil {
		msg = strings.TrimSpace(apiErr.Message)
	}
	if msg == "" {
		msg = strings.TrimSpace(resp.String())
	}
	if msg == "" {
		msg = resp.Status()
	}
	return &HTTPError{StatusCode: resp.StatusCode(), Message: msg}
}

type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
}
