package blogger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/ashokpds15/Myself/pkg/config"
	"github.com/ashokpds15/Myself/pkg/metrics"
)

var (
	// ErrNoPosts is returned when the blog has no published posts.
	ErrNoPosts = errors.New("no blog posts found")
	// ErrNotFound is returned when a single post does not exist.
	ErrNotFound = errors.New("blog post not found")
	// ErrUpstream wraps transport failures and non-2xx Blogger responses.
	ErrUpstream = errors.New("blogger API request failed")
)

const defaultTimeout = 10 * time.Second

// Fetcher is the read side of the Blogger API used by the HTTP handlers.
type Fetcher interface {
	FetchLatest(ctx context.Context) (Post, error)
	ListPosts(ctx context.Context, maxResults int) ([]Post, error)
	GetPost(ctx context.Context, id string) (Post, error)
}

type Client struct {
	http   *resty.Client
	blogID string
	apiKey string
	log    *zap.SugaredLogger
}

var _ Fetcher = (*Client)(nil)

type postList struct {
	Items []Post `json:"items"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient builds a Blogger client from cfg. An unparsable RequestTimeout
// falls back to 10s.
func NewClient(cfg config.Blogger, log *zap.SugaredLogger) *Client {
	log = log.Named("blogger")
	timeout := defaultTimeout
	if cfg.RequestTimeout != "" {
		if d, err := time.ParseDuration(cfg.RequestTimeout); err == nil && d > 0 {
			timeout = d
		} else {
			log.Warnw("Invalid blogger request timeout, using default", "value", cfg.RequestTimeout, "default", timeout)
		}
	}

	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
		blogID: cfg.BlogID,
		apiKey: cfg.APIKey,
		log:    log,
	}
}

// FetchLatest returns the most recently published post.
func (c *Client) FetchLatest(ctx context.Context) (Post, error) {
	posts, err := c.listPosts(ctx, "latest", 1)
	if err != nil {
		return Post{}, err
	}
	if len(posts) == 0 {
		return Post{}, ErrNoPosts
	}
	return posts[0], nil
}

// ListPosts returns up to maxResults posts, newest first.
func (c *Client) ListPosts(ctx context.Context, maxResults int) ([]Post, error) {
	return c.listPosts(ctx, "list", maxResults)
}

func (c *Client) listPosts(ctx context.Context, operation string, maxResults int) ([]Post, error) {
	var out postList
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("blogID", c.blogID).
		SetQueryParams(map[string]string{
			"key":        c.apiKey,
			"maxResults": strconv.Itoa(maxResults),
			"orderBy":    "published",
		}).
		SetResult(&out).
		SetError(&apiError{}).
		Get("/blogs/{blogID}/posts")
	if err := c.check(operation, resp, err); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []Post{}
	}
	return out.Items, nil
}

// GetPost returns a single post by id.
func (c *Client) GetPost(ctx context.Context, id string) (Post, error) {
	var out Post
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"blogID": c.blogID, "postID": id}).
		SetQueryParam("key", c.apiKey).
		SetResult(&out).
		SetError(&apiError{}).
		Get("/blogs/{blogID}/posts/{postID}")
	if resp != nil && resp.StatusCode() == http.StatusNotFound {
		metrics.BloggerRequests.WithLabelValues("get", "not_found").Inc()
		return Post{}, ErrNotFound
	}
	if err := c.check("get", resp, err); err != nil {
		return Post{}, err
	}
	return out, nil
}

func (c *Client) check(operation string, resp *resty.Response, err error) error {
	if err != nil {
		metrics.BloggerRequests.WithLabelValues(operation, "error").Inc()
		c.log.Warnw("Blogger request failed", "operation", operation, "error", err)
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.IsError() {
		metrics.BloggerRequests.WithLabelValues(operation, "error").Inc()
		msg := resp.Status()
		if e, ok := resp.Error().(*apiError); ok && e.Error.Message != "" {
			msg = e.Error.Message
		}
		c.log.Warnw("Blogger returned an error", "operation", operation, "status", resp.StatusCode(), "message", msg)
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode(), msg)
	}
	metrics.BloggerRequests.WithLabelValues(operation, "success").Inc()
	return nil
}
