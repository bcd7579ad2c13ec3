package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/typefill-labs/typefill/internal/branding"
	"github.com/typefill-labs/typefill/internal/logging"
)

const (
	// abbreviatedAccept asks the registry for corgi metadata, which is much
	// smaller than the full packument.
	abbreviatedAccept = "application/vnd.npm.install-v1+json; q=1.0, application/json; q=0.8"

	defaultMemoSize = 1024
	defaultTimeout  = 30 * time.Second
)

// Client answers whether a package name exists in an npm-compatible registry.
// Answers are memoized for the lifetime of the Client only.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	token      string
	memo       *lru.Cache[string, bool]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBaseURL sets the registry base URL. Empty values are ignored.
func WithBaseURL(url string) Option {
	return func(cl *Client) {
		if url != "" {
			cl.baseURL = url
		}
	}
}

// WithTimeout bounds each registry request.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithToken sets a bearer token sent with every request.
func WithToken(token string) Option {
	return func(cl *Client) {
		cl.token = token
	}
}

// New creates a Client for the default registry, adjusted by opts.
// NPM_TOKEN, when set, is used as the bearer token.
func New(opts ...Option) *Client {
	memo, _ := lru.New[string, bool](defaultMemoSize)
	c := &Client{
		baseURL:    branding.RegistryURL(),
		httpClient: http.DefaultClient,
		timeout:    defaultTimeout,
		token:      os.Getenv("NPM_TOKEN"),
		memo:       memo,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the registry base URL in use.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PackageURL returns the document URL queried for name.
func (c *Client) PackageURL(name string) string {
	return strings.TrimRight(c.baseURL, "/") + "/" + name
}

// Exists reports whether name is published. HTTP 200 means it is; any other
// status means it is not. Failing to reach the registry is an error.
func (c *Client) Exists(ctx context.Context, name string) (bool, error) {
	if found, ok := c.memo.Get(name); ok {
		return found, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.PackageURL(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", abbreviatedAccept)
	req.Header.Set("User-Agent", branding.CLIName())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("querying registry for %s: %w", name, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	found := resp.StatusCode == http.StatusOK
	logging.From(ctx).Debug().
		Str("package", name).
		Int("status", resp.StatusCode).
		Msg("registry lookup")

	c.memo.Add(name, found)
	return found, nil
}
