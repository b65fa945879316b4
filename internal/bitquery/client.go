// Package bitquery provides token analytics for FourMeme tokens on BSC via
// the Bitquery v2 streaming GraphQL API.
package bitquery

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/machinebox/graphql"

	"github.com/pavelkarev/fourmeme-trader-mcp-server/internal/base"
	"github.com/pavelkarev/fourmeme-trader-mcp-server/internal/config"
	"github.com/pavelkarev/fourmeme-trader-mcp-server/internal/infra"
	"github.com/pavelkarev/fourmeme-trader-mcp-server/metrics"
)

//go:embed queries/list_tokens.graphql
var listTokensQuery string

//go:embed queries/token_trades.graphql
var tokenTradesQuery string

//go:embed queries/token_price.graphql
var tokenPriceQuery string

//go:embed queries/token_info.graphql
var tokenInfoQuery string

//go:embed queries/top_traders.graphql
var topTradersQuery string

//go:embed queries/token_pairs.graphql
var tokenPairsQuery string

const (
	// DefaultCacheTTL for cached query results. Trading stats move fast on
	// meme tokens, so cache windows stay short.
	DefaultCacheTTL = 30 * time.Second

	// aggregateCacheTTL for slower-moving aggregates (token info, pairs).
	aggregateCacheTTL = 2 * time.Minute
)

// Client queries the Bitquery v2 API.
type Client struct {
	*base.Client
	gql        *graphql.Client
	token      string
	maxRetries int
}

// ClientOption configures the Client (re-export base.ClientOption).
type ClientOption = base.ClientOption

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return base.WithHTTPClient(c)
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) ClientOption {
	return base.WithLogger(l)
}

// WithCache sets a custom cache.
func WithCache(c *infra.Cache) ClientOption {
	return base.WithCache(c)
}

// NewClient creates a Bitquery client for the given endpoint and bearer token.
func NewClient(endpoint, token string, opts ...ClientOption) *Client {
	bc := base.NewClient(opts...)
	return &Client{
		Client:     bc,
		gql:        graphql.NewClient(endpoint, graphql.WithHTTPClient(bc.HTTPClient)),
		token:      token,
		maxRetries: config.DefaultMaxRetries,
	}
}

// SetMaxRetries overrides the retry count for failed requests.
func (c *Client) SetMaxRetries(n int) {
	if n > 0 {
		c.maxRetries = n
	}
}

// run executes a GraphQL query with circuit breaking, concurrency limiting,
// retries, and metrics. queryName labels metrics and logs.
func (c *Client) run(ctx context.Context, queryName, query string, vars map[string]interface{}, resp interface{}) error {
	if err := c.CheckCircuitBreaker(); err != nil {
		return err
	}

	if err := c.AcquireSlot(ctx); err != nil {
		return err
	}
	defer c.ReleaseSlot()

	req := graphql.NewRequest(query)
	req.Header.Set("Authorization", "Bearer "+c.token)
	for k, v := range vars {
		req.Var(k, v)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt*attempt) * 100 * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return fmt.Errorf("context canceled during backoff: %w", ctx.Err())
			}
		}

		start := time.Now()
		err := c.gql.Run(ctx, req, resp)
		duration := time.Since(start).Seconds()

		if err != nil {
			metrics.RecordBitqueryCall(queryName, duration, false)
			lastErr = fmt.Errorf("bitquery %s: %w", queryName, err)
			c.Logger.Warn("Bitquery request failed, retrying",
				"query", queryName,
				"attempt", attempt+1,
				"error", err)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		metrics.RecordBitqueryCall(queryName, duration, true)
		c.RecordSuccess()
		return nil
	}

	c.RecordFailure()
	return lastErr
}

// cachedRun returns the cache entry for key when fresh, otherwise runs fetch
// (deduplicating identical in-flight queries) and caches the result.
func (c *Client) cachedRun(ctx context.Context, key string, ttl time.Duration, fetch func() (interface{}, error)) (interface{}, error) {
	if cached, ok := c.Cache.Get(key); ok {
		metrics.RecordCacheAccess(true)
		return cached, nil
	}
	metrics.RecordCacheAccess(false)

	result, _, err := c.Dedup.Do(ctx, key, fetch)
	if err != nil {
		return nil, err
	}

	c.Cache.Set(key, result, ttl)
	metrics.SetCacheSize(c.Cache.Size())
	return result, nil
}

// parseCount converts a Bitquery aggregate string to int64, returning 0 for
// anything unparseable.
func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Some aggregates come back in float form
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return int64(f)
		}
		return 0
	}
	return n
}
