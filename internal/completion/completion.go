// Package completion wraps a provider with token forecasting, an optional
// response cache, and rate-limit retries. It is the single path through which
// tfreview talks to an LLM.
package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dshills/tfreview/internal/cache"
	"github.com/dshills/tfreview/internal/providers"
	"github.com/dshills/tfreview/internal/terminal"
	"github.com/dshills/tfreview/internal/tokens"
)

// FailureSentinel replaces the completion when every attempt was rate limited.
const FailureSentinel = "Unable to generate comment due to rate limit."

// promptPreview is how much of a prompt is echoed in debug logs.
const promptPreview = 100

// Options configures a Client. Provider is required; everything else has a
// usable zero value.
type Options struct {
	Provider  providers.Completer
	Counter   tokens.Counter
	Forecast  tokens.Forecast
	Retry     providers.RetryPolicy
	Cache     *cache.Cache
	Logger    *terminal.Logger
	MaxTokens int
}

// Client generates free-text comments for prompts.
type Client struct {
	provider  providers.Completer
	model     string
	counter   tokens.Counter
	forecast  tokens.Forecast
	retry     providers.RetryPolicy
	cache     *cache.Cache
	log       *terminal.Logger
	maxTokens int
}

// New builds a Client from opts.
func New(opts Options) (*Client, error) {
	if opts.Provider == nil {
		return nil, errors.New("completion: provider is required")
	}
	counter := opts.Counter
	if counter == nil {
		counter = tokens.Approx{}
	}
	retry := opts.Retry
	if retry.MaxAttempts == 0 {
		retry = providers.DefaultRetryPolicy()
	}

	c := &Client{
		provider:  opts.Provider,
		counter:   counter,
		forecast:  opts.Forecast,
		retry:     retry,
		cache:     opts.Cache,
		log:       opts.Logger,
		maxTokens: opts.MaxTokens,
	}
	if m, ok := opts.Provider.(providers.Modeler); ok {
		c.model = m.Model()
	}

	userOnRetry := retry.OnRetry
	c.retry.OnRetry = func(attempt int, wait time.Duration, err error) {
		c.log.Warnf("rate limit hit (attempt %d/%d), retrying in %s", attempt, c.retry.MaxAttempts, wait)
		if userOnRetry != nil {
			userOnRetry(attempt, wait, err)
		}
	}
	return c, nil
}

// EstimateTokens returns the token estimate for prompt without recording it.
func (c *Client) EstimateTokens(prompt string) int {
	return c.counter.Count(prompt)
}

// GenerateComments sends prompt to the provider and returns the trimmed
// completion. The token estimate is appended to the forecast log before any
// remote call. When every attempt is rate limited the FailureSentinel is
// returned with a nil error; any other failure is returned as an error.
func (c *Client) GenerateComments(ctx context.Context, prompt string) (string, error) {
	estimate := c.counter.Count(prompt)
	c.log.Debugf("estimated tokens for prompt: %d", estimate)
	if err := c.forecast.Record(estimate); err != nil {
		return "", err
	}

	name := c.provider.Name()
	if cached, ok := c.cache.Get(name, c.model, prompt); ok {
		c.log.Debugf("cache hit for prompt: %s", terminal.Truncate(prompt, promptPreview))
		return cached, nil
	}

	c.log.Debugf("generating comments with prompt: %s", terminal.Truncate(prompt, promptPreview))

	var resp providers.Response
	err := c.retry.Do(ctx, func() error {
		var err error
		resp, err = c.provider.Complete(ctx, providers.Request{
			Prompt:    prompt,
			MaxTokens: c.maxTokens,
		})
		return err
	})
	if err != nil {
		var exhausted *providers.ExhaustedError
		if errors.As(err, &exhausted) {
			c.log.Errorf("%s: %v", name, err)
			return FailureSentinel, nil
		}
		return "", fmt.Errorf("%s completion: %w", name, err)
	}

	content := strings.TrimSpace(resp.Content)
	c.log.Debugf("received %d characters (%d tokens used)", len(content), resp.TokensUsed)

	if err := c.cache.Put(name, c.model, prompt, content); err != nil {
		c.log.Warnf("caching completion: %v", err)
	}
	return content, nil
}
