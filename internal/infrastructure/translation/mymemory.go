// Package translation holds external refine providers for recipe translation.
package translation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/storelaunch/backend/internal/infrastructure/config"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const maxResponseSize = 1 << 20

// Refiner errors
var (
	ErrRateLimited     = errors.New("mymemory: rate limit reached")
	ErrProviderFailure = errors.New("mymemory: request failed")
	ErrEmptyResult     = errors.New("mymemory: empty translation")
)

// MyMemoryRefiner sends text to the MyMemory translation API
type MyMemoryRefiner struct {
	endpoint   string
	langPair   string
	email      string
	limiter    *rate.Limiter
	httpClient *http.Client
}

// NewMyMemoryRefiner creates a refiner from translation settings
func NewMyMemoryRefiner(cfg config.TranslationConfig) *MyMemoryRefiner {
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 1
	}
	return &MyMemoryRefiner{
		endpoint:   cfg.Endpoint,
		langPair:   cfg.SourceLang + "|" + cfg.TargetLang,
		email:      cfg.Email,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Refine returns the provider's translation of text. Requests over the
// configured rate fail immediately with ErrRateLimited.
func (r *MyMemoryRefiner) Refine(ctx context.Context, text string) (string, error) {
	if !r.limiter.Allow() {
		return "", ErrRateLimited
	}

	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", r.langPair)
	if r.email != "" {
		q.Set("de", r.email)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("mymemory: failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("mymemory: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: HTTP %d", ErrProviderFailure, resp.StatusCode)
	}

	if status := gjson.GetBytes(body, "responseStatus"); status.Exists() && status.Int() != http.StatusOK {
		return "", fmt.Errorf("%w: %s", ErrProviderFailure, gjson.GetBytes(body, "responseDetails").String())
	}
	translated := strings.TrimSpace(gjson.GetBytes(body, "responseData.translatedText").String())
	if translated == "" {
		return "", ErrEmptyResult
	}
	return translated, nil
}
