// Package translate calls the line-by-line translation endpoint.
//
// The endpoint accepts {"src": [lines...]} and answers with
// {"translated": [lines...]} in the same order. Any failure, including a
// response with a different number of lines, is an external failure. Nothing
// is retried.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/verte-zerg/typelingo/internal/errors"
	"github.com/verte-zerg/typelingo/internal/model"
	"github.com/verte-zerg/typelingo/internal/validation"
)

// DefaultURL is the address of the bundled translation server.
const DefaultURL = "http://localhost:5000/translate"

const maxResponseBytes = 8 << 20

type request struct {
	Src []string `json:"src" validate:"required,min=1"`
}

type response struct {
	Translated []string `json:"translated" validate:"required"`
}

// Client talks to the translation endpoint over HTTP.
type Client struct {
	url       string
	http      *http.Client
	logger    *slog.Logger
	validator *validation.Validator
}

// NewClient returns a client for url with the given request timeout.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:       url,
		http:      &http.Client{Timeout: timeout},
		logger:    logger,
		validator: validation.New(),
	}
}

// SplitLines splits text into request lines on '\n'.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// Translate sends lines to the endpoint and returns the translations in order.
func (c *Client) Translate(ctx context.Context, lines []string) ([]string, error) {
	req := request{Src: lines}
	if err := c.validator.Validate(req); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, apperrors.External(err, "translation request failed")
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperrors.External(fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet)), "translation request failed")
	}

	var out response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return nil, apperrors.External(err, "failed to decode translation response")
	}
	if err := c.validator.Validate(out); err != nil {
		return nil, apperrors.External(err, "invalid translation response")
	}
	if len(out.Translated) != len(lines) {
		return nil, apperrors.External(
			fmt.Errorf("sent %d lines, received %d", len(lines), len(out.Translated)),
			"translation response does not match request",
		)
	}
	if c.logger != nil {
		c.logger.Info("translated lines", "count", len(lines), "elapsed", time.Since(start))
	}
	return out.Translated, nil
}

// TranslateArticle translates text and zips it into an article. The article
// is not persisted.
func (c *Client) TranslateArticle(ctx context.Context, text string) (model.Article, error) {
	lines := SplitLines(strings.TrimRight(text, "\n"))
	translated, err := c.Translate(ctx, lines)
	if err != nil {
		return model.Article{}, err
	}
	return model.ArticleFromPair(lines, translated), nil
}
