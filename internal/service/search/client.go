package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"MomentumReport/internal/domain/models"
	domsvc "MomentumReport/internal/domain/service"
	xhttp "MomentumReport/pkg/http"
)

// Client queries a web search endpoint that answers with a plain-text digest.
type Client struct {
	url   string
	count int
	http  *xhttp.Client
}

// New creates a search client. count is the number of results requested per query.
func New(url string, count int, timeout time.Duration) *Client {
	if count <= 0 {
		count = 5
	}
	return &Client{
		url:   url,
		count: count,
		http:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// Search returns the raw result text for query.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.url,
		Headers: map[string]string{
			"Accept": "text/plain",
		},
		QueryParams: map[string][]string{
			"q":     {query},
			"count": {strconv.Itoa(c.count)},
		},
	}, &body)
	if err != nil {
		return "", fmt.Errorf("search %q: %w: %v", query, models.ErrUpstreamDataUnavailable, err)
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return "", fmt.Errorf("search %q: %w: empty result", query, models.ErrUpstreamDataUnavailable)
	}
	return text, nil
}

var _ domsvc.SearchProvider = (*Client)(nil)
