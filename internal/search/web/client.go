package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/Kirankkt/Trivandrum-Realty-v2/pkg/logger"
	"github.com/Kirankkt/Trivandrum-Realty-v2/pkg/retry"
)

// MaxResults is the most results a search hands to the oracle.
const MaxResults = 10

// fetchPageSize is how many candidates are requested upstream before ranking.
const fetchPageSize = 20

// priorityDomains ranks listing portals ahead of everything else.
var priorityDomains = []string{
	"99acres",
	"magicbricks",
	"housing.com",
	"olx",
	"commonfloor",
	"nobroker",
}

type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Memo stores search responses between calls.
type Memo interface {
	SetSearch(ctx context.Context, query string, results interface{}, ttl time.Duration) error
	GetSearch(ctx context.Context, query string, results interface{}) (bool, error)
}

type Client struct {
	serpAPIKey string
	serpURL    string
	htmlURL    string
	httpClient *http.Client
	retryCfg   retry.Config
	memo       Memo
	memoTTL    time.Duration
}

type Option func(*Client)

// WithEndpoints points the client at alternative SerpAPI and HTML search
// endpoints.
func WithEndpoints(serpURL, htmlURL string) Option {
	return func(c *Client) {
		c.serpURL = serpURL
		c.htmlURL = htmlURL
	}
}

func WithMemo(m Memo, ttl time.Duration) Option {
	return func(c *Client) {
		c.memo = m
		c.memoTTL = ttl
	}
}

func WithRetry(cfg retry.Config) Option {
	return func(c *Client) { c.retryCfg = cfg }
}

func NewClient(serpAPIKey string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		serpAPIKey: serpAPIKey,
		serpURL:    "https://serpapi.com/search",
		htmlURL:    "https://www.google.com/search",
		httpClient: &http.Client{Timeout: timeout},
		retryCfg: retry.Config{
			MaxAttempts:    2,
			InitialDelay:   300 * time.Millisecond,
			MaxDelay:       time.Second,
			Multiplier:     2.0,
			JitterFraction: 0.1,
			Logger:         logger.GetLogger(),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueryFor builds the land-rate search query for a locality.
func QueryFor(locality string) string {
	return fmt.Sprintf("Land price per cent in %s Trivandrum 2024 2025", locality)
}

// Search returns at most maxResults results, listing portals first. A page of
// fetchPageSize candidates is ranked before truncation so portals below the
// first page can still be promoted. The memo holds the whole ranked page, so
// one entry serves any maxResults.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if maxResults <= 0 || maxResults > MaxResults {
		maxResults = MaxResults
	}

	if c.memo != nil {
		var cached []SearchResult
		found, err := c.memo.GetSearch(ctx, query, &cached)
		if err != nil {
			logger.Warn("Search memo lookup failed", zap.Error(err))
		} else if found {
			return truncate(cached, maxResults), nil
		}
	}

	logger.Info("Performing web search", zap.String("query", query))

	results, err := retry.DoWithResult(ctx, c.retryCfg, func() ([]SearchResult, error) {
		if c.serpAPIKey != "" {
			return c.searchWithSerpAPI(ctx, query, fetchPageSize)
		}
		return c.searchWithHTML(ctx, query, fetchPageSize)
	})
	if err != nil {
		return nil, err
	}

	ranked := truncate(Rank(results), fetchPageSize)

	if c.memo != nil && len(ranked) > 0 {
		if err := c.memo.SetSearch(ctx, query, ranked, c.memoTTL); err != nil {
			logger.Warn("Failed to memoize search results", zap.Error(err))
		}
	}

	results = truncate(ranked, maxResults)

	logger.Info("Web search completed", zap.Int("results", len(results)))
	return results, nil
}

// Rank moves results from listing portals to the front, in portal priority
// order. Ties keep their original order.
func Rank(results []SearchResult) []SearchResult {
	ranked := make([]SearchResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return domainPriority(ranked[i].URL) < domainPriority(ranked[j].URL)
	})
	return ranked
}

func domainPriority(link string) int {
	host := link
	if u, err := url.Parse(link); err == nil && u.Host != "" {
		host = u.Host
	}
	host = strings.ToLower(host)
	for i, d := range priorityDomains {
		if strings.Contains(host, d) {
			return i
		}
	}
	return len(priorityDomains)
}

func truncate(results []SearchResult, n int) []SearchResult {
	if len(results) > n {
		return results[:n]
	}
	return results
}

func (c *Client) get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		err := fmt.Errorf("search returned status %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, retry.Permanent(err)
		}
		return nil, err
	}
	return resp, nil
}

func (c *Client) searchWithSerpAPI(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	params := url.Values{}
	params.Add("q", query)
	params.Add("api_key", c.serpAPIKey)
	params.Add("num", fmt.Sprintf("%d", maxResults))

	resp, err := c.get(ctx, fmt.Sprintf("%s?%s", c.serpURL, params.Encode()))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var searchResp struct {
		OrganicResults []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic_results"`
	}

	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, retry.Permanent(fmt.Errorf("failed to parse response: %w", err))
	}

	results := make([]SearchResult, 0, len(searchResp.OrganicResults))
	for _, r := range searchResp.OrganicResults {
		if r.Link == "" {
			continue
		}
		results = append(results, SearchResult{
			Title:   strings.TrimSpace(r.Title),
			URL:     r.Link,
			Snippet: strings.TrimSpace(r.Snippet),
		})
	}
	return results, nil
}

func (c *Client) searchWithHTML(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	target := fmt.Sprintf("%s?q=%s&num=%d", c.htmlURL, url.QueryEscape(query), maxResults)

	resp, err := c.get(ctx, target)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	results := make([]SearchResult, 0)
	doc.Find("div.g").Each(func(i int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find("h3").First().Text())
		link, _ := s.Find("a").First().Attr("href")
		snippet := strings.TrimSpace(s.Find("div.VwiC3b").Text())

		if title != "" && link != "" {
			results = append(results, SearchResult{
				Title:   title,
				URL:     link,
				Snippet: snippet,
			})
		}
	})

	return results, nil
}
