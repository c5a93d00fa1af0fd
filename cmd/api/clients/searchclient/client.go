// Package searchclient 는 폴백용 웹 검색 제공자다. SERP_API_KEY 가 있으면 SerpApi(Google)를,
// 없으면 DuckDuckGo HTML 결과 페이지를 goquery 로 파싱한다.
package searchclient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"choo-choo/cmd/api/assistant"
	"choo-choo/cmd/api/httpclient"
)

const (
	defaultSerpAPIURL    = "https://serpapi.com"
	defaultDuckDuckGoURL = "https://html.duckduckgo.com"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"
)

type Client struct {
	serp   *httpclient.BaseClient
	ddg    *httpclient.BaseClient
	apiKey string
}

type Option func(*Client)

func WithSerpAPIURL(baseURL string) Option {
	return func(c *Client) { c.serp.BaseURL = baseURL }
}

func WithDuckDuckGoURL(baseURL string) Option {
	return func(c *Client) { c.ddg.BaseURL = baseURL }
}

func New(apiKey string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		serp:   httpclient.NewBaseClient("search", defaultSerpAPIURL, timeout),
		ddg:    httpclient.NewBaseClient("search-ddg", defaultDuckDuckGoURL, timeout),
		apiKey: strings.TrimSpace(apiKey),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromEnv 는 SERP_API_KEY 환경변수로 클라이언트를 만든다.
func NewFromEnv(timeout time.Duration) *Client {
	return New(os.Getenv("SERP_API_KEY"), timeout)
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]assistant.SearchResult, error) {
	if limit <= 0 {
		limit = 3
	}
	if c.apiKey == "" {
		return c.searchDuckDuckGo(ctx, query, limit)
	}
	return c.searchSerpAPI(ctx, query, limit)
}

type serpResponse struct {
	Error          string `json:"error"`
	OrganicResults []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic_results"`
}

func (c *Client) searchSerpAPI(ctx context.Context, query string, limit int) ([]assistant.SearchResult, error) {
	q := url.Values{}
	q.Set("engine", "google")
	q.Set("q", query)
	q.Set("num", strconv.Itoa(limit))
	q.Set("api_key", c.apiKey)

	var resp serpResponse
	if err := c.serp.GetJSON(ctx, "/search.json", q, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" && len(resp.OrganicResults) == 0 {
		return nil, fmt.Errorf("serpapi: %s: %w", resp.Error, assistant.ErrEmptyResult)
	}

	results := make([]assistant.SearchResult, 0, limit)
	for _, r := range resp.OrganicResults {
		if strings.TrimSpace(r.Title) == "" {
			continue
		}
		results = append(results, assistant.SearchResult{
			Title:   strings.TrimSpace(r.Title),
			Snippet: strings.TrimSpace(r.Snippet),
			Link:    r.Link,
		})
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

func (c *Client) searchDuckDuckGo(ctx context.Context, query string, limit int) ([]assistant.SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)

	body, err := c.ddg.Fetch(ctx, "/html/", q, http.Header{
		"User-Agent": []string{userAgent},
		"Accept":     []string{"text/html"},
	})
	if err != nil {
		return nil, err
	}
	return parseDuckDuckGo(body, limit)
}

// parseDuckDuckGo 는 DuckDuckGo HTML 결과 페이지에서 제목, 스니펫, 링크를 뽑는다. 광고 블록은 건너뛴다.
func parseDuckDuckGo(body []byte, limit int) ([]assistant.SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &assistant.UpstreamError{Service: "search-ddg", Err: fmt.Errorf("parse html: %w", err)}
	}

	var results []assistant.SearchResult
	doc.Find("div.result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}
		a := s.Find("a.result__a").First()
		title := collapse(a.Text())
		if title == "" {
			return true
		}
		href, _ := a.Attr("href")
		results = append(results, assistant.SearchResult{
			Title:   title,
			Snippet: collapse(s.Find(".result__snippet").First().Text()),
			Link:    resolveRedirect(href),
		})
		return len(results) < limit
	})
	return results, nil
}

// resolveRedirect 는 "//duckduckgo.com/l/?uddg=<원래 URL>" 형태의 링크를 원래 URL 로 되돌린다.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "" && strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	return href
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
