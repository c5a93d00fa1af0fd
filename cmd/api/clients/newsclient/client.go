// Package newsclient 는 뉴스 헤드라인 제공자다. NEWS_API_KEY 가 있으면 NewsAPI 를,
// 없으면 Google News RSS 피드를 읽는다.
package newsclient

import (
	"context"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"choo-choo/cmd/api/assistant"
	"choo-choo/cmd/api/httpclient"
)

const (
	defaultNewsAPIURL = "https://newsapi.org"
	defaultRSSURL     = "https://news.google.com"
)

// NewsAPI 가 삭제된 기사 자리에 채워 넣는 제목.
const removedTitle = "[Removed]"

type Client struct {
	api    *httpclient.BaseClient
	rss    *httpclient.BaseClient
	apiKey string
}

type Option func(*Client)

func WithNewsAPIURL(baseURL string) Option {
	return func(c *Client) { c.api.BaseURL = baseURL }
}

func WithRSSURL(baseURL string) Option {
	return func(c *Client) { c.rss.BaseURL = baseURL }
}

func New(apiKey string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		api:    httpclient.NewBaseClient("news", defaultNewsAPIURL, timeout),
		rss:    httpclient.NewBaseClient("news-rss", defaultRSSURL, timeout),
		apiKey: strings.TrimSpace(apiKey),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromEnv 는 NEWS_API_KEY 환경변수로 클라이언트를 만든다. 키가 없어도 RSS 로 동작한다.
func NewFromEnv(timeout time.Duration) *Client {
	return New(os.Getenv("NEWS_API_KEY"), timeout)
}

// Search 는 query 에 대한 최신 기사를 최대 limit 건 돌려준다.
// query 가 assistant.LatestNewsTopic 이면 주요 헤드라인을 돌려준다.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]assistant.Article, error) {
	if limit <= 0 {
		limit = 5
	}
	if c.apiKey == "" {
		return c.searchRSS(ctx, query, limit)
	}
	return c.searchNewsAPI(ctx, query, limit)
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
	} `json:"articles"`
}

func (c *Client) searchNewsAPI(ctx context.Context, query string, limit int) ([]assistant.Article, error) {
	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(limit))
	q.Set("apiKey", c.apiKey)

	relPath := "/v2/everything"
	if query == assistant.LatestNewsTopic {
		relPath = "/v2/top-headlines"
		q.Set("country", "us")
		q.Set("category", "general")
	} else {
		q.Set("q", query)
		q.Set("sortBy", "publishedAt")
		q.Set("language", "en")
	}

	var resp newsAPIResponse
	if err := c.api.GetJSON(ctx, relPath, q, &resp); err != nil {
		return nil, err
	}

	articles := make([]assistant.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		title := strings.TrimSpace(a.Title)
		if title == "" || title == removedTitle {
			continue
		}
		articles = append(articles, assistant.Article{
			Title:       title,
			Description: plainText(a.Description),
			Source:      a.Source.Name,
			URL:         a.URL,
		})
		if len(articles) == limit {
			break
		}
	}
	return articles, nil
}
