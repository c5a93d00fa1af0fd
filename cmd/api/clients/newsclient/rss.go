package newsclient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"

	"choo-choo/cmd/api/assistant"
)

// 일부 CDN 은 기본 Go UA 를 차단한다.
const rssUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

// XML 에서 허용되지 않는 제어 문자 (탭, LF, CR 제외).
var invalidControlCharRegex = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)

func (c *Client) searchRSS(ctx context.Context, query string, limit int) ([]assistant.Article, error) {
	q := url.Values{}
	q.Set("hl", "en-US")
	q.Set("gl", "US")
	q.Set("ceid", "US:en")

	relPath := "/rss"
	if query != assistant.LatestNewsTopic {
		relPath = "/rss/search"
		q.Set("q", query)
	}

	body, err := c.rss.Fetch(ctx, relPath, q, http.Header{
		"User-Agent":      []string{rssUserAgent},
		"Accept":          []string{"application/rss+xml,application/xml;q=0.9,*/*;q=0.8"},
		"Accept-Language": []string{"en-US,en;q=0.9"},
	})
	if err != nil {
		return nil, err
	}

	cleaned := invalidControlCharRegex.ReplaceAll(body, nil)
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(cleaned))
	if err != nil {
		return nil, &assistant.UpstreamError{Service: c.rss.Service, Err: fmt.Errorf("parse feed: %w", err)}
	}

	articles := make([]assistant.Article, 0, limit)
	for _, item := range feed.Items {
		title, source := splitSource(item.Title)
		if title == "" {
			continue
		}
		desc := plainText(item.Description)
		// Google News 설명은 보통 "<a>제목</a> 출처" 형태라 제목과 겹친다.
		if strings.HasPrefix(desc, title) {
			desc = ""
		}
		articles = append(articles, assistant.Article{
			Title:       title,
			Description: desc,
			Source:      source,
			URL:         item.Link,
		})
		if len(articles) == limit {
			break
		}
	}
	return articles, nil
}

// splitSource 는 "헤드라인 - 매체명" 형태의 제목을 나눈다.
func splitSource(raw string) (title, source string) {
	raw = strings.TrimSpace(raw)
	i := strings.LastIndex(raw, " - ")
	if i <= 0 {
		return raw, ""
	}
	return strings.TrimSpace(raw[:i]), strings.TrimSpace(raw[i+3:])
}
