package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// LatestNewsTopic 은 주제가 없을 때 쓰는 질의어다. 뉴스 제공자는 이 값을 받으면 주요 헤드라인을 돌려준다.
const LatestNewsTopic = "latest"

const newsNotConfiguredReply = "⚠ News service is not configured."

func (r *Responder) handleNews(ctx context.Context, text string) string {
	topic := extractNewsTopic(text)
	if r.news == nil {
		return newsNotConfiguredReply
	}

	articles, err := r.news.Search(ctx, topic, r.newsLimit)
	if err == nil && len(articles) == 0 {
		err = ErrEmptyResult
	}
	switch {
	case err == nil:
		return formatNews(topic, articles, r.newsLimit)
	case errors.Is(err, ErrNotConfigured):
		return newsNotConfiguredReply
	case errors.Is(err, ErrEmptyResult), errors.Is(err, ErrUpstreamNotFound):
		return fmt.Sprintf("No news articles found for '%s'.", topic)
	default:
		return "Could not fetch news: " + diagnostic(err)
	}
}

func formatNews(topic string, articles []Article, limit int) string {
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}

	var b strings.Builder
	if topic == LatestNewsTopic {
		b.WriteString("📰 Here are the top news headlines:")
	} else {
		fmt.Fprintf(&b, "📰 Here are the latest news about '%s':", topic)
	}
	for i, a := range articles {
		fmt.Fprintf(&b, "\n%d. %s", i+1, strings.TrimSpace(a.Title))
		if a.Source != "" {
			fmt.Fprintf(&b, " (%s)", a.Source)
		}
		if desc := strings.TrimSpace(a.Description); desc != "" {
			fmt.Fprintf(&b, "\n   %s", truncate(desc, 200))
		}
	}
	return b.String()
}
