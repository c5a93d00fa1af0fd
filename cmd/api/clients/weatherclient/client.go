// Package weatherclient 는 OpenWeatherMap 현재 날씨 API 클라이언트다.
package weatherclient

import (
	"context"
	"net/url"
	"os"
	"strings"
	"time"

	"choo-choo/cmd/api/assistant"
	"choo-choo/cmd/api/httpclient"
)

const defaultBaseURL = "https://api.openweathermap.org"

type Client struct {
	base   *httpclient.BaseClient
	apiKey string
}

type Option func(*Client)

// WithBaseURL 은 테스트 서버 등 다른 엔드포인트를 쓸 때 지정한다.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.base.BaseURL = baseURL }
}

func New(apiKey string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		base:   httpclient.NewBaseClient("weather", defaultBaseURL, timeout),
		apiKey: strings.TrimSpace(apiKey),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromEnv 는 WEATHER_API_KEY 환경변수로 클라이언트를 만든다.
func NewFromEnv(timeout time.Duration) *Client {
	return New(os.Getenv("WEATHER_API_KEY"), timeout)
}

func (c *Client) Configured() bool { return c.apiKey != "" }

type currentResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Current 는 city 의 현재 날씨를 섭씨로 조회한다. 도시가 없으면 assistant.ErrUpstreamNotFound 를 감싼 에러.
func (c *Client) Current(ctx context.Context, city string) (*assistant.Weather, error) {
	if !c.Configured() {
		return nil, assistant.ErrNotConfigured
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("units", "metric")
	q.Set("appid", c.apiKey)

	var resp currentResponse
	if err := c.base.GetJSON(ctx, "/data/2.5/weather", q, &resp); err != nil {
		return nil, err
	}

	w := &assistant.Weather{
		City:        resp.Name,
		Country:     resp.Sys.Country,
		Temperature: resp.Main.Temp,
		FeelsLike:   resp.Main.FeelsLike,
		Humidity:    resp.Main.Humidity,
	}
	if w.City == "" {
		w.City = city
	}
	if len(resp.Weather) > 0 {
		w.Description = resp.Weather[0].Description
	}
	return w, nil
}
