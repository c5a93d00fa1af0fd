package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
	Mongo     MongoConfig     `yaml:"mongo"`
	Assistant AssistantConfig `yaml:"assistant"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Speech    SpeechConfig    `yaml:"speech"`
	Desktop   DesktopConfig   `yaml:"desktop"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	TemplatesGlob  string   `yaml:"templates_glob"`
	StaticDir      string   `yaml:"static_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	CookieSecure   bool     `yaml:"cookie_secure"`
}

type MongoConfig struct {
	// URI 는 MONGO_URI 환경변수가 있으면 그 값으로 덮어쓴다.
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// AssistantConfig 는 응답 파이프라인의 튜닝 값이다.
type AssistantConfig struct {
	DefaultCity     string        `yaml:"default_city"`
	NewsCount       int           `yaml:"news_count"`
	SearchCount     int           `yaml:"search_count"`
	HistoryTurns    int           `yaml:"history_turns"`
	ProviderTimeout time.Duration `yaml:"provider_timeout"`
	// CannedReplies 는 기본 응답 테이블에 추가/덮어쓸 문구이다.
	CannedReplies map[string]string `yaml:"canned_replies"`
}

type GeminiConfig struct {
	Model           string        `yaml:"model"`
	Temperature     float32       `yaml:"temperature"`
	MaxOutputTokens int32         `yaml:"max_output_tokens"`
	Timeout         time.Duration `yaml:"timeout"`

	// 0 이하이면 해당 방향의 제한을 두지 않는다.
	RequestsPerMinute int `yaml:"requests_per_minute"`
	RequestsPerDay    int `yaml:"requests_per_day"`
}

type SpeechConfig struct {
	Enabled bool   `yaml:"enabled"`
	Command string `yaml:"command"`
	Rate    int    `yaml:"rate"`
}

// DesktopConfig 는 로컬 PC 동작(유튜브 재생, 앱 실행 등)의 허용 여부를 정한다.
// 서버 배포에서는 꺼 둔다.
type DesktopConfig struct {
	Enabled bool              `yaml:"enabled"`
	Apps    map[string]string `yaml:"apps"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	config = c
}

// Parse 는 YAML 바이트를 AppConfig 로 읽고 비어 있는 값에 기본값을 채운다.
func Parse(data []byte) (*AppConfig, error) {
	var c AppConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		c.Mongo.URI = uri
	}
	return &c, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.TemplatesGlob == "" {
		c.Server.TemplatesGlob = "templates/*.html"
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = "static"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "choochoo"
	}
	if c.Assistant.DefaultCity == "" {
		c.Assistant.DefaultCity = "London"
	}
	if c.Assistant.NewsCount <= 0 {
		c.Assistant.NewsCount = 5
	}
	if c.Assistant.SearchCount <= 0 {
		c.Assistant.SearchCount = 3
	}
	if c.Assistant.HistoryTurns <= 0 {
		c.Assistant.HistoryTurns = 4
	}
	if c.Assistant.ProviderTimeout <= 0 {
		c.Assistant.ProviderTimeout = 8 * time.Second
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.Temperature == 0 {
		c.Gemini.Temperature = 0.7
	}
	if c.Gemini.MaxOutputTokens <= 0 {
		c.Gemini.MaxOutputTokens = 256
	}
	if c.Gemini.Timeout <= 0 {
		c.Gemini.Timeout = 10 * time.Second
	}
	if c.Speech.Rate <= 0 {
		c.Speech.Rate = 150
	}
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
