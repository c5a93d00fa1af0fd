package config

import (
	"strings"

	"choo-choo/internal/logger"
)

// InitLogger 는 config.yaml 의 logging.level 로 전역 로거를 초기화한다.
// LOG_LEVEL 환경변수가 있으면 그 값이 우선한다.
func InitLogger(cfg LoggingConfig) {
	logger.InitFromEnv("LOG_LEVEL")
	if strings.TrimSpace(cfg.Level) != "" && logger.LevelFromEnv("LOG_LEVEL") == "" {
		logger.Log = logger.NewLogger(strings.ToLower(cfg.Level))
	}
}
