package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"choo-choo/cmd/api/assistant"
	"choo-choo/cmd/api/auth"
	"choo-choo/cmd/api/clients/geminiclient"
	"choo-choo/cmd/api/clients/newsclient"
	"choo-choo/cmd/api/clients/searchclient"
	"choo-choo/cmd/api/clients/weatherclient"
	"choo-choo/cmd/api/desktop"
	"choo-choo/cmd/api/router"
	"choo-choo/cmd/api/services"
	"choo-choo/cmd/api/speech"
	"choo-choo/config"
	"choo-choo/db"
	"choo-choo/internal/logger"
	"choo-choo/repositories"
)

// @title           Choo Choo Assistant API
// @version         1.0
// @description     Personal assistant chat API: weather, news, date/time, generative dialogue and web search fallback.
// @BasePath        /
// @securityDefinitions.apikey  SessionCookie
// @in                          cookie
// @name                        choo_session
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	config.InitLogger(cfg.Logging)

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		logger.Log.Errorf("failed to connect mongo: %v", err)
		os.Exit(1)
	}

	jwtManager, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		logger.Log.Errorf("failed to init session tokens: %v", err)
		os.Exit(1)
	}

	database := db.Database()
	userRepo := repositories.NewUserRepository(database)
	sessionRepo := repositories.NewChatSessionRepository(database)
	aiLogRepo := repositories.NewAILogRepository(database)

	responder := assistant.New(buildAssistantOptions(ctx, cfg, aiLogRepo)...)
	speechSvc := speech.NewService(buildSpeaker(cfg.Speech))

	r := router.New(cfg.Server, router.Dependencies{
		Auth:     services.NewAuthService(userRepo, sessionRepo, jwtManager),
		Chat:     services.NewChatService(responder, sessionRepo, speechSvc, cfg.Assistant.HistoryTurns),
		Sessions: services.NewSessionService(sessionRepo, speechSvc),
		Speech:   speechSvc,
		Ping:     db.Ping,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.InfoWithFields("api server listening", logger.Fields{"addr": cfg.Server.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("api server stopped: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("graceful shutdown failed: %v", err)
	}
	if err := db.Disconnect(shutdownCtx); err != nil {
		logger.Log.Errorf("mongo disconnect failed: %v", err)
	}
	logger.Log.Info("api server exited")
}

func buildAssistantOptions(ctx context.Context, cfg config.AppConfig, recorder geminiclient.UsageRecorder) []assistant.Option {
	timeout := cfg.Assistant.ProviderTimeout
	opts := []assistant.Option{
		assistant.WithWeather(weatherclient.NewFromEnv(timeout), cfg.Assistant.DefaultCity),
		assistant.WithNews(newsclient.NewFromEnv(timeout), cfg.Assistant.NewsCount),
		assistant.WithSearch(searchclient.NewFromEnv(timeout), cfg.Assistant.SearchCount),
		assistant.WithCannedReplies(cfg.Assistant.CannedReplies),
	}

	gemini, err := geminiclient.NewFromEnv(ctx, cfg.Gemini, recorder)
	switch {
	case errors.Is(err, assistant.ErrNotConfigured):
		logger.Log.Info("GEMINI_API_KEY not set, generative dialogue disabled")
	case err != nil:
		logger.Log.Errorf("failed to init gemini client, generative dialogue disabled: %v", err)
	default:
		opts = append(opts, assistant.WithGenerator(gemini, cfg.Assistant.HistoryTurns))
	}

	if cfg.Desktop.Enabled {
		opts = append(opts, assistant.WithDesktop(desktop.NewOpener(), cfg.Desktop.Apps))
	}
	return opts
}

// buildSpeaker 는 TTS 가 꺼져 있거나 명령을 찾지 못하면 nil 을 돌려준다.
func buildSpeaker(cfg config.SpeechConfig) speech.Speaker {
	if !cfg.Enabled {
		return nil
	}
	speaker, err := speech.NewCommandSpeaker(cfg.Command, cfg.Rate)
	if err != nil {
		logger.Log.Warnf("text-to-speech disabled: %v", err)
		return nil
	}
	return speaker
}
