package router

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"choo-choo/cmd/api/handlers"
	"choo-choo/cmd/api/middleware"
	"choo-choo/cmd/api/services"
	"choo-choo/cmd/api/speech"
	"choo-choo/config"
	_ "choo-choo/docs"
)

// Dependencies 는 라우터가 핸들러에 넘기는 서비스 묶음이다.
type Dependencies struct {
	Auth     *services.AuthService
	Chat     *services.ChatService
	Sessions *services.SessionService
	Speech   *speech.Service
	// Ping 은 /health 에서 저장소 연결을 확인한다. nil 이면 항상 ok.
	Ping func(ctx context.Context) error
}

func New(cfg config.ServerConfig, deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace(), corsMiddleware(cfg.AllowedOrigins))

	// 템플릿이 하나도 없으면 LoadHTMLGlob 이 panic 하므로 먼저 확인한다.
	if cfg.TemplatesGlob != "" {
		if matches, _ := filepath.Glob(cfg.TemplatesGlob); len(matches) > 0 {
			r.LoadHTMLGlob(cfg.TemplatesGlob)
		}
	}
	if cfg.StaticDir != "" {
		r.Static("/static", cfg.StaticDir)
	}

	r.GET("/health", handlers.HealthHandler(deps.Ping))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// pages
	r.GET("/", handlers.HomePageHandler())
	r.GET("/hom", handlers.HomePageHandler())
	r.GET("/login", handlers.LoginPageHandler())
	r.GET("/signup", handlers.SignupPageHandler())
	r.GET("/index", middleware.RequirePageSession(deps.Auth), handlers.IndexPageHandler())

	// auth
	r.POST("/signup", handlers.SignupHandler(deps.Auth))
	r.POST("/login", handlers.LoginHandler(deps.Auth, cfg.CookieSecure))
	r.POST("/logout", handlers.LogoutHandler(cfg.CookieSecure))

	api := r.Group("/api", middleware.RequireSession(deps.Auth))
	{
		api.GET("/me", handlers.GetUserProfileHandler(deps.Auth))

		api.POST("/typed-input", handlers.TypedInputHandler(deps.Chat))
		api.POST("/text-to-speech", handlers.TextToSpeechHandler(deps.Speech, deps.Sessions))

		api.GET("/chats", handlers.ListSessionsHandler(deps.Sessions))
		api.POST("/chats", handlers.CreateSessionHandler(deps.Sessions))
		api.GET("/chats/:id", handlers.GetSessionHandler(deps.Sessions))
		api.DELETE("/chats/:id", handlers.DeleteSessionHandler(deps.Sessions))
	}

	return r
}

// corsMiddleware 는 rs/cors 를 gin 미들웨어로 감싼다. origins 가 비어 있으면 같은 origin 만 허용한다.
func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return func(c *gin.Context) { c.Next() }
	}
	cr := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "X-Span-Id"},
		AllowCredentials: true,
	})
	return func(c *gin.Context) {
		cr.HandlerFunc(c.Writer, c.Request)
		// preflight 는 rs/cors 가 이미 204 를 썼다.
		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.Abort()
			return
		}
		c.Next()
	}
}
