// Package http wires the REST surface and the chat WebSocket endpoint.
package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DevanshiArora1/learnlink/internal/adapters"
	"github.com/DevanshiArora1/learnlink/internal/app"
	"github.com/DevanshiArora1/learnlink/internal/config"
)

type Services struct {
	Auth      *app.AuthService
	Groups    *app.GroupService
	Resources *app.ResourceService
	Chat      *adapters.ChatWSController
}

func SetupRouter(ctx context.Context, cfg *config.Config, svc Services) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.AllowedOrigins))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "LearnLink backend is running")
	})

	authRequired := authMiddleware(svc.Auth)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", registerHandler(svc.Auth))
	auth.POST("/login", loginHandler(svc.Auth))
	auth.GET("/me", authRequired, meHandler())

	groups := api.Group("/groups", authRequired)
	groups.GET("", listGroupsHandler(svc.Groups))
	groups.POST("", createGroupHandler(svc.Groups))
	groups.POST("/:id/join", joinGroupHandler(svc.Groups))
	groups.POST("/:id/leave", leaveGroupHandler(svc.Groups))
	groups.DELETE("/:id", deleteGroupHandler(svc.Groups))

	resources := api.Group("/resources")
	resources.GET("", listResourcesHandler(svc.Resources))
	resources.POST("", authRequired, createResourceHandler(svc.Resources))
	resources.POST("/:id/like", authRequired, likeResourceHandler(svc.Resources))
	resources.DELETE("/:id", authRequired, deleteResourceHandler(svc.Resources))

	r.GET("/ws", func(c *gin.Context) {
		svc.Chat.HandleChat(ctx, c)
	})

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(origins))
	allowAll := false
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := allowed[origin]; ok || allowAll {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			}
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
