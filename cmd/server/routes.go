package main

import (
	"context"
	stderrors "errors"
	"io/fs"
	"time"

	"codeberg.org/finpilot/server/api/rest/agent"
	"codeberg.org/finpilot/server/api/rest/analytics"
	apiauth "codeberg.org/finpilot/server/api/rest/auth"
	"codeberg.org/finpilot/server/api/rest/health"
	"codeberg.org/finpilot/server/api/rest/recommendations"
	"codeberg.org/finpilot/server/api/rest/records"
	"codeberg.org/finpilot/server/api/rest/search"
	"codeberg.org/finpilot/server/internal/auth"
	"codeberg.org/finpilot/server/internal/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config.AllowedOrigins))
	router.Use(metrics.Middleware())

	router.GET("/health", health.Handler(server.healthChecks()))
	router.GET("/metrics", metrics.Handler())

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		apiauth.RegisterRoutes(v1, server.userRepo, server.issuer, server.revoker, server.limiter.Middleware("auth"))
	}

	protected := v1.Group("", auth.AuthMiddleware(server.issuer, server.revoker))

	{
		records.RegisterRoutes(protected, server.store)
		search.RegisterRoutes(protected, server.services.Retriever)
		agent.RegisterRoutes(protected, server.services.Agent, server.limiter.Middleware("chat"))
		recommendations.RegisterRoutes(protected, server.services.Advisor, server.limiter.Middleware("recommendations"))
		analytics.RegisterRoutes(protected, server.services.Analytics, server.limiter.Middleware("insights"))
	}
}

// allows the dashboard origins to call the API with bearer tokens
func CORSMiddleware(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// dependency probes for /health; optional backends only when configured
func (s *Server) healthChecks() map[string]health.Check {
	checks := map[string]health.Check{
		// a missing document is an empty store, not a failure
		"records": func(ctx context.Context) error {
			_, err := s.store.ReadDocument(ctx)
			if stderrors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		},
	}

	if s.db != nil {
		checks["database"] = func(ctx context.Context) error {
			return s.db.Pool().Ping(ctx)
		}
	}

	if s.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return s.redis.Ping(ctx).Err()
		}
	}

	return checks
}
