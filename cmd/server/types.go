package main

import (
	"codeberg.org/finpilot/server/finpilot/records"
	"codeberg.org/finpilot/server/finpilot/users"
	"codeberg.org/finpilot/server/internal/advisor"
	"codeberg.org/finpilot/server/internal/agent"
	"codeberg.org/finpilot/server/internal/analytics"
	"codeberg.org/finpilot/server/internal/auth"
	"codeberg.org/finpilot/server/internal/config"
	"codeberg.org/finpilot/server/internal/llm"
	"codeberg.org/finpilot/server/internal/ratelimit"
	"codeberg.org/finpilot/server/internal/retriever"
	"codeberg.org/finpilot/server/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// holds all dependencies and state for the API server
type Server struct {
	config   *config.Config
	store    *records.Store
	userRepo users.Repository
	issuer   *auth.TokenIssuer
	revoker  auth.Revoker
	limiter  *ratelimit.Limiter
	services *Services
	router   *gin.Engine

	// optional backends; nil when not configured
	db    *storage.Client
	redis *redis.Client
}

// holds the retrieval and language model backed services
type Services struct {
	Completer *llm.Completer
	Retriever *retriever.Client
	Agent     *agent.Agent
	Advisor   *advisor.Advisor
	Analytics *analytics.Service
}
