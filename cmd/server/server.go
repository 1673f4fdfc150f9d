package main

import (
	"context"
	"fmt"

	"codeberg.org/finpilot/server/finpilot/records"
	"codeberg.org/finpilot/server/finpilot/users"
	"codeberg.org/finpilot/server/internal/auth"
	"codeberg.org/finpilot/server/internal/config"
	"codeberg.org/finpilot/server/internal/logger"
	"codeberg.org/finpilot/server/internal/ratelimit"
	"codeberg.org/finpilot/server/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	issuer, err := auth.NewTokenIssuer(cfg.JWTSecret, 0)
	if err != nil {
		return nil, err
	}

	server := &Server{
		config: cfg,
		store:  records.NewStore(cfg.DataPath),
		issuer: issuer,
	}

	if err := server.initUsers(ctx); err != nil {
		return nil, err
	}

	if err := server.initRedis(ctx); err != nil {
		server.Close()
		return nil, err
	}

	server.services = InitializeServices(cfg, server.store)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	server.router = gin.New()
	server.router.Use(gin.Recovery(), logger.Middleware())
	RegisterRoutes(server.router, server)

	return server, nil
}

// postgres when DATABASE_URL is set, otherwise the users file next to the records
func (s *Server) initUsers(ctx context.Context) error {
	if s.config.DatabaseURL == "" {
		s.userRepo = users.NewFileRepository(s.config.UsersPath)
		logger.Info("using file user store", "path", s.config.UsersPath)
		return nil
	}

	db, err := storage.NewClient(ctx, s.config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to prepare database schema: %w", err)
	}

	s.db = db
	s.userRepo = users.NewPostgresRepository(db.Pool())
	logger.Info("using postgres user store")

	return nil
}

// redis backs token revocation and rate limits when REDIS_URL is set; memory otherwise
func (s *Server) initRedis(ctx context.Context) error {
	var client redis.UniversalClient

	if s.config.RedisURL != "" {
		opts, err := redis.ParseURL(s.config.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid REDIS_URL: %w", err)
		}

		s.redis = redis.NewClient(opts)
		if err := s.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to ping redis: %w", err)
		}

		client = s.redis
		s.revoker = auth.NewRedisRevoker(s.redis)
		logger.Info("using redis for revocation and rate limits")
	} else {
		s.revoker = auth.NewMemoryRevoker()
	}

	limiter, err := ratelimit.New(s.config.RateLimit, client)
	if err != nil {
		return fmt.Errorf("failed to create rate limiter: %w", err)
	}
	s.limiter = limiter

	return nil
}

// releases optional backends
func (s *Server) Close() {
	if s.redis != nil {
		s.redis.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}

	if s.db != nil {
		s.db.Close()
	}
}
