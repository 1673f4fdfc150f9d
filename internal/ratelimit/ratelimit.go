package ratelimit

import (
	"fmt"

	"codeberg.org/finpilot/server/internal/auth"
	"codeberg.org/finpilot/server/internal/errors"
	"codeberg.org/finpilot/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const keyPrefix = "finpilot:ratelimit"

// limits calls to the LLM-backed endpoints per caller
type Limiter struct {
	limiter *limiter.Limiter
}

// builds a limiter from a formatted rate such as "20-M"; a nil client keeps counters in memory
func New(formatted string, client redis.UniversalClient) (*Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	var store limiter.Store
	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix:   keyPrefix,
			MaxRetry: 3,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          keyPrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		})
	}

	return &Limiter{limiter: limiter.New(store, rate)}, nil
}

func (l *Limiter) Rate() limiter.Rate {
	return l.limiter.Rate
}

// returns a gin middleware keyed by the authenticated owner, or the client IP before auth
func (l *Limiter) Middleware(feature string) gin.HandlerFunc {
	return mgin.NewMiddleware(l.limiter,
		mgin.WithKeyGetter(func(c *gin.Context) string {
			return feature + ":" + callerKey(c)
		}),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			logger.Warn("rate limit reached", "feature", feature, "caller", callerKey(c))
			errors.TooManyRequests(c, "too many requests, please slow down")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// a broken limiter store lets traffic through rather than failing the request
			logger.ErrorErr(err, "rate limiter store failed", "feature", feature)
			c.Next()
		}),
	)
}

func callerKey(c *gin.Context) string {
	if userID, ok := auth.GetUserID(c); ok {
		return "user:" + userID
	}

	return "ip:" + c.ClientIP()
}
