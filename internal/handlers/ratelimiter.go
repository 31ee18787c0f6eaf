package handlers

import (
	"net/http"

	"gitlab.com/tachyons/servedir/internal/config"
	"gitlab.com/tachyons/servedir/internal/ratelimiter"
)

// Ratelimiter configures the source IP rate limiter middleware. A zero
// limit per second leaves handler unlimited.
func Ratelimiter(handler http.Handler, config *config.RateLimit) http.Handler {
	if config.SourceIPLimitPerSecond <= 0 {
		return handler
	}

	rl := ratelimiter.New(
		ratelimiter.WithSourceIPLimitPerSecond(config.SourceIPLimitPerSecond),
		ratelimiter.WithSourceIPBurstSize(config.SourceIPBurst),
	)

	return rl.SourceIPLimiter(handler)
}
