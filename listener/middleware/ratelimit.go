package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// RateLimit shares one token bucket across all requests. A request without a
// token gets 429 with a Retry-After header. Non-positive values fall back to
// one request per second and a burst of one.
func RateLimit(requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}

	if burst <= 0 {
		burst = 1
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reservation := limiter.Reserve()

			delay := reservation.Delay()
			if delay > 0 {
				reservation.Cancel()

				seconds := max(int(math.Ceil(delay.Seconds())), 1)
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				WriteError(w, r, http.StatusTooManyRequests, CodeRateLimited,
					"rate limit exceeded, retry in "+(time.Duration(seconds)*time.Second).String(), nil)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
