package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/shoeverse/internal/api/response"
	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
)

type Limiter interface {
	Allow() bool
}

var errTooManyRequests = errs.New(errs.TooManyRequestsCode, "too many attempts, please try again later")

// NewRateLimitMiddleware 超過限制回傳 429
func NewRateLimitMiddleware(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				response.ErrorJSON(w, errTooManyRequests, nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
