package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/RoyceAzure/lab/shoeverse/internal/api/response"
	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
	"github.com/rs/zerolog"
)

func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				zerolog.Ctx(r.Context()).Error().
					Str("panic", fmt.Sprintf("%v", err)).
					Bytes("stack", debug.Stack()).
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Msg("panic recovered")

				response.ErrorJSON(w, errs.Internal(nil), nil)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
