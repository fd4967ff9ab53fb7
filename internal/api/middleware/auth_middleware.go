package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/shoeverse/internal/api/response"
	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
	"github.com/RoyceAzure/lab/shoeverse/internal/util"
)

// 驗證是ctx是否有token payload
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if util.GetTokenPayloadFromContext(r.Context()) == nil {
			response.ErrorJSON(w, errs.ErrUnauthenticated, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
