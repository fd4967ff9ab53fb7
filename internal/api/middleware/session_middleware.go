package middleware

import (
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/shoeverse/internal/constants"
	"github.com/RoyceAzure/lab/shoeverse/internal/util"
	"github.com/google/uuid"
)

// SessionMiddleware 購物車與願望清單以 session id 區分
// 先找 cookie 再找 header，都沒有就產生新的並寫回 cookie
func SessionMiddleware(ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := sessionIDFromRequest(r)
			if sid == "" {
				sid = uuid.New().String()
				http.SetCookie(w, &http.Cookie{
					Name:     constants.SessionCookieName,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(constants.SessionHeaderKey, sid)

			next.ServeHTTP(w, r.WithContext(util.WithSessionID(r.Context(), sid)))
		})
	}
}

func sessionIDFromRequest(r *http.Request) string {
	if c, err := r.Cookie(constants.SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return r.Header.Get(constants.SessionHeaderKey)
}
