package middleware

import (
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/shoeverse/internal/util"
	"github.com/rs/zerolog"
)

type StatusRecoder struct {
	http.ResponseWriter
	status int
}

func (w *StatusRecoder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *StatusRecoder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *StatusRecoder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// LoggerMiddleware 記錄request 請求
// 需放在 Session 與 AuthPayload 之後，才拿得到 session id 與 user id
// 帶有 request_id 的 logger 會放進 context，之後用 zerolog.Ctx 取得
func LoggerMiddleware(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recoder := &StatusRecoder{ResponseWriter: w}

			ctx := r.Context()
			reqLogger := logger.With().Str("request_id", util.GetRequestIDFromContext(ctx)).Logger()

			var userID uint
			if payload := util.GetTokenPayloadFromContext(ctx); payload != nil {
				userID = payload.UserID
			}
			sessionID := util.GetSessionIDFromContext(ctx)

			next.ServeHTTP(recoder, r.WithContext(reqLogger.WithContext(ctx)))

			reqLogger.Info().
				Uint("user_id", userID).
				Str("session_id", sessionID).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Int("status", recoder.Status()).
				Dur("duration", time.Since(start)).
				Msg("request completed")
		})
	}
}
