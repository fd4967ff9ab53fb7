package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shoeverse/internal/constants"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/token"
	"github.com/RoyceAzure/lab/shoeverse/internal/util"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testTokenKey = "0123456789abcdef0123456789abcdef"

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequestIdMiddleware(t *testing.T) {
	var got string
	h := RequestIdMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = util.GetRequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.RequestIDHeader, "req-1")
	rec := serve(h, req)
	require.Equal(t, "req-1", got)
	require.Equal(t, "req-1", rec.Header().Get(constants.RequestIDHeader))

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, got)
	require.NotEqual(t, "req-1", got)
	require.Equal(t, got, rec.Header().Get(constants.RequestIDHeader))
}

func TestSessionMiddleware(t *testing.T) {
	var got string
	h := SessionMiddleware(time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = util.GetSessionIDFromContext(r.Context())
	}))

	// 沒有 session 時產生新的並設定 cookie
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, got)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, constants.SessionCookieName, cookies[0].Name)
	require.Equal(t, got, cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "from-cookie"})
	req.Header.Set(constants.SessionHeaderKey, "from-header")
	rec = serve(h, req)
	require.Equal(t, "from-cookie", got)
	require.Empty(t, rec.Result().Cookies())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.SessionHeaderKey, "from-header")
	rec = serve(h, req)
	require.Equal(t, "from-header", got)
	require.Equal(t, "from-header", rec.Header().Get(constants.SessionHeaderKey))
}

func TestAuthMiddlewares(t *testing.T) {
	maker, err := token.NewJWTMaker(testTokenKey)
	require.NoError(t, err)
	accessToken, _, err := maker.CreateToken(7, "royce", time.Minute)
	require.NoError(t, err)

	var userID uint
	h := AuthPayloadMiddleware(maker)(AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ = util.GetUserIDFromContext(r.Context())
	})))

	testCases := []struct {
		name   string
		header string
		status int
	}{
		{name: "no header", header: "", status: http.StatusUnauthorized},
		{name: "wrong type", header: "Basic " + accessToken, status: http.StatusUnauthorized},
		{name: "missing token", header: "Bearer", status: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer abc", status: http.StatusUnauthorized},
		{name: "ok", header: "Bearer " + accessToken, status: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			userID = 0
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := serve(h, req)
			require.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				require.Equal(t, uint(7), userID)
			} else {
				require.Zero(t, userID)
			}
		})
	}
}

func TestLoggerAndRecoverMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	h := RequestIdMiddleware(SessionMiddleware(time.Hour)(LoggerMiddleware(logger)(RecoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))))

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(constants.RequestIDHeader, "req-9")
	req.Header.Set(constants.SessionHeaderKey, "sid-9")
	rec := serve(h, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var panicLog, requestLog map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &panicLog))
	require.NoError(t, json.Unmarshal(lines[1], &requestLog))
	require.Equal(t, "panic recovered", panicLog["message"])
	require.Equal(t, "req-9", panicLog["request_id"])
	require.Equal(t, "request completed", requestLog["message"])
	require.Equal(t, float64(http.StatusInternalServerError), requestLog["status"])
	require.Equal(t, "/panic", requestLog["url"])
	require.Equal(t, "sid-9", requestLog["session_id"])
	require.Equal(t, float64(0), requestLog["user_id"])
}

type fixedLimiter struct{ allow bool }

func (l fixedLimiter) Allow() bool { return l.allow }

func TestRateLimitMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	rec := serve(NewRateLimitMiddleware(fixedLimiter{allow: false})(ok), httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = serve(NewRateLimitMiddleware(fixedLimiter{allow: true})(ok), httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
