package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var res Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	return res
}

func TestSuccessJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessJSON(rec, map[string]int{"count": 1}, "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	res := decode(t, rec)
	require.Equal(t, SuccessCode, res.Code)
	require.Equal(t, "success", res.Message)
	require.Equal(t, map[string]any{"count": float64(1)}, res.Data)
}

func TestWriteError(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		status  int
		code    errs.ErrCode
		message string
	}{
		{name: "empty cart", err: errs.ErrEmptyCart, status: http.StatusUnprocessableEntity, code: errs.EmptyCartCode, message: "your cart is empty"},
		{name: "not found", err: errs.NotFound("order not found"), status: http.StatusNotFound, code: errs.NotFoundCode, message: "order not found"},
		{name: "plain error hides details", err: errors.New("pq: connection refused"), status: http.StatusInternalServerError, code: errs.InternalCode, message: "something went wrong, please try again"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			WriteError(rec, req, tc.err)

			require.Equal(t, tc.status, rec.Code)
			res := decode(t, rec)
			require.Equal(t, int(tc.code), res.Code)
			require.Equal(t, tc.message, res.Message)
			require.Nil(t, res.Data)
		})
	}
}
