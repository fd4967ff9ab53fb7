package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("checkout: %w", New(EmptyCartCode, "nothing to order"))

	require.ErrorIs(t, err, ErrEmptyCart)
	require.NotErrorIs(t, err, ErrMissingAddress)
	require.Equal(t, EmptyCartCode, CodeOf(err))
}

func TestCodeOfPlainError(t *testing.T) {
	require.Equal(t, InternalCode, CodeOf(errors.New("boom")))
}

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		name string
		err  *AppError
		want int
	}{
		{name: "validation", err: Validation("no size"), want: http.StatusBadRequest},
		{name: "not found", err: NotFound("no item"), want: http.StatusNotFound},
		{name: "unauthorized", err: ErrUnauthorized, want: http.StatusForbidden},
		{name: "checkout", err: ErrInvalidAddress, want: http.StatusUnprocessableEntity},
		{name: "internal", err: Internal(errors.New("db down")), want: http.StatusInternalServerError},
		{name: "unknown code", err: New(ErrCode(99), "?"), want: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.err.HTTPStatus())
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "connection refused")
}
