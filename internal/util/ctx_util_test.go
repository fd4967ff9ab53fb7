package util

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/shoeverse/internal/constants"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/token"
	"github.com/stretchr/testify/require"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()

	_, ok := GetUserIDFromContext(ctx)
	require.False(t, ok)
	require.Empty(t, GetSessionIDFromContext(ctx))

	ctx = context.WithValue(ctx, constants.AuthorizationPayloadKey, &token.Payload{UserID: 3})
	ctx = WithSessionID(ctx, "sid-1")
	ctx = context.WithValue(ctx, constants.RequestIDKey, "req-1")

	userID, ok := GetUserIDFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, uint(3), userID)
	require.Equal(t, "sid-1", GetSessionIDFromContext(ctx))
	require.Equal(t, "req-1", GetRequestIDFromContext(ctx))
}
