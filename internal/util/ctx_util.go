package util

import (
	"context"

	"github.com/RoyceAzure/lab/shoeverse/internal/constants"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/token"
)

func GetTokenPayloadFromContext(ctx context.Context) *token.Payload {
	var tokenPayload *token.Payload

	if v := ctx.Value(constants.AuthorizationPayloadKey); v != nil {
		tokenPayload, _ = v.(*token.Payload)
	}

	return tokenPayload
}

// GetUserIDFromContext 未登入時 ok 為 false
func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	payload := GetTokenPayloadFromContext(ctx)
	if payload == nil {
		return 0, false
	}
	return payload.UserID, true
}

func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, constants.SessionIDKey, sid)
}

func GetSessionIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(constants.SessionIDKey).(string)
	return sid
}

func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(constants.RequestIDKey).(string)
	return id
}
