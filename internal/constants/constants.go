package constants

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
	SessionIDKey            ContextKey = "session_id"
)

const (
	SessionCookieName = "sv_session"
	SessionHeaderKey  = "X-Session-ID"
	RequestIDHeader   = "X-Request-ID"
)

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "development"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)

type RequestID string

const (
	RequestIDKey RequestID = "request_id"
)
