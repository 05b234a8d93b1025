package common

const (
	// AuthorizationHeaderName carries the bearer credential on HTTP requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the only accepted authorization scheme.
	BearerScheme = "Bearer"

	// UserIDContextKey is where the authenticated account id is kept on the
	// request context.
	UserIDContextKey = "user_id"
)
