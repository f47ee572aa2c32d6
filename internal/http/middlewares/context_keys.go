package middlewares

// Context keys the auth middleware sets for downstream handlers. Unexported
// so everyone goes through the accessor helpers.
const (
	ctxUserIDKey = "auth.user_id"
	ctxEmailKey  = "auth.user_email"
)
