package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Context keys set by the auth middleware and consumed by handlers.
const (
	ContextKeyUserID = "user_id"
)
