package constants

// Context keys
const (
	ContextKeyPrincipal = "principal"
)

// Validation limits
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MinUsernameLength = 3
	MaxUsernameLength = 128
	MinTitleLength    = 3
	MaxVarcharLength  = 128
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
