package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage    = 1
	DefaultPerpage = 10
	MaxPerpage     = 100
	// PerpageAll is the sentinel perpage value for "fetch all rows".
	PerpageAll = -1

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderAppID         = "x-app-id"
	HeaderXRequestID    = "X-Request-ID"

	// Content Types
	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
	ContextKeyUsername = "username"

	// Platform roles
	RolePlatformAdmin        = "platform_admin"
	RoleSupportManager       = "support_manager"
	RoleSupportStaff         = "support_staff"
	RoleSecurityOfficer      = "security_officer"
	RoleIntegrationDeveloper = "integration_developer"
	RoleUser                 = "user"

	// Calculation methods
	CalculationMethodFIFO = "fifo"
	CalculationMethodAVG  = "avg"

	// Database table names
	TableClusters          = "clusters"
	TableBusinessUnits     = "business_units"
	TableUsers             = "users"
	TableClusterUsers      = "cluster_users"
	TableBusinessUnitUsers = "business_unit_users"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgConflict            = "Resource already exists"
)

// ConsoleRoles is the allow-list of platform roles permitted to sign in
// to the administrative console. Plain end-user accounts are rejected.
var ConsoleRoles = []string{
	RolePlatformAdmin,
	RoleSupportManager,
	RoleSupportStaff,
	RoleSecurityOfficer,
}

// PlatformRoles lists every valid platform role value.
var PlatformRoles = []string{
	RolePlatformAdmin,
	RoleSupportManager,
	RoleSupportStaff,
	RoleSecurityOfficer,
	RoleIntegrationDeveloper,
	RoleUser,
}

// IsValidPlatformRole reports whether role is a known platform role.
func IsValidPlatformRole(role string) bool {
	for _, r := range PlatformRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsConsoleRole reports whether role is allowed to sign in to the console.
func IsConsoleRole(role string) bool {
	for _, r := range ConsoleRoles {
		if r == role {
			return true
		}
	}
	return false
}
