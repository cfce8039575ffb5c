package permission

import (
	"fmt"

	"github.com/carmen-hq/carmen/internal/shared/constants"
	"github.com/carmen-hq/carmen/internal/shared/logger"
)

// InitConsolePolicies seeds the default policies for the console resources.
// Existing policies are left untouched; casbin ignores duplicates.
func InitConsolePolicies(e *Enforcer, log logger.Interface) error {
	policies := [][]string{
		// Platform admins manage everything.
		{constants.RolePlatformAdmin, "cluster", "create"},
		{constants.RolePlatformAdmin, "cluster", "read"},
		{constants.RolePlatformAdmin, "cluster", "update"},
		{constants.RolePlatformAdmin, "cluster", "delete"},
		{constants.RolePlatformAdmin, "business_unit", "create"},
		{constants.RolePlatformAdmin, "business_unit", "read"},
		{constants.RolePlatformAdmin, "business_unit", "update"},
		{constants.RolePlatformAdmin, "business_unit", "delete"},
		{constants.RolePlatformAdmin, "user", "create"},
		{constants.RolePlatformAdmin, "user", "read"},
		{constants.RolePlatformAdmin, "user", "update"},
		{constants.RolePlatformAdmin, "user", "delete"},

		// Support managers change tenant data but never delete it.
		{constants.RoleSupportManager, "cluster", "create"},
		{constants.RoleSupportManager, "cluster", "read"},
		{constants.RoleSupportManager, "cluster", "update"},
		{constants.RoleSupportManager, "business_unit", "create"},
		{constants.RoleSupportManager, "business_unit", "read"},
		{constants.RoleSupportManager, "business_unit", "update"},
		{constants.RoleSupportManager, "user", "create"},
		{constants.RoleSupportManager, "user", "read"},
		{constants.RoleSupportManager, "user", "update"},

		// Support staff work read-only across tenants.
		{constants.RoleSupportStaff, "cluster", "read"},
		{constants.RoleSupportStaff, "business_unit", "read"},
		{constants.RoleSupportStaff, "user", "read"},

		// Security officers audit accounts and can deactivate them.
		{constants.RoleSecurityOfficer, "cluster", "read"},
		{constants.RoleSecurityOfficer, "business_unit", "read"},
		{constants.RoleSecurityOfficer, "user", "read"},
		{constants.RoleSecurityOfficer, "user", "update"},
	}

	for _, policy := range policies {
		if err := e.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			log.Errorw("failed to add console policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	log.Info("console policies initialized")
	return nil
}
