package entity

// CanWriteCatalog is the access rule for catalog-mutating operations.
// Reads are always allowed, anonymous callers included; writes require an
// authenticated caller holding the seller or admin role. The rule is a pure
// function of the authentication state and the resolved role set.
func CanWriteCatalog(authenticated bool, roles Roles) bool {
	if !authenticated {
		return false
	}

	return roles.Contains(RoleSeller) || roles.Contains(RoleAdmin)
}
