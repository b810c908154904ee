package model

import (
	"agenda/shared/constant"
	"slices"
)

// Principal is the authenticated actor behind a request.
type Principal struct {
	ID   string
	Role string
}

// IsAdmin reports whether the principal holds an administrative capability.
func (p Principal) IsAdmin() bool {
	return slices.Contains([]string{constant.RoleAdmin, constant.RoleSuperAdmin}, p.Role)
}

func (p Principal) IsProfessional() bool {
	return p.Role == constant.RoleProfessional
}

func (p Principal) IsClient() bool {
	return p.Role == constant.RoleClient
}
