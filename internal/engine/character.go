package engine

import (
	"fmt"
	"strings"
)

// Role identifies the six Coup roles. Every player holds exactly one,
// fixed when the player is created.
type Role int

const (
	RoleGovernor Role = 1
	RoleSpy      Role = 2
	RoleBaron    Role = 3
	RoleGeneral  Role = 4
	RoleJudge    Role = 5
	RoleMerchant Role = 6
)

var roleNames = map[Role]string{
	RoleGovernor: "Governor",
	RoleSpy:      "Spy",
	RoleBaron:    "Baron",
	RoleGeneral:  "General",
	RoleJudge:    "Judge",
	RoleMerchant: "Merchant",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "Unknown"
}

// Valid reports whether r is one of the six roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// TaxAmount is the income a tax action grants a holder of this role.
func (r Role) TaxAmount() int {
	if r == RoleGovernor {
		return GovernorTax
	}
	return BaseTaxIncome
}

// SanctionCost is what it costs to sanction a holder of this role.
func (r Role) SanctionCost() int {
	if r == RoleJudge {
		return JudgeSanctionCost
	}
	return SanctionCost
}

// AbilityName is the display name of the role's special ability.
func (r Role) AbilityName() string {
	switch r {
	case RoleGovernor:
		return "undo tax"
	case RoleSpy:
		return "peek and disable"
	case RoleBaron:
		return "invest"
	case RoleGeneral:
		return "undo coup"
	case RoleJudge:
		return "undo bribe"
	case RoleMerchant:
		return "merchant bonus"
	default:
		return ""
	}
}

// ParseRole resolves a role name, case-insensitively.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// AllRoles returns the six roles in order.
func AllRoles() []Role {
	return []Role{
		RoleGovernor, RoleSpy, RoleBaron,
		RoleGeneral, RoleJudge, RoleMerchant,
	}
}
