// Package access implements capability sets: each principal holds an explicit set of
// granted roles that entry points check before mutating state.
package access

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/token42-backend/internal/model"
)

// Role names a capability.
type Role string

const (
	Admin   Role = "admin"
	Minter  Role = "minter"
	Auditor Role = "auditor"
	Logger  Role = "logger"
)

// Roles maps each role to its members. The zero value is not usable; use NewRoles.
type Roles struct {
	grants map[Role]map[common.Address]struct{}
}

// NewRoles returns an empty capability table.
func NewRoles() *Roles {
	return &Roles{grants: make(map[Role]map[common.Address]struct{})}
}

// Grant adds addr to role. It reports whether the grant changed anything.
func (r *Roles) Grant(role Role, addr common.Address) bool {
	members, ok := r.grants[role]
	if !ok {
		members = make(map[common.Address]struct{})
		r.grants[role] = members
	}
	if _, ok := members[addr]; ok {
		return false
	}
	members[addr] = struct{}{}
	return true
}

// Revoke removes addr from role. It reports whether the revoke changed anything.
func (r *Roles) Revoke(role Role, addr common.Address) bool {
	members, ok := r.grants[role]
	if !ok {
		return false
	}
	if _, ok := members[addr]; !ok {
		return false
	}
	delete(members, addr)
	return true
}

// Has reports whether addr holds role.
func (r *Roles) Has(role Role, addr common.Address) bool {
	_, ok := r.grants[role][addr]
	return ok
}

// Require fails with an Unauthorized revert unless addr holds one of roles.
func (r *Roles) Require(addr common.Address, roles ...Role) error {
	for _, role := range roles {
		if r.Has(role, addr) {
			return nil
		}
	}
	return model.Revert(model.ErrUnauthorized, "account "+addr.Hex()+" is missing role "+string(roles[0]))
}

// Count returns the number of members of role.
func (r *Roles) Count(role Role) int {
	return len(r.grants[role])
}
