package directory

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("user not found")
)

type AccountType string

const (
	AccountAdmin  AccountType = "admin"
	AccountMember AccountType = "member"
)

// TeamRole is an explicit ordered hierarchy; comparisons go through Rank,
// never through string ordering.
type TeamRole string

const (
	RoleApprover TeamRole = "approver"
	RoleManager  TeamRole = "manager"
	RoleOwner    TeamRole = "owner"
)

var roleRank = map[TeamRole]int{
	RoleApprover: 0,
	RoleManager:  1,
	RoleOwner:    2,
}

// Rank returns the position of r in the hierarchy, or -1 for unknown roles.
func (r TeamRole) Rank() int {
	if n, ok := roleRank[r]; ok {
		return n
	}
	return -1
}

func (r TeamRole) Valid() bool { return r.Rank() >= 0 }

// RolesAtOrAbove lists min and every role ranked above it, ascending.
func RolesAtOrAbove(min TeamRole) []TeamRole {
	out := make([]TeamRole, 0, len(roleRank))
	for _, r := range []TeamRole{RoleApprover, RoleManager, RoleOwner} {
		if r.Rank() >= min.Rank() && min.Valid() {
			out = append(out, r)
		}
	}
	return out
}

type Organization struct {
	ID             uint64         `gorm:"primaryKey;column:id" json:"-"`
	OrganizationID string         `gorm:"size:32;uniqueIndex:ux_orgs_org_id_active" json:"organization_id"`
	Name           string         `gorm:"size:255" json:"name"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Organization) TableName() string { return "organizations" }

type User struct {
	ID             uint64         `gorm:"primaryKey;column:id" json:"-"`
	UserID         string         `gorm:"size:32;uniqueIndex:ux_users_user_id_active" json:"user_id"`
	OrganizationID *string        `gorm:"size:32;index:idx_users_org" json:"organization_id"`
	AccountType    AccountType    `gorm:"type:enum('admin','member');default:'member'" json:"account_type"`
	TeamRole       TeamRole       `gorm:"type:enum('approver','manager','owner');default:'approver'" json:"team_role"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.AccountType == AccountAdmin }
