package mysql

import (
	"context"

	directoryDomain "equipmart-backend/internal/domain/directory"

	"gorm.io/gorm"
)

type DirectoryRepository struct{ db *gorm.DB }

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

// roleRankExpr orders enum roles by hierarchy rank, not string order.
const roleRankExpr = "CASE team_role WHEN 'approver' THEN 0 WHEN 'manager' THEN 1 WHEN 'owner' THEN 2 ELSE 3 END"

func (r *DirectoryRepository) GetByUserID(ctx context.Context, userID string) (*directoryDomain.User, error) {
	var out directoryDomain.User
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&out)
	return &out, res.Error
}

func (r *DirectoryRepository) ResolveOrganization(ctx context.Context, userID string) (*string, error) {
	u, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.OrganizationID, nil
}

func (r *DirectoryRepository) ListMembers(ctx context.Context, orgID string, minRole directoryDomain.TeamRole) ([]directoryDomain.User, error) {
	roles := directoryDomain.RolesAtOrAbove(minRole)
	if len(roles) == 0 {
		return nil, nil
	}
	var out []directoryDomain.User
	res := r.db.WithContext(ctx).
		Where("organization_id = ? AND team_role IN ?", orgID, roles).
		Order(roleRankExpr + ", created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *DirectoryRepository) ListAdmins(ctx context.Context) ([]directoryDomain.User, error) {
	var out []directoryDomain.User
	res := r.db.WithContext(ctx).
		Where("account_type = ?", directoryDomain.AccountAdmin).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
