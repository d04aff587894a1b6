package routing

import (
	"context"
	"errors"

	"equipmart-backend/internal/domain/directory"
	"equipmart-backend/internal/domain/policy"

	"gorm.io/gorm"
)

type Usecase struct {
	policies policy.Repository
	dir      directory.Repository
}

func NewUsecase(policies policy.Repository, dir directory.Repository) *Usecase {
	return &Usecase{policies: policies, dir: dir}
}

// Resolve picks the effective policy, quorum and approver pool for a new
// approval request. Precedence: caller override > organization policy >
// tier default. It never fails for "no organization" or "no approvers" —
// the caller decides what an empty pool means.
func (u *Usecase) Resolve(ctx context.Context, in Input) (*Decision, error) {
	if !in.Tier.Valid() {
		return nil, policy.ErrInvalidInput
	}

	orgID, err := u.dir.ResolveOrganization(ctx, in.RequesterID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, directory.ErrNotFound) {
			return nil, err
		}
		orgID = nil
	}

	required := policy.DefaultRequiredApprovals(in.Tier)
	if in.RequiredOverride != nil {
		required = *in.RequiredOverride
	}

	dec := &Decision{
		OrganizationID: orgID,
		PolicySource:   SourceDefault,
	}

	var pool []directory.User
	if orgID != nil {
		pol, err := u.policies.FindActive(ctx, *orgID, in.Tier)
		switch {
		case err == nil:
			dec.PolicySource = SourceOrganization
			pid := pol.PolicyID
			dec.PolicyID = &pid
			if in.RequiredOverride == nil {
				required = pol.RequiredApprovals
			}
			if pol.AutoAssignEnabled {
				members, err := u.dir.ListMembers(ctx, *orgID, pol.ApproverTeamRole)
				if err != nil {
					return nil, err
				}
				pool = excludeAndCap(members, in.RequesterID)
			}
		case errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, policy.ErrNotFound):
			// no active policy, fall through to the admin pool
		default:
			return nil, err
		}
	}

	if len(pool) == 0 {
		admins, err := u.dir.ListAdmins(ctx)
		if err != nil {
			return nil, err
		}
		pool = excludeAndCap(admins, in.RequesterID)
		dec.PolicySource = SourceDefault
		dec.PolicyID = nil
	}

	// Quorum clamp: at least 1, never more than the pool can satisfy.
	if required < 1 {
		required = 1
	}
	if n := len(pool); n > 0 && required > n {
		required = n
	}
	dec.RequiredApprovals = required

	dec.ApproverIDs = make([]string, 0, len(pool))
	for _, m := range pool {
		dec.ApproverIDs = append(dec.ApproverIDs, m.UserID)
	}
	if len(dec.ApproverIDs) > 0 {
		first := dec.ApproverIDs[0]
		dec.PrimaryApproverID = &first
	}
	return dec, nil
}

func excludeAndCap(users []directory.User, requesterID string) []directory.User {
	out := make([]directory.User, 0, len(users))
	for _, m := range users {
		if m.UserID == requesterID {
			continue
		}
		out = append(out, m)
		if len(out) == PoolCap {
			break
		}
	}
	return out
}
