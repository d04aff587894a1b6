package routing

import "equipmart-backend/internal/domain/policy"

// PoolCap bounds the candidate approver pool.
const PoolCap = 20

const (
	SourceOrganization = "organization"
	SourceDefault      = "default"
)

type Input struct {
	RequesterID string
	Tier        policy.ServiceTier
	// RequiredOverride always wins over the organization policy.
	RequiredOverride *int
}

// Decision is the routing result that seeds an approval request snapshot.
type Decision struct {
	OrganizationID    *string  `json:"organization_id"`
	PolicyID          *string  `json:"policy_id"`
	PolicySource      string   `json:"policy_source"`
	RequiredApprovals int      `json:"required_approvals"`
	ApproverIDs       []string `json:"approver_ids"`
	PrimaryApproverID *string  `json:"primary_approver_id"`
}
