package approval

import (
	"time"

	domain "equipmart-backend/internal/domain/approval"
)

type CreateRequestInput struct {
	SourcingRequestID string
	// RequiredOverride forces the quorum (e.g. a manual escalation); it
	// always wins over the organization policy.
	RequiredOverride *int
}

type SubmitDecisionInput struct {
	ApprovalID string
	ApproverID string
	Status     domain.Status
	Note       string
}

type DecisionDTO struct {
	ApproverID string    `json:"approver_id"`
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type RequestDTO struct {
	ApprovalID           string        `json:"approval_id"`
	SourcingRequestID    string        `json:"sourcing_request_id"`
	RequesterID          string        `json:"requester_id"`
	ServiceTier          string        `json:"service_tier"`
	PolicyID             *string       `json:"policy_id"`
	PolicySource         string        `json:"policy_source"`
	RequiredApprovals    int           `json:"required_approvals"`
	CandidateApproverIDs []string      `json:"candidate_approver_ids"`
	PrimaryApproverID    *string       `json:"primary_approver_id"`
	Status               string        `json:"status"`
	ApprovedCount        int           `json:"approved_count"`
	RejectedCount        int           `json:"rejected_count"`
	DecisionNote         string        `json:"decision_note,omitempty"`
	DecidedAt            *time.Time    `json:"decided_at"`
	CreatedAt            time.Time     `json:"created_at"`
	Decisions            []DecisionDTO `json:"decisions"`
}
