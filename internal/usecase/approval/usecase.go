package approval

import (
	"context"
	"errors"
	"log"

	domainApproval "equipmart-backend/internal/domain/approval"
	"equipmart-backend/internal/domain/notification"
	"equipmart-backend/internal/domain/policy"
	"equipmart-backend/internal/domain/sourcing"
	"equipmart-backend/internal/domain/uow"
	"equipmart-backend/internal/usecase/routing"
	"equipmart-backend/pkg/clock"
	"equipmart-backend/pkg/id"

	"gorm.io/gorm"
)

var errNotInitialized = errors.New("approval usecase not initialized")

// Router resolves quorum and approver pool for a new request.
type Router interface {
	Resolve(ctx context.Context, in routing.Input) (*routing.Decision, error)
}

type Usecase struct {
	uow       uow.UnitOfWork
	router    Router
	approvals domainApproval.Repository
	notifier  notification.Emitter
	clk       clock.Clock
}

func NewUsecase(tx uow.UnitOfWork, router Router, approvals domainApproval.Repository, notifier notification.Emitter, clk clock.Clock) *Usecase {
	if clk == nil {
		clk = clock.System{}
	}
	return &Usecase{uow: tx, router: router, approvals: approvals, notifier: notifier, clk: clk}
}

// CreateRequest opens a new approval cycle for a sourcing request. At most
// one pending cycle may exist per request; a second attempt conflicts.
func (u *Usecase) CreateRequest(ctx context.Context, in CreateRequestInput) (*RequestDTO, error) {
	if u.uow == nil || u.router == nil {
		return nil, errNotInitialized
	}

	var (
		created *domainApproval.ApprovalRequest
		pool    []string
	)
	err := u.uow.WithinSourcingTx(ctx, in.SourcingRequestID, func(r uow.Repos, s *sourcing.SourcingRequest) error {
		if !s.Status.Open() {
			return sourcing.ErrClosed
		}

		if _, err := r.Approvals.GetPendingBySourcingID(ctx, s.RequestID); err == nil {
			return domainApproval.ErrPendingExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		dec, err := u.router.Resolve(ctx, routing.Input{
			RequesterID:      s.RequesterID,
			Tier:             policy.ServiceTier(s.ServiceTier),
			RequiredOverride: in.RequiredOverride,
		})
		if err != nil {
			return err
		}

		// Snapshot the routing result; later policy edits never touch this row.
		ar := &domainApproval.ApprovalRequest{
			ApprovalID:           id.NewID32(),
			SourcingRequestID:    s.RequestID,
			RequesterID:          s.RequesterID,
			OrganizationID:       dec.OrganizationID,
			ServiceTier:          string(s.ServiceTier),
			PolicyID:             dec.PolicyID,
			PolicySource:         dec.PolicySource,
			RequiredApprovals:    dec.RequiredApprovals,
			CandidateApproverIDs: dec.ApproverIDs,
			PrimaryApproverID:    dec.PrimaryApproverID,
			Status:               domainApproval.StatusPending,
		}
		if err := r.Approvals.CreateRequest(ctx, ar); err != nil {
			return err
		}

		if err := r.Sourcing.AppendEvent(ctx, &sourcing.SourcingEvent{
			RequestID: s.RequestID,
			EventType: "approval_requested",
			ActorID:   s.RequesterID,
			Payload: map[string]string{
				"approval_id":   ar.ApprovalID,
				"policy_source": ar.PolicySource,
			},
		}); err != nil {
			return err
		}

		created = ar
		pool = dec.ApproverIDs
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Fan out after commit; delivery failures never undo the request.
	for _, approverID := range pool {
		if nerr := u.notify(ctx, approverID, notification.KindApprovalRequested,
			"Approval requested",
			"A sourcing request is waiting for your approval.",
			map[string]string{"approval_id": created.ApprovalID, "sourcing_request_id": created.SourcingRequestID},
		); nerr != nil {
			log.Printf("approval: notify approver %s failed: %v", approverID, nerr)
		}
	}

	return toRequestDTO(created, nil), nil
}

// SubmitDecision records one approver's vote and re-converges the request
// from the full decision set. Any rejection vetoes; quorum approves.
func (u *Usecase) SubmitDecision(ctx context.Context, in SubmitDecisionInput) (*RequestDTO, error) {
	if u.uow == nil {
		return nil, errNotInitialized
	}
	if !domainApproval.ValidDecision(in.Status) {
		return nil, domainApproval.ErrInvalidStatus
	}

	var (
		updated   *domainApproval.ApprovalRequest
		decisions []domainApproval.ApprovalDecision
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ar, err := r.Approvals.GetByApprovalIDForUpdate(ctx, in.ApprovalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainApproval.ErrNotFound
			}
			return err
		}
		if ar.Status != domainApproval.StatusPending {
			return domainApproval.ErrAlreadyDecided
		}

		if err := u.authorize(ctx, r, ar, in.ApproverID); err != nil {
			return err
		}

		if err := r.Approvals.UpsertDecision(ctx, &domainApproval.ApprovalDecision{
			ApprovalRequestID: ar.ID,
			ApproverID:        in.ApproverID,
			Status:            in.Status,
			Note:              in.Note,
		}); err != nil {
			return err
		}

		// Always re-scan every decision; a late rejection must veto a
		// request that already reached quorum earlier in the same cycle.
		decisions, err = r.Approvals.ListDecisions(ctx, ar.ID)
		if err != nil {
			return err
		}

		final := domainApproval.Converge(decisions, ar.RequiredApprovals)
		if final.Terminal() {
			now := u.clk.Now()
			ar.Status = final
			ar.DecidedAt = &now
			deciderID := in.ApproverID
			ar.DeciderID = &deciderID
			ar.DecisionNote = latestNote(decisions)
			if err := r.Approvals.SaveRequest(ctx, ar); err != nil {
				return err
			}
			if err := r.Sourcing.AppendEvent(ctx, &sourcing.SourcingEvent{
				RequestID: ar.SourcingRequestID,
				EventType: "approval_decided",
				ActorID:   in.ApproverID,
				Payload: map[string]string{
					"approval_id": ar.ApprovalID,
					"status":      string(final),
				},
			}); err != nil {
				return err
			}
		}

		updated = ar
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notifyRequester(ctx, updated)
	return toRequestDTO(updated, decisions), nil
}

func (u *Usecase) Get(ctx context.Context, approvalID string) (*RequestDTO, error) {
	if u.approvals == nil {
		return nil, errNotInitialized
	}
	ar, err := u.approvals.GetByApprovalID(ctx, approvalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainApproval.ErrNotFound
		}
		return nil, err
	}
	decisions, err := u.approvals.ListDecisions(ctx, ar.ID)
	if err != nil {
		return nil, err
	}
	return toRequestDTO(ar, decisions), nil
}

// authorize: platform admins, snapshotted pool members, and current
// same-org approvers (or above) may decide. The org branch deliberately
// lets approvers promoted after the snapshot act.
func (u *Usecase) authorize(ctx context.Context, r uow.Repos, ar *domainApproval.ApprovalRequest, approverID string) error {
	user, err := r.Directory.GetByUserID(ctx, approverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainApproval.ErrNotAuthorized
		}
		return err
	}
	if user.IsAdmin() {
		return nil
	}
	if ar.InPool(user.UserID) {
		return nil
	}
	if user.OrganizationID != nil && ar.OrganizationID != nil &&
		*user.OrganizationID == *ar.OrganizationID && user.TeamRole.Valid() {
		return nil
	}
	return domainApproval.ErrNotAuthorized
}

func (u *Usecase) notifyRequester(ctx context.Context, ar *domainApproval.ApprovalRequest) {
	kind := notification.KindApprovalProgress
	title := "Approval progress"
	message := "A decision was recorded on your approval request."
	if ar.Status.Terminal() {
		kind = notification.KindApprovalDecided
		title = "Approval " + string(ar.Status)
		message = "Your approval request was " + string(ar.Status) + "."
	}
	if err := u.notify(ctx, ar.RequesterID, kind, title, message, map[string]string{
		"approval_id": ar.ApprovalID,
		"status":      string(ar.Status),
	}); err != nil {
		log.Printf("approval: notify requester %s failed: %v", ar.RequesterID, err)
	}
}

func (u *Usecase) notify(ctx context.Context, userID string, kind notification.Kind, title, message string, meta map[string]string) error {
	if u.notifier == nil {
		return nil
	}
	return u.notifier.Notify(ctx, userID, kind, title, message, meta)
}

// latestNote picks the newest non-empty note across all decisions.
func latestNote(decisions []domainApproval.ApprovalDecision) string {
	note := ""
	var at int64 = -1
	for _, d := range decisions {
		if d.Note == "" {
			continue
		}
		if ts := d.UpdatedAt.UnixNano(); ts >= at {
			at = ts
			note = d.Note
		}
	}
	return note
}

func toRequestDTO(ar *domainApproval.ApprovalRequest, decisions []domainApproval.ApprovalDecision) *RequestDTO {
	dto := &RequestDTO{
		ApprovalID:           ar.ApprovalID,
		SourcingRequestID:    ar.SourcingRequestID,
		RequesterID:          ar.RequesterID,
		ServiceTier:          ar.ServiceTier,
		PolicyID:             ar.PolicyID,
		PolicySource:         ar.PolicySource,
		RequiredApprovals:    ar.RequiredApprovals,
		CandidateApproverIDs: ar.CandidateApproverIDs,
		PrimaryApproverID:    ar.PrimaryApproverID,
		Status:               string(ar.Status),
		DecisionNote:         ar.DecisionNote,
		DecidedAt:            ar.DecidedAt,
		CreatedAt:            ar.CreatedAt,
		Decisions:            make([]DecisionDTO, 0, len(decisions)),
	}
	for _, d := range decisions {
		switch d.Status {
		case domainApproval.StatusApproved:
			dto.ApprovedCount++
		case domainApproval.StatusRejected:
			dto.RejectedCount++
		}
		dto.Decisions = append(dto.Decisions, DecisionDTO{
			ApproverID: d.ApproverID,
			Status:     string(d.Status),
			Note:       d.Note,
			UpdatedAt:  d.UpdatedAt,
		})
	}
	return dto
}
