package sla

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"equipmart-backend/internal/domain/directory"
	"equipmart-backend/internal/domain/escalation"
	"equipmart-backend/internal/domain/notification"
	"equipmart-backend/internal/domain/policy"
	"equipmart-backend/internal/domain/sourcing"
	"equipmart-backend/pkg/clock"

	"gorm.io/gorm"
)

const (
	ratioWeight         = 50
	noOfferPenalty      = 20
	criticalAgeMultiple = 2
)

var ErrInvalidThresholds = errors.New("critical ratio must be >= warning ratio > 0")

type Usecase struct {
	sourcing sourcing.Repository
	policies policy.Repository
	dir      directory.Repository
	alerts   escalation.Repository
	notifier notification.Emitter
	clk      clock.Clock
}

func NewUsecase(src sourcing.Repository, policies policy.Repository, dir directory.Repository, alerts escalation.Repository, notifier notification.Emitter, clk clock.Clock) *Usecase {
	if clk == nil {
		clk = clock.System{}
	}
	return &Usecase{sourcing: src, policies: policies, dir: dir, alerts: alerts, notifier: notifier, clk: clk}
}

// TierWeight biases the queue toward higher-paying tiers.
func TierWeight(t policy.ServiceTier) int {
	switch t {
	case policy.TierEnterprise:
		return 30
	case policy.TierPriority:
		return 20
	default:
		return 10
	}
}

// Score derives the SLA snapshot for one request. pol may be nil, in which
// case tier defaults apply. Pure function of its inputs plus now.
func Score(req *sourcing.SourcingRequest, pol *policy.ApprovalPolicy, now time.Time) Snapshot {
	target := policy.DefaultTargetHours(req.ServiceTier)
	warn := policy.DefaultWarningRatio
	crit := policy.DefaultCriticalRatio
	if pol != nil {
		target = pol.EffectiveTargetHours()
		warn = pol.WarningThresholdRatio
		crit = pol.CriticalThresholdRatio
	}
	if target < 1 {
		target = 1
	}
	age := now.Sub(req.CreatedAt).Hours()
	ratio := age / target
	return Snapshot{
		AgeHours:    age,
		TargetHours: target,
		Ratio:       ratio,
		Warning:     ratio >= warn,
		Critical:    ratio >= crit,
	}
}

// PriorityQueue ranks all open requests for the ops dashboard: deadline
// pressure, tier priority, and unserved requests first.
func (u *Usecase) PriorityQueue(ctx context.Context) ([]QueueItem, error) {
	reqs, err := u.sourcing.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	now := u.clk.Now()

	items := make([]QueueItem, 0, len(reqs))
	for i := range reqs {
		req := &reqs[i]
		snap := Score(req, u.lookupPolicy(ctx, req), now)

		penalty := 0
		if !req.HasActiveOffer {
			penalty = noOfferPenalty
		}
		score := int(math.Round(snap.Ratio*ratioWeight)) + TierWeight(req.ServiceTier) + penalty

		items = append(items, QueueItem{
			RequestID:      req.RequestID,
			ServiceTier:    req.ServiceTier,
			HasActiveOffer: req.HasActiveOffer,
			Score:          score,
			Snapshot:       snap,
			CreatedAt:      req.CreatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Snapshot.AgeHours > items[j].Snapshot.AgeHours
	})
	return items, nil
}

// RunEscalationSweep alerts every admin once per request per calendar day
// about unserved requests past their SLA target. The unique insert on
// (day, request, admin) makes re-runs idempotent.
func (u *Usecase) RunEscalationSweep(ctx context.Context) (*SweepResult, error) {
	now := u.clk.Now()
	result := &SweepResult{Day: escalation.Day(now)}

	reqs, err := u.sourcing.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	admins, err := u.dir.ListAdmins(ctx)
	if err != nil {
		return nil, err
	}

	for i := range reqs {
		req := &reqs[i]
		result.Scanned++
		if req.HasActiveOffer {
			continue
		}
		snap := Score(req, u.lookupPolicy(ctx, req), now)
		if snap.AgeHours < snap.TargetHours {
			continue
		}
		result.Breached++

		severity := escalation.SeverityMedium
		if snap.AgeHours >= criticalAgeMultiple*snap.TargetHours {
			severity = escalation.SeverityHigh
		}

		for _, admin := range admins {
			alert := &escalation.Alert{
				AlertDay:  result.Day,
				RequestID: req.RequestID,
				AdminID:   admin.UserID,
				Severity:  severity,
				AgeHours:  snap.AgeHours,
			}
			if err := u.alerts.Create(ctx, alert); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					result.Deduplicated++
					continue
				}
				return nil, err
			}
			result.Emitted++
			result.Alerts = append(result.Alerts, *alert)

			if u.notifier != nil {
				if nerr := u.notifier.Notify(ctx, admin.UserID, notification.KindSLAEscalation,
					fmt.Sprintf("SLA escalation (%s)", severity),
					fmt.Sprintf("Sourcing request %s is %.1fh old against a %.0fh target.", req.RequestID, snap.AgeHours, snap.TargetHours),
					map[string]string{"request_id": req.RequestID, "severity": string(severity)},
				); nerr != nil {
					log.Printf("sla: notify admin %s failed: %v", admin.UserID, nerr)
				}
			}
		}
	}
	return result, nil
}

// SimulateThresholds previews warning/critical counts for a proposed
// threshold pair without persisting anything.
func (u *Usecase) SimulateThresholds(ctx context.Context, warningRatio, criticalRatio float64) (*Simulation, error) {
	if warningRatio <= 0 || criticalRatio < warningRatio {
		return nil, ErrInvalidThresholds
	}
	reqs, err := u.sourcing.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	now := u.clk.Now()

	sim := &Simulation{WarningRatio: warningRatio, CriticalRatio: criticalRatio}
	for i := range reqs {
		req := &reqs[i]
		snap := Score(req, u.lookupPolicy(ctx, req), now)
		sim.Total++
		if snap.Ratio >= warningRatio {
			sim.WarningCount++
		}
		if snap.Ratio >= criticalRatio {
			sim.CriticalCount++
		}
	}
	return sim, nil
}

// lookupPolicy best-efforts the active policy for a request's org and tier;
// scoring falls back to tier defaults when nothing applies.
func (u *Usecase) lookupPolicy(ctx context.Context, req *sourcing.SourcingRequest) *policy.ApprovalPolicy {
	if req.OrganizationID == nil || u.policies == nil {
		return nil
	}
	pol, err := u.policies.FindActive(ctx, *req.OrganizationID, req.ServiceTier)
	if err != nil {
		return nil
	}
	return pol
}
