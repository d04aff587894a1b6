package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"equipmart-backend/internal/domain/policy"
	"equipmart-backend/internal/testutil/policymock"
	"equipmart-backend/internal/usecase/policycfg"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func TestUpsertPolicy_CreatesNew(t *testing.T) {
	e := newEchoWithValidator()

	var created *policy.ApprovalPolicy
	repo := &policymock.Repo{
		FindActiveFn: func(ctx context.Context, orgID string, tier policy.ServiceTier) (*policy.ApprovalPolicy, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, p *policy.ApprovalPolicy) error {
			created = p
			return nil
		},
	}
	h := NewPolicyHandler(policycfg.NewUsecase(repo))

	body := map[string]any{
		"service_tier":             "enterprise",
		"required_approvals":       2,
		"approver_team_role":       "owner",
		"auto_assign_enabled":      true,
		"warning_threshold_ratio":  1.0,
		"critical_threshold_ratio": 1.5,
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/organizations/"+hex32('f')+"/policies", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("org_id")
	c.SetParamValues(hex32('f'))

	if err := h.UpsertPolicy(c); err != nil {
		t.Fatalf("UpsertPolicy error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	if created == nil || created.OrganizationID != hex32('f') || created.ServiceTier != policy.TierEnterprise {
		t.Fatalf("unexpected created policy: %+v", created)
	}

	var dto policycfg.PolicyDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.RequiredApprovals != 2 || !dto.Active {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestUpsertPolicy_ValidationFailed(t *testing.T) {
	e := newEchoWithValidator()
	h := NewPolicyHandler(policycfg.NewUsecase(&policymock.Repo{}))

	body := map[string]any{
		"service_tier":             "platinum", // not a tier
		"required_approvals":       0,
		"approver_team_role":       "ceo",
		"warning_threshold_ratio":  1.0,
		"critical_threshold_ratio": 1.5,
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/organizations/x/policies", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("org_id")
	c.SetParamValues(hex32('f'))

	if err := h.UpsertPolicy(c); err != nil {
		t.Fatalf("UpsertPolicy error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body=%s", rec.Code, rec.Body.String())
	}
}

func TestUpsertPolicy_CriticalBelowWarning(t *testing.T) {
	e := newEchoWithValidator()
	h := NewPolicyHandler(policycfg.NewUsecase(&policymock.Repo{}))

	// field-level validation passes; the usecase rejects the pair
	body := map[string]any{
		"service_tier":             "standard",
		"required_approvals":       1,
		"approver_team_role":       "approver",
		"warning_threshold_ratio":  1.5,
		"critical_threshold_ratio": 1.0,
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/organizations/x/policies", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("org_id")
	c.SetParamValues(hex32('f'))

	if err := h.UpsertPolicy(c); err != nil {
		t.Fatalf("UpsertPolicy error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body=%s", rec.Code, rec.Body.String())
	}
}

func TestListPolicies(t *testing.T) {
	e := newEchoWithValidator()

	repo := &policymock.Repo{
		ListByOrganizationFn: func(ctx context.Context, orgID string) ([]policy.ApprovalPolicy, error) {
			return []policy.ApprovalPolicy{
				{PolicyID: "POL-1", OrganizationID: orgID, ServiceTier: policy.TierStandard, Active: true},
				{PolicyID: "POL-2", OrganizationID: orgID, ServiceTier: policy.TierEnterprise, Active: false},
			}, nil
		},
	}
	h := NewPolicyHandler(policycfg.NewUsecase(repo))

	req := httptest.NewRequest(stdhttp.MethodGet, "/organizations/"+hex32('f')+"/policies", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("org_id")
	c.SetParamValues(hex32('f'))

	if err := h.ListPolicies(c); err != nil {
		t.Fatalf("ListPolicies error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		OrganizationID string                `json:"organization_id"`
		Policies       []policycfg.PolicyDTO `json:"policies"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(body.Policies) != 2 || body.OrganizationID != hex32('f') {
		t.Fatalf("unexpected body: %+v", body)
	}
}
