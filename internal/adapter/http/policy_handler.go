package http

import (
	"errors"
	"net/http"

	"equipmart-backend/internal/domain/directory"
	"equipmart-backend/internal/domain/policy"
	"equipmart-backend/internal/usecase/policycfg"

	"github.com/labstack/echo/v4"
)

type PolicyHandler struct{ uc *policycfg.Usecase }

func NewPolicyHandler(uc *policycfg.Usecase) *PolicyHandler { return &PolicyHandler{uc: uc} }

type upsertPolicyReq struct {
	ServiceTier       string  `json:"service_tier"             validate:"required,tier"`
	RequiredApprovals int     `json:"required_approvals"       validate:"required,gte=1"`
	ApproverTeamRole  string  `json:"approver_team_role"       validate:"required,teamrole"`
	AutoAssignEnabled bool    `json:"auto_assign_enabled"`
	TargetHours       float64 `json:"target_hours"             validate:"gte=0"`
	WarningRatio      float64 `json:"warning_threshold_ratio"  validate:"required,gt=0"`
	CriticalRatio     float64 `json:"critical_threshold_ratio" validate:"required,gt=0"`
}

func (h *PolicyHandler) UpsertPolicy(c echo.Context) error {
	orgID := c.Param("org_id")
	if orgID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing org_id path param"})
	}
	var req upsertPolicyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Upsert(c.Request().Context(), policycfg.UpsertInput{
		OrganizationID:    orgID,
		ServiceTier:       policy.ServiceTier(req.ServiceTier),
		RequiredApprovals: req.RequiredApprovals,
		ApproverTeamRole:  directory.TeamRole(req.ApproverTeamRole),
		AutoAssignEnabled: req.AutoAssignEnabled,
		TargetHours:       req.TargetHours,
		WarningRatio:      req.WarningRatio,
		CriticalRatio:     req.CriticalRatio,
	})
	if err != nil {
		if errors.Is(err, policy.ErrInvalidInput) {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		}
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PolicyHandler) ListPolicies(c echo.Context) error {
	orgID := c.Param("org_id")
	if orgID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing org_id path param"})
	}
	rows, err := h.uc.ListByOrganization(c.Request().Context(), orgID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"organization_id": orgID,
		"policies":        rows,
	})
}
