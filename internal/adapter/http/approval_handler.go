package http

import (
	"net/http"

	approvalDomain "equipmart-backend/internal/domain/approval"
	"equipmart-backend/internal/usecase/approval"

	"github.com/labstack/echo/v4"
)

type ApprovalHandler struct{ uc *approval.Usecase }

func NewApprovalHandler(uc *approval.Usecase) *ApprovalHandler { return &ApprovalHandler{uc: uc} }

type createApprovalReq struct {
	RequiredOverride *int `json:"required_override" validate:"omitempty,gte=1"`
}

func (h *ApprovalHandler) CreateApproval(c echo.Context) error {
	requestID := c.Param("request_id")
	if requestID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing request_id path param"})
	}
	var req createApprovalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.CreateRequest(c.Request().Context(), approval.CreateRequestInput{
		SourcingRequestID: requestID,
		RequiredOverride:  req.RequiredOverride,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

type submitDecisionReq struct {
	ApproverID string `json:"approver_id" validate:"required,hex32"`
	Status     string `json:"status"      validate:"required,decision"`
	Note       string `json:"note"        validate:"max=2000"`
}

func (h *ApprovalHandler) SubmitDecision(c echo.Context) error {
	approvalID := c.Param("approval_id")
	if approvalID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing approval_id path param"})
	}
	var req submitDecisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.SubmitDecision(c.Request().Context(), approval.SubmitDecisionInput{
		ApprovalID: approvalID,
		ApproverID: req.ApproverID,
		Status:     approvalDomain.Status(req.Status),
		Note:       req.Note,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApprovalHandler) GetApproval(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("approval_id"))
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}
