package http

import (
	"net/http"

	"equipmart-backend/internal/domain/policy"
	"equipmart-backend/internal/usecase/routing"

	"github.com/labstack/echo/v4"
)

type RoutingHandler struct{ uc *routing.Usecase }

func NewRoutingHandler(uc *routing.Usecase) *RoutingHandler { return &RoutingHandler{uc: uc} }

type previewRoutingReq struct {
	RequesterID      string `json:"requester_id" validate:"required,hex32"`
	ServiceTier      string `json:"service_tier" validate:"required,tier"`
	RequiredOverride *int   `json:"required_override" validate:"omitempty,gte=1"`
}

// PreviewRouting resolves a routing decision without creating anything;
// useful for ops tooling and policy debugging.
func (h *RoutingHandler) PreviewRouting(c echo.Context) error {
	var req previewRoutingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dec, err := h.uc.Resolve(c.Request().Context(), routing.Input{
		RequesterID:      req.RequesterID,
		Tier:             policy.ServiceTier(req.ServiceTier),
		RequiredOverride: req.RequiredOverride,
	})
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dec)
}
