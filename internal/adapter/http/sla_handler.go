package http

import (
	"errors"
	"net/http"

	"equipmart-backend/internal/usecase/sla"

	"github.com/labstack/echo/v4"
)

type SLAHandler struct{ uc *sla.Usecase }

func NewSLAHandler(uc *sla.Usecase) *SLAHandler { return &SLAHandler{uc: uc} }

func (h *SLAHandler) Queue(c echo.Context) error {
	items, err := h.uc.PriorityQueue(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"count": len(items),
		"items": items,
	})
}

func (h *SLAHandler) Sweep(c echo.Context) error {
	res, err := h.uc.RunEscalationSweep(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

type simulateReq struct {
	WarningRatio  float64 `json:"warning_ratio"  validate:"required,gt=0"`
	CriticalRatio float64 `json:"critical_ratio" validate:"required,gt=0"`
}

func (h *SLAHandler) Simulate(c echo.Context) error {
	var req simulateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	sim, err := h.uc.SimulateThresholds(c.Request().Context(), req.WarningRatio, req.CriticalRatio)
	if err != nil {
		if errors.Is(err, sla.ErrInvalidThresholds) {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, sim)
}
