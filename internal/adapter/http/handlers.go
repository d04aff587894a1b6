package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	startedAt time.Time
}

func NewHandler() *Handler { return &Handler{startedAt: time.Now().UTC()} }

func (h *Handler) Health(c echo.Context) error {
	now := time.Now().UTC()
	return c.JSON(http.StatusOK, map[string]any{
		"status":      "ok",
		"service":     "equipmart-backend",
		"time":        now.Format(time.RFC3339Nano),
		"uptime_secs": int64(now.Sub(h.startedAt).Seconds()),
	})
}
