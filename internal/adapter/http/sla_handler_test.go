package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"equipmart-backend/internal/domain/directory"
	"equipmart-backend/internal/domain/policy"
	"equipmart-backend/internal/domain/sourcing"
	"equipmart-backend/internal/testutil/directorymock"
	"equipmart-backend/internal/testutil/escalationmock"
	"equipmart-backend/internal/testutil/sourcingmock"
	"equipmart-backend/internal/usecase/sla"
	"equipmart-backend/pkg/clock"

	"github.com/labstack/echo/v4"
)

var slaNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func slaUsecaseFixture(reqs []sourcing.SourcingRequest, alerts *escalationmock.Repo) *sla.Usecase {
	src := &sourcingmock.Repo{
		ListOpenFn: func(ctx context.Context) ([]sourcing.SourcingRequest, error) {
			return reqs, nil
		},
	}
	dir := &directorymock.Repo{
		ListAdminsFn: func(ctx context.Context) ([]directory.User, error) {
			return []directory.User{{UserID: hex32('1'), AccountType: directory.AccountAdmin}}, nil
		},
	}
	if alerts == nil {
		alerts = &escalationmock.Repo{}
	}
	return sla.NewUsecase(src, nil, dir, alerts, nil, clock.Fixed(slaNow))
}

func TestSLAQueue_OrderedByScore(t *testing.T) {
	e := newEchoWithValidator()

	reqs := []sourcing.SourcingRequest{
		// standard, on-time, has offer: low score
		{RequestID: "SR-LOW", ServiceTier: policy.TierStandard, HasActiveOffer: true, CreatedAt: slaNow.Add(-1 * time.Hour)},
		// enterprise, overdue, no offer: high score
		{RequestID: "SR-HOT", ServiceTier: policy.TierEnterprise, CreatedAt: slaNow.Add(-16 * time.Hour)},
	}
	h := NewSLAHandler(slaUsecaseFixture(reqs, nil))

	req := httptest.NewRequest(stdhttp.MethodGet, "/sla/queue", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Queue(c); err != nil {
		t.Fatalf("Queue error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}

	var body struct {
		Count int             `json:"count"`
		Items []sla.QueueItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body.Count != 2 || len(body.Items) != 2 {
		t.Fatalf("unexpected count: %+v", body)
	}
	if body.Items[0].RequestID != "SR-HOT" {
		t.Fatalf("queue head = %s, want SR-HOT", body.Items[0].RequestID)
	}
	if !body.Items[0].Snapshot.Critical {
		t.Fatalf("expected critical snapshot for SR-HOT: %+v", body.Items[0].Snapshot)
	}
}

func TestSLASweep_EmitsAlerts(t *testing.T) {
	e := newEchoWithValidator()

	reqs := []sourcing.SourcingRequest{
		// standard tier target 72h; 80h old, no offer: breached
		{RequestID: "SR-OVER", ServiceTier: policy.TierStandard, CreatedAt: slaNow.Add(-80 * time.Hour)},
		// has offer: skipped
		{RequestID: "SR-SERVED", ServiceTier: policy.TierStandard, HasActiveOffer: true, CreatedAt: slaNow.Add(-80 * time.Hour)},
	}
	h := NewSLAHandler(slaUsecaseFixture(reqs, &escalationmock.Repo{}))

	req := httptest.NewRequest(stdhttp.MethodPost, "/sla/sweep", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Sweep(c); err != nil {
		t.Fatalf("Sweep error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}

	var res sla.SweepResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if res.Scanned != 2 || res.Breached != 1 || res.Emitted != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Day != "2026-08-31" {
		t.Fatalf("day = %s", res.Day)
	}
}

func TestSLASimulate(t *testing.T) {
	e := newEchoWithValidator()

	reqs := []sourcing.SourcingRequest{
		{RequestID: "SR-1", ServiceTier: policy.TierStandard, CreatedAt: slaNow.Add(-80 * time.Hour)},  // ratio ~1.11
		{RequestID: "SR-2", ServiceTier: policy.TierStandard, CreatedAt: slaNow.Add(-150 * time.Hour)}, // ratio ~2.08
		{RequestID: "SR-3", ServiceTier: policy.TierStandard, CreatedAt: slaNow.Add(-10 * time.Hour)},  // ratio ~0.14
	}
	h := NewSLAHandler(slaUsecaseFixture(reqs, nil))

	body := map[string]any{"warning_ratio": 1.0, "critical_ratio": 2.0}
	req := httptest.NewRequest(stdhttp.MethodPost, "/sla/simulate", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Simulate(c); err != nil {
		t.Fatalf("Simulate error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}

	var sim sla.Simulation
	if err := json.Unmarshal(rec.Body.Bytes(), &sim); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if sim.Total != 3 || sim.WarningCount != 2 || sim.CriticalCount != 1 {
		t.Fatalf("unexpected simulation: %+v", sim)
	}
}

func TestSLASimulate_InvalidThresholds(t *testing.T) {
	e := newEchoWithValidator()
	h := NewSLAHandler(slaUsecaseFixture(nil, nil))

	// passes field validation (both > 0) but critical < warning
	body := map[string]any{"warning_ratio": 1.5, "critical_ratio": 1.0}
	req := httptest.NewRequest(stdhttp.MethodPost, "/sla/simulate", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Simulate(c); err != nil {
		t.Fatalf("Simulate error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body=%s", rec.Code, rec.Body.String())
	}
}
