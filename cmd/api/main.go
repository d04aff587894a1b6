package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "equipmart-backend/internal/adapter/http"
	appmw "equipmart-backend/internal/adapter/middleware"
	"equipmart-backend/internal/adapter/repository/mysql"
	"equipmart-backend/internal/config"
	"equipmart-backend/internal/infrastructure/cache"
	"equipmart-backend/internal/infrastructure/db"
	"equipmart-backend/internal/usecase/approval"
	"equipmart-backend/internal/usecase/policycfg"
	"equipmart-backend/internal/usecase/routing"
	"equipmart-backend/internal/usecase/sla"
	"equipmart-backend/pkg/clock"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	policies := mysql.NewPolicyRepository(gdb)
	dir := mysql.NewDirectoryRepository(gdb)
	src := mysql.NewSourcingRepository(gdb)
	approvals := mysql.NewApprovalRepository(gdb)
	alerts := mysql.NewEscalationRepository(gdb)
	notifier := mysql.NewNotificationRepository(gdb)
	txm := mysql.NewGormUoW(gdb)

	clk := clock.System{}
	routingUC := routing.NewUsecase(policies, dir)
	approvalUC := approval.NewUsecase(txm, routingUC, approvals, notifier, clk)
	slaUC := sla.NewUsecase(src, policies, dir, alerts, notifier, clk)
	policyUC := policycfg.NewUsecase(policies)

	h := httpadp.NewHandler()
	routingH := httpadp.NewRoutingHandler(routingUC)
	approvalH := httpadp.NewApprovalHandler(approvalUC)
	slaH := httpadp.NewSLAHandler(slaUC)
	policyH := httpadp.NewPolicyHandler(policyUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	// routes
	e.GET("/health", h.Health)
	e.POST("/routing/preview", routingH.PreviewRouting)
	e.POST("/sourcing-requests/:request_id/approvals", approvalH.CreateApproval)
	e.POST("/approvals/:approval_id/decisions", approvalH.SubmitDecision)
	e.GET("/approvals/:approval_id", approvalH.GetApproval)
	e.GET("/sla/queue", slaH.Queue)
	e.POST("/sla/sweep", slaH.Sweep)
	e.POST("/sla/simulate", slaH.Simulate)
	e.POST("/organizations/:org_id/policies", policyH.UpsertPolicy)
	e.GET("/organizations/:org_id/policies", policyH.ListPolicies)

	if cfg.SweepIntervalMinutes > 0 {
		go runSweepLoop(slaUC, time.Duration(cfg.SweepIntervalMinutes)*time.Minute)
	}

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

func runSweepLoop(uc *sla.Usecase, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for range t.C {
		res, err := uc.RunEscalationSweep(context.Background())
		if err != nil {
			log.Printf("sla sweep: %v", err)
			continue
		}
		log.Printf("sla sweep: scanned=%d breached=%d emitted=%d deduplicated=%d",
			res.Scanned, res.Breached, res.Emitted, res.Deduplicated)
	}
}
