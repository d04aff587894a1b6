package mysql

import (
	"context"
	"errors"
	"testing"

	approvalDomain "equipmart-backend/internal/domain/approval"
	sourcingDomain "equipmart-backend/internal/domain/sourcing"
	"equipmart-backend/internal/domain/uow"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openUowTestDB migrates every table the UoW can touch.
func openUowTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&userSQLite{}, &policySQLite{},
		&sourcingSQLite{}, &sourcingEventSQLite{},
		&approvalRequestSQLite{}, &approvalDecisionSQLite{},
		&alertSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	sourcingRepo := NewSourcingRepository(db)
	approvalRepo := NewApprovalRepository(db)

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		s := makeSourcing("SR-COMMIT", sourcingDomain.StatusOpen)
		if err := r.Sourcing.Create(ctx, s); err != nil {
			return err
		}
		return r.Approvals.CreateRequest(ctx, makeApprovalRequest("APR-COMMIT", s.RequestID))
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	if _, err := sourcingRepo.GetByRequestID(ctx, "SR-COMMIT"); err != nil {
		t.Fatalf("sourcing row not visible after commit: %v", err)
	}
	if _, err := approvalRepo.GetByApprovalID(ctx, "APR-COMMIT"); err != nil {
		t.Fatalf("approval row not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	sourcingRepo := NewSourcingRepository(db)
	approvalRepo := NewApprovalRepository(db)

	sentinel := errors.New("boom")

	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		s := makeSourcing("SR-ROLL", sourcingDomain.StatusOpen)
		if err := r.Sourcing.Create(ctx, s); err != nil {
			return err
		}
		if err := r.Approvals.CreateRequest(ctx, makeApprovalRequest("APR-ROLL", s.RequestID)); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	if _, err := sourcingRepo.GetByRequestID(ctx, "SR-ROLL"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected sourcing row absent after rollback, got %v", err)
	}
	if _, err := approvalRepo.GetByApprovalID(ctx, "APR-ROLL"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected approval row absent after rollback, got %v", err)
	}
}

func TestGormUoW_WithinSourcingTx_Commit(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	sourcingRepo := NewSourcingRepository(db)
	approvalRepo := NewApprovalRepository(db)

	if err := sourcingRepo.Create(ctx, makeSourcing("SR-TARGET", sourcingDomain.StatusOpen)); err != nil {
		t.Fatalf("seed sourcing: %v", err)
	}

	if err := guow.WithinSourcingTx(ctx, "SR-TARGET", func(r uow.Repos, s *sourcingDomain.SourcingRequest) error {
		if s == nil || s.RequestID != "SR-TARGET" || s.Status != sourcingDomain.StatusOpen {
			t.Fatalf("unexpected sourcing row passed to fn: %+v", s)
		}
		return r.Approvals.CreateRequest(ctx, makeApprovalRequest("APR-LOCK", s.RequestID))
	}); err != nil {
		t.Fatalf("WithinSourcingTx commit err: %v", err)
	}

	if _, err := approvalRepo.GetByApprovalID(ctx, "APR-LOCK"); err != nil {
		t.Fatalf("approval row not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinSourcingTx_Rollback(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	sourcingRepo := NewSourcingRepository(db)
	approvalRepo := NewApprovalRepository(db)

	if err := sourcingRepo.Create(ctx, makeSourcing("SR-RB", sourcingDomain.StatusOpen)); err != nil {
		t.Fatalf("seed sourcing: %v", err)
	}

	sentinel := errors.New("stop")

	_ = guow.WithinSourcingTx(ctx, "SR-RB", func(r uow.Repos, s *sourcingDomain.SourcingRequest) error {
		if err := r.Approvals.CreateRequest(ctx, makeApprovalRequest("APR-RB", s.RequestID)); err != nil {
			return err
		}
		s.Status = sourcingDomain.StatusClosed
		if err := r.Sourcing.Save(ctx, s); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	got, err := sourcingRepo.GetByRequestID(ctx, "SR-RB")
	if err != nil {
		t.Fatalf("post-rollback GetByRequestID: %v", err)
	}
	if got.Status != sourcingDomain.StatusOpen {
		t.Fatalf("expected open after rollback, got %s", got.Status)
	}
	if _, err := approvalRepo.GetByApprovalID(ctx, "APR-RB"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected approval absent after rollback, got %v", err)
	}
}

func TestGormUoW_WithinSourcingTx_NotFound(t *testing.T) {
	db := openUowTestDB(t)
	guow := NewGormUoW(db)

	err := guow.WithinSourcingTx(context.Background(), "SR-NOPE", func(r uow.Repos, s *sourcingDomain.SourcingRequest) error {
		t.Fatalf("callback should not run when the sourcing request is missing")
		return nil
	})
	if !errors.Is(err, sourcingDomain.ErrNotFound) {
		t.Fatalf("expected sourcing.ErrNotFound, got %v", err)
	}
}

var _ uow.UnitOfWork = (*GormUoW)(nil)
var _ approvalDomain.Repository = (*ApprovalRepository)(nil)
var _ sourcingDomain.Repository = (*SourcingRepository)(nil)
