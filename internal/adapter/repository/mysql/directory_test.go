package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	directoryDomain "equipmart-backend/internal/domain/directory"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type userSQLite struct {
	ID             uint64         `gorm:"primaryKey;column:id;autoIncrement"`
	UserID         string         `gorm:"size:32;uniqueIndex;column:user_id"`
	OrganizationID *string        `gorm:"size:32;column:organization_id"`
	AccountType    string         `gorm:"size:16;column:account_type"`
	TeamRole       string         `gorm:"size:16;column:team_role"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (userSQLite) TableName() string { return "users" }

var _ directoryDomain.Repository = (*DirectoryRepository)(nil)

func openDirectoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&userSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, userID, orgID string, acct directoryDomain.AccountType, role directoryDomain.TeamRole, createdAt time.Time) {
	t.Helper()
	var org *string
	if orgID != "" {
		org = &orgID
	}
	row := &userSQLite{
		UserID:         userID,
		OrganizationID: org,
		AccountType:    string(acct),
		TeamRole:       string(role),
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("seed user %s: %v", userID, err)
	}
}

func TestDirectory_GetByUserID(t *testing.T) {
	db := openDirectoryTestDB(t)
	repo := NewDirectoryRepository(db)
	ctx := context.Background()

	seedUser(t, db, "U-1", "ORG-1", directoryDomain.AccountMember, directoryDomain.RoleManager, time.Now().UTC())

	got, err := repo.GetByUserID(ctx, "U-1")
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got.TeamRole != directoryDomain.RoleManager || got.OrganizationID == nil || *got.OrganizationID != "ORG-1" {
		t.Fatalf("unexpected row: %+v", got)
	}

	if _, err := repo.GetByUserID(ctx, "NOPE"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDirectory_ResolveOrganization(t *testing.T) {
	db := openDirectoryTestDB(t)
	repo := NewDirectoryRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	seedUser(t, db, "U-ORG", "ORG-1", directoryDomain.AccountMember, directoryDomain.RoleApprover, now)
	seedUser(t, db, "U-SOLO", "", directoryDomain.AccountMember, directoryDomain.RoleApprover, now)

	org, err := repo.ResolveOrganization(ctx, "U-ORG")
	if err != nil {
		t.Fatalf("ResolveOrganization: %v", err)
	}
	if org == nil || *org != "ORG-1" {
		t.Fatalf("org = %v, want ORG-1", org)
	}

	org, err = repo.ResolveOrganization(ctx, "U-SOLO")
	if err != nil {
		t.Fatalf("ResolveOrganization solo: %v", err)
	}
	if org != nil {
		t.Fatalf("expected nil org for unaffiliated user, got %v", *org)
	}
}

func TestDirectory_ListMembers_RoleFloorAndOrdering(t *testing.T) {
	db := openDirectoryTestDB(t)
	repo := NewDirectoryRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-24 * time.Hour)
	// Deliberately seeded out of rank order to prove the CASE ordering.
	seedUser(t, db, "U-OWNER", "ORG-1", directoryDomain.AccountMember, directoryDomain.RoleOwner, base)
	seedUser(t, db, "U-MGR-NEW", "ORG-1", directoryDomain.AccountMember, directoryDomain.RoleManager, base.Add(2*time.Hour))
	seedUser(t, db, "U-MGR-OLD", "ORG-1", directoryDomain.AccountMember, directoryDomain.RoleManager, base.Add(1*time.Hour))
	seedUser(t, db, "U-APPR", "ORG-1", directoryDomain.AccountMember, directoryDomain.RoleApprover, base)
	seedUser(t, db, "U-OTHER", "ORG-2", directoryDomain.AccountMember, directoryDomain.RoleOwner, base)

	got, err := repo.ListMembers(ctx, "ORG-1", directoryDomain.RoleManager)
	if err != nil {
		t.Fatalf("ListMembers: %v", err)
	}
	want := []string{"U-MGR-OLD", "U-MGR-NEW", "U-OWNER"}
	if len(got) != len(want) {
		t.Fatalf("got %d members, want %d: %+v", len(got), len(want), got)
	}
	for i, id := range want {
		if got[i].UserID != id {
			t.Errorf("members[%d] = %s, want %s", i, got[i].UserID, id)
		}
	}
}

func TestDirectory_ListMembers_InvalidRole(t *testing.T) {
	db := openDirectoryTestDB(t)
	repo := NewDirectoryRepository(db)

	got, err := repo.ListMembers(context.Background(), "ORG-1", "intern")
	if err != nil {
		t.Fatalf("ListMembers: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no members for unknown role, got %d", len(got))
	}
}

func TestDirectory_ListAdmins(t *testing.T) {
	db := openDirectoryTestDB(t)
	repo := NewDirectoryRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-24 * time.Hour)
	seedUser(t, db, "ADM-2", "", directoryDomain.AccountAdmin, directoryDomain.RoleApprover, base.Add(time.Hour))
	seedUser(t, db, "ADM-1", "", directoryDomain.AccountAdmin, directoryDomain.RoleApprover, base)
	seedUser(t, db, "U-1", "ORG-1", directoryDomain.AccountMember, directoryDomain.RoleOwner, base)

	got, err := repo.ListAdmins(ctx)
	if err != nil {
		t.Fatalf("ListAdmins: %v", err)
	}
	if len(got) != 2 || got[0].UserID != "ADM-1" || got[1].UserID != "ADM-2" {
		t.Fatalf("unexpected admins: %+v", got)
	}
}
