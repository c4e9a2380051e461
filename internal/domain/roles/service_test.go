package roles

import (
	"context"
	"testing"
	"time"

	"github.com/Nisith-Naman/Health/internal/domain/audit"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testKey struct {
	role    Role
	address string
}

type testRepo struct {
	byKey map[testKey]Assignment
}

func newTestRepo() *testRepo {
	return &testRepo{byKey: map[testKey]Assignment{}}
}

func (r *testRepo) Put(ctx context.Context, a Assignment) (bool, error) {
	k := testKey{role: a.Role, address: a.Address}
	if _, ok := r.byKey[k]; ok {
		return false, nil
	}
	r.byKey[k] = a
	return true, nil
}

func (r *testRepo) Delete(ctx context.Context, role Role, address string) (bool, error) {
	k := testKey{role: role, address: address}
	if _, ok := r.byKey[k]; !ok {
		return false, nil
	}
	delete(r.byKey, k)
	return true, nil
}

func (r *testRepo) Has(ctx context.Context, role Role, address string) (bool, error) {
	_, ok := r.byKey[testKey{role: role, address: address}]
	return ok, nil
}

func (r *testRepo) CountByRole(ctx context.Context, role Role) (int, error) {
	n := 0
	for k := range r.byKey {
		if k.role == role {
			n++
		}
	}
	return n, nil
}

type testAuditor struct {
	events []audit.Event
}

func (a *testAuditor) Record(ctx context.Context, e audit.Event) error {
	a.events = append(a.events, e)
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Bootstrap_OnlyOnce(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	if err := svc.Bootstrap(context.Background(), "0xAdmin"); err != nil {
		t.Fatalf("Bootstrap error: %v", err)
	}
	ok, _ := svc.Has(context.Background(), RoleAdministrator, "0xadmin")
	if !ok {
		t.Fatalf("expected genesis address to be administrator")
	}

	// segundo bootstrap es no-op
	if err := svc.Bootstrap(context.Background(), "0xOther"); err != nil {
		t.Fatalf("Bootstrap #2 error: %v", err)
	}
	ok, _ = svc.Has(context.Background(), RoleAdministrator, "0xother")
	if ok {
		t.Fatalf("expected second bootstrap to be ignored")
	}
}

func TestService_Grant_RequiresAdministrator(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	_ = svc.Bootstrap(context.Background(), "0xadmin")

	err := svc.Grant(context.Background(), RoleRecorder, "0xbob", "0xrandom")
	if err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	if err := svc.Grant(context.Background(), RoleRecorder, "0xbob", "0xadmin"); err != nil {
		t.Fatalf("Grant error: %v", err)
	}
	ok, _ := svc.Has(context.Background(), RoleRecorder, "0xbob")
	if !ok {
		t.Fatalf("expected 0xbob to hold recorder")
	}
}

func TestService_Grant_Idempotent_NoDuplicateAudit(t *testing.T) {
	repo := newTestRepo()
	aud := &testAuditor{}
	svc := NewService(repo, aud)

	_ = svc.Bootstrap(context.Background(), "0xadmin")
	aud.events = nil

	if err := svc.Grant(context.Background(), RoleRecorder, "0xbob", "0xadmin"); err != nil {
		t.Fatalf("Grant #1 error: %v", err)
	}
	if err := svc.Grant(context.Background(), RoleRecorder, "0xbob", "0xadmin"); err != nil {
		t.Fatalf("Grant #2 error: %v", err)
	}

	if len(aud.events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(aud.events))
	}
	if aud.events[0].Action != audit.ActionRoleGrant {
		t.Fatalf("expected role.grant, got %s", aud.events[0].Action)
	}
}

func TestService_Grant_NormalizesAddresses(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	_ = svc.Bootstrap(context.Background(), "0xADMIN")

	if err := svc.Grant(context.Background(), RoleRecorder, "  0xBoB ", "0xAdmin"); err != nil {
		t.Fatalf("Grant error: %v", err)
	}
	ok, _ := svc.Has(context.Background(), RoleRecorder, "0xBOB")
	if !ok {
		t.Fatalf("expected membership check to be case-insensitive")
	}
}

func TestService_Revoke_LastAdministrator_Fails(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	_ = svc.Bootstrap(context.Background(), "0xadmin")

	// auto-revoke del único admin
	err := svc.Revoke(context.Background(), RoleAdministrator, "0xadmin", "0xadmin")
	if err != ErrInvariant {
		t.Fatalf("expected ErrInvariant, got %v", err)
	}
	ok, _ := svc.Has(context.Background(), RoleAdministrator, "0xadmin")
	if !ok {
		t.Fatalf("expected failed revoke to leave the assignment intact")
	}
}

func TestService_Revoke_SecondAdministrator_Allows(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	_ = svc.Bootstrap(context.Background(), "0xadmin")
	if err := svc.Grant(context.Background(), RoleAdministrator, "0xsecond", "0xadmin"); err != nil {
		t.Fatalf("Grant error: %v", err)
	}

	if err := svc.Revoke(context.Background(), RoleAdministrator, "0xadmin", "0xsecond"); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}
	ok, _ := svc.Has(context.Background(), RoleAdministrator, "0xadmin")
	if ok {
		t.Fatalf("expected 0xadmin revoked")
	}
}

func TestService_Revoke_NonMember_NoAudit(t *testing.T) {
	repo := newTestRepo()
	aud := &testAuditor{}
	svc := NewService(repo, aud)

	_ = svc.Bootstrap(context.Background(), "0xadmin")
	aud.events = nil

	// revocar recorder a alguien que nunca lo tuvo: no-op exitoso
	if err := svc.Revoke(context.Background(), RoleRecorder, "0xnobody", "0xadmin"); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}
	if len(aud.events) != 0 {
		t.Fatalf("expected no audit events, got %d", len(aud.events))
	}
}

func TestService_Has_RejectsUnknownRole(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	_, err := svc.Has(context.Background(), Role("superuser"), "0xbob")
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
