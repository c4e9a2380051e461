package access

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type grantKey struct {
	tokenID uint64
	viewer  string
}

type testRepo struct {
	byKey map[grantKey]Grant
}

func newTestRepo() *testRepo {
	return &testRepo{byKey: map[grantKey]Grant{}}
}

func (r *testRepo) Upsert(ctx context.Context, g Grant) error {
	r.byKey[grantKey{tokenID: g.TokenID, viewer: g.Viewer}] = g
	return nil
}

func (r *testRepo) Get(ctx context.Context, tokenID uint64, viewer string) (Grant, error) {
	g, ok := r.byKey[grantKey{tokenID: tokenID, viewer: viewer}]
	if !ok {
		return Grant{}, ErrNotFound
	}
	return g, nil
}

// failingRepo fuerza errores de storage en Get.
type failingRepo struct {
	*testRepo
	getErr error
}

func (r *failingRepo) Get(ctx context.Context, tokenID uint64, viewer string) (Grant, error) {
	if r.getErr != nil {
		return Grant{}, r.getErr
	}
	return r.testRepo.Get(ctx, tokenID, viewer)
}

func (r *testRepo) Delete(ctx context.Context, tokenID uint64, viewer string) (bool, error) {
	k := grantKey{tokenID: tokenID, viewer: viewer}
	if _, ok := r.byKey[k]; !ok {
		return false, nil
	}
	delete(r.byKey, k)
	return true, nil
}

func (r *testRepo) ListByToken(ctx context.Context, tokenID uint64) ([]Grant, error) {
	out := make([]Grant, 0)
	for _, g := range r.byKey {
		if g.TokenID == tokenID {
			out = append(out, g)
		}
	}
	return out, nil
}

// testOwners simula el TokenOwnership: token -> owner actual.
type testOwners struct {
	owners map[uint64]string
}

func (o *testOwners) OwnerOf(ctx context.Context, tokenID uint64) (string, error) {
	owner, ok := o.owners[tokenID]
	if !ok {
		return "", errRepoNotFound
	}
	return owner, nil
}

func newSvc() (*Service, *testRepo, *testOwners) {
	repo := newTestRepo()
	owners := &testOwners{owners: map[uint64]string{1: "0xalice"}}
	svc := NewService(repo, owners, nil)
	return svc, repo, owners
}

// -------------------------
// Tests
// -------------------------

func TestService_CanRead_OwnerAlways(t *testing.T) {
	svc, _, _ := newSvc()

	ok, err := svc.CanRead(context.Background(), 1, "0xAlice")
	if err != nil {
		t.Fatalf("CanRead error: %v", err)
	}
	if !ok {
		t.Fatalf("expected owner to read without a grant")
	}
}

func TestService_CanRead_NoGrant_FalseWithoutError(t *testing.T) {
	svc, _, _ := newSvc()

	ok, err := svc.CanRead(context.Background(), 1, "0xcarol")
	if err != nil {
		t.Fatalf("CanRead error: %v", err)
	}
	if ok {
		t.Fatalf("expected no access without a grant")
	}
}

func TestService_CanRead_UnknownToken(t *testing.T) {
	svc, _, _ := newSvc()

	_, err := svc.CanRead(context.Background(), 99, "0xcarol")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Grant_IndefiniteAndExpiry(t *testing.T) {
	svc, _, _ := newSvc()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	// indefinido
	g, err := svc.Grant(context.Background(), 1, "0xcarol", nil, "0xalice")
	if err != nil {
		t.Fatalf("Grant error: %v", err)
	}
	if g.ExpiresAt != nil {
		t.Fatalf("expected nil ExpiresAt")
	}
	ok, _ := svc.CanRead(context.Background(), 1, "0xcarol")
	if !ok {
		t.Fatalf("expected indefinite grant to allow reading")
	}

	// con vencimiento: vivo antes, muerto después
	exp := now.Add(1 * time.Hour)
	if _, err := svc.Grant(context.Background(), 1, "0xdave", &exp, "0xalice"); err != nil {
		t.Fatalf("Grant con expiry error: %v", err)
	}

	svc.now = func() time.Time { return now.Add(30 * time.Minute) }
	ok, _ = svc.CanRead(context.Background(), 1, "0xdave")
	if !ok {
		t.Fatalf("expected grant alive before expiry")
	}

	svc.now = func() time.Time { return exp }
	ok, _ = svc.CanRead(context.Background(), 1, "0xdave")
	if ok {
		t.Fatalf("expected grant dead at expiry instant")
	}
}

func TestService_Grant_PastExpiry_Invalid(t *testing.T) {
	svc, _, _ := newSvc()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	past := now.Add(-time.Minute)
	_, err := svc.Grant(context.Background(), 1, "0xcarol", &past, "0xalice")
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Grant_OnlyOwner_NoSelfGrant(t *testing.T) {
	svc, _, _ := newSvc()

	_, err := svc.Grant(context.Background(), 1, "0xcarol", nil, "0xbob")
	if err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	_, err = svc.Grant(context.Background(), 1, "0xalice", nil, "0xalice")
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for self-grant, got %v", err)
	}
}

func TestService_Grant_Regrant_ReplacesExpiry_KeepsIdentity(t *testing.T) {
	svc, _, _ := newSvc()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	exp := now.Add(1 * time.Hour)
	g1, err := svc.Grant(context.Background(), 1, "0xcarol", &exp, "0xalice")
	if err != nil {
		t.Fatalf("Grant #1 error: %v", err)
	}

	// re-grant indefinido pisa el expiry y conserva ID/CreatedAt
	svc.now = func() time.Time { return now.Add(10 * time.Minute) }
	g2, err := svc.Grant(context.Background(), 1, "0xcarol", nil, "0xalice")
	if err != nil {
		t.Fatalf("Grant #2 error: %v", err)
	}
	if g2.ID != g1.ID {
		t.Fatalf("expected same grant ID on re-grant")
	}
	if g2.CreatedAt != g1.CreatedAt {
		t.Fatalf("expected CreatedAt preserved on re-grant")
	}
	if g2.ExpiresAt != nil {
		t.Fatalf("expected re-grant to clear expiry")
	}

	svc.now = func() time.Time { return exp.Add(time.Hour) }
	ok, _ := svc.CanRead(context.Background(), 1, "0xcarol")
	if !ok {
		t.Fatalf("expected access past the old expiry after re-grant")
	}
}

func TestService_Revoke_Immediate_AndIdempotent(t *testing.T) {
	svc, _, _ := newSvc()

	if _, err := svc.Grant(context.Background(), 1, "0xcarol", nil, "0xalice"); err != nil {
		t.Fatalf("Grant error: %v", err)
	}
	if _, err := svc.Grant(context.Background(), 1, "0xdave", nil, "0xalice"); err != nil {
		t.Fatalf("Grant error: %v", err)
	}

	if err := svc.Revoke(context.Background(), 1, "0xcarol", "0xalice"); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}
	ok, _ := svc.CanRead(context.Background(), 1, "0xcarol")
	if ok {
		t.Fatalf("expected revoke to apply on the next read")
	}
	// el otro grant no se toca
	ok, _ = svc.CanRead(context.Background(), 1, "0xdave")
	if !ok {
		t.Fatalf("expected unrelated grant to survive")
	}

	// revocar de nuevo: no-op exitoso
	if err := svc.Revoke(context.Background(), 1, "0xcarol", "0xalice"); err != nil {
		t.Fatalf("Revoke #2 error: %v", err)
	}
}

func TestService_TransferredOwner_GrantsAndRevokes(t *testing.T) {
	svc, _, owners := newSvc()

	if _, err := svc.Grant(context.Background(), 1, "0xcarol", nil, "0xalice"); err != nil {
		t.Fatalf("Grant error: %v", err)
	}

	// simula un transfer: el owner actual pasa a ser bob
	owners.owners[1] = "0xbob"

	// alice ya no controla el token
	_, err := svc.Grant(context.Background(), 1, "0xdave", nil, "0xalice")
	if err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for the old owner, got %v", err)
	}

	// el grant viejo sigue vivo hasta que el owner nuevo lo revoque
	ok, _ := svc.CanRead(context.Background(), 1, "0xcarol")
	if !ok {
		t.Fatalf("expected pre-transfer grant to survive the transfer")
	}
	if err := svc.Revoke(context.Background(), 1, "0xcarol", "0xbob"); err != nil {
		t.Fatalf("Revoke by new owner error: %v", err)
	}
	ok, _ = svc.CanRead(context.Background(), 1, "0xcarol")
	if ok {
		t.Fatalf("expected revoke by the new owner to apply")
	}
}

func TestService_ListByToken_OnlyOwner(t *testing.T) {
	svc, _, _ := newSvc()

	if _, err := svc.Grant(context.Background(), 1, "0xcarol", nil, "0xalice"); err != nil {
		t.Fatalf("Grant error: %v", err)
	}

	_, err := svc.ListByToken(context.Background(), 1, "0xcarol")
	if err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	items, err := svc.ListByToken(context.Background(), 1, "0xalice")
	if err != nil {
		t.Fatalf("ListByToken error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 grant, got %d", len(items))
	}
}

func TestService_StorageErrorOnGet_IsNotAbsence(t *testing.T) {
	errStorage := errors.New("repo: storage down")
	repo := &failingRepo{testRepo: newTestRepo(), getErr: errStorage}
	owners := &testOwners{owners: map[uint64]string{1: "0xalice"}}
	svc := NewService(repo, owners, nil)

	// un re-grant sobre storage caído no debe mintear un grant nuevo
	_, err := svc.Grant(context.Background(), 1, "0xcarol", nil, "0xalice")
	if !errors.Is(err, errStorage) {
		t.Fatalf("expected the storage error to propagate, got %v", err)
	}
	if len(repo.testRepo.byKey) != 0 {
		t.Fatalf("expected no grant written on storage failure")
	}

	// y CanRead tampoco lo traduce a "sin acceso"
	_, err = svc.CanRead(context.Background(), 1, "0xcarol")
	if !errors.Is(err, errStorage) {
		t.Fatalf("expected CanRead to surface the storage error, got %v", err)
	}
}

func TestService_LiveGrants_CountsOnlyAlive(t *testing.T) {
	svc, _, _ := newSvc()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	exp := now.Add(time.Hour)
	_, _ = svc.Grant(context.Background(), 1, "0xcarol", nil, "0xalice")
	_, _ = svc.Grant(context.Background(), 1, "0xdave", &exp, "0xalice")

	svc.now = func() time.Time { return now.Add(2 * time.Hour) }
	n, err := svc.LiveGrants(context.Background(), 1)
	if err != nil {
		t.Fatalf("LiveGrants error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 live grant, got %d", n)
	}
}
