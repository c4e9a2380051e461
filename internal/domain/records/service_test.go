package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Nisith-Naman/Health/internal/domain/roles"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byToken map[uint64][]Entry
}

func newTestRepo() *testRepo {
	return &testRepo{byToken: map[uint64][]Entry{}}
}

func (r *testRepo) Append(ctx context.Context, e Entry) (Entry, error) {
	e.Seq = len(r.byToken[e.TokenID]) + 1
	r.byToken[e.TokenID] = append(r.byToken[e.TokenID], e)
	return e, nil
}

func (r *testRepo) ListByToken(ctx context.Context, tokenID uint64) ([]Entry, error) {
	out := make([]Entry, 0, len(r.byToken[tokenID]))
	out = append(out, r.byToken[tokenID]...)
	return out, nil
}

func (r *testRepo) CountByToken(ctx context.Context, tokenID uint64) (int, error) {
	return len(r.byToken[tokenID]), nil
}

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

type testRoles struct {
	recorders map[string]bool
}

func (r *testRoles) Has(ctx context.Context, role roles.Role, address string) (bool, error) {
	if role != roles.RoleRecorder {
		return false, nil
	}
	return r.recorders[address], nil
}

// testReader simula el AccessController por address.
type testReader struct {
	allowed map[string]bool
	owner   string
}

func (r *testReader) CanRead(ctx context.Context, tokenID uint64, address string) (bool, error) {
	if address == r.owner {
		return true, nil
	}
	return r.allowed[address], nil
}

func newSvc() (*Service, *testRepo, *testReader) {
	repo := newTestRepo()
	owners := &testOwners{owners: map[uint64]string{1: "0xalice"}}
	rolesRepo := &testRoles{recorders: map[string]bool{"0xbob": true}}
	reader := &testReader{allowed: map[string]bool{}, owner: "0xalice"}
	return NewService(repo, owners, rolesRepo, reader), repo, reader
}

// -------------------------
// Tests
// -------------------------

func TestService_Append_RequiresRecorder(t *testing.T) {
	svc, repo, _ := newSvc()

	_, err := svc.Append(context.Background(), 1, "cid-1", "vacuna", "0xdave")
	if err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if len(repo.byToken[1]) != 0 {
		t.Fatalf("expected nothing appended")
	}
}

func TestService_Append_SequencesFromOne(t *testing.T) {
	svc, _, _ := newSvc()

	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	e1, err := svc.Append(context.Background(), 1, "cid-1", "alta", "0xBob")
	if err != nil {
		t.Fatalf("Append #1 error: %v", err)
	}
	e2, err := svc.Append(context.Background(), 1, "cid-2", "", "0xbob")
	if err != nil {
		t.Fatalf("Append #2 error: %v", err)
	}

	if e1.Seq != 1 || e2.Seq != 2 {
		t.Fatalf("expected seq 1 y 2, got %d y %d", e1.Seq, e2.Seq)
	}
	if e1.AddedBy != "0xbob" || e1.RecordedAt != now {
		t.Fatalf("unexpected entry: %#v", e1)
	}
}

func TestService_Append_EmptyCID_Invalid(t *testing.T) {
	svc, _, _ := newSvc()

	_, err := svc.Append(context.Background(), 1, "   ", "nota", "0xbob")
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Append_UnknownToken(t *testing.T) {
	svc, _, _ := newSvc()

	_, err := svc.Append(context.Background(), 99, "cid-1", "", "0xbob")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_History_OwnerAndGrantee(t *testing.T) {
	svc, _, reader := newSvc()

	_, _ = svc.Append(context.Background(), 1, "cid-1", "", "0xbob")
	_, _ = svc.Append(context.Background(), 1, "cid-2", "", "0xbob")

	// owner lee siempre
	items, err := svc.History(context.Background(), 1, "0xalice")
	if err != nil {
		t.Fatalf("History owner error: %v", err)
	}
	if len(items) != 2 || items[0].Seq != 1 || items[1].Seq != 2 {
		t.Fatalf("expected 2 entries in seq order, got %#v", items)
	}

	// sin permiso
	_, err = svc.History(context.Background(), 1, "0xcarol")
	if err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	// con permiso
	reader.allowed["0xcarol"] = true
	items, err = svc.History(context.Background(), 1, "0xcarol")
	if err != nil {
		t.Fatalf("History grantee error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(items))
	}
}

func TestService_History_EmptyIsNotAnError(t *testing.T) {
	svc, _, _ := newSvc()

	items, err := svc.History(context.Background(), 1, "0xalice")
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty history, got %d", len(items))
	}
}

func TestService_Count(t *testing.T) {
	svc, _, _ := newSvc()

	_, _ = svc.Append(context.Background(), 1, "cid-1", "", "0xbob")

	n, err := svc.Count(context.Background(), 1)
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1, got %d", n)
	}

	_, err = svc.Count(context.Background(), 99)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
