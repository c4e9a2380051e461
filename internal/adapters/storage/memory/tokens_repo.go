package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Nisith-Naman/Health/internal/domain/tokens"
)

var (
	ErrNotFound = errors.New("not found")
)

type tokenRepo struct {
	mu     sync.RWMutex
	nextID uint64
	byID   map[uint64]tokens.Token
	// índice secundario owner -> token ids, mantenido junto con
	// mint/transfer bajo el mismo lock (misma transición).
	byOwner map[string]map[uint64]struct{}
}

func NewTokenRepo() tokens.Repository {
	return &tokenRepo{
		nextID:  1,
		byID:    make(map[uint64]tokens.Token),
		byOwner: make(map[string]map[uint64]struct{}),
	}
}

func (r *tokenRepo) Mint(ctx context.Context, t tokens.Token) (tokens.Token, error) {
	if strings.TrimSpace(t.Owner) == "" {
		return tokens.Token{}, errors.New("token owner required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextID
	r.nextID++

	r.byID[t.ID] = t
	r.index(t.Owner, t.ID)
	return t, nil
}

func (r *tokenRepo) GetByID(ctx context.Context, id uint64) (tokens.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return tokens.Token{}, ErrNotFound
	}
	return t, nil
}

func (r *tokenRepo) SetOwner(ctx context.Context, id uint64, owner string) error {
	if strings.TrimSpace(owner) == "" {
		return errors.New("token owner required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}

	r.unindex(t.Owner, id)
	t.Owner = owner
	r.byID[id] = t
	r.index(owner, id)
	return nil
}

func (r *tokenRepo) ListByOwner(ctx context.Context, owner string) ([]tokens.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byOwner[owner]
	out := make([]tokens.Token, 0, len(ids))
	for id := range ids {
		out = append(out, r.byID[id])
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *tokenRepo) index(owner string, id uint64) {
	set, ok := r.byOwner[owner]
	if !ok {
		set = make(map[uint64]struct{})
		r.byOwner[owner] = set
	}
	set[id] = struct{}{}
}

func (r *tokenRepo) unindex(owner string, id uint64) {
	if set, ok := r.byOwner[owner]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(r.byOwner, owner)
		}
	}
}
