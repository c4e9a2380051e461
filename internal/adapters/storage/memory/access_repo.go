package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Nisith-Naman/Health/internal/domain/access"
)

type grantKey struct {
	tokenID uint64
	viewer  string
}

type accessRepo struct {
	mu     sync.RWMutex
	grants map[grantKey]access.Grant
}

func NewAccessRepo() access.Repository {
	return &accessRepo{
		grants: make(map[grantKey]access.Grant),
	}
}

func (r *accessRepo) Upsert(ctx context.Context, g access.Grant) error {
	if strings.TrimSpace(g.Viewer) == "" {
		return errors.New("grant viewer required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.grants[grantKey{tokenID: g.TokenID, viewer: g.Viewer}] = g
	return nil
}

func (r *accessRepo) Get(ctx context.Context, tokenID uint64, viewer string) (access.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.grants[grantKey{tokenID: tokenID, viewer: viewer}]
	if !ok {
		return access.Grant{}, access.ErrNotFound
	}
	return g, nil
}

func (r *accessRepo) Delete(ctx context.Context, tokenID uint64, viewer string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := grantKey{tokenID: tokenID, viewer: viewer}
	if _, ok := r.grants[k]; !ok {
		return false, nil
	}
	delete(r.grants, k)
	return true, nil
}

func (r *accessRepo) ListByToken(ctx context.Context, tokenID uint64) ([]access.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]access.Grant, 0)
	for k, g := range r.grants {
		if k.tokenID == tokenID {
			out = append(out, g)
		}
	}

	// orden estable por viewer (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Viewer < out[j].Viewer
	})
	return out, nil
}
