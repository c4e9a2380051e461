package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Nisith-Naman/Health/internal/domain/records"
)

type recordsRepo struct {
	mu sync.RWMutex
	// secuencia append-only por token; la posición en el slice
	// determina Seq, así el orden de append es el orden de lectura.
	byToken map[uint64][]records.Entry
}

func NewRecordsRepo() records.Repository {
	return &recordsRepo{
		byToken: make(map[uint64][]records.Entry),
	}
}

func (r *recordsRepo) Append(ctx context.Context, e records.Entry) (records.Entry, error) {
	if strings.TrimSpace(e.CID) == "" {
		return records.Entry{}, errors.New("entry cid required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seq := len(r.byToken[e.TokenID]) + 1
	e.Seq = seq
	r.byToken[e.TokenID] = append(r.byToken[e.TokenID], e)
	return e, nil
}

func (r *recordsRepo) ListByToken(ctx context.Context, tokenID uint64) ([]records.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.byToken[tokenID]
	out := make([]records.Entry, len(entries))
	copy(out, entries)
	return out, nil
}

func (r *recordsRepo) CountByToken(ctx context.Context, tokenID uint64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byToken[tokenID]), nil
}
