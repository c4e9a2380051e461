package memory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"

	"github.com/Nisith-Naman/Health/internal/ports/content"
)

// contentStore es el content store de dev: hashea los bytes a un
// pseudo-CID determinístico. Mismo contrato que el store real
// (content-addressed, sin delete, sin update).
type contentStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewContentStore() content.Store {
	return &contentStore{
		blobs: make(map[string][]byte),
	}
}

func (s *contentStore) Store(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty content")
	}

	sum := sha256.Sum256(data)
	cid := "dev-" + hex.EncodeToString(sum[:])

	s.mu.Lock()
	defer s.mu.Unlock()

	// content-addressed: re-subir el mismo blob devuelve el mismo CID
	s.blobs[cid] = data
	return cid, nil
}
