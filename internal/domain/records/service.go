package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Nisith-Naman/Health/internal/domain/roles"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// TokenOwnerLookup evita importar el paquete tokens.
type TokenOwnerLookup interface {
	OwnerOf(ctx context.Context, tokenID uint64) (string, error)
}

// RoleChecker gate de append: solo addresses con rol recorder.
type RoleChecker interface {
	Has(ctx context.Context, role roles.Role, address string) (bool, error)
}

// ReadAuthorizer delega la autorización de lectura al AccessController.
type ReadAuthorizer interface {
	CanRead(ctx context.Context, tokenID uint64, address string) (bool, error)
}

type Service struct {
	repo   Repository
	owners TokenOwnerLookup
	roles  RoleChecker
	reader ReadAuthorizer
	now    func() time.Time
}

func NewService(repo Repository, owners TokenOwnerLookup, roleChecker RoleChecker, reader ReadAuthorizer) *Service {
	return &Service{
		repo:   repo,
		owners: owners,
		roles:  roleChecker,
		reader: reader,
		now:    time.Now,
	}
}

// Append agrega una entrada a la historia del token.
// Requiere que el token exista y que el caller tenga rol recorder.
// CID vacío se rechaza; el contenido en sí nunca se valida.
func (s *Service) Append(ctx context.Context, tokenID uint64, cid, note, caller string) (Entry, error) {
	caller = strings.ToLower(strings.TrimSpace(caller))
	if caller == "" {
		return Entry{}, ErrInvalidInput
	}

	if _, err := s.owners.OwnerOf(ctx, tokenID); err != nil {
		return Entry{}, ErrNotFound
	}

	isRecorder, err := s.roles.Has(ctx, roles.RoleRecorder, caller)
	if err != nil {
		return Entry{}, err
	}
	if !isRecorder {
		return Entry{}, ErrUnauthorized
	}

	cid = strings.TrimSpace(cid)
	if cid == "" {
		return Entry{}, ErrInvalidInput
	}

	return s.repo.Append(ctx, Entry{
		TokenID:    tokenID,
		CID:        cid,
		Note:       strings.TrimSpace(note),
		AddedBy:    caller,
		RecordedAt: s.now(),
	})
}

// History devuelve las entradas en orden de append (Seq asc).
// La autorización se delega a CanRead en cada llamada: un revoke del
// owner corta el acceso en la lectura siguiente. Sin entradas no es
// un error: devuelve secuencia vacía.
func (s *Service) History(ctx context.Context, tokenID uint64, caller string) ([]Entry, error) {
	caller = strings.ToLower(strings.TrimSpace(caller))
	if caller == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.owners.OwnerOf(ctx, tokenID); err != nil {
		return nil, ErrNotFound
	}

	ok, err := s.reader.CanRead(ctx, tokenID, caller)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnauthorized
	}

	return s.repo.ListByToken(ctx, tokenID)
}

// Count no expone contenido, solo el largo de la secuencia.
func (s *Service) Count(ctx context.Context, tokenID uint64) (int, error) {
	if _, err := s.owners.OwnerOf(ctx, tokenID); err != nil {
		return 0, ErrNotFound
	}
	return s.repo.CountByToken(ctx, tokenID)
}
