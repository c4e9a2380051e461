package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Nisith-Naman/Health/internal/domain/roles"
)

type roleKey struct {
	role    roles.Role
	address string
}

type rolesRepo struct {
	mu          sync.RWMutex
	assignments map[roleKey]roles.Assignment
}

func NewRolesRepo() roles.Repository {
	return &rolesRepo{
		assignments: make(map[roleKey]roles.Assignment),
	}
}

func (r *rolesRepo) Put(ctx context.Context, a roles.Assignment) (bool, error) {
	if strings.TrimSpace(a.Address) == "" {
		return false, errors.New("assignment address required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := roleKey{role: a.Role, address: a.Address}
	if _, exists := r.assignments[k]; exists {
		return false, nil
	}
	r.assignments[k] = a
	return true, nil
}

func (r *rolesRepo) Delete(ctx context.Context, role roles.Role, address string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := roleKey{role: role, address: address}
	if _, exists := r.assignments[k]; !exists {
		return false, nil
	}
	delete(r.assignments, k)
	return true, nil
}

func (r *rolesRepo) Has(ctx context.Context, role roles.Role, address string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.assignments[roleKey{role: role, address: address}]
	return ok, nil
}

func (r *rolesRepo) CountByRole(ctx context.Context, role roles.Role) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for k := range r.assignments {
		if k.role == role {
			n++
		}
	}
	return n, nil
}
