package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Nisith-Naman/Health/internal/domain/roles"
)

type RolesRepo struct {
	db *sql.DB
}

func NewRolesRepo(db *sql.DB) *RolesRepo {
	return &RolesRepo{db: db}
}

func (r *RolesRepo) Put(ctx context.Context, a roles.Assignment) (bool, error) {
	if strings.TrimSpace(a.Address) == "" {
		return false, ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO role_assignments (role, address, granted_by, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (role, address) DO NOTHING
	`,
		string(a.Role),
		a.Address,
		a.GrantedBy,
		a.CreatedAt,
	)
	if err != nil {
		return false, err
	}

	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *RolesRepo) Delete(ctx context.Context, role roles.Role, address string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM role_assignments
		WHERE role = $1 AND address = $2
	`, string(role), address)
	if err != nil {
		return false, err
	}

	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *RolesRepo) Has(ctx context.Context, role roles.Role, address string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM role_assignments
			WHERE role = $1 AND address = $2
		)
	`, string(role), address)

	var has bool
	if err := row.Scan(&has); err != nil {
		return false, err
	}
	return has, nil
}

func (r *RolesRepo) CountByRole(ctx context.Context, role roles.Role) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM role_assignments
		WHERE role = $1
	`, string(role))

	var n int
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
