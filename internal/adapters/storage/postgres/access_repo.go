package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Nisith-Naman/Health/internal/domain/access"
)

type AccessRepo struct {
	db *sql.DB
}

func NewAccessRepo(db *sql.DB) *AccessRepo {
	return &AccessRepo{db: db}
}

// Upsert pisa el grant existente para (token_id, viewer_address):
// un re-grant solo actualiza expiry y granted_by, conserva created_at.
func (r *AccessRepo) Upsert(ctx context.Context, g access.Grant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO access_grants (
			id, token_id, viewer_address, granted_by,
			expires_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (token_id, viewer_address) DO UPDATE SET
			granted_by = EXCLUDED.granted_by,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at
	`,
		g.ID,
		g.TokenID,
		g.Viewer,
		g.GrantedBy,
		toNullTime(g.ExpiresAt),
		g.CreatedAt,
		g.UpdatedAt,
	)
	return err
}

func (r *AccessRepo) Get(ctx context.Context, tokenID uint64, viewer string) (access.Grant, error) {
	viewer = strings.TrimSpace(viewer)
	if viewer == "" {
		return access.Grant{}, access.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, token_id, viewer_address, granted_by,
		       expires_at, created_at, updated_at
		FROM access_grants
		WHERE token_id = $1 AND viewer_address = $2
	`, tokenID, viewer)

	g, err := scanGrant(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return access.Grant{}, access.ErrNotFound
		}
		return access.Grant{}, err
	}
	return g, nil
}

func (r *AccessRepo) Delete(ctx context.Context, tokenID uint64, viewer string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM access_grants
		WHERE token_id = $1 AND viewer_address = $2
	`, tokenID, viewer)
	if err != nil {
		return false, err
	}

	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *AccessRepo) ListByToken(ctx context.Context, tokenID uint64) ([]access.Grant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, token_id, viewer_address, granted_by,
		       expires_at, created_at, updated_at
		FROM access_grants
		WHERE token_id = $1
		ORDER BY viewer_address ASC
	`, tokenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]access.Grant, 0)
	for rows.Next() {
		g, err := scanGrant(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func scanGrant(scan func(dest ...any) error) (access.Grant, error) {
	var g access.Grant
	var expiresAt sql.NullTime

	if err := scan(
		&g.ID,
		&g.TokenID,
		&g.Viewer,
		&g.GrantedBy,
		&expiresAt,
		&g.CreatedAt,
		&g.UpdatedAt,
	); err != nil {
		return access.Grant{}, err
	}

	if expiresAt.Valid {
		t := expiresAt.Time
		g.ExpiresAt = &t
	}
	return g, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
