package postgres

import (
	"context"
	"database/sql"

	"github.com/Nisith-Naman/Health/internal/domain/audit"
)

type AuditRepo struct {
	db *sql.DB
}

func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Append(ctx context.Context, e audit.Event) error {
	var tokenID sql.NullInt64
	if e.TokenID != nil {
		tokenID = sql.NullInt64{Int64: int64(*e.TokenID), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_events (id, action, actor, subject, token_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		e.ID,
		string(e.Action),
		e.Actor,
		e.Subject,
		tokenID,
		e.Detail,
		e.CreatedAt,
	)
	return err
}

func (r *AuditRepo) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, action, actor, subject, token_id, detail, created_at
		FROM audit_events
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]audit.Event, 0)
	for rows.Next() {
		var e audit.Event
		var action string
		var tokenID sql.NullInt64

		if err := rows.Scan(&e.ID, &action, &e.Actor, &e.Subject, &tokenID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}

		e.Action = audit.Action(action)
		if tokenID.Valid {
			id := uint64(tokenID.Int64)
			e.TokenID = &id
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
