package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Nisith-Naman/Health/internal/domain/records"
)

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

// Append calcula el próximo seq en el mismo INSERT. El PK
// (token_id, seq) hace que dos appends concurrentes no puedan
// quedarse con el mismo índice.
func (r *RecordsRepo) Append(ctx context.Context, e records.Entry) (records.Entry, error) {
	if strings.TrimSpace(e.CID) == "" {
		return records.Entry{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO record_entries (token_id, seq, cid, note, added_by, recorded_at)
		VALUES (
			$1,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM record_entries WHERE token_id = $1),
			$2, $3, $4, $5
		)
		RETURNING seq
	`,
		e.TokenID,
		e.CID,
		e.Note,
		e.AddedBy,
		e.RecordedAt,
	)

	if err := row.Scan(&e.Seq); err != nil {
		return records.Entry{}, err
	}
	return e, nil
}

func (r *RecordsRepo) ListByToken(ctx context.Context, tokenID uint64) ([]records.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT token_id, seq, cid, note, added_by, recorded_at
		FROM record_entries
		WHERE token_id = $1
		ORDER BY seq ASC
	`, tokenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.Entry, 0)
	for rows.Next() {
		var e records.Entry
		if err := rows.Scan(&e.TokenID, &e.Seq, &e.CID, &e.Note, &e.AddedBy, &e.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *RecordsRepo) CountByToken(ctx context.Context, tokenID uint64) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM record_entries
		WHERE token_id = $1
	`, tokenID)

	var n int
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
