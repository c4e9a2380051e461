package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Nisith-Naman/Health/internal/domain/tokens"
)

type TokensRepo struct {
	db *sql.DB
}

func NewTokensRepo(db *sql.DB) *TokensRepo {
	return &TokensRepo{db: db}
}

// Mint asigna el ID con la secuencia de la tabla: un solo INSERT
// atómico con RETURNING, nunca read-then-write.
func (r *TokensRepo) Mint(ctx context.Context, t tokens.Token) (tokens.Token, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO tokens (owner_address, minted_by, minted_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`,
		t.Owner,
		t.MintedBy,
		t.MintedAt,
	)

	if err := row.Scan(&t.ID); err != nil {
		return tokens.Token{}, err
	}
	return t, nil
}

func (r *TokensRepo) GetByID(ctx context.Context, id uint64) (tokens.Token, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_address, minted_by, minted_at
		FROM tokens
		WHERE id = $1
	`, id)

	var t tokens.Token
	if err := row.Scan(&t.ID, &t.Owner, &t.MintedBy, &t.MintedAt); err != nil {
		if err == sql.ErrNoRows {
			return tokens.Token{}, ErrNotFound
		}
		return tokens.Token{}, err
	}
	return t, nil
}

func (r *TokensRepo) SetOwner(ctx context.Context, id uint64, owner string) error {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE tokens
		SET owner_address = $2
		WHERE id = $1
	`, id, owner)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByOwner se apoya en el índice por owner_address; nunca
// recorre la tabla entera.
func (r *TokensRepo) ListByOwner(ctx context.Context, owner string) ([]tokens.Token, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_address, minted_by, minted_at
		FROM tokens
		WHERE owner_address = $1
		ORDER BY id ASC
	`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tokens.Token, 0)
	for rows.Next() {
		var t tokens.Token
		if err := rows.Scan(&t.ID, &t.Owner, &t.MintedBy, &t.MintedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
