package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotFound lo comparten los repos de este paquete para filas
// inexistentes (tokens, roles, entradas).
var ErrNotFound = errors.New("not found")

// Open abre el pool contra Postgres vía el driver pgx de database/sql
// y verifica conectividad antes de devolverlo.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// La carga es lectura de historiales y chequeos puntuales de
	// autorización; pool chico con idle largo.
	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(4)
	db.SetConnMaxIdleTime(10 * time.Minute)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
