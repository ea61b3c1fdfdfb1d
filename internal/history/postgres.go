// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package history

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createHistoryTable = `CREATE TABLE IF NOT EXISTS search_history(
		id uuid PRIMARY KEY,
		query text NOT NULL,
		kind text NOT NULL,
		found boolean NOT NULL,
		city text NOT NULL DEFAULT '',
		state text NOT NULL DEFAULT '',
		postal_code text NOT NULL DEFAULT '',
		searched_at timestamptz NOT NULL
	);`
	createSearchedAtIndex = `CREATE INDEX IF NOT EXISTS idx_search_history_searched_at
		ON search_history(searched_at DESC);`

	insertEntry = `INSERT INTO search_history(id, query, kind, found, city, state, postal_code, searched_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8);`
	selectRecent = `SELECT id, query, kind, found, city, state, postal_code, searched_at
		FROM search_history ORDER BY searched_at DESC LIMIT $1;`

	maxRecent = 1000
)

// Postgres is a Recorder backed by a PostgreSQL connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to the database and creates the history schema if it does not exist.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	for _, stmt := range []string{createHistoryTable, createSearchedAtIndex} {
		if _, err = pool.Exec(ctx, stmt); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to create history schema: %w", err)
		}
	}

	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Record(ctx context.Context, entry Entry) error {
	_, err := p.pool.Exec(ctx, insertEntry, entry.ID, entry.Query, entry.Kind, entry.Found, entry.City,
		entry.State, entry.PostalCode, entry.SearchedAt)
	if err != nil {
		return fmt.Errorf("failed to store history entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (p *Postgres) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := p.pool.Query(ctx, selectRecent, normalizeLimit(limit, maxRecent))
	if err != nil {
		return nil, fmt.Errorf("failed to query history entries: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var e Entry
		err := row.Scan(&e.ID, &e.Query, &e.Kind, &e.Found, &e.City, &e.State, &e.PostalCode, &e.SearchedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read history entries: %w", err)
	}
	return entries, nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
