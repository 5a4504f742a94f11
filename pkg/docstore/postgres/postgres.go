// Package postgres stores documents as JSONB rows in a single table keyed
// by (collection, id).
package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/tour-desk/pkg/database"
	"github.com/JaimeStill/tour-desk/pkg/docstore"
	"github.com/JaimeStill/tour-desk/pkg/lifecycle"
)

type store struct {
	db     database.System
	logger *slog.Logger
}

// New creates a document store over db. Start applies migrations.
func New(db database.System, logger *slog.Logger) docstore.System {
	return &store{
		db:     db,
		logger: logger.With("system", "docstore", "driver", "postgres"),
	}
}

func (s *store) Collection(name string) docstore.Collection {
	return &collection{name: name, db: s.db.Connection()}
}

func (s *store) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting document store")

	lc.OnStartup(func() {
		if err := Migrate(s.db.Connection()); err != nil {
			s.logger.Error("document store migration failed", "error", err)
			return
		}
		s.logger.Info("document store migrated")
	})

	return nil
}

type collection struct {
	name string
	db   *sql.DB
}

func (c *collection) List(ctx context.Context, opts docstore.ListOptions) ([]docstore.Document, error) {
	q := `SELECT id, data, created_at, updated_at FROM documents WHERE collection = $1 ORDER BY created_at, id`
	args := []any{c.name}

	if opts.OrderBy != "" {
		dir := "ASC NULLS FIRST"
		if opts.Descending {
			dir = "DESC NULLS LAST"
		}
		q = fmt.Sprintf(
			`SELECT id, data, created_at, updated_at FROM documents WHERE collection = $1 ORDER BY data -> $2 %s, created_at, id`,
			dir,
		)
		args = append(args, opts.OrderBy)
	}

	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	docs := make([]docstore.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return docs, nil
}

func (c *collection) Get(ctx context.Context, id string) (docstore.Document, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return docstore.Document{}, docstore.ErrNotFound
	}

	row := c.db.QueryRowContext(ctx,
		`SELECT id, data, created_at, updated_at FROM documents WHERE collection = $1 AND id = $2`,
		c.name, uid,
	)

	doc, err := scanDocument(row)
	if err != nil {
		return docstore.Document{}, err
	}
	return doc, nil
}

func (c *collection) Add(ctx context.Context, fields map[string]any) (docstore.Document, error) {
	data, err := encode(fields)
	if err != nil {
		return docstore.Document{}, err
	}

	row := c.db.QueryRowContext(ctx,
		`INSERT INTO documents(collection, id, data) VALUES($1, $2, $3::jsonb)
		RETURNING id, data, created_at, updated_at`,
		c.name, uuid.New(), data,
	)
	return scanDocument(row)
}

func (c *collection) Update(ctx context.Context, id string, fields map[string]any) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return docstore.ErrNotFound
	}

	data, err := encode(fields)
	if err != nil {
		return err
	}

	result, err := c.db.ExecContext(ctx,
		`UPDATE documents SET data = data || $3::jsonb, updated_at = NOW()
		WHERE collection = $1 AND id = $2`,
		c.name, uid, data,
	)
	if err != nil {
		return mapError(err)
	}
	return expectOne(result)
}

func (c *collection) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return docstore.ErrNotFound
	}

	result, err := c.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		c.name, uid,
	)
	if err != nil {
		return mapError(err)
	}
	return expectOne(result)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (docstore.Document, error) {
	var (
		id      uuid.UUID
		raw     []byte
		created time.Time
		updated time.Time
	)
	if err := s.Scan(&id, &raw, &created, &updated); err != nil {
		return docstore.Document{}, mapError(err)
	}

	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return docstore.Document{}, fmt.Errorf("decode document %s: %w", id, err)
	}

	return docstore.Document{
		ID:        id.String(),
		Fields:    fields,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

// timeLayout is fixed width so jsonb string order matches instant order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func encode(fields map[string]any) ([]byte, error) {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		switch t := v.(type) {
		case time.Time:
			out[k] = t.UTC().Format(timeLayout)
		case *time.Time:
			if t == nil {
				out[k] = nil
				continue
			}
			out[k] = t.UTC().Format(timeLayout)
		default:
			out[k] = v
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", docstore.ErrInvalidField, err)
	}
	return data, nil
}

func expectOne(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

// mapError classifies driver errors into docstore sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return docstore.ErrNotFound
	}
	if isUnavailable(err) {
		return fmt.Errorf("%w: %v", docstore.ErrUnavailable, err)
	}
	return err
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
