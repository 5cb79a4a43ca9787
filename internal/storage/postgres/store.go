package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"indexConfig/internal/model"
	"indexConfig/internal/schema"
)

// Conn is the subset of pgxpool.Pool used by Store.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store applies integration tables to Postgres.
type Store struct {
	pool   *pgxpool.Pool
	conn   Conn
	logger *zap.Logger
}

func NewStore(ctx context.Context, dsn string, logger *zap.Logger) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return newStore(pool, pool, logger), nil
}

func newStore(pool *pgxpool.Pool, conn Conn, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{pool: pool, conn: conn, logger: logger}
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Migrate creates each table with its schema and indexes, then adds
// columns that exist in the table definition but not in the database.
// Columns present only in the database are left alone.
func (s *Store) Migrate(ctx context.Context, tables []model.ResolvedTable) error {
	for _, t := range tables {
		if err := s.migrateTable(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) migrateTable(ctx context.Context, t model.ResolvedTable) error {
	name := t.QualifiedName()
	for _, stmt := range schema.TableDDL(t) {
		if _, err := s.conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("table %q stmt %q: %w", name, stmt, err)
		}
	}

	diff, err := s.Diff(ctx, t)
	if err != nil {
		return fmt.Errorf("getting diff for %s: %w", name, err)
	}
	for _, c := range diff.Add {
		q := fmt.Sprintf(
			"alter table %s add column if not exists %s %s",
			name,
			schema.Quote(c.Name),
			c.Type,
		)
		if _, err := s.conn.Exec(ctx, q); err != nil {
			return fmt.Errorf("adding column %s/%s: %w", name, c.Name, err)
		}
		s.logger.Info("column added", zap.String("table", name), zap.String("column", c.Name), zap.String("type", c.Type))
	}
	if len(diff.Remove) > 0 {
		s.logger.Warn("columns not in config", zap.String("table", name), zap.Int("count", len(diff.Remove)))
	}

	s.logger.Info("table migrated", zap.String("table", name), zap.Int("columns", len(t.Columns)), zap.Int("indexes", len(t.Index)))
	return nil
}

// DiffDetails lists columns to add and columns unknown to the config.
type DiffDetails struct {
	Add    []model.Column
	Remove []model.Column
}

type dbColumn struct {
	Name string `db:"column_name"`
	Type string `db:"data_type"`
}

// Diff compares t with information_schema. A table without a schema, or with
// an empty one, is looked up in public.
func (s *Store) Diff(ctx context.Context, t model.ResolvedTable) (DiffDetails, error) {
	const q = `
		select column_name, data_type
		from information_schema.columns
		where table_schema = $1
		and table_name = $2
	`
	rows, err := s.conn.Query(ctx, q, lookupSchema(t), t.Name)
	if err != nil {
		return DiffDetails{}, fmt.Errorf("querying for table info: %w", err)
	}
	indb, err := pgx.CollectRows(rows, pgx.RowToStructByName[dbColumn])
	if err != nil {
		return DiffDetails{}, fmt.Errorf("querying for table info: %w", err)
	}
	return diffColumns(t.Columns, indb), nil
}

// lookupSchema matches QualifiedName: an empty schema means the default one.
func lookupSchema(t model.ResolvedTable) string {
	if s, ok := t.Schema.Get(); ok && s != "" {
		return s
	}
	return "public"
}

func diffColumns(want []model.Column, indb []dbColumn) DiffDetails {
	var dd DiffDetails
	have := make(map[string]struct{}, len(indb))
	for _, c := range indb {
		have[c.Name] = struct{}{}
	}
	wanted := make(map[string]struct{}, len(want))
	for _, c := range want {
		wanted[c.Name] = struct{}{}
		if _, ok := have[c.Name]; !ok {
			dd.Add = append(dd.Add, c)
		}
	}
	for _, c := range indb {
		if _, ok := wanted[c.Name]; !ok {
			dd.Remove = append(dd.Remove, model.Column{Name: c.Name, Type: c.Type})
		}
	}
	return dd
}
