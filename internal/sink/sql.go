package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/netxfw/rxparse/internal/parser"
)

// Dialect describes how a SQL database names its column types and placeholders.
// Dialect 描述 SQL 数据库如何命名列类型和占位符。
type Dialect struct {
	Name       string
	DriverName string
	Types      map[parser.FieldKind]string
	// Placeholder returns the bind marker for the 1-based argument n.
	Placeholder func(n int) string
}

var (
	// SQLite stores timestamps as text through modernc.org/sqlite.
	SQLite = Dialect{
		Name:       "sqlite",
		DriverName: "sqlite",
		Types: map[parser.FieldKind]string{
			parser.KindString:    "TEXT",
			parser.KindLong:      "INTEGER",
			parser.KindDouble:    "REAL",
			parser.KindTimestamp: "TIMESTAMP",
			parser.KindBoolean:   "BOOLEAN",
		},
		Placeholder: func(int) string { return "?" },
	}

	// Postgres goes through the pgx stdlib driver.
	Postgres = Dialect{
		Name:       "postgres",
		DriverName: "pgx",
		Types: map[parser.FieldKind]string{
			parser.KindString:    "TEXT",
			parser.KindLong:      "BIGINT",
			parser.KindDouble:    "DOUBLE PRECISION",
			parser.KindTimestamp: "TIMESTAMPTZ",
			parser.KindBoolean:   "BOOLEAN",
		},
		Placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	}
)

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// CreateTableSQL builds the DDL for the derived schema export.
// CreateTableSQL 根据派生的 Schema 导出构建 DDL。
func (d Dialect) CreateTableSQL(table string, cols []parser.Column) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		typ, ok := d.Types[parser.ParseKind(c.Type)]
		if !ok {
			typ = "TEXT"
		}
		defs[i] = quoteIdent(c.Name) + " " + typ
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
}

// InsertSQL builds the parameterized insert statement.
func (d Dialect) InsertSQL(table string, cols []parser.Column) string {
	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		names[i] = quoteIdent(c.Name)
		marks[i] = d.Placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(names, ", "), strings.Join(marks, ", "))
}

// SQL inserts every record inside one transaction that is committed on Finalize,
// so an aborted run leaves the table untouched.
// SQL 在一个事务中插入所有记录，并在 Finalize 时提交，因此中止的运行不会修改表。
type SQL struct {
	db     *sql.DB
	tx     *sql.Tx
	stmt   *sql.Stmt
	closed bool
}

// NewSQL opens the database, creates the table if needed and starts the transaction.
// NewSQL 打开数据库，按需创建表并开始事务。
func NewSQL(ctx context.Context, d Dialect, dsn, table string, cols []parser.Column) (*SQL, error) {
	db, err := sql.Open(d.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect %s: %w", d.Name, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, d.CreateTableSQL(table, cols)); err != nil {
		tx.Rollback()
		db.Close()
		return nil, fmt.Errorf("create table %s: %w", table, err)
	}
	stmt, err := tx.PrepareContext(ctx, d.InsertSQL(table, cols))
	if err != nil {
		tx.Rollback()
		db.Close()
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	return &SQL{db: db, tx: tx, stmt: stmt}, nil
}

func (s *SQL) Accept(ctx context.Context, rec parser.Record) error {
	args := make([]any, len(rec))
	copy(args, rec)
	_, err := s.stmt.ExecContext(ctx, args...)
	return err
}

func (s *SQL) Finalize(context.Context) error {
	if err := s.stmt.Close(); err != nil {
		return err
	}
	if err := s.tx.Commit(); err != nil {
		return err
	}
	s.closed = true
	return s.db.Close()
}

// Close rolls back an uncommitted run.
func (s *SQL) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.stmt.Close()
	if err := s.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		s.db.Close()
		return err
	}
	return s.db.Close()
}
