// Package sqlstore реализует repository.Store поверх database/sql
// для MySQL (go-sql-driver/mysql) и PostgreSQL (lib/pq).
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"authored-notes/internal/repository"
)

const (
	// DriverMySQL имя драйвера MySQL
	DriverMySQL = "mysql"
	// DriverPostgres имя драйвера PostgreSQL
	DriverPostgres = "postgres"
)

var _ repository.Store = (*Store)(nil)

type dialect struct {
	name string
	// returning: поддерживается ли INSERT/UPDATE ... RETURNING
	returning         bool
	schema            []string
	isUniqueViolation func(err error) bool
}

var dialects = map[string]dialect{
	DriverMySQL: {
		name:      DriverMySQL,
		returning: false,
		schema:    mysqlSchema,
		isUniqueViolation: func(err error) bool {
			var myErr *mysql.MySQLError
			return errors.As(err, &myErr) && myErr.Number == 1062
		},
	},
	DriverPostgres: {
		name:      DriverPostgres,
		returning: true,
		schema:    postgresSchema,
		isUniqueViolation: func(err error) bool {
			var pqErr *pq.Error
			return errors.As(err, &pqErr) && pqErr.Code == "23505"
		},
	},
}

// Store хранилище заметок и пользователей в реляционной БД
type Store struct {
	db      *sql.DB
	dialect dialect
	now     func() time.Time
}

// Open подключается к БД указанного драйвера и проверяет соединение
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	const op = "sqlstore.Open"

	var db *sql.DB
	switch driver {
	case DriverMySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("%s: parse dsn: %w", op, err)
		}
		// Время в UTC; RowsAffected считает найденные строки, а не измененные
		cfg.ParseTime = true
		cfg.Loc = time.UTC
		cfg.ClientFoundRows = true
		connector, err := mysql.NewConnector(cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		db = sql.OpenDB(connector)
	case DriverPostgres:
		connector, err := pq.NewConnector(dsn)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		db = sql.OpenDB(connector)
	default:
		return nil, fmt.Errorf("%s: unsupported driver %q", op, driver)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return New(db, driver)
}

// New оборачивает уже открытое соединение
func New(db *sql.DB, driver string) (*Store, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("sqlstore.New: unsupported driver %q", driver)
	}
	return &Store{
		db:      db,
		dialect: d,
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}, nil
}

// Migrate создает таблицы users и notes, если их нет
func (s *Store) Migrate(ctx context.Context) error {
	const op = "sqlstore.Migrate"

	for _, stmt := range s.dialect.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// Close закрывает пул соединений
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind заменяет плейсхолдеры ? на $1, $2, ... для PostgreSQL
func (s *Store) rebind(query string) string {
	if s.dialect.name != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
