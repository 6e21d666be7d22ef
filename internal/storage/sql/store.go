package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"example.com/userapi/internal/domain"
	"example.com/userapi/internal/storage"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Concurrent Postgres writers can compute the same next id; the loser retries.
const maxCreateAttempts = 3

type dialect struct {
	driver string
	dollar bool
}

// rebind turns ? placeholders into $n for Postgres.
func (d dialect) rebind(q string) string {
	if !d.dollar {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
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

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case "pgx", "postgres":
		return dialect{driver: "pgx", dollar: true}, nil
	case "sqlite", "sqlite3":
		return dialect{driver: sqliteDriverName}, nil
	default:
		return dialect{}, fmt.Errorf("unsupported db driver %q", driver)
	}
}

type Store struct {
	db *sql.DB
	d  dialect
}

// Open connects, applies migrations and returns a ready store.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	if dsn == "" {
		if d.dollar {
			return nil, errors.New("db dsn is required for pgx")
		}
		dsn = ":memory:"
	}
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if !d.dollar {
		// one connection keeps a :memory: database shared and serialises writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := ApplyMigrations(ctx, db, d); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return &Store{db: db, d: d}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, name, email, age, city
		from users
		order by id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Age, &u.City); err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (s *Store) CreateUser(ctx context.Context, in domain.NewUser) (domain.User, error) {
	var lastErr error
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		u, err := s.createOnce(ctx, in)
		if err == nil {
			return u, nil
		}
		if !isUniqueViolation(err) {
			return domain.User{}, err
		}
		lastErr = err
	}
	return domain.User{}, fmt.Errorf("assign user id: %w", lastErr)
}

func (s *Store) createOnce(ctx context.Context, in domain.NewUser) (domain.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.User{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	if err := tx.QueryRowContext(ctx, `select coalesce(max(id), 0) + 1 from users`).Scan(&id); err != nil {
		return domain.User{}, err
	}
	u := in.WithID(id)
	if _, err := tx.ExecContext(ctx, s.d.rebind(`
		insert into users(id, name, email, age, city)
		values (?, ?, ?, ?, ?)`),
		u.ID,
		u.Name,
		u.Email,
		u.Age,
		u.City,
	); err != nil {
		return domain.User{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return s.getUser(ctx, s.db, id)
}

func (s *Store) DeleteUser(ctx context.Context, id int64) (domain.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.User{}, err
	}
	defer func() { _ = tx.Rollback() }()

	u, err := s.getUser(ctx, tx, id)
	if err != nil {
		return domain.User{}, err
	}
	res, err := tx.ExecContext(ctx, s.d.rebind(`delete from users where id = ?`), id)
	if err != nil {
		return domain.User{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.User{}, err
	}
	if affected == 0 {
		return domain.User{}, storage.ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) getUser(ctx context.Context, q queryRower, id int64) (domain.User, error) {
	var u domain.User
	row := q.QueryRowContext(ctx, s.d.rebind(`
		select id, name, email, age, city
		from users
		where id = ?`),
		id,
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Age, &u.City); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, storage.ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
