package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"example.com/userapi/internal/domain"
)

// Migration is one forward schema step.
type Migration struct {
	Version string
	Up      string
}

// AllMigrations in the order they are applied.
var AllMigrations = []Migration{
	{
		Version: "1.0.0",
		Up: `
CREATE TABLE IF NOT EXISTS users (
    id BIGINT PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    email VARCHAR(254) NOT NULL,
    age INTEGER NOT NULL CHECK (age BETWEEN 1 AND 120),
    city VARCHAR(50) NOT NULL DEFAULT ''
);`,
	},
	{
		Version: "1.1.0",
		Up:      seedSQL(domain.SeedUsers()),
	},
}

const schemaVersionDDL = `
CREATE TABLE IF NOT EXISTS schema_version (
    version VARCHAR(32) PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// ApplyMigrations runs every migration newer than the highest recorded version.
func ApplyMigrations(ctx context.Context, db *sql.DB, d dialect) error {
	if _, err := db.ExecContext(ctx, schemaVersionDDL); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}
	current, err := currentVersion(ctx, db)
	if err != nil {
		return err
	}
	for _, m := range AllMigrations {
		v, err := semver.NewVersion(m.Version)
		if err != nil {
			return fmt.Errorf("invalid migration version %s: %w", m.Version, err)
		}
		if !current.LessThan(v) {
			continue
		}
		if _, err := db.ExecContext(ctx, m.Up); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.Version, err)
		}
		if _, err := db.ExecContext(ctx, d.rebind(`INSERT INTO schema_version (version) VALUES (?)`), m.Version); err != nil {
			return fmt.Errorf("record migration %s: %w", m.Version, err)
		}
	}
	return nil
}

func currentVersion(ctx context.Context, db *sql.DB) (*semver.Version, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_version`)
	if err != nil {
		return nil, fmt.Errorf("read schema_version: %w", err)
	}
	defer rows.Close()
	current := semver.MustParse("0.0.0")
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		v, err := semver.NewVersion(s)
		if err != nil {
			return nil, fmt.Errorf("invalid schema version %s: %w", s, err)
		}
		if v.GreaterThan(current) {
			current = v
		}
	}
	return current, rows.Err()
}

func seedSQL(users []domain.User) string {
	values := make([]string, 0, len(users))
	for _, u := range users {
		values = append(values, fmt.Sprintf("(%d, %s, %s, %d, %s)",
			u.ID, quote(u.Name), quote(u.Email), u.Age, quote(u.City)))
	}
	return "INSERT INTO users (id, name, email, age, city) VALUES\n" + strings.Join(values, ",\n") + ";"
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
