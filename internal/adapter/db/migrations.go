package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"studyplanner/internal/config"
)

type migration struct {
	version int
	name    string
	up      func(ctx context.Context, tx *sqlx.Tx, driver string) error
}

// Versions are append-only. A database created by the earlier planner has
// users and tasks tables but no schema_migrations, so each step must also
// accept a partially matching schema.
var migrations = []migration{
	{version: 1, name: "create_users_and_tasks", up: createBaseTables},
	{version: 2, name: "add_task_due_date_and_priority", up: addTaskPlanningColumns},
	{version: 3, name: "unique_username", up: addUniqueUsernameIndex},
}

var baseTables = map[string][]string{
	config.DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER,
			task TEXT,
			due_date DATE,
			priority TEXT DEFAULT 'Medium',
			status TEXT DEFAULT 'Pending',
			FOREIGN KEY(user_id) REFERENCES users(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id)`,
	},
	config.DriverMySQL: {
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(255) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT UNSIGNED,
			task TEXT,
			due_date DATE NULL,
			priority VARCHAR(16) NOT NULL DEFAULT 'Medium',
			status VARCHAR(16) NOT NULL DEFAULT 'Pending',
			INDEX idx_tasks_user_id (user_id),
			CONSTRAINT fk_tasks_user FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
	},
}

var schemaMigrationsTable = map[string]string{
	config.DriverSQLite: `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TEXT NOT NULL
	)`,
	config.DriverMySQL: `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		applied_at VARCHAR(64) NOT NULL
	)`,
}

// Migrate applies every migration not yet recorded in schema_migrations, each
// in its own transaction. It returns the number of migrations applied.
func Migrate(ctx context.Context, db *sqlx.DB) (int, error) {
	driver := db.DriverName()
	createTable, ok := schemaMigrationsTable[driver]
	if !ok {
		return 0, fmt.Errorf("migrations: unsupported driver %q", driver)
	}
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return 0, fmt.Errorf("migrations: create schema_migrations: %w", err)
	}

	var versions []int
	if err := db.SelectContext(ctx, &versions, "SELECT version FROM schema_migrations"); err != nil {
		return 0, fmt.Errorf("migrations: read applied versions: %w", err)
	}
	applied := make(map[int]bool, len(versions))
	for _, version := range versions {
		applied[version] = true
	}

	count := 0
	for _, m := range migrations {
		if applied[m.version] {
			continue
		}
		if err := applyMigration(ctx, db, driver, m); err != nil {
			return count, fmt.Errorf("migrations: %d_%s: %w", m.version, m.name, err)
		}
		zap.L().Info("applied migration", zap.Int("version", m.version), zap.String("name", m.name))
		count++
	}

	return count, nil
}

func applyMigration(ctx context.Context, db *sqlx.DB, driver string, m migration) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := m.up(ctx, tx, driver); err != nil {
		return err
	}
	if _, err := tx.ExecContext(
		ctx,
		"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)",
		m.version,
		m.name,
		time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}

	return tx.Commit()
}

func createBaseTables(ctx context.Context, tx *sqlx.Tx, driver string) error {
	for _, statement := range baseTables[driver] {
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			return err
		}
	}
	return nil
}

func addTaskPlanningColumns(ctx context.Context, tx *sqlx.Tx, driver string) error {
	columns := []struct {
		name       string
		definition string
	}{
		{name: "due_date", definition: "DATE"},
		{name: "priority", definition: "TEXT DEFAULT 'Medium'"},
		{name: "status", definition: "TEXT DEFAULT 'Pending'"},
	}

	for _, column := range columns {
		exists, err := columnExists(ctx, tx, driver, "tasks", column.name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		statement := fmt.Sprintf("ALTER TABLE tasks ADD COLUMN %s %s", column.name, column.definition)
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			return err
		}
	}
	return nil
}

// Older databases declared username without a unique constraint and may hold
// duplicates. MySQL schemas always come from createBaseTables, which already
// declares it.
func addUniqueUsernameIndex(ctx context.Context, tx *sqlx.Tx, driver string) error {
	if driver != config.DriverSQLite {
		return nil
	}
	if err := renameDuplicateUsernames(ctx, tx); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, "CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(username)")
	return err
}

type usernameRow struct {
	ID       uint64 `db:"id"`
	Username string `db:"username"`
}

// renameDuplicateUsernames keeps the oldest row of each duplicated username and
// renames the others to <username>_<id>. Email stays the login key, so the
// renamed users can still sign in.
func renameDuplicateUsernames(ctx context.Context, tx *sqlx.Tx) error {
	var rows []usernameRow
	if err := tx.SelectContext(ctx, &rows, `
		SELECT id, username FROM users
		WHERE username IN (SELECT username FROM users GROUP BY username HAVING COUNT(*) > 1)
		ORDER BY username, id`); err != nil {
		return err
	}

	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		if !seen[row.Username] {
			seen[row.Username] = true
			continue
		}
		renamed := fmt.Sprintf("%s_%d", row.Username, row.ID)
		if _, err := tx.ExecContext(ctx, "UPDATE users SET username = ? WHERE id = ?", renamed, row.ID); err != nil {
			return err
		}
		zap.L().Warn("renamed duplicate username",
			zap.Uint64("user_id", row.ID),
			zap.String("username", row.Username),
			zap.String("renamed_to", renamed),
		)
	}
	return nil
}

func columnExists(ctx context.Context, tx *sqlx.Tx, driver, table, column string) (bool, error) {
	var query string
	switch driver {
	case config.DriverSQLite:
		query = "SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?"
	case config.DriverMySQL:
		query = `SELECT COUNT(*) FROM information_schema.columns
			WHERE table_schema = DATABASE() AND table_name = ? AND column_name = ?`
	default:
		return false, fmt.Errorf("unsupported driver %q", driver)
	}

	var count int
	if err := tx.GetContext(ctx, &count, query, table, column); err != nil {
		return false, err
	}
	return count > 0, nil
}
