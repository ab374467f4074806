package database

import (
	"context"
	"fmt"
)

type tableDDL struct {
	name       string
	statements map[string]string
}

// tables are created in order so foreign keys always point at an existing table.
var tables = []tableDDL{
	{
		name: "users",
		statements: map[string]string{
			DriverPostgres: `
				CREATE TABLE IF NOT EXISTS users (
					id SERIAL PRIMARY KEY,
					username VARCHAR(50) NOT NULL,
					email VARCHAR(100) NOT NULL
				)`,
			DriverSQLite: `
				CREATE TABLE IF NOT EXISTS users (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					username TEXT NOT NULL,
					email TEXT NOT NULL
				)`,
		},
	},
	{
		name: "subreddits",
		statements: map[string]string{
			DriverPostgres: `
				CREATE TABLE IF NOT EXISTS subreddits (
					id SERIAL PRIMARY KEY,
					name VARCHAR(50) NOT NULL,
					description TEXT NOT NULL
				)`,
			DriverSQLite: `
				CREATE TABLE IF NOT EXISTS subreddits (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					description TEXT NOT NULL
				)`,
		},
	},
	{
		name: "threads",
		statements: map[string]string{
			DriverPostgres: `
				CREATE TABLE IF NOT EXISTS threads (
					id SERIAL PRIMARY KEY,
					subreddit_id INTEGER NOT NULL REFERENCES subreddits(id),
					author_id INTEGER NOT NULL REFERENCES users(id),
					title VARCHAR(300) NOT NULL,
					content TEXT NOT NULL
				)`,
			DriverSQLite: `
				CREATE TABLE IF NOT EXISTS threads (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					subreddit_id INTEGER NOT NULL REFERENCES subreddits(id),
					author_id INTEGER NOT NULL REFERENCES users(id),
					title TEXT NOT NULL,
					content TEXT NOT NULL
				)`,
		},
	},
}

// InitializeTables creates all necessary tables if they don't exist
func (d *DB) InitializeTables(ctx context.Context) error {
	for _, table := range tables {
		ddl, ok := table.statements[d.driver]
		if !ok {
			return fmt.Errorf("no schema for table %s on driver %s", table.name, d.driver)
		}
		if _, err := d.conn.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}
	}
	return nil
}
