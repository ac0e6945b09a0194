// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"database/sql"

	migrate "github.com/rubenv/sql-migrate"
)

// This file maintains the database migration code.  See
// https://github.com/rubenv/sql-migrate for details of what goes in
// here.  This runs "outside" the normal store flow, either at initial
// startup or from an external tool.

var migrationSource = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "001_initial_schema",
			Up: []string{
				`CREATE TABLE notebook (
					id BIGSERIAL PRIMARY KEY,
					name VARCHAR(255) NOT NULL,
					path VARCHAR(4096) NOT NULL,
					content BYTEA,
					last_modified TIMESTAMP WITH TIME ZONE NOT NULL,
					UNIQUE(path, name)
				)`,
				`CREATE TABLE checkpoint (
					id UUID PRIMARY KEY,
					notebook_id BIGINT NOT NULL
						REFERENCES notebook(id) ON DELETE CASCADE,
					seq BIGSERIAL,
					content BYTEA,
					last_modified TIMESTAMP WITH TIME ZONE NOT NULL
				)`,
				`CREATE INDEX checkpoint_notebook_idx
					ON checkpoint(notebook_id, seq)`,
			},
			Down: []string{
				`DROP TABLE checkpoint`,
				`DROP TABLE notebook`,
			},
		},
	},
}

// Upgrade upgrades a database to the latest database schema version.
func Upgrade(db *sql.DB) error {
	_, err := migrate.Exec(db, "postgres", migrationSource, migrate.Up)
	return err
}

// Drop clears a database by running all of the migrations in reverse,
// ultimately resulting in dropping all of the tables.
func Drop(db *sql.DB) error {
	_, err := migrate.Exec(db, "postgres", migrationSource, migrate.Down)
	return err
}
