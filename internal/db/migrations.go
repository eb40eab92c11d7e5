package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS visitors (
		id               INTEGER  PRIMARY KEY AUTOINCREMENT,
		name             TEXT     NOT NULL,
		apartment_number TEXT     NOT NULL,
		purpose          TEXT     NOT NULL,
		phone_number     TEXT     NOT NULL DEFAULT '',
		check_in_time    DATETIME NOT NULL,
		notified         INTEGER  NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_visitors_check_in_time
		ON visitors (check_in_time DESC, id DESC)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
