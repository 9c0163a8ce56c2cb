package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS conversation_state (
    chat_id INTEGER NOT NULL,
    ns TEXT NOT NULL,
    data BLOB NOT NULL,
    updated_at INTEGER NOT NULL,
    PRIMARY KEY (chat_id, ns)
);

CREATE TABLE IF NOT EXISTS orders (
    code TEXT PRIMARY KEY,
    status TEXT NOT NULL,
    eta TEXT NOT NULL,
    note TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS offers (
    code TEXT NOT NULL,
    size TEXT NOT NULL,
    file_id TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (size, code)
);

CREATE INDEX IF NOT EXISTS idx_offers_size ON offers(size);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
