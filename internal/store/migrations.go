package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// sqliteMigrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
//
// todos.category_id deliberately has no foreign key: deleting a category
// leaves the reference in place and the todo reads as uncategorized.
var sqliteMigrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE COLLATE NOCASE,
	password_hash TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS categories (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL CHECK(length(name) BETWEEN 1 AND 50),
	color      TEXT NOT NULL,
	icon       TEXT,
	user_id    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS todos (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL CHECK(length(title) > 0),
	completed   INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	category_id TEXT,
	user_id     TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS checklist_items (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL CHECK(length(title) > 0),
	quantity   TEXT,
	category   TEXT NOT NULL DEFAULT 'general',
	completed  INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	notes      TEXT,
	user_id    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_categories_user_created ON categories(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_todos_user_created ON todos(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_checklist_items_user_created ON checklist_items(user_id, created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}

// postgresSchema is applied idempotently by NewPostgresStore.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS categories (
	id         TEXT PRIMARY KEY,
	name       VARCHAR(50) NOT NULL CHECK (length(name) > 0),
	color      CHAR(7) NOT NULL,
	icon       TEXT,
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS todos (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL CHECK (length(title) > 0),
	completed   BOOLEAN NOT NULL DEFAULT false,
	category_id TEXT,
	user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS checklist_items (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL CHECK (length(title) > 0),
	quantity   TEXT,
	category   TEXT NOT NULL DEFAULT 'general',
	completed  BOOLEAN NOT NULL DEFAULT false,
	notes      TEXT,
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_categories_user_created ON categories(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_todos_user_created ON todos(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_checklist_items_user_created ON checklist_items(user_id, created_at);
`
