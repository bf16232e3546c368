package store

// schema defines the gateway database schema. Statements are idempotent so
// Open can run them on every start.
const schema = `
CREATE TABLE IF NOT EXISTS gateways (
	id                   TEXT PRIMARY KEY,
	name                 TEXT NOT NULL DEFAULT '',
	requires_auth        BOOLEAN NOT NULL DEFAULT 0,
	cache_ttl            INTEGER NOT NULL DEFAULT 0,
	rate_limit_limit     INTEGER,
	rate_limit_interval  INTEGER,
	rate_limit_technique TEXT,
	created_at           TEXT NOT NULL,
	modified_at          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_gateways_name ON gateways(name);
`
