// ABOUTME: SQLite schema for the memory subsystem
// ABOUTME: Facts, messages, summaries, learning records, emergent behaviors
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Facts table: (subject, attribute, value) triples about the user.
-- The partial unique index enforces at most one active fact per identity key.
CREATE TABLE IF NOT EXISTS facts (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    subject TEXT NOT NULL,
    attribute TEXT NOT NULL,
    value TEXT NOT NULL,
    confidence REAL DEFAULT 0.9,
    category TEXT DEFAULT 'personal',
    is_active INTEGER DEFAULT 1,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Raw conversation messages, append-only
CREATE TABLE IF NOT EXISTS messages (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    text TEXT NOT NULL,
    timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Rolling compressed summary, single row per user (overwrite semantics)
CREATE TABLE IF NOT EXISTS memory_summaries (
    user_id TEXT PRIMARY KEY,
    summary TEXT NOT NULL,
    messages_compressed INTEGER DEFAULT 0,
    compression_date DATETIME DEFAULT CURRENT_TIMESTAMP,
    tokens_used INTEGER DEFAULT 0
);

-- Learning records for the adaptive loop, append-only
CREATE TABLE IF NOT EXISTS learning_records (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    message_pattern TEXT NOT NULL,
    message_context TEXT NOT NULL,
    emotional_intensity REAL DEFAULT 0,
    urgency_level INTEGER DEFAULT 0,
    response_style TEXT,
    satisfaction_score REAL DEFAULT 0.5,
    personality_used TEXT,
    adaptive_temperature REAL DEFAULT 0.9,
    adaptive_tokens INTEGER DEFAULT 300,
    complexity_score REAL DEFAULT 0,
    timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Emergent behaviors, monotonic once discovered
CREATE TABLE IF NOT EXISTS emergent_behaviors (
    user_id TEXT NOT NULL,
    behavior_id TEXT NOT NULL,
    behavior_type TEXT,
    description TEXT,
    confidence REAL DEFAULT 0,
    discovered_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (user_id, behavior_id)
);

-- Indexes for efficient querying
CREATE UNIQUE INDEX IF NOT EXISTS idx_facts_identity
    ON facts(user_id, subject, attribute) WHERE is_active = 1;
CREATE INDEX IF NOT EXISTS idx_facts_user ON facts(user_id);
CREATE INDEX IF NOT EXISTS idx_messages_user_ts ON messages(user_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_learning_user_ts ON learning_records(user_id, timestamp);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
