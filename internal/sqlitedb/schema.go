package sqlitedb

import _ "embed"

// Schema creates the tables the queries run against. It is idempotent.
//
//go:embed schema/01_kv_entries.sql
var Schema string
