// Package corpus persists imported recipes, their fingerprints, and merge
// results in SQLite.
//
// The Store manages the database connection, schema initialization, and an
// exclusive file lock on the data directory so concurrent mediamerge
// invocations cannot interleave writes. Imported records are kept verbatim as
// JSON payloads alongside the columns the CLI queries, so re-running the
// dedupe stage never loses source data.
//
// The database is a working corpus, not an archive: schema changes bump the
// version in schema.go and users re-import to adopt the new schema.
package corpus
