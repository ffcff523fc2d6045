// Package ledger persists a journal of every print dispatch in SQLite.
//
// One row is written per dispatch attempt, before the file is relocated, so
// the disposition of every file can be audited after the fact and so a file
// whose relocation failed is recognizably "printed, relocation pending". The
// processor consults that state before submitting: across drain cycles and
// daemon restarts a file is never reprinted for a single readiness
// determination; only its relocation is retried.
//
// The database is an append-mostly journal rather than a work queue; the
// pending set itself stays in memory and is rebuilt from directory listings.
// Schema changes bump the version in schema.go; the daemon refuses to open a
// mismatched database rather than guessing at migrations.
package ledger
