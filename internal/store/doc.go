// Package store provides the persistent file-signature database.
//
// Each record maps a file extension to a magic-byte pattern expected at a
// byte offset. One extension may own multiple records (JPEG variants, ZIP
// local vs. empty headers); uniqueness is enforced on the full
// (extension, magic bytes, offset) triple.
//
// The store is backed by a single SQLite database. Mutations commit
// immediately; there is no exposed transaction surface. The store is not
// designed for concurrent writers.
package store
