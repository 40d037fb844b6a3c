// Package postgres implements the store interfaces on top of PostgreSQL,
// accessed through database/sql with the pgx driver. All backend errors are
// mapped into the store error taxonomy before leaving this package.
package postgres
