package repository

import (
	"database/sql"
)

// SQLExecutor is the query surface shared by *sql.DB and *sql.Tx, letting
// every repository run unchanged inside or outside a transaction.
type SQLExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

var _ SQLExecutor = (*sql.DB)(nil)

// TxWrapper adapts an open transaction to the SQLExecutor surface.
type TxWrapper struct {
	*sql.Tx
}

var _ SQLExecutor = (*TxWrapper)(nil)
